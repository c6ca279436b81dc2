package api

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"donation/models"
	"donation/store"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// ExportHandler 导出处理器
type ExportHandler struct {
	stats    StatsComputer
	incomes  store.IncomeStore
	expenses store.ExpenseStore
	title    string
	currency string
}

// NewExportHandler 创建导出处理器
func NewExportHandler(stats StatsComputer, incomes store.IncomeStore, expenses store.ExpenseStore, title, currency string) *ExportHandler {
	return &ExportHandler{stats: stats, incomes: incomes, expenses: expenses, title: title, currency: currency}
}

const (
	summarySheet = "Summary"
	incomeSheet  = "Incomes"
	expenseSheet = "Expenses"
)

// ExportExcel 导出公开收支报表
// @Summary 导出收支报表
// @Description 导出汇总、收入、支出三个工作表的 Excel 文件
// @Tags 导出
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file "Excel文件"
// @Failure 500 {object} ErrorResponse "生成失败"
// @Router /api/export/excel [get]
func (h *ExportHandler) ExportExcel(c *gin.Context) {
	ctx := c.Request.Context()

	stats, err := h.stats.ComputeStats(ctx)
	if err != nil {
		StoreError(c, err, "Failed to compute stats")
		return
	}
	incomes, err := h.incomes.ListIncomes(ctx)
	if err != nil {
		StoreError(c, err, "Failed to list incomes")
		return
	}
	expenses, err := h.expenses.ListExpenses(ctx)
	if err != nil {
		StoreError(c, err, "Failed to list expenses")
		return
	}

	f, err := h.buildReport(stats, incomes, expenses)
	if err != nil {
		log.Printf("生成 Excel 失败: %v", err)
		InternalError(c, "Failed to generate report")
		return
	}
	defer f.Close()

	// 设置响应头
	filename := fmt.Sprintf("donations_%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Status(http.StatusOK)

	// 写入响应
	if err := f.Write(c.Writer); err != nil {
		log.Printf("写入 Excel 失败: %v", err)
	}
}

// reportStyles 报表样式
type reportStyles struct {
	header  int
	data    int
	summary int
}

func newReportStyles(f *excelize.File) (reportStyles, error) {
	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
	}
	var s reportStyles
	var err error

	// 表头样式
	if s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    border,
	}); err != nil {
		return s, err
	}
	// 数据样式
	if s.data, err = f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    border,
	}); err != nil {
		return s, err
	}
	// 汇总行样式
	s.summary, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"FFC000"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    border,
	})
	return s, err
}

// buildReport 生成报表：汇总、收入明细、支出明细
func (h *ExportHandler) buildReport(stats *models.Stats, incomes []models.Income, expenses []models.Expense) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		f.Close()
		return nil, err
	}
	if _, err := f.NewSheet(incomeSheet); err != nil {
		f.Close()
		return nil, err
	}
	if _, err := f.NewSheet(expenseSheet); err != nil {
		f.Close()
		return nil, err
	}

	styles, err := newReportStyles(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	h.writeSummary(f, styles, stats)

	incomeRows := make([][]interface{}, 0, len(incomes))
	for _, in := range incomes {
		incomeRows = append(incomeRows, []interface{}{
			in.ReceiptNumber, in.Date, in.ProjectName, in.DisplayDonor(), h.money(in.Amount), in.Notes,
		})
	}
	writeTable(f, styles, incomeSheet,
		[]string{"Receipt", "Date", "Project", "Donor", "Amount", "Notes"},
		[]float64{14, 12, 24, 20, 16, 30},
		incomeRows)

	expenseRows := make([][]interface{}, 0, len(expenses))
	for _, e := range expenses {
		expenseRows = append(expenseRows, []interface{}{
			e.ID, e.Date, e.ProjectName, e.Description, h.money(e.Amount),
		})
	}
	writeTable(f, styles, expenseSheet,
		[]string{"ID", "Date", "Project", "Description", "Amount"},
		[]float64{8, 12, 24, 36, 16},
		expenseRows)

	f.SetActiveSheet(0)
	return f, nil
}

func (h *ExportHandler) writeSummary(f *excelize.File, styles reportStyles, stats *models.Stats) {
	sheet := summarySheet
	f.SetColWidth(sheet, "A", "A", 28)
	f.SetColWidth(sheet, "B", "D", 18)

	f.SetCellValue(sheet, "A1", h.title)
	f.MergeCell(sheet, "A1", "D1")
	f.SetCellStyle(sheet, "A1", "D1", styles.header)

	totals := [][2]interface{}{
		{"Total Income", h.money(stats.TotalIncome)},
		{"Total Expense", h.money(stats.TotalExpense)},
		{"Balance", h.money(stats.Balance)},
	}
	for i, kv := range totals {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), kv[0])
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), kv[1])
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), styles.summary)
	}

	// 各项目收支
	headerRow := 6
	for i, header := range []string{"Project", "Income", "Expense", "Net"} {
		cell := fmt.Sprintf("%c%d", 'A'+i, headerRow)
		f.SetCellValue(sheet, cell, header)
		f.SetCellStyle(sheet, cell, cell, styles.header)
	}
	for i, p := range stats.Projects {
		row := headerRow + 1 + i
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), p.Name)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), h.money(p.Income))
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), h.money(p.Expense))
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), h.money(p.Net()))
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("D%d", row), styles.data)
	}
}

// writeTable 写入表头、数据和合计行
func writeTable(f *excelize.File, styles reportStyles, sheet string, headers []string, widths []float64, rows [][]interface{}) {
	for i, w := range widths {
		col := string(rune('A' + i))
		f.SetColWidth(sheet, col, col, w)
	}
	last := string(rune('A' + len(headers) - 1))

	// 写入表头
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheet, cell, header)
		f.SetCellStyle(sheet, cell, cell, styles.header)
	}

	// 写入数据
	for i, values := range rows {
		row := i + 2
		for j, v := range values {
			f.SetCellValue(sheet, fmt.Sprintf("%c%d", 'A'+j, row), v)
		}
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("%s%d", last, row), styles.data)
	}

	// 添加汇总行
	summaryRow := len(rows) + 2
	f.SetCellValue(sheet, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("%d records", len(rows)))
	f.MergeCell(sheet, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("%s%d", last, summaryRow))
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("%s%d", last, summaryRow), styles.summary)
}

func (h *ExportHandler) money(d decimal.Decimal) string {
	return models.FormatMoney(d, h.currency)
}
