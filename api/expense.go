package api

import (
	"net/http"
	"strings"

	"donation/models"
	"donation/store"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ExpenseHandler 项目支出
type ExpenseHandler struct {
	store store.ExpenseStore
}

func NewExpenseHandler(s store.ExpenseStore) *ExpenseHandler {
	return &ExpenseHandler{store: s}
}

type ExpenseRequest struct {
	Amount      *decimal.Decimal `json:"amount" binding:"required" swaggertype:"number" example:"200"`
	ProjectID   uint             `json:"project_id" binding:"required" example:"1"`
	Description string           `json:"description" binding:"required,max=255" example:"Supplies"`
	Date        string           `json:"date" binding:"required" example:"2024-01-02"`
}

func (r ExpenseRequest) toModel() *models.Expense {
	return &models.Expense{
		Amount:      *r.Amount,
		ProjectID:   r.ProjectID,
		Description: strings.TrimSpace(r.Description),
		Date:        r.Date,
	}
}

// List 获取支出列表
// @Summary 获取支出列表
// @Description 全部支出，带项目名称，按日期倒序
// @Tags 支出
// @Produce json
// @Success 200 {array} models.Expense "获取成功"
// @Failure 500 {object} ErrorResponse "查询失败"
// @Router /api/expenses [get]
func (h *ExpenseHandler) List(c *gin.Context) {
	list, err := h.store.ListExpenses(c.Request.Context())
	if err != nil {
		StoreError(c, err, "Failed to list expenses")
		return
	}
	c.JSON(http.StatusOK, list)
}

// Create 登记支出
// @Summary 登记支出
// @Tags 支出
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ExpenseRequest true "支出信息"
// @Success 200 {object} models.Expense "创建成功"
// @Failure 400 {object} ErrorResponse "参数错误或项目不存在"
// @Failure 401 {object} ErrorResponse "未授权"
// @Router /api/expenses [post]
func (h *ExpenseHandler) Create(c *gin.Context) {
	e, ok := bindExpense(c)
	if !ok {
		return
	}
	created, err := h.store.CreateExpense(c.Request.Context(), e)
	if err != nil {
		StoreError(c, err, "Failed to create expense")
		return
	}
	c.JSON(http.StatusOK, created)
}

// Update 更新支出
// @Summary 更新支出
// @Tags 支出
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "支出ID"
// @Param request body ExpenseRequest true "支出信息"
// @Success 200 {object} models.Expense "更新成功"
// @Failure 400 {object} ErrorResponse "参数错误或项目不存在"
// @Failure 401 {object} ErrorResponse "未授权"
// @Failure 404 {object} ErrorResponse "记录不存在"
// @Router /api/expenses/{id} [put]
func (h *ExpenseHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	e, ok := bindExpense(c)
	if !ok {
		return
	}
	updated, err := h.store.UpdateExpense(c.Request.Context(), id, e)
	if err != nil {
		StoreError(c, err, "Failed to update expense")
		return
	}
	c.JSON(http.StatusOK, updated)
}

func bindExpense(c *gin.Context) (*models.Expense, bool) {
	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return nil, false
	}
	e := req.toModel()
	if e.Description == "" {
		BadRequest(c, "description is required")
		return nil, false
	}
	if !validAmount(c, e.Amount) || !validDate(c, e.Date) {
		return nil, false
	}
	return e, true
}
