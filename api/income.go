package api

import (
	"log"
	"net/http"
	"strings"

	"donation/models"
	"donation/store"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// IncomeNotifier 新增捐赠通知
type IncomeNotifier interface {
	NotifyIncome(in *models.Income) error
}

// IncomeHandler 捐赠收入
type IncomeHandler struct {
	store    store.IncomeStore
	notifier IncomeNotifier
}

// NewIncomeHandler 创建收入处理器，notifier 可为 nil
func NewIncomeHandler(s store.IncomeStore, notifier IncomeNotifier) *IncomeHandler {
	return &IncomeHandler{store: s, notifier: notifier}
}

type IncomeRequest struct {
	ReceiptNumber string           `json:"receipt_number" binding:"required,max=64" example:"R-001"`
	Amount        *decimal.Decimal `json:"amount" binding:"required" swaggertype:"number" example:"500"`
	ProjectID     uint             `json:"project_id" binding:"required" example:"1"`
	DonorName     string           `json:"donor_name" binding:"max=100" example:"Alice"`
	Date          string           `json:"date" binding:"required" example:"2024-01-01"`
	Notes         string           `json:"notes"`
}

func (r IncomeRequest) toModel() *models.Income {
	return &models.Income{
		ReceiptNumber: strings.TrimSpace(r.ReceiptNumber),
		Amount:        *r.Amount,
		ProjectID:     r.ProjectID,
		DonorName:     strings.TrimSpace(r.DonorName),
		Date:          r.Date,
		Notes:         r.Notes,
	}
}

// List 获取收入列表
// @Summary 获取收入列表
// @Description 全部收入，带项目名称，按日期倒序
// @Tags 收入
// @Produce json
// @Success 200 {array} models.Income "获取成功"
// @Failure 500 {object} ErrorResponse "查询失败"
// @Router /api/incomes [get]
func (h *IncomeHandler) List(c *gin.Context) {
	list, err := h.store.ListIncomes(c.Request.Context())
	if err != nil {
		StoreError(c, err, "Failed to list incomes")
		return
	}
	c.JSON(http.StatusOK, list)
}

// Create 登记收入
// @Summary 登记收入
// @Description 收据编号全局唯一，重复时返回 400
// @Tags 收入
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body IncomeRequest true "收入信息"
// @Success 200 {object} models.Income "创建成功"
// @Failure 400 {object} ErrorResponse "参数错误、收据编号重复或项目不存在"
// @Failure 401 {object} ErrorResponse "未授权"
// @Router /api/incomes [post]
func (h *IncomeHandler) Create(c *gin.Context) {
	in, ok := bindIncome(c)
	if !ok {
		return
	}
	created, err := h.store.CreateIncome(c.Request.Context(), in)
	if err != nil {
		StoreError(c, err, "Failed to create income")
		return
	}

	// 通知失败不影响登记结果
	if h.notifier != nil {
		if err := h.notifier.NotifyIncome(created); err != nil {
			log.Printf("发送捐赠通知失败 (%s): %v", created.ReceiptNumber, err)
		}
	}

	c.JSON(http.StatusOK, created)
}

// Update 更新收入
// @Summary 更新收入
// @Tags 收入
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "收入ID"
// @Param request body IncomeRequest true "收入信息"
// @Success 200 {object} models.Income "更新成功"
// @Failure 400 {object} ErrorResponse "参数错误、收据编号重复或项目不存在"
// @Failure 401 {object} ErrorResponse "未授权"
// @Failure 404 {object} ErrorResponse "记录不存在"
// @Router /api/incomes/{id} [put]
func (h *IncomeHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	in, ok := bindIncome(c)
	if !ok {
		return
	}
	updated, err := h.store.UpdateIncome(c.Request.Context(), id, in)
	if err != nil {
		StoreError(c, err, "Failed to update income")
		return
	}
	c.JSON(http.StatusOK, updated)
}

func bindIncome(c *gin.Context) (*models.Income, bool) {
	var req IncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return nil, false
	}
	in := req.toModel()
	if in.ReceiptNumber == "" {
		BadRequest(c, "receipt_number is required")
		return nil, false
	}
	if !validAmount(c, in.Amount) || !validDate(c, in.Date) {
		return nil, false
	}
	return in, true
}
