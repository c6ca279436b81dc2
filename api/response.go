package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"donation/config"
	"donation/models"
	"donation/store"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ErrorResponse 错误响应结构
type ErrorResponse struct {
	Error string `json:"error" example:"Unauthorized"`
}

// TokenResponse 登录成功响应
type TokenResponse struct {
	Token string `json:"token"`
}

// Error 错误响应
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, ErrorResponse{Error: message})
}

// BadRequest 400 错误响应
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// Unauthorized 401 错误响应
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message)
}

// InternalError 500 错误响应
func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}

// NotFound 404 错误响应
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// StoreError 按存储层错误类型转换为 HTTP 状态
func StoreError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		NotFound(c, "Record not found")
	case errors.Is(err, store.ErrConstraintViolation):
		BadRequest(c, config.SafeErrorMessage(err, "Duplicate value or unknown reference"))
	case errors.Is(err, store.ErrInvalidValue):
		BadRequest(c, config.SafeErrorMessage(err, "Value out of range or too long"))
	default:
		log.Printf("%s: %v", fallback, err)
		InternalError(c, config.SafeErrorMessage(err, fallback))
	}
}

// parseID 解析路径中的 id
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		BadRequest(c, "Invalid id")
		return 0, false
	}
	return uint(id), true
}

// validAmount 金额必须非负、小于 MaxAmount 且最多两位小数
func validAmount(c *gin.Context, amount decimal.Decimal) bool {
	if amount.IsNegative() {
		BadRequest(c, "amount must be non-negative")
		return false
	}
	if amount.GreaterThanOrEqual(models.MaxAmount) {
		BadRequest(c, "amount must be less than "+models.MaxAmount.String())
		return false
	}
	if !amount.Equal(amount.Round(2)) {
		BadRequest(c, "amount must have at most 2 decimal places")
		return false
	}
	return true
}

// validDate 日期必须为 YYYY-MM-DD
func validDate(c *gin.Context, date string) bool {
	if !models.ValidDate(date) {
		BadRequest(c, "date must be in YYYY-MM-DD format")
		return false
	}
	return true
}

// bindError 参数绑定失败
func bindError(c *gin.Context, err error) {
	BadRequest(c, "Invalid request: "+err.Error())
}
