package api

import (
	"context"
	"errors"
	"log"
	"net/http"

	"donation/auth"
	"donation/config"

	"github.com/gin-gonic/gin"
)

// LoginService 管理员登录
type LoginService interface {
	Login(ctx context.Context, username, password string) (string, error)
}

// AuthHandler 认证处理器
type AuthHandler struct {
	gate LoginService
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(gate LoginService) *AuthHandler {
	return &AuthHandler{gate: gate}
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"admin"`
	Password string `json:"password" binding:"required" example:"admin123"`
}

// Login 管理员登录
// @Summary 管理员登录
// @Description 校验用户名密码，成功返回 24 小时有效的 Bearer 凭证
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body LoginRequest true "登录信息"
// @Success 200 {object} TokenResponse "登录成功"
// @Failure 400 {object} ErrorResponse "请求参数错误"
// @Failure 401 {object} ErrorResponse "用户名或密码错误"
// @Failure 429 {object} ErrorResponse "登录过于频繁"
// @Router /api/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	token, err := h.gate.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			Unauthorized(c, "Invalid credentials")
			return
		}
		log.Printf("管理员登录失败: %v", err)
		InternalError(c, config.SafeErrorMessage(err, "Login failed"))
		return
	}

	c.JSON(http.StatusOK, TokenResponse{Token: token})
}
