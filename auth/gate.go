package auth

import (
	"context"
	"errors"
	"fmt"

	"donation/models"
	"donation/store"
)

var (
	// ErrInvalidCredentials 用户名或密码错误
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthorized 缺少凭证
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidToken 凭证格式错误、签名不符或已过期，同时匹配 ErrUnauthorized
	ErrInvalidToken = fmt.Errorf("%w: invalid token", ErrUnauthorized)
)

// AdminFinder 按用户名查找管理员
type AdminFinder interface {
	FindAdminByUsername(ctx context.Context, username string) (*models.Admin, error)
}

// Gate 管理员登录与鉴权
type Gate struct {
	admins AdminFinder
	tokens *TokenManager
}

// NewGate 创建鉴权入口
func NewGate(admins AdminFinder, tokens *TokenManager) *Gate {
	return &Gate{admins: admins, tokens: tokens}
}

// Login 校验用户名密码，成功后签发凭证
func (g *Gate) Login(ctx context.Context, username, password string) (string, error) {
	admin, err := g.admins.FindAdminByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("find admin: %w", err)
	}
	if !CheckPassword(admin.Password, password) {
		return "", ErrInvalidCredentials
	}
	return g.tokens.Generate(admin.ID, admin.Username)
}

// Authorize 校验凭证，任何有效凭证均可执行所有写操作
func (g *Gate) Authorize(token string) (*Claims, error) {
	return g.tokens.Parse(token)
}
