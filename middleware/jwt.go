package middleware

import (
	"errors"
	"net/http"
	"strings"

	"donation/auth"

	"github.com/gin-gonic/gin"
)

const (
	adminIDKey     = "adminID"
	adminClaimsKey = "adminClaims"
)

// Authorizer 校验凭证
type Authorizer interface {
	Authorize(token string) (*auth.Claims, error)
}

// JWTAuth 管理接口鉴权中间件，要求 Authorization: Bearer <token>
func JWTAuth(a Authorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		claims, err := a.Authorize(token)
		if err != nil {
			msg := "Unauthorized"
			if errors.Is(err, auth.ErrInvalidToken) {
				msg = "Invalid token"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}
		c.Set(adminIDKey, claims.AdminID)
		c.Set(adminClaimsKey, claims)
		c.Next()
	}
}

// bearerToken 取出 Bearer 后的凭证，格式不符时返回空串
func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// GetCurrentAdminID 获取当前管理员 ID，未登录返回 0
func GetCurrentAdminID(c *gin.Context) uint {
	if v, ok := c.Get(adminIDKey); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

// GetCurrentAdmin 获取当前凭证内容
func GetCurrentAdmin(c *gin.Context) *auth.Claims {
	if v, ok := c.Get(adminClaimsKey); ok {
		if claims, ok := v.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}
