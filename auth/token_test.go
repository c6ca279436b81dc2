package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_GenerateAndParse(t *testing.T) {
	m := NewTokenManager("test-jwt-secret-key", time.Hour)

	token, err := m.Generate(1, "admin")
	require.NoError(t, err)
	assert.Greater(t, len(token), 20)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, uint(1), claims.AdminID)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "1", claims.Subject)
}

func TestTokenManager_DefaultTTL(t *testing.T) {
	m := NewTokenManager("s", 0)
	assert.Equal(t, 24*time.Hour, m.ttl)
}

func TestTokenManager_Expired(t *testing.T) {
	m := NewTokenManager("test-jwt-secret-key", 24*time.Hour)
	issued := time.Now()
	m.now = func() time.Time { return issued }

	token, err := m.Generate(7, "admin")
	require.NoError(t, err)

	// 有效期内
	m.now = func() time.Time { return issued.Add(23 * time.Hour) }
	_, err = m.Parse(token)
	require.NoError(t, err)

	// 超过 24 小时
	m.now = func() time.Time { return issued.Add(25 * time.Hour) }
	_, err = m.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestTokenManager_Rejects(t *testing.T) {
	m := NewTokenManager("test-jwt-secret-key", time.Hour)

	// 空字符串
	_, err := m.Parse("")
	assert.ErrorIs(t, err, ErrUnauthorized)

	// 格式错误
	_, err = m.Parse("not.a.valid.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = m.Parse("eyJhbGciOiJmb29iIn0.xxxx.yyyy")
	assert.ErrorIs(t, err, ErrInvalidToken)

	// 其他密钥签发
	other := NewTokenManager("another-secret", time.Hour)
	foreign, err := other.Generate(1, "admin")
	require.NoError(t, err)
	_, err = m.Parse(foreign)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// 未签名 (alg=none)
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		AdminID:  1,
		Username: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	none, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = m.Parse(none)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// 缺少过期时间
	noExp := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{AdminID: 1, Username: "admin"})
	s, err := noExp.SignedString([]byte("test-jwt-secret-key"))
	require.NoError(t, err)
	_, err = m.Parse(s)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
