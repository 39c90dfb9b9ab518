package adminauth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"relieffund/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initTestConfig() {
	config.GlobalConfig = &config.Config{
		JWT: config.JWTConfig{Secret: "test-cookie-secret"},
	}
}

func TestSignAndVerifyCookieValue(t *testing.T) {
	initTestConfig()
	defer func() { config.GlobalConfig = nil }()

	signed := SignCookieValue("42")
	assert.Contains(t, signed, ".")

	value, err := VerifyCookieValue(signed)
	require.NoError(t, err)
	assert.Equal(t, "42", value)
}

func TestVerifyCookieValue_Tampered(t *testing.T) {
	initTestConfig()
	defer func() { config.GlobalConfig = nil }()

	signed := SignCookieValue("42")

	// 篡改值部分
	tampered := "99" + signed[2:]
	_, err := VerifyCookieValue(tampered)
	assert.ErrorIs(t, err, ErrInvalidCookie)

	// 无签名段
	_, err = VerifyCookieValue("42")
	assert.ErrorIs(t, err, ErrInvalidCookie)

	// 空签名
	_, err = VerifyCookieValue("42.")
	assert.ErrorIs(t, err, ErrInvalidCookie)
}

func TestVerifyCookieValue_DifferentSecret(t *testing.T) {
	initTestConfig()
	signed := SignCookieValue("42")

	// 换密钥后签名失效
	config.GlobalConfig = &config.Config{JWT: config.JWTConfig{Secret: "another-secret"}}
	defer func() { config.GlobalConfig = nil }()

	_, err := VerifyCookieValue(signed)
	assert.ErrorIs(t, err, ErrInvalidCookie)
}

func TestGetVerifiedAdminUserID(t *testing.T) {
	initTestConfig()
	defer func() { config.GlobalConfig = nil }()

	gin.SetMode(gin.TestMode)

	newCtx := func(cookie string) *gin.Context {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", "/", nil)
		if cookie != "" {
			c.Request.AddCookie(&http.Cookie{Name: "admin_user_id", Value: cookie})
		}
		return c
	}

	// 无 Cookie
	_, err := GetVerifiedAdminUserID(newCtx(""))
	assert.ErrorIs(t, err, ErrInvalidCookie)

	// 未签名的裸值（模拟旧客户端或手工伪造）
	_, err = GetVerifiedAdminUserID(newCtx("42"))
	assert.ErrorIs(t, err, ErrInvalidCookie)

	// 合法签名
	id, err := GetVerifiedAdminUserID(newCtx(SignCookieValue("42")))
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)

	// 签名合法但不是数字
	_, err = GetVerifiedAdminUserID(newCtx(SignCookieValue("abc")))
	assert.ErrorIs(t, err, ErrInvalidCookie)
}
