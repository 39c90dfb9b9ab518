package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestLoginRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.POST("/login", LoginRateLimit(3, time.Minute), func(c *gin.Context) {
		c.String(200, "ok")
	})

	// 前 3 次放行
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		router.ServeHTTP(w, req)
		assert.Equal(t, 200, w.Code, "第 %d 次请求应放行", i+1)
	}

	// 第 4 次被限流
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/login", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "过于频繁")

	// 不同 IP 互不影响
	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest("POST", "/login", nil)
	req2.RemoteAddr = "10.0.0.2:1234"
	router.ServeHTTP(w2, req2)
	assert.Equal(t, 200, w2.Code)
}

func TestLoginRateLimit_WindowExpiry(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.POST("/login", LoginRateLimit(1, 50*time.Millisecond), func(c *gin.Context) {
		c.String(200, "ok")
	})

	do := func() int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/login", nil)
		req.RemoteAddr = "10.0.0.3:1234"
		router.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, 200, do())
	assert.Equal(t, http.StatusTooManyRequests, do())

	// 窗口过期后恢复
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, 200, do())
}
