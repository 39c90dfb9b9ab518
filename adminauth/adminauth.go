package adminauth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strconv"
	"strings"

	"relieffund/config"

	"github.com/gin-gonic/gin"
)

// 后台 Cookie 使用"值.签名"格式，签名为 HMAC-SHA256(值, jwt.secret)，
// 防止客户端篡改 user_id / role 越权。

var (
	// ErrInvalidCookie Cookie 缺失、格式错误或签名不匹配
	ErrInvalidCookie = errors.New("cookie 无效")
)

func signingKey() []byte {
	cfg := config.GlobalConfig
	if cfg == nil {
		return nil
	}
	return []byte(cfg.JWT.Secret)
}

// SignCookieValue 对 Cookie 值签名，返回 "值.签名" 格式
func SignCookieValue(value string) string {
	mac := hmac.New(sha256.New, signingKey())
	mac.Write([]byte(value))
	return value + "." + hex.EncodeToString(mac.Sum(nil))
}

// VerifyCookieValue 校验签名并返回原始值
func VerifyCookieValue(signed string) (string, error) {
	idx := strings.LastIndex(signed, ".")
	if idx <= 0 || idx == len(signed)-1 {
		return "", ErrInvalidCookie
	}
	value, sig := signed[:idx], signed[idx+1:]

	mac := hmac.New(sha256.New, signingKey())
	mac.Write([]byte(value))
	expected := hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(sig), []byte(expected)) {
		return "", ErrInvalidCookie
	}
	return value, nil
}

// verifiedCookieUint 读取指定 Cookie，校验签名并解析为 uint
func verifiedCookieUint(c *gin.Context, name string) (uint, error) {
	signed, err := c.Cookie(name)
	if err != nil || signed == "" {
		return 0, ErrInvalidCookie
	}
	value, err := VerifyCookieValue(signed)
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return 0, ErrInvalidCookie
	}
	return uint(id), nil
}

// GetVerifiedAdminUserID 验证 admin_user_id cookie 签名并返回用户 ID
func GetVerifiedAdminUserID(c *gin.Context) (uint, error) {
	return verifiedCookieUint(c, "admin_user_id")
}
