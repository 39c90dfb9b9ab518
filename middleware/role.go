package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireRole 角色校验中间件
// 需在 JWTAuth 之后使用。角色集合是固定的（admin/hq/donor/beneficiary/vendor），
// 不在允许列表内的角色返回 403。
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		role := GetCurrentUserRole(c)
		if role == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"code": 401, "message": "请先登录"})
			c.Abort()
			return
		}
		if !allowed[role] {
			c.JSON(http.StatusForbidden, gin.H{"code": 403, "message": "权限不足"})
			c.Abort()
			return
		}
		c.Next()
	}
}
