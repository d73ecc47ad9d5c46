package ez

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// gin.Context 上的身份字段，由 AuthJWT / ResolveUser 写入
const (
	KeyUsername = "username"
	KeyRole     = "role"
	KeyUserID   = "userId"
)

func Username(c *gin.Context) string { return c.GetString(KeyUsername) }
func Role(c *gin.Context) string     { return c.GetString(KeyRole) }

// UserID 只有已解析到普通用户时才为 true
func UserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(KeyUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id != 0
}

// ParamID 解析路径上的数字 id
func ParamID(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	if raw == "" {
		return 0, BadRequest("missing " + name)
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		return 0, BadRequest("invalid " + name)
	}
	return uint(n), nil
}
