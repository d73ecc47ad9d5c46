package middleware

import (
	"context"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"brewbuy/internal/core/auth"
	"brewbuy/internal/domain"
	"brewbuy/internal/transport/http/ez"
	resp "brewbuy/internal/transport/http/response"
)

const keyClaimUID = "claimUid"

// AuthJWT 校验 Bearer token；requireRole 为空则任意角色均可
func AuthJWT(j *auth.JWTer, requireRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			resp.Abort(c, resp.CodeUnauthorized, "missing token")
			return
		}
		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			resp.Abort(c, resp.CodeUnauthorized, "invalid token")
			return
		}
		if requireRole != "" && claims.Role != requireRole {
			resp.Abort(c, resp.CodeForbidden, "forbidden")
			return
		}
		c.Set(ez.KeyUsername, claims.Subject)
		c.Set(ez.KeyRole, claims.Role)
		c.Set(keyClaimUID, claims.UID)
		c.Next()
	}
}

type UserLookup interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}

// ResolveUser 把 token 主体解析为普通用户 id；用户已被删除或 id 不符均视为未登录
func ResolveUser(users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ez.Role(c) != auth.RoleUser {
			resp.Abort(c, resp.CodeUnauthorized, "user token required")
			return
		}
		u, err := users.FindByUsername(c.Request.Context(), ez.Username(c))
		if err != nil {
			resp.Abort(c, resp.CodeServerError, "internal error")
			return
		}
		if u == nil || strconv.FormatUint(uint64(u.ID), 10) != c.GetString(keyClaimUID) {
			resp.Abort(c, resp.CodeUnauthorized, "unknown user")
			return
		}
		c.Set(ez.KeyUserID, u.ID)
		c.Next()
	}
}
