package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"brewbuy/internal/core/auth"
	"brewbuy/internal/core/config"
	mdw "brewbuy/internal/transport/http/middleware"
)

// NewAPIEngine 用户端：/api 下的认证、商品、订单、个人资料
func NewAPIEngine(l *zap.Logger, cfg *config.Config, jwter *auth.JWTer, users mdw.UserLookup, reg *Registry) *gin.Engine {
	r := newEngine(l, cfg.App.CORSOrigins, cfg.Limits)

	api := r.Group("/api")
	reg.MountAllAPI(Groups{
		Public: api,
		User:   api.Group("", mdw.AuthJWT(jwter, auth.RoleUser), mdw.ResolveUser(users)),
		Admin:  api.Group("", mdw.AuthJWT(jwter, auth.RoleAdmin)),
	})
	return r
}
