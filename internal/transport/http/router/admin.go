package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"brewbuy/internal/core/auth"
	"brewbuy/internal/core/config"
	mdw "brewbuy/internal/transport/http/middleware"
)

func NewAdminEngine(l *zap.Logger, cfg *config.Config, jwter *auth.JWTer, reg *Registry) *gin.Engine {
	r := newEngine(l, cfg.App.CORSOrigins, cfg.Limits)

	// 管理端 v1（统一要求 admin 角色）
	admin := r.Group("/admin/v1")
	admin.Use(mdw.AuthJWT(jwter, auth.RoleAdmin))
	reg.MountAllAdmin(admin)
	return r
}
