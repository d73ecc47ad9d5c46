package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"brewbuy/internal/service"
	"brewbuy/internal/transport/http/ez"
)

// AdminUserHandler 管理员账号维护（仅后台服务挂载）
type AdminUserHandler struct {
	svc *service.AdminUserService
	log *zap.Logger
}

func NewAdminUserHandler(svc *service.AdminUserService, log *zap.Logger) *AdminUserHandler {
	return &AdminUserHandler{svc: svc, log: log}
}

func (h *AdminUserHandler) MountAdmin(admin *gin.RouterGroup) {
	e := ez.New(admin.Group("/admin-users"), h.log)

	ez.Register(e, ez.Action[struct{}, []service.AdminUserView]{
		Method: http.MethodGet,
		Path:   "",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]service.AdminUserView, error) {
			return h.svc.ListAll(c.Request.Context())
		},
	})

	type addIn struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	ez.Register(e, ez.Action[addIn, messageOut]{
		Method: http.MethodPost,
		Path:   "",
		Binder: ez.BindJSON,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *addIn) (messageOut, error) {
			if err := h.svc.Add(c.Request.Context(), in.Username, in.Password); err != nil {
				return messageOut{}, err
			}
			return messageOut{Message: "Admin user added"}, nil
		},
	})

	type passwordIn struct {
		Password string `json:"password"`
	}
	ez.Register(e, ez.Action[passwordIn, messageOut]{
		Method: http.MethodPut,
		Path:   "/:username",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *passwordIn) (messageOut, error) {
			if err := h.svc.UpdatePassword(c.Request.Context(), c.Param("username"), in.Password); err != nil {
				return messageOut{}, err
			}
			return messageOut{Message: "Password updated"}, nil
		},
	})

	ez.Register(e, ez.Action[struct{}, messageOut]{
		Method: http.MethodDelete,
		Path:   "/:username",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (messageOut, error) {
			if err := h.svc.Delete(c.Request.Context(), c.Param("username")); err != nil {
				return messageOut{}, err
			}
			return messageOut{Message: "Admin user deleted"}, nil
		},
	})

	type existsOut struct {
		Exists bool `json:"exists"`
	}
	ez.Register(e, ez.Action[struct{}, existsOut]{
		Method: http.MethodGet,
		Path:   "/:username/exists",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (existsOut, error) {
			ok, err := h.svc.Exists(c.Request.Context(), c.Param("username"))
			return existsOut{Exists: ok}, err
		},
	})
}
