package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"brewbuy/internal/domain"
	"brewbuy/internal/service"
	"brewbuy/internal/transport/http/ez"
	"brewbuy/internal/transport/http/router"
)

// UserHandler 用户端 /api/users/me；后台 /admin/v1/users
type UserHandler struct {
	svc *service.UserService
	log *zap.Logger
}

func NewUserHandler(svc *service.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{svc: svc, log: log}
}

func (h *UserHandler) MountAPI(g router.Groups) {
	e := ez.New(g.User.Group("/users"), h.log)

	ez.Register(e, ez.Action[struct{}, *domain.User]{
		Method: http.MethodGet,
		Path:   "/me",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.User, error) {
			uid, err := currentUser(c)
			if err != nil {
				return nil, err
			}
			return h.svc.Get(c.Request.Context(), uid)
		},
	})

	ez.Register(e, ez.Action[service.ProfileInput, *domain.User]{
		Method: http.MethodPut,
		Path:   "/me",
		Binder: ez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *service.ProfileInput) (*domain.User, error) {
			uid, err := currentUser(c)
			if err != nil {
				return nil, err
			}
			return h.svc.UpdateProfile(c.Request.Context(), uid, *in)
		},
	})
}

func (h *UserHandler) MountAdmin(admin *gin.RouterGroup) {
	e := ez.New(admin.Group("/users"), h.log)

	type listQ struct {
		Offset int `form:"offset,default=0"`
		Limit  int `form:"limit,default=20"`
	}
	type listOut struct {
		Total int64         `json:"total"`
		Items []domain.User `json:"items"`
	}
	ez.Register(e, ez.Action[listQ, listOut]{
		Method: http.MethodGet,
		Path:   "",
		Binder: ez.BindQuery,
		Handler: func(c *gin.Context, in *listQ) (listOut, error) {
			us, total, err := h.svc.List(c.Request.Context(), in.Offset, in.Limit)
			if err != nil {
				return listOut{}, err
			}
			if us == nil {
				us = []domain.User{}
			}
			return listOut{Total: total, Items: us}, nil
		},
	})

	ez.Register(e, ez.Action[struct{}, *domain.User]{
		Method: http.MethodGet,
		Path:   "/:id",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.User, error) {
			id, err := ez.ParamID(c, "id")
			if err != nil {
				return nil, err
			}
			return h.svc.Get(c.Request.Context(), id)
		},
	})

	ez.Register(e, ez.Action[struct{}, struct{}]{
		Method: http.MethodDelete,
		Path:   "/:id",
		Binder: ez.BindNone,
		Status: http.StatusNoContent,
		Handler: func(c *gin.Context, _ *struct{}) (struct{}, error) {
			id, err := ez.ParamID(c, "id")
			if err != nil {
				return struct{}{}, err
			}
			return struct{}{}, h.svc.Delete(c.Request.Context(), id)
		},
	})
}
