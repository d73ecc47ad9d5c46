package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"brewbuy/internal/core/cache"
	"brewbuy/internal/domain"
	"brewbuy/internal/service"
	"brewbuy/internal/transport/http/ez"
	"brewbuy/internal/transport/http/router"
)

type OrderHandler struct {
	svc *service.OrderService
	log *zap.Logger
}

func NewOrderHandler(svc *service.OrderService, log *zap.Logger) *OrderHandler {
	return &OrderHandler{svc: svc, log: log}
}

// currentUser 分组已挂 ResolveUser，这里缺失说明路由配置错误
func currentUser(c *gin.Context) (uint, error) {
	uid, ok := ez.UserID(c)
	if !ok {
		return 0, ez.Unauthorized("unauthorized")
	}
	return uid, nil
}

// orderID 非法 id 按不存在处理，与无权访问返回同一状态
func orderID(c *gin.Context) (uint, error) {
	id, err := ez.ParamID(c, "id")
	if err != nil {
		return 0, domain.ErrNotFoundOrForbidden
	}
	return id, nil
}

func (h *OrderHandler) MountAPI(g router.Groups) {
	e := ez.New(g.User.Group("/orders"), h.log)

	type createIn struct {
		Items []service.OrderItemInput `json:"items"`
	}
	ez.Register(e, ez.Action[createIn, orderOut]{
		Method: http.MethodPost,
		Path:   "",
		Binder: ez.BindJSON,
		Auth:   true,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *createIn) (orderOut, error) {
			uid, err := currentUser(c)
			if err != nil {
				return orderOut{}, err
			}
			o, err := h.svc.Create(c.Request.Context(), uid, in.Items, c.GetHeader(cache.IdempotencyHeader))
			if err != nil {
				return orderOut{}, err
			}
			return toOrder(o), nil
		},
	})

	ez.Register(e, ez.Action[struct{}, []orderOut]{
		Method: http.MethodGet,
		Path:   "/user/me",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) ([]orderOut, error) {
			uid, err := currentUser(c)
			if err != nil {
				return nil, err
			}
			list, err := h.svc.ListForUser(c.Request.Context(), uid)
			if err != nil {
				return nil, err
			}
			out := make([]orderOut, 0, len(list))
			for i := range list {
				out = append(out, toOrder(&list[i]))
			}
			return out, nil
		},
	})

	ez.Register(e, ez.Action[struct{}, orderOut]{
		Method: http.MethodGet,
		Path:   "/:id",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (orderOut, error) {
			uid, err := currentUser(c)
			if err != nil {
				return orderOut{}, err
			}
			id, err := orderID(c)
			if err != nil {
				return orderOut{}, err
			}
			o, err := h.svc.Get(c.Request.Context(), id, uid)
			if err != nil {
				return orderOut{}, err
			}
			return toOrder(o), nil
		},
	})

	type statusQ struct {
		Status string `form:"status"`
	}
	ez.Register(e, ez.Action[statusQ, orderOut]{
		Method: http.MethodPut,
		Path:   "/:id/status",
		Binder: ez.BindQuery,
		Auth:   true,
		Handler: func(c *gin.Context, in *statusQ) (orderOut, error) {
			uid, err := currentUser(c)
			if err != nil {
				return orderOut{}, err
			}
			id, err := orderID(c)
			if err != nil {
				return orderOut{}, err
			}
			o, err := h.svc.UpdateStatus(c.Request.Context(), id, uid, in.Status)
			if err != nil {
				return orderOut{}, err
			}
			return toOrder(o), nil
		},
	})

	ez.Register(e, ez.Action[struct{}, struct{}]{
		Method: http.MethodDelete,
		Path:   "/:id",
		Binder: ez.BindNone,
		Auth:   true,
		Status: http.StatusNoContent,
		Handler: func(c *gin.Context, _ *struct{}) (struct{}, error) {
			uid, err := currentUser(c)
			if err != nil {
				return struct{}{}, err
			}
			id, err := orderID(c)
			if err != nil {
				return struct{}{}, err
			}
			return struct{}{}, h.svc.Delete(c.Request.Context(), id, uid)
		},
	})
}
