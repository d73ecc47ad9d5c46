package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"brewbuy/internal/service"
	"brewbuy/internal/transport/http/ez"
	"brewbuy/internal/transport/http/router"
)

type ProductHandler struct {
	svc *service.ProductService
	log *zap.Logger
}

func NewProductHandler(svc *service.ProductService, log *zap.Logger) *ProductHandler {
	return &ProductHandler{svc: svc, log: log}
}

// MountAPI 读接口公开，写接口需要 admin token
func (h *ProductHandler) MountAPI(g router.Groups) {
	pub := ez.New(g.Public.Group("/products"), h.log)
	adm := ez.New(g.Admin.Group("/products"), h.log)

	ez.Register(pub, ez.Action[struct{}, []productOut]{
		Method: http.MethodGet,
		Path:   "",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]productOut, error) {
			ps, err := h.svc.List(c.Request.Context())
			if err != nil {
				return nil, err
			}
			return toProducts(ps), nil
		},
	})

	ez.Register(pub, ez.Action[struct{}, productOut]{
		Method: http.MethodGet,
		Path:   "/:id",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (productOut, error) {
			id, err := ez.ParamID(c, "id")
			if err != nil {
				return productOut{}, err
			}
			p, err := h.svc.Get(c.Request.Context(), id)
			if err != nil {
				return productOut{}, err
			}
			return toProduct(p), nil
		},
	})

	ez.Register(adm, ez.Action[service.ProductInput, productOut]{
		Method: http.MethodPost,
		Path:   "",
		Binder: ez.BindJSON,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *service.ProductInput) (productOut, error) {
			p, err := h.svc.Create(c.Request.Context(), *in)
			if err != nil {
				return productOut{}, err
			}
			return toProduct(p), nil
		},
	})

	ez.Register(adm, ez.Action[[]service.ProductInput, []productOut]{
		Method: http.MethodPost,
		Path:   "/batch",
		Binder: ez.BindJSON,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *[]service.ProductInput) ([]productOut, error) {
			ps, err := h.svc.CreateBatch(c.Request.Context(), *in)
			if err != nil {
				return nil, err
			}
			return toProducts(ps), nil
		},
	})

	ez.Register(adm, ez.Action[service.ProductInput, productOut]{
		Method: http.MethodPut,
		Path:   "/:id",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *service.ProductInput) (productOut, error) {
			id, err := ez.ParamID(c, "id")
			if err != nil {
				return productOut{}, err
			}
			p, err := h.svc.Update(c.Request.Context(), id, *in)
			if err != nil {
				return productOut{}, err
			}
			return toProduct(p), nil
		},
	})

	ez.Register(adm, ez.Action[struct{}, struct{}]{
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
