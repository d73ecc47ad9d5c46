package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"brewbuy/internal/service"
	"brewbuy/internal/transport/http/ez"
	"brewbuy/internal/transport/http/router"
)

type AuthHandler struct {
	svc *service.AuthService
	log *zap.Logger
}

func NewAuthHandler(svc *service.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, log: log}
}

func (h *AuthHandler) Priority() int { return 10 }

// MountAPI /api/auth/register|login|logout，全部公开
func (h *AuthHandler) MountAPI(g router.Groups) {
	e := ez.New(g.Public.Group("/auth"), h.log)

	ez.Register(e, ez.Action[service.RegisterInput, *service.AuthResult]{
		Method: http.MethodPost,
		Path:   "/register",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *service.RegisterInput) (*service.AuthResult, error) {
			return h.svc.Register(c.Request.Context(), *in)
		},
	})

	type loginIn struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	ez.Register(e, ez.Action[loginIn, *service.AuthResult]{
		Method: http.MethodPost,
		Path:   "/login",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *loginIn) (*service.AuthResult, error) {
			return h.svc.Login(c.Request.Context(), in.Username, in.Password)
		},
	})

	ez.Register(e, ez.Action[struct{}, messageOut]{
		Method: http.MethodPost,
		Path:   "/logout",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (messageOut, error) {
			if err := h.svc.Logout(c.Request.Context()); err != nil {
				return messageOut{}, err
			}
			return messageOut{Message: "Logged out successfully"}, nil
		},
	})
}
