package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"brewbuy/internal/core/auth"
	"brewbuy/internal/domain"
)

type TokenIssuer interface {
	Issue(subject, uid, role string) (string, error)
}

type AuthResult struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	UserType string `json:"userType"`
}

// AuthService 登录 / 注册网关：先查管理员命名空间，再查普通用户
type AuthService struct {
	admins *AdminUserService
	users  *UserService
	tokens TokenIssuer
	log    *zap.Logger
}

func NewAuthService(admins *AdminUserService, users *UserService, tokens TokenIssuer, log *zap.Logger) *AuthService {
	return &AuthService{admins: admins, users: users, tokens: tokens, log: log}
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	u, err := s.users.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	return s.issue(u.Username, strconv.FormatUint(uint64(u.ID), 10), auth.RoleUser)
}

// Login 不区分“用户不存在”和“密码错误”，避免枚举用户
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*AuthResult, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", domain.ErrValidation)
	}

	ok, err := s.admins.Validate(ctx, identifier, password)
	if err != nil {
		return nil, err
	}
	if ok {
		return s.issue(identifier, "", auth.RoleAdmin)
	}

	u, err := s.users.Authenticate(ctx, identifier, password)
	if err != nil {
		return nil, err
	}
	if u == nil {
		s.log.Debug("login rejected", zap.String("identifier", identifier))
		return nil, domain.ErrInvalidCredentials
	}
	return s.issue(u.Username, strconv.FormatUint(uint64(u.ID), 10), auth.RoleUser)
}

// Logout 无状态：客户端丢弃 token 即可，服务端不做吊销
func (s *AuthService) Logout(context.Context) error { return nil }

func (s *AuthService) issue(username, uid, role string) (*AuthResult, error) {
	tok, err := s.tokens.Issue(username, uid, role)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &AuthResult{Token: tok, Username: username, UserType: role}, nil
}
