package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"brewbuy/internal/domain"
	"brewbuy/pkg/utils"
)

type AdminUserView struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AdminUserService 管理员凭据库（持久化在 admin_users 表，不再是进程内 map）
type AdminUserService struct {
	repo      domain.AdminUserRepository
	protected string
	log       *zap.Logger
}

func NewAdminUserService(repo domain.AdminUserRepository, protected string, log *zap.Logger) *AdminUserService {
	return &AdminUserService{repo: repo, protected: protected, log: log}
}

// EnsureDefault 首次启动写入默认管理员；已存在则不覆盖密码
func (s *AdminUserService) EnsureDefault(ctx context.Context, password string) error {
	ok, err := s.Exists(ctx, s.protected)
	if err != nil || ok {
		return err
	}
	err = s.Add(ctx, s.protected, password)
	if err == nil {
		s.log.Info("default admin seeded", zap.String("username", s.protected))
	}
	return err
}

func (s *AdminUserService) Validate(ctx context.Context, username, password string) (bool, error) {
	a, err := s.repo.FindByUsername(ctx, username)
	if err != nil || a == nil {
		return false, err
	}
	return utils.CheckPassword(password, a.PasswordHash), nil
}

func (s *AdminUserService) Exists(ctx context.Context, username string) (bool, error) {
	a, err := s.repo.FindByUsername(ctx, username)
	return a != nil, err
}

func (s *AdminUserService) Add(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return fmt.Errorf("%w: username is required", domain.ErrValidation)
	}
	if err := validatePassword(password); err != nil {
		return err
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	if err := s.repo.Create(ctx, &domain.AdminUser{Username: username, PasswordHash: hash}); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return fmt.Errorf("%w: username already exists", domain.ErrConflict)
		}
		return err
	}
	s.log.Info("admin user added", zap.String("username", username))
	return nil
}

func (s *AdminUserService) UpdatePassword(ctx context.Context, username, password string) error {
	if err := validatePassword(password); err != nil {
		return err
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	ok, err := s.repo.UpdatePassword(ctx, username, hash)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: admin user %q", domain.ErrNotFound, username)
	}
	s.log.Info("admin password updated", zap.String("username", username))
	return nil
}

func (s *AdminUserService) Delete(ctx context.Context, username string) error {
	if username == s.protected {
		return fmt.Errorf("%w: cannot delete default admin user", domain.ErrProtectedAccount)
	}
	ok, err := s.repo.Delete(ctx, username)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: admin user %q", domain.ErrNotFound, username)
	}
	s.log.Info("admin user deleted", zap.String("username", username))
	return nil
}

func (s *AdminUserService) ListAll(ctx context.Context) ([]AdminUserView, error) {
	as, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]AdminUserView, 0, len(as))
	for _, a := range as {
		out = append(out, AdminUserView{Username: a.Username, Password: utils.MaskedPassword})
	}
	return out, nil
}
