package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"brewbuy/internal/domain"
	"brewbuy/pkg/utils"
)

type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
}

// ProfileInput 空字段表示不修改；Password 为空则保留原密码
type ProfileInput struct {
	Email    *string `json:"email"`
	FullName *string `json:"fullName"`
	Phone    *string `json:"phone"`
	Password string  `json:"password"`
}

// UserService 普通用户凭据库 + 资料维护
type UserService struct {
	repo domain.UserRepository
	log  *zap.Logger
}

func NewUserService(repo domain.UserRepository, log *zap.Logger) *UserService {
	return &UserService{repo: repo, log: log}
}

// Create 校验必填、唯一性后落库（密码只存哈希）
func (s *UserService) Create(ctx context.Context, in RegisterInput) (*domain.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	switch {
	case in.Username == "":
		return nil, fmt.Errorf("%w: username is required", domain.ErrValidation)
	case in.Email == "":
		return nil, fmt.Errorf("%w: email is required", domain.ErrValidation)
	}
	if err := validatePassword(in.Password); err != nil {
		return nil, err
	}

	if ok, err := s.repo.ExistsByUsername(ctx, in.Username); err != nil {
		return nil, err
	} else if ok {
		return nil, fmt.Errorf("%w: username is already taken", domain.ErrConflict)
	}
	if ok, err := s.repo.ExistsByEmail(ctx, in.Email); err != nil {
		return nil, err
	} else if ok {
		return nil, fmt.Errorf("%w: email is already in use", domain.ErrConflict)
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		FullName:     strings.TrimSpace(in.FullName),
		Phone:        strings.TrimSpace(in.Phone),
	}
	// 并发注册由唯一索引兜底（repo 返回 ErrConflict）
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	s.log.Info("user registered", zap.Uint("user_id", u.ID), zap.String("username", u.Username))
	return u, nil
}

// Authenticate 用户名或邮箱 + 密码；失败统一返回 nil
func (s *UserService) Authenticate(ctx context.Context, identifier, password string) (*domain.User, error) {
	u, err := s.repo.FindByUsernameOrEmail(ctx, identifier)
	if err != nil || u == nil {
		return nil, err
	}
	if !utils.CheckPassword(password, u.PasswordHash) {
		return nil, nil
	}
	return u, nil
}

func (s *UserService) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.repo.FindByUsername(ctx, username)
}

func (s *UserService) Get(ctx context.Context, id uint) (*domain.User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("%w: user %d", domain.ErrNotFound, id)
	}
	return u, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, id uint, in ProfileInput) (*domain.User, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Email != nil {
		email := strings.TrimSpace(*in.Email)
		if email == "" {
			return nil, fmt.Errorf("%w: email is required", domain.ErrValidation)
		}
		if email != u.Email {
			if ok, err := s.repo.ExistsByEmail(ctx, email); err != nil {
				return nil, err
			} else if ok {
				return nil, fmt.Errorf("%w: email is already in use", domain.ErrConflict)
			}
			u.Email = email
		}
	}
	if in.FullName != nil {
		u.FullName = strings.TrimSpace(*in.FullName)
	}
	if in.Phone != nil {
		u.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Password != "" {
		if err := validatePassword(in.Password); err != nil {
			return nil, err
		}
		if u.PasswordHash, err = utils.HashPassword(in.Password); err != nil {
			return nil, err
		}
	}
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *UserService) List(ctx context.Context, offset, limit int) ([]domain.User, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, offset, limit)
}

// Delete 硬删除，仅后台管理员调用
func (s *UserService) Delete(ctx context.Context, id uint) error {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: user %d", domain.ErrNotFound, id)
	}
	s.log.Info("user deleted", zap.Uint("user_id", id))
	return nil
}

func validatePassword(pw string) error {
	switch {
	case strings.TrimSpace(pw) == "":
		return fmt.Errorf("%w: password is required", domain.ErrValidation)
	case len(pw) > utils.MaxPasswordBytes:
		return fmt.Errorf("%w: password must be at most %d bytes", domain.ErrValidation, utils.MaxPasswordBytes)
	}
	return nil
}
