package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"brewbuy/internal/core/cache"
	"brewbuy/internal/domain"
)

type ProductInput struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	ImageBase64 string          `json:"imageBase64"`
	ImageType   string          `json:"imageType"`
}

type ProductService struct {
	repo  domain.ProductRepository
	cache *cache.Cache
	ttl   time.Duration
	log   *zap.Logger
}

func NewProductService(repo domain.ProductRepository, c *cache.Cache, ttl time.Duration, log *zap.Logger) *ProductService {
	return &ProductService{repo: repo, cache: c, ttl: ttl, log: log}
}

func productKey(id uint) string { return fmt.Sprintf("product:%d", id) }

func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx)
}

func (s *ProductService) Get(ctx context.Context, id uint) (*domain.Product, error) {
	p, err := cache.GetOrLoadJSON(s.cache, ctx, productKey(id), s.ttl, func(ctx context.Context) (*domain.Product, error) {
		return s.repo.FindByID(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: product %d", domain.ErrNotFound, id)
	}
	return p, nil
}

// Create 图片解码失败直接拒绝整个请求
func (s *ProductService) Create(ctx context.Context, in ProductInput) (*domain.Product, error) {
	p, err := newProduct(in)
	if err != nil {
		return nil, err
	}
	if err := applyImage(p, in); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	// 清掉该 id 可能残留的负缓存
	s.invalidate(ctx, p.ID)
	return p, nil
}

// CreateBatch 图片解码失败只丢弃该商品的图片
func (s *ProductService) CreateBatch(ctx context.Context, ins []ProductInput) ([]domain.Product, error) {
	ps := make([]domain.Product, 0, len(ins))
	for i, in := range ins {
		p, err := newProduct(in)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		if err := applyImage(p, in); err != nil {
			s.log.Warn("batch image dropped", zap.Int("index", i), zap.Error(err))
		}
		ps = append(ps, *p)
	}
	if err := s.repo.CreateBatch(ctx, ps); err != nil {
		return nil, err
	}
	for i := range ps {
		s.invalidate(ctx, ps[i].ID)
	}
	return ps, nil
}

// Update 图片解码失败时保留原图，其余字段照常更新
func (s *ProductService) Update(ctx context.Context, id uint, in ProductInput) (*domain.Product, error) {
	if err := validateProduct(in); err != nil {
		return nil, err
	}
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: product %d", domain.ErrNotFound, id)
	}
	p.Name = strings.TrimSpace(in.Name)
	p.Description = in.Description
	p.Price = in.Price
	p.Quantity = in.Quantity
	if err := applyImage(p, in); err != nil {
		s.log.Warn("product image ignored", zap.Uint("product_id", id), zap.Error(err))
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	return p, nil
}

func (s *ProductService) Delete(ctx context.Context, id uint) error {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	s.invalidate(ctx, id)
	if !ok {
		return fmt.Errorf("%w: product %d", domain.ErrNotFound, id)
	}
	return nil
}

func (s *ProductService) invalidate(ctx context.Context, id uint) {
	if err := s.cache.Delete(ctx, productKey(id)); err != nil {
		s.log.Warn("product cache invalidate failed", zap.Uint("product_id", id), zap.Error(err))
	}
}

func validateProduct(in ProductInput) error {
	switch {
	case strings.TrimSpace(in.Name) == "":
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	case in.Price.IsNegative():
		return fmt.Errorf("%w: price must not be negative", domain.ErrValidation)
	case !domain.IsCents(in.Price):
		return fmt.Errorf("%w: price has more than two decimal places", domain.ErrValidation)
	case in.Quantity < 0:
		return fmt.Errorf("%w: quantity must not be negative", domain.ErrValidation)
	}
	return nil
}

func newProduct(in ProductInput) (*domain.Product, error) {
	if err := validateProduct(in); err != nil {
		return nil, err
	}
	return &domain.Product{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		Quantity:    in.Quantity,
	}, nil
}

// applyImage 空图片不做任何修改；支持 data URL 前缀
func applyImage(p *domain.Product, in ProductInput) error {
	raw := strings.TrimSpace(in.ImageBase64)
	if raw == "" {
		return nil
	}
	mime := in.ImageType
	if strings.HasPrefix(raw, "data:") {
		if i := strings.Index(raw, ";base64,"); i > 0 {
			if mime == "" {
				mime = raw[len("data:"):i]
			}
			raw = raw[i+len(";base64,"):]
		}
	}
	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return fmt.Errorf("%w: invalid image data: %v", domain.ErrBadRequest, err)
	}
	p.ImageData = data
	p.ImageType = mime
	return nil
}
