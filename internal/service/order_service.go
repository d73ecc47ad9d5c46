package service

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"brewbuy/internal/domain"
)

var (
	ordersCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Orders successfully created",
	})
	orderTransitions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_status_transitions_total",
		Help: "Order status changes by target status",
	}, []string{"to"})
)

func init() { prometheus.MustRegister(ordersCreated, orderTransitions) }

type OrderItemInput struct {
	ProductID uint            `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type OrderOptions struct {
	// RepriceFromCatalog 用目录当前价格覆盖客户端提交的单价
	RepriceFromCatalog bool
}

type OrderService struct {
	orders   domain.OrderRepository
	products domain.ProductRepository
	events   domain.OrderEventPublisher
	idem     domain.IdempotencyGuard // 可为 nil
	opts     OrderOptions
	log      *zap.Logger
}

func NewOrderService(
	orders domain.OrderRepository,
	products domain.ProductRepository,
	events domain.OrderEventPublisher,
	idem domain.IdempotencyGuard,
	opts OrderOptions,
	log *zap.Logger,
) *OrderService {
	return &OrderService{orders: orders, products: products, events: events, idem: idem, opts: opts, log: log}
}

// Create 新订单状态固定为 PENDING，总额 = Σ 单价 × 数量（十进制精确计算）
func (s *OrderService) Create(ctx context.Context, userID uint, in []OrderItemInput, idemKey string) (*domain.Order, error) {
	if len(in) == 0 {
		return nil, fmt.Errorf("%w: at least one item is required", domain.ErrValidation)
	}
	items := make([]domain.OrderItem, 0, len(in))
	for i, it := range in {
		switch {
		case it.ProductID == 0:
			return nil, fmt.Errorf("%w: item %d: productId is required", domain.ErrValidation, i)
		case it.Quantity <= 0:
			return nil, fmt.Errorf("%w: item %d: quantity must be positive", domain.ErrValidation, i)
		case it.Price.IsNegative():
			return nil, fmt.Errorf("%w: item %d: price must not be negative", domain.ErrValidation, i)
		case !domain.IsCents(it.Price):
			return nil, fmt.Errorf("%w: item %d: price has more than two decimal places", domain.ErrValidation, i)
		}
		items = append(items, domain.OrderItem{ProductID: it.ProductID, Quantity: it.Quantity, Price: it.Price})
	}

	if s.opts.RepriceFromCatalog {
		if err := s.reprice(ctx, items); err != nil {
			return nil, err
		}
	}

	if idemKey != "" && s.idem != nil {
		ok, err := s.idem.Claim(ctx, fmt.Sprintf("order:%d:%s", userID, idemKey))
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%w: duplicate request", domain.ErrConflict)
		}
	}

	o := &domain.Order{
		UserID:      userID,
		TotalAmount: domain.SumItems(items),
		Status:      domain.OrderStatusPending,
		Items:       items,
	}
	if err := s.orders.CreateWithItems(ctx, o); err != nil {
		return nil, err
	}
	ordersCreated.Inc()
	s.log.Info("order created",
		zap.Uint("order_id", o.ID),
		zap.Uint("user_id", userID),
		zap.String("total", o.TotalAmount.StringFixed(2)),
		zap.Int("items", len(items)),
	)
	s.publish(ctx, domain.EventOrderCreated, o)
	return o, nil
}

func (s *OrderService) reprice(ctx context.Context, items []domain.OrderItem) error {
	ids := make([]uint, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}
	catalog, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return err
	}
	for i := range items {
		p, ok := catalog[items[i].ProductID]
		if !ok {
			return fmt.Errorf("%w: product %d does not exist", domain.ErrValidation, items[i].ProductID)
		}
		items[i].Price = p.Price
	}
	return nil
}

// Get 订单不存在与不属于调用者返回同一错误
func (s *OrderService) Get(ctx context.Context, id, userID uint) (*domain.Order, error) {
	o, err := s.orders.FindByIDAndUser(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFoundOrForbidden
	}
	return o, nil
}

func (s *OrderService) ListForUser(ctx context.Context, userID uint) ([]domain.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

// UpdateStatus 先做归属校验，再校验状态取值与迁移
func (s *OrderService) UpdateStatus(ctx context.Context, id, userID uint, raw string) (*domain.Order, error) {
	o, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	next, ok := domain.ParseOrderStatus(raw)
	if !ok {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, raw)
	}
	if !o.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, o.Status, next)
	}
	prev := o.Status
	o.Status = next
	if err := s.orders.UpdateStatus(ctx, o); err != nil {
		return nil, err
	}
	orderTransitions.WithLabelValues(next.String()).Inc()
	s.log.Info("order status changed",
		zap.Uint("order_id", o.ID),
		zap.String("from", prev.String()),
		zap.String("to", next.String()),
	)
	s.publish(ctx, domain.EventOrderStatusChanged, o)
	return o, nil
}

func (s *OrderService) Delete(ctx context.Context, id, userID uint) error {
	o, err := s.Get(ctx, id, userID)
	if err != nil {
		return err
	}
	if err := s.orders.DeleteWithItems(ctx, id); err != nil {
		return err
	}
	s.log.Info("order deleted", zap.Uint("order_id", id), zap.Uint("user_id", userID))
	s.publish(ctx, domain.EventOrderDeleted, o)
	return nil
}

// publish 事件在提交之后发送；失败只记日志，不影响请求结果
func (s *OrderService) publish(ctx context.Context, typ string, o *domain.Order) {
	ev := domain.OrderEvent{
		Type:        typ,
		OrderID:     o.ID,
		UserID:      o.UserID,
		Status:      o.Status,
		TotalAmount: o.TotalAmount,
		At:          time.Now().UTC(),
	}
	if err := s.events.Publish(ctx, ev); err != nil {
		s.log.Warn("order event publish failed", zap.String("type", typ), zap.Uint("order_id", o.ID), zap.Error(err))
	}
}
