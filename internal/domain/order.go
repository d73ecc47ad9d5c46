package domain

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:   {OrderStatusDelivered},
}

func (s OrderStatus) String() string { return string(s) }

// ParseOrderStatus 大小写不敏感；未知值返回 false
func ParseOrderStatus(raw string) (OrderStatus, bool) {
	s := OrderStatus(strings.ToUpper(strings.TrimSpace(raw)))
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return s, true
	}
	return "", false
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, n := range orderTransitions[s] {
		if n == next {
			return true
		}
	}
	return false
}

type Order struct {
	ID          uint            `gorm:"primaryKey"`
	UserID      uint            `gorm:"not null;index"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Status      OrderStatus     `gorm:"size:16;not null;default:PENDING"`
	Items       []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Order) TableName() string { return "orders" }

// OrderItem 的 Price 是下单时刻的单价快照
type OrderItem struct {
	ID        uint            `gorm:"primaryKey"`
	OrderID   uint            `gorm:"not null;index"`
	ProductID uint            `gorm:"not null"`
	Quantity  int             `gorm:"not null"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

func (OrderItem) TableName() string { return "order_items" }

// LineTotal = Price × Quantity
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// IsCents 金额最多两位小数，与 decimal(…,2) 列一致
func IsCents(d decimal.Decimal) bool { return d.Equal(d.Round(2)) }

func SumItems(items []OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.LineTotal())
	}
	return total
}

type OrderRepository interface {
	CreateWithItems(ctx context.Context, o *Order) error
	FindByIDAndUser(ctx context.Context, id, userID uint) (*Order, error)
	ListByUser(ctx context.Context, userID uint) ([]Order, error)
	UpdateStatus(ctx context.Context, o *Order) error
	DeleteWithItems(ctx context.Context, id uint) error
}

// OrderEvent 订单生命周期事件（发布到消息总线）
type OrderEvent struct {
	Type        string          `json:"type"`
	OrderID     uint            `json:"orderId"`
	UserID      uint            `json:"userId"`
	Status      OrderStatus     `json:"status"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	At          time.Time       `json:"at"`
}

const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
	EventOrderDeleted       = "order.deleted"
)

type OrderEventPublisher interface {
	Publish(ctx context.Context, ev OrderEvent) error
}

// IdempotencyGuard 返回 false 表示 key 已被占用
type IdempotencyGuard interface {
	Claim(ctx context.Context, key string) (bool, error)
}
