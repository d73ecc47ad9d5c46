package handler

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"brewbuy/internal/domain"
)

// money 固定两位小数输出（5.5 → 5.50），仍是 JSON 数字
func money(d decimal.Decimal) json.Number { return json.Number(d.StringFixed(2)) }

type productOut struct {
	ID          uint        `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Price       json.Number `json:"price"`
	Quantity    int         `json:"quantity"`
	ImageBase64 string      `json:"imageBase64,omitempty"`
	ImageType   string      `json:"imageType,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

func toProduct(p *domain.Product) productOut {
	out := productOut{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       money(p.Price),
		Quantity:    p.Quantity,
		ImageType:   p.ImageType,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if len(p.ImageData) > 0 {
		out.ImageBase64 = base64.StdEncoding.EncodeToString(p.ImageData)
	}
	return out
}

func toProducts(ps []domain.Product) []productOut {
	out := make([]productOut, 0, len(ps))
	for i := range ps {
		out = append(out, toProduct(&ps[i]))
	}
	return out
}

type orderItemOut struct {
	ID        uint        `json:"id"`
	ProductID uint        `json:"productId"`
	Quantity  int         `json:"quantity"`
	Price     json.Number `json:"price"`
}

type orderOut struct {
	ID          uint           `json:"id"`
	UserID      uint           `json:"userId"`
	TotalAmount json.Number    `json:"totalAmount"`
	Status      string         `json:"status"`
	Items       []orderItemOut `json:"items"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

func toOrder(o *domain.Order) orderOut {
	out := orderOut{
		ID:          o.ID,
		UserID:      o.UserID,
		TotalAmount: money(o.TotalAmount),
		Status:      o.Status.String(),
		Items:       make([]orderItemOut, 0, len(o.Items)),
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
	for _, it := range o.Items {
		out.Items = append(out.Items, orderItemOut{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     money(it.Price),
		})
	}
	return out
}

type messageOut struct {
	Message string `json:"message"`
}
