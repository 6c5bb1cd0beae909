package sale

import (
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/erp-pdv/internal/domain/client"
	"github.com/hugohenrick/erp-pdv/internal/domain/coupon"
	"github.com/hugohenrick/erp-pdv/internal/domain/product"
	"github.com/shopspring/decimal"
)

// Sale representa uma venda confirmada. Uma venda é imutável depois do commit.
type Sale struct {
	ID        string          `json:"id"`
	TenantID  string          `json:"tenant_id"`
	ClientID  *string         `json:"client_id"`
	CouponID  *string         `json:"coupon_id"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Discount  decimal.Decimal `json:"discount"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"created_at"`

	Client *client.Client `json:"client,omitempty"`
	Coupon *coupon.Coupon `json:"coupon,omitempty"`
	Items  []LineItem     `json:"items"`
}

// LineItem é um item da venda com o snapshot do produto no momento da venda.
// ProductID fica nulo quando o produto é removido depois.
type LineItem struct {
	ID          string          `json:"id"`
	SaleID      string          `json:"sale_id"`
	ProductID   *string         `json:"product_id"`
	ProductName string          `json:"product_name"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// NewLineItem copia nome e preço atuais do produto para um novo item
func NewLineItem(p *product.Product, quantity int) LineItem {
	productID := p.ID
	return LineItem{
		ID:          uuid.New().String(),
		ProductID:   &productID,
		ProductName: p.Name,
		Price:       p.Price,
		Quantity:    quantity,
		Subtotal:    p.Price.Mul(decimal.NewFromInt(int64(quantity))),
	}
}

// NewSale monta uma venda a partir dos itens e do percentual de desconto.
// Subtotal, desconto e total são calculados aqui e não mudam mais.
func NewSale(tenantID string, clientID, couponID *string, items []LineItem, percentage decimal.Decimal) *Sale {
	s := &Sale{
		ID:       uuid.New().String(),
		TenantID: tenantID,
		ClientID: clientID,
		CouponID: couponID,
		Items:    items,
	}
	for i := range s.Items {
		s.Items[i].SaleID = s.ID
	}
	s.Subtotal = SumSubtotals(items)
	s.Discount = Discount(s.Subtotal, percentage)
	s.Total = s.Subtotal.Sub(s.Discount)
	return s
}

// ClientName retorna o nome do cliente ou "-" quando não há cliente
func (s *Sale) ClientName() string {
	if s.Client == nil {
		return "-"
	}
	return s.Client.FullName()
}
