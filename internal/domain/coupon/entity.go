package coupon

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/erp-pdv/internal/domain/failure"
	"github.com/shopspring/decimal"
)

var (
	maxPercentage = decimal.NewFromInt(100)
)

// Coupon representa um cupom de desconto percentual
type Coupon struct {
	ID                 string          `json:"id"`
	TenantID           string          `json:"tenant_id"`
	Name               string          `json:"name"`
	ExpirationDate     time.Time       `json:"expiration_date"`     // Data de expiração (inclusiva, sem hora)
	DiscountPercentage decimal.Decimal `json:"discount_percentage"` // 0 a 100, até 2 casas
	CreatedAt          time.Time       `json:"created_at"`
}

// NewCoupon cria um novo cupom validando nome, percentual e expiração
func NewCoupon(tenantID, name string, percentage decimal.Decimal, expiration time.Time) (*Coupon, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, failure.Validation("name", "nome do cupom não pode ser vazio")
	}
	if percentage.IsNegative() || percentage.GreaterThan(maxPercentage) {
		return nil, failure.Validation("discount_percentage", "percentual deve estar entre 0 e 100")
	}
	if !percentage.Equal(percentage.Truncate(2)) {
		return nil, failure.Validation("discount_percentage", "percentual aceita no máximo 2 casas decimais")
	}
	if expiration.IsZero() {
		return nil, failure.Validation("expiration_date", "data de expiração é obrigatória")
	}

	return &Coupon{
		ID:                 uuid.New().String(),
		TenantID:           tenantID,
		Name:               name,
		ExpirationDate:     DateOnly(expiration),
		DiscountPercentage: percentage,
		CreatedAt:          time.Now(),
	}, nil
}

// IsExpiredOn verifica se o cupom está expirado no dia informado.
// A comparação é feita por dia de calendário: o cupom vale até o fim
// do dia de expiração.
func (c *Coupon) IsExpiredOn(today time.Time) bool {
	return DateOnly(c.ExpirationDate).Before(DateOnly(today))
}

// DateOnly descarta a hora de t, mantendo o dia de calendário no fuso de t
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
