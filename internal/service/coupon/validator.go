package coupon

import (
	"context"
	"errors"
	"time"

	coupondomain "github.com/hugohenrick/erp-pdv/internal/domain/coupon"
	"github.com/hugohenrick/erp-pdv/internal/domain/failure"
	"github.com/shopspring/decimal"
)

// Resolution é o resultado da validação de cupom. Sem cupom, Coupon é nil
// e Percentage é zero.
type Resolution struct {
	Coupon     *coupondomain.Coupon
	Percentage decimal.Decimal
}

// NoDiscount é a resolução usada quando a venda não tem cupom
var NoDiscount = Resolution{Percentage: decimal.Zero}

// Validator verifica existência, dono e expiração de cupons
type Validator struct {
	loc *time.Location
	now func() time.Time
}

// NewValidator cria um Validator que define "hoje" no fuso loc
func NewValidator(loc *time.Location, now func() time.Time) *Validator {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &Validator{loc: loc, now: now}
}

// Today retorna a data corrente no fuso de relatório
func (v *Validator) Today() time.Time {
	return v.now().In(v.loc)
}

// Resolve busca o cupom do tenant e verifica a expiração
func (v *Validator) Resolve(ctx context.Context, finder coupondomain.Finder, tenantID string, couponID *string) (Resolution, error) {
	if couponID == nil || *couponID == "" {
		return NoDiscount, nil
	}

	c, err := finder.FindCoupon(ctx, tenantID, *couponID)
	if err != nil {
		if errors.Is(err, failure.ErrNotFound) {
			return Resolution{}, failure.NotFound("Cupom", *couponID)
		}
		return Resolution{}, err
	}

	if c.IsExpiredOn(v.Today()) {
		return Resolution{}, &failure.CouponExpiredError{
			CouponID:       c.ID,
			Name:           c.Name,
			ExpirationDate: c.ExpirationDate,
		}
	}

	return Resolution{Coupon: c, Percentage: c.DiscountPercentage}, nil
}
