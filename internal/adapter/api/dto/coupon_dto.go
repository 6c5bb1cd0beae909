package dto

import (
	"time"

	coupondomain "github.com/hugohenrick/erp-pdv/internal/domain/coupon"
	"github.com/shopspring/decimal"
)

// CreateCouponRequest representa os dados para criar um cupom
type CreateCouponRequest struct {
	Name               string          `json:"name" binding:"required" example:"BLACKFRIDAY"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage" swaggertype:"string" example:"15.50"`
	ExpirationDate     string          `json:"expiration_date" binding:"required" example:"2026-11-30"`
}

// CouponResponse representa um cupom
type CouponResponse struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	DiscountPercentage string    `json:"discount_percentage"`
	ExpirationDate     string    `json:"expiration_date"`
	CreatedAt          time.Time `json:"created_at"`
}

// ToCouponResponse converte um cupom para a resposta da API
func ToCouponResponse(c *coupondomain.Coupon) CouponResponse {
	return CouponResponse{
		ID:                 c.ID,
		Name:               c.Name,
		DiscountPercentage: c.DiscountPercentage.StringFixed(2),
		ExpirationDate:     c.ExpirationDate.Format(time.DateOnly),
		CreatedAt:          c.CreatedAt,
	}
}
