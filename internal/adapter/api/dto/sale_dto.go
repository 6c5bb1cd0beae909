package dto

import (
	"time"

	"github.com/hugohenrick/erp-pdv/internal/domain/sale"
	"github.com/hugohenrick/erp-pdv/internal/service/sales"
)

// SaleItemRequest representa um produto do carrinho
type SaleItemRequest struct {
	ProductID string `json:"product_id" example:"4b9c1f6e-2f0a-4a57-9a0b-8f3c2d1e0a11"`
	Quantity  int    `json:"quantity" example:"2"`
}

// CreateSaleRequest representa os dados para registrar uma venda
type CreateSaleRequest struct {
	ClientID *string           `json:"client_id,omitempty"`
	CouponID *string           `json:"coupon_id,omitempty"`
	Items    []SaleItemRequest `json:"items"`
}

// ToInput converte a requisição para a entrada do serviço de vendas.
// Strings vazias em client_id e coupon_id equivalem a ausência.
func (r CreateSaleRequest) ToInput() sales.CreateSaleInput {
	in := sales.CreateSaleInput{
		ClientID: emptyToNil(r.ClientID),
		CouponID: emptyToNil(r.CouponID),
		Items:    make([]sales.LineRequest, len(r.Items)),
	}
	for i, it := range r.Items {
		in.Items[i] = sales.LineRequest{ProductID: it.ProductID, Quantity: it.Quantity}
	}
	return in
}

func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

// SaleItemResponse representa um item vendido
type SaleItemResponse struct {
	ID          string  `json:"id"`
	ProductID   *string `json:"product_id"`
	ProductName string  `json:"product_name"`
	Price       string  `json:"price"`
	Quantity    int     `json:"quantity"`
	Subtotal    string  `json:"subtotal"`
}

// SaleClientResponse resume o cliente da venda
type SaleClientResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// SaleCouponResponse resume o cupom aplicado
type SaleCouponResponse struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	DiscountPercentage string `json:"discount_percentage"`
	ExpirationDate     string `json:"expiration_date"`
}

// SaleResponse representa uma venda confirmada
type SaleResponse struct {
	ID        string              `json:"id"`
	Subtotal  string              `json:"subtotal"`
	Discount  string              `json:"discount"`
	Total     string              `json:"total"`
	CreatedAt time.Time           `json:"created_at"`
	Client    *SaleClientResponse `json:"client"`
	Coupon    *SaleCouponResponse `json:"coupon"`
	Items     []SaleItemResponse  `json:"items"`
}

// ToSaleResponse converte uma venda para a resposta da API
func ToSaleResponse(s *sale.Sale) SaleResponse {
	resp := SaleResponse{
		ID:        s.ID,
		Subtotal:  s.Subtotal.StringFixed(2),
		Discount:  s.Discount.StringFixed(2),
		Total:     s.Total.StringFixed(2),
		CreatedAt: s.CreatedAt,
		Items:     make([]SaleItemResponse, len(s.Items)),
	}

	if s.Client != nil {
		resp.Client = &SaleClientResponse{ID: s.Client.ID, Name: s.Client.FullName(), Email: s.Client.Email}
	}
	if s.Coupon != nil {
		resp.Coupon = &SaleCouponResponse{
			ID:                 s.Coupon.ID,
			Name:               s.Coupon.Name,
			DiscountPercentage: s.Coupon.DiscountPercentage.StringFixed(2),
			ExpirationDate:     s.Coupon.ExpirationDate.Format(time.DateOnly),
		}
	}

	for i, it := range s.Items {
		resp.Items[i] = SaleItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Price:       it.Price.StringFixed(2),
			Quantity:    it.Quantity,
			Subtotal:    it.Subtotal.StringFixed(2),
		}
	}
	return resp
}

// ToSaleListResponse converte uma lista de vendas
func ToSaleListResponse(list []*sale.Sale) []SaleResponse {
	resp := make([]SaleResponse, len(list))
	for i, s := range list {
		resp[i] = ToSaleResponse(s)
	}
	return resp
}
