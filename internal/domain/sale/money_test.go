package sale

import (
	"testing"

	"github.com/hugohenrick/erp-pdv/internal/domain/product"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestDiscount(t *testing.T) {
	tests := []struct {
		subtotal, pct, want string
	}{
		{"200.00", "0", "0"},
		{"200.00", "10", "20.00"},
		{"99.99", "15", "15.00"},   // 14.9985
		{"10.05", "10", "1.01"},    // 1.005 -> half-up
		{"33.33", "12.5", "4.17"},  // 4.16625
		{"0.10", "5", "0.01"},      // 0.005 -> half-up
		{"123.45", "100", "123.45"},
	}
	for _, tt := range tests {
		got := Discount(d(tt.subtotal), d(tt.pct))
		assert.True(t, got.Equal(d(tt.want)), "Discount(%s, %s) = %s, want %s", tt.subtotal, tt.pct, got, tt.want)
	}
}

func TestNewSale_Totals(t *testing.T) {
	p1 := &product.Product{ID: "p1", Name: "Arroz", Price: d("19.90")}
	p2 := &product.Product{ID: "p2", Name: "Feijão", Price: d("8.45")}

	items := []LineItem{NewLineItem(p1, 2), NewLineItem(p2, 3)}
	s := NewSale("tenant-1", nil, nil, items, d("10"))

	assert.Equal(t, "39.80", Format(s.Items[0].Subtotal))
	assert.Equal(t, "25.35", Format(s.Items[1].Subtotal))
	assert.Equal(t, "65.15", Format(s.Subtotal))
	assert.Equal(t, "6.52", Format(s.Discount)) // 6.515
	assert.Equal(t, "58.63", Format(s.Total))
	assert.True(t, s.Total.Equal(s.Subtotal.Sub(s.Discount)))
	for _, it := range s.Items {
		assert.Equal(t, s.ID, it.SaleID)
	}
}

func TestNewLineItem_Snapshot(t *testing.T) {
	p := &product.Product{ID: "p1", Name: "Café", Price: d("12.00"), Stock: 4}
	it := NewLineItem(p, 2)

	p.Name = "Café Especial"
	p.Price = d("30.00")

	assert.Equal(t, "Café", it.ProductName)
	assert.True(t, it.Price.Equal(d("12.00")))
	assert.Equal(t, "p1", *it.ProductID)
}

func TestClientName(t *testing.T) {
	s := &Sale{}
	assert.Equal(t, "-", s.ClientName())
}
