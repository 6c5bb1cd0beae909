package dto

import (
	"testing"
	"time"

	"github.com/hugohenrick/erp-pdv/internal/domain/sale"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSaleRequest_ToInput(t *testing.T) {
	empty := ""
	couponID := "save10"
	in := CreateSaleRequest{
		ClientID: &empty,
		CouponID: &couponID,
		Items:    []SaleItemRequest{{ProductID: "p1", Quantity: 2}},
	}.ToInput()

	assert.Nil(t, in.ClientID)
	require.NotNil(t, in.CouponID)
	assert.Equal(t, "save10", *in.CouponID)
	require.Len(t, in.Items, 1)
	assert.Equal(t, 2, in.Items[0].Quantity)
}

func TestToSaleResponse_FormatsMoney(t *testing.T) {
	s := &sale.Sale{
		ID:        "s1",
		Subtotal:  decimal.NewFromInt(200),
		Discount:  decimal.Zero,
		Total:     decimal.NewFromInt(200),
		CreatedAt: time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC),
		Items: []sale.LineItem{
			{ID: "i1", ProductName: "Café", Price: decimal.NewFromInt(100), Quantity: 2, Subtotal: decimal.NewFromInt(200)},
		},
	}

	resp := ToSaleResponse(s)
	assert.Equal(t, "200.00", resp.Subtotal)
	assert.Equal(t, "0.00", resp.Discount)
	assert.Nil(t, resp.Client)
	assert.Nil(t, resp.Coupon)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "100.00", resp.Items[0].Price)
	assert.Nil(t, resp.Items[0].ProductID)
}
