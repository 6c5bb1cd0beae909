package coupon

import (
	"errors"
	"testing"
	"time"

	"github.com/hugohenrick/erp-pdv/internal/domain/failure"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsExpiredOn(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	c := &Coupon{ExpirationDate: time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)}

	tests := []struct {
		name  string
		today time.Time
		want  bool
	}{
		{"dia anterior", time.Date(2026, 10, 14, 23, 59, 0, 0, loc), false},
		{"mesmo dia pela manhã", time.Date(2026, 10, 15, 0, 1, 0, 0, loc), false},
		{"mesmo dia à noite", time.Date(2026, 10, 15, 23, 59, 59, 0, loc), false},
		{"dia seguinte", time.Date(2026, 10, 16, 0, 0, 0, 0, loc), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.IsExpiredOn(tt.today))
		})
	}
}

func TestNewCoupon(t *testing.T) {
	exp := time.Date(2026, 12, 31, 15, 0, 0, 0, time.UTC)

	c, err := NewCoupon("tenant-1", "  SAVE10 ", decimal.RequireFromString("10.5"), exp)
	require.NoError(t, err)
	assert.Equal(t, "SAVE10", c.Name)
	assert.Equal(t, time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC), c.ExpirationDate)
	assert.NotEmpty(t, c.ID)

	invalid := []struct {
		name string
		pct  string
		exp  time.Time
		cpn  string
	}{
		{"nome vazio", "10", exp, " "},
		{"percentual negativo", "-1", exp, "A"},
		{"percentual acima de 100", "100.01", exp, "A"},
		{"três casas decimais", "10.125", exp, "A"},
		{"sem expiração", "10", time.Time{}, "A"},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCoupon("tenant-1", tt.cpn, decimal.RequireFromString(tt.pct), tt.exp)
			assert.True(t, errors.Is(err, failure.ErrValidation))
		})
	}
}
