package failure

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypedErrorsMatchSentinels(t *testing.T) {
	assert.ErrorIs(t, Validation("items", "vazio"), ErrValidation)
	assert.ErrorIs(t, NotFound("Produto", "p1"), ErrNotFound)
	assert.ErrorIs(t, &CouponExpiredError{Name: "OLD", ExpirationDate: time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)}, ErrCouponExpired)
	assert.ErrorIs(t, &InsufficientStockError{ProductName: "Café", Available: 2, Requested: 3}, ErrInsufficientStock)
	assert.ErrorIs(t, Persistence("gravar venda", errors.New("conexão perdida")), ErrPersistence)
}

func TestInsufficientStockError_Message(t *testing.T) {
	err := fmt.Errorf("item 2: %w", &InsufficientStockError{ProductName: "Café", Available: 2, Requested: 3})

	var stockErr *InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, 2, stockErr.Available)
	assert.Contains(t, err.Error(), "Disponível: 2, Solicitado: 3")
}

func TestPersistence(t *testing.T) {
	assert.NoError(t, Persistence("gravar", nil))

	cause := NotFound("Produto", "p1")
	err := Persistence("atualizar estoque", cause)
	assert.ErrorIs(t, err, ErrPersistence)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestIsDomain(t *testing.T) {
	assert.True(t, IsDomain(Validation("", "x")))
	assert.True(t, IsDomain(fmt.Errorf("%w: nome", ErrConflict)))
	assert.False(t, IsDomain(errors.New("boom")))
	assert.False(t, IsDomain(Persistence("gravar", errors.New("boom"))))
}
