package inventory

import (
	"context"
	"errors"
	"testing"

	"github.com/hugohenrick/erp-pdv/internal/domain/failure"
	"github.com/hugohenrick/erp-pdv/internal/domain/product"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) LockProducts(ctx context.Context, tenantID string, ids []string) (map[string]*product.Product, error) {
	args := m.Called(ctx, tenantID, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]*product.Product), args.Error(1)
}

func (m *mockStore) UpdateStock(ctx context.Context, tenantID, productID string, stock int) error {
	args := m.Called(ctx, tenantID, productID, stock)
	return args.Error(0)
}

func newProduct(id string, stock int) *product.Product {
	return &product.Product{ID: id, TenantID: "t1", Name: "Produto " + id, Price: decimal.NewFromInt(100), Stock: stock}
}

func TestLedger_ReserveSameProductTwice(t *testing.T) {
	l := NewLedger("t1", map[string]*product.Product{"p1": newProduct("p1", 5)})

	_, err := l.Reserve("p1", 3)
	require.NoError(t, err)

	_, err = l.Reserve("p1", 3)
	var stockErr *failure.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, 2, stockErr.Available)
	assert.Equal(t, 3, stockErr.Requested)

	_, err = l.Reserve("p1", 2)
	require.NoError(t, err)
	assert.Equal(t, []StockChange{{ProductID: "p1", Stock: 0}}, l.Changes())
}

func TestLedger_ReserveFailures(t *testing.T) {
	other := newProduct("p2", 10)
	other.TenantID = "t2"
	l := NewLedger("t1", map[string]*product.Product{"p1": newProduct("p1", 2), "p2": other})

	_, err := l.Reserve("missing", 1)
	assert.True(t, errors.Is(err, failure.ErrNotFound))

	_, err = l.Reserve("p2", 1)
	assert.True(t, errors.Is(err, failure.ErrNotFound), "produto de outro tenant deve ser tratado como inexistente")

	_, err = l.Reserve("p1", 0)
	assert.True(t, errors.Is(err, failure.ErrValidation))

	_, err = l.Reserve("p1", 3)
	assert.True(t, errors.Is(err, failure.ErrInsufficientStock))
	assert.Empty(t, l.Changes())
}

func TestGuard_OpenLocksDistinctSortedIDs(t *testing.T) {
	store := new(mockStore)
	ctx := context.Background()
	store.On("LockProducts", ctx, "t1", []string{"a", "b", "c"}).
		Return(map[string]*product.Product{"a": newProduct("a", 1)}, nil)

	l, err := NewGuard().Open(ctx, store, "t1", []string{"c", "a", "b", "a"})
	require.NoError(t, err)
	assert.Equal(t, 1, l.Available("a"))
	assert.Equal(t, 0, l.Available("b"))
	store.AssertExpectations(t)
}

func TestGuard_Apply(t *testing.T) {
	store := new(mockStore)
	ctx := context.Background()
	l := NewLedger("t1", map[string]*product.Product{"p1": newProduct("p1", 5), "p2": newProduct("p2", 4)})
	_, _ = l.Reserve("p2", 1)
	_, _ = l.Reserve("p1", 2)
	_, _ = l.Reserve("p2", 3)

	store.On("UpdateStock", ctx, "t1", "p2", 0).Return(nil).Once()
	store.On("UpdateStock", ctx, "t1", "p1", 3).Return(nil).Once()

	require.NoError(t, NewGuard().Apply(ctx, store, "t1", l))
	store.AssertExpectations(t)
}

func TestGuard_ApplyPropagatesWriteError(t *testing.T) {
	store := new(mockStore)
	ctx := context.Background()
	l := NewLedger("t1", map[string]*product.Product{"p1": newProduct("p1", 5)})
	_, _ = l.Reserve("p1", 1)

	boom := errors.New("conexão perdida")
	store.On("UpdateStock", ctx, "t1", "p1", 4).Return(boom)

	err := NewGuard().Apply(ctx, store, "t1", l)
	assert.ErrorIs(t, err, boom)
}
