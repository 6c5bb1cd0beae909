package sales

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/hugohenrick/erp-pdv/internal/adapter/repository/memory"
	"github.com/hugohenrick/erp-pdv/internal/domain/client"
	coupondomain "github.com/hugohenrick/erp-pdv/internal/domain/coupon"
	"github.com/hugohenrick/erp-pdv/internal/domain/failure"
	"github.com/hugohenrick/erp-pdv/internal/domain/product"
	"github.com/hugohenrick/erp-pdv/internal/domain/sale"
	"github.com/hugohenrick/erp-pdv/internal/service/coupon"
	"github.com/hugohenrick/erp-pdv/internal/service/inventory"
	"github.com/hugohenrick/erp-pdv/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap/zaptest"
)

var now = time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, store Store) *Service {
	t.Helper()
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)
	return NewService(
		store,
		inventory.NewGuard(),
		coupon.NewValidator(loc, func() time.Time { return now }),
		logger.FromZap(zaptest.NewLogger(t)),
		noop.NewTracerProvider().Tracer("test"),
	)
}

func newStore() *memory.Store {
	s := memory.NewStore(func() time.Time { return now })
	s.AddProduct(&product.Product{ID: "p1", TenantID: "t1", Name: "Café", Price: decimal.NewFromInt(100), Stock: 5})
	s.AddProduct(&product.Product{ID: "p2", TenantID: "t1", Name: "Açúcar", Price: decimal.RequireFromString("4.35"), Stock: 10})
	s.AddProduct(&product.Product{ID: "px", TenantID: "t2", Name: "Outro", Price: decimal.NewFromInt(1), Stock: 10})
	s.AddClient(&client.Client{ID: "c1", TenantID: "t1", Name: "Ana", LastName: "Silva"})
	s.AddCoupon(&coupondomain.Coupon{
		ID: "save10", TenantID: "t1", Name: "SAVE10",
		DiscountPercentage: decimal.NewFromInt(10),
		ExpirationDate:     time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
	})
	s.AddCoupon(&coupondomain.Coupon{
		ID: "old", TenantID: "t1", Name: "OLD",
		DiscountPercentage: decimal.NewFromInt(50),
		ExpirationDate:     time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
	})
	return s
}

func ptr(s string) *string { return &s }

func stockOf(t *testing.T, s *memory.Store, id string) int {
	t.Helper()
	p, ok := s.Product(id)
	require.True(t, ok)
	return p.Stock
}

func TestCreateSale_WithoutCoupon(t *testing.T) {
	store := newStore()
	svc := newTestService(t, store)

	created, err := svc.CreateSale(context.Background(), "t1", CreateSaleInput{
		Items: []LineRequest{{ProductID: "p1", Quantity: 2}},
	})
	require.NoError(t, err)

	assert.Equal(t, "200.00", sale.Format(created.Subtotal))
	assert.Equal(t, "0.00", sale.Format(created.Discount))
	assert.Equal(t, "200.00", sale.Format(created.Total))
	assert.Nil(t, created.CouponID)
	assert.Equal(t, "-", created.ClientName())
	assert.Equal(t, now, created.CreatedAt)
	require.Len(t, created.Items, 1)
	assert.Equal(t, "Café", created.Items[0].ProductName)
	assert.Equal(t, 3, stockOf(t, store, "p1"))
}

func TestCreateSale_WithCouponAndClient(t *testing.T) {
	store := newStore()
	svc := newTestService(t, store)

	created, err := svc.CreateSale(context.Background(), "t1", CreateSaleInput{
		ClientID: ptr("c1"),
		CouponID: ptr("save10"),
		Items: []LineRequest{
			{ProductID: "p2", Quantity: 3},
			{ProductID: "p1", Quantity: 1},
		},
	})
	require.NoError(t, err)

	// 3 x 4.35 + 100 = 113.05; 10% = 11.305 -> 11.31
	assert.Equal(t, "113.05", sale.Format(created.Subtotal))
	assert.Equal(t, "11.31", sale.Format(created.Discount))
	assert.Equal(t, "101.74", sale.Format(created.Total))
	assert.Equal(t, "Ana Silva", created.ClientName())
	require.NotNil(t, created.Coupon)
	assert.Equal(t, "SAVE10", created.Coupon.Name)

	sum := decimal.Zero
	for _, it := range created.Items {
		assert.True(t, it.Subtotal.Equal(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))))
		assert.Equal(t, created.ID, it.SaleID)
		sum = sum.Add(it.Subtotal)
	}
	assert.True(t, sum.Equal(created.Subtotal))
	assert.True(t, created.Total.Equal(created.Subtotal.Sub(created.Discount)))
	assert.Equal(t, 4, stockOf(t, store, "p1"))
	assert.Equal(t, 7, stockOf(t, store, "p2"))
}

func TestCreateSale_ExpiredCoupon(t *testing.T) {
	store := newStore()
	svc := newTestService(t, store)

	_, err := svc.CreateSale(context.Background(), "t1", CreateSaleInput{
		CouponID: ptr("old"),
		Items:    []LineRequest{{ProductID: "p1", Quantity: 1}},
	})

	var expired *failure.CouponExpiredError
	require.True(t, errors.As(err, &expired))
	assert.Equal(t, "OLD", expired.Name)
	assert.Equal(t, 5, stockOf(t, store, "p1"))
	assert.Zero(t, store.SaleCount())
}

func TestCreateSale_CouponValidOnExpirationDay(t *testing.T) {
	store := newStore()
	store.AddCoupon(&coupondomain.Coupon{
		ID: "today", TenantID: "t1", Name: "HOJE",
		DiscountPercentage: decimal.NewFromInt(5),
		ExpirationDate:     time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
	})
	svc := newTestService(t, store)

	created, err := svc.CreateSale(context.Background(), "t1", CreateSaleInput{
		CouponID: ptr("today"),
		Items:    []LineRequest{{ProductID: "p1", Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, "5.00", sale.Format(created.Discount))
}

func TestCreateSale_InsufficientStock(t *testing.T) {
	store := newStore()
	store.AddProduct(&product.Product{ID: "p1", TenantID: "t1", Name: "Café", Price: decimal.NewFromInt(100), Stock: 2})
	svc := newTestService(t, store)

	_, err := svc.CreateSale(context.Background(), "t1", CreateSaleInput{
		Items: []LineRequest{
			{ProductID: "p2", Quantity: 1},
			{ProductID: "p1", Quantity: 3},
		},
	})

	var stockErr *failure.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, "Café", stockErr.ProductName)
	assert.Equal(t, 2, stockErr.Available)
	assert.Equal(t, 3, stockErr.Requested)

	assert.Equal(t, 2, stockOf(t, store, "p1"))
	assert.Equal(t, 10, stockOf(t, store, "p2"))
	assert.Zero(t, store.SaleCount())
	assert.Zero(t, store.LineItemCount())
}

func TestCreateSale_RepeatedProductCountsPendingReservations(t *testing.T) {
	store := newStore()
	svc := newTestService(t, store)

	_, err := svc.CreateSale(context.Background(), "t1", CreateSaleInput{
		Items: []LineRequest{
			{ProductID: "p1", Quantity: 3},
			{ProductID: "p1", Quantity: 3},
		},
	})

	var stockErr *failure.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, 2, stockErr.Available)
	assert.Equal(t, 5, stockOf(t, store, "p1"))

	created, err := svc.CreateSale(context.Background(), "t1", CreateSaleInput{
		Items: []LineRequest{
			{ProductID: "p1", Quantity: 3},
			{ProductID: "p1", Quantity: 2},
		},
	})
	require.NoError(t, err)
	assert.Len(t, created.Items, 2)
	assert.Equal(t, 0, stockOf(t, store, "p1"))
}

func TestCreateSale_FirstFailingLineWins(t *testing.T) {
	store := newStore()
	svc := newTestService(t, store)
	ctx := context.Background()

	_, err := svc.CreateSale(ctx, "t1", CreateSaleInput{
		Items: []LineRequest{{ProductID: "missing", Quantity: 1}, {ProductID: "p1", Quantity: 99}},
	})
	assert.ErrorIs(t, err, failure.ErrNotFound)

	_, err = svc.CreateSale(ctx, "t1", CreateSaleInput{
		Items: []LineRequest{{ProductID: "p1", Quantity: 99}, {ProductID: "missing", Quantity: 1}},
	})
	assert.ErrorIs(t, err, failure.ErrInsufficientStock)
}

func TestCreateSale_CrossTenantIsNotFound(t *testing.T) {
	store := newStore()
	svc := newTestService(t, store)
	ctx := context.Background()

	tests := []struct {
		name string
		in   CreateSaleInput
	}{
		{"produto", CreateSaleInput{Items: []LineRequest{{ProductID: "p1", Quantity: 1}}}},
		{"cliente", CreateSaleInput{ClientID: ptr("c1"), Items: []LineRequest{{ProductID: "px", Quantity: 1}}}},
		{"cupom", CreateSaleInput{CouponID: ptr("save10"), Items: []LineRequest{{ProductID: "px", Quantity: 1}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateSale(ctx, "t2", tt.in)
			assert.ErrorIs(t, err, failure.ErrNotFound)
		})
	}
	assert.Equal(t, 5, stockOf(t, store, "p1"))
	assert.Equal(t, 10, stockOf(t, store, "px"))
	assert.Zero(t, store.SaleCount())
}

func TestCreateSale_Validation(t *testing.T) {
	svc := newTestService(t, newStore())

	tests := []struct {
		name string
		in   CreateSaleInput
	}{
		{"sem itens", CreateSaleInput{}},
		{"quantidade zero", CreateSaleInput{Items: []LineRequest{{ProductID: "p1", Quantity: 0}}}},
		{"quantidade negativa", CreateSaleInput{Items: []LineRequest{{ProductID: "p1", Quantity: -1}}}},
		{"produto vazio", CreateSaleInput{Items: []LineRequest{{Quantity: 1}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateSale(context.Background(), "t1", tt.in)
			assert.ErrorIs(t, err, failure.ErrValidation)
		})
	}
}

func TestCreateSale_ConcurrentSalesNeverOversell(t *testing.T) {
	const qty = 3
	store := newStore()
	store.AddProduct(&product.Product{ID: "p1", TenantID: "t1", Name: "Café", Price: decimal.NewFromInt(100), Stock: 2*qty - 1})
	svc := newTestService(t, store)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.CreateSale(context.Background(), "t1", CreateSaleInput{
				Items: []LineRequest{{ProductID: "p1", Quantity: qty}},
			})
		}(i)
	}
	wg.Wait()

	succeeded, rejected := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, failure.ErrInsufficientStock):
			rejected++
		default:
			t.Fatalf("erro inesperado: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, rejected)
	assert.Equal(t, qty-1, stockOf(t, store, "p1"))
	assert.Equal(t, 1, store.SaleCount())
}

// failingStore falha a escrita de estoque depois que a venda já foi inserida
type failingStore struct {
	*memory.Store
}

func (f failingStore) WithinTx(ctx context.Context, fn func(ctx context.Context, tx sale.Tx) error) error {
	return f.Store.WithinTx(ctx, func(ctx context.Context, tx sale.Tx) error {
		return fn(ctx, failingTx{tx})
	})
}

type failingTx struct {
	sale.Tx
}

func (failingTx) UpdateStock(ctx context.Context, tenantID, productID string, stock int) error {
	return errors.New("conexão perdida")
}

func TestCreateSale_PersistenceFailureRollsBack(t *testing.T) {
	store := newStore()
	svc := newTestService(t, failingStore{store})

	_, err := svc.CreateSale(context.Background(), "t1", CreateSaleInput{
		Items: []LineRequest{{ProductID: "p1", Quantity: 1}},
	})

	assert.ErrorIs(t, err, failure.ErrPersistence)
	assert.False(t, failure.IsDomain(err))
	assert.Equal(t, 5, stockOf(t, store, "p1"))
	assert.Zero(t, store.SaleCount())
}

func TestFindSale(t *testing.T) {
	store := newStore()
	svc := newTestService(t, store)
	ctx := context.Background()

	created, err := svc.CreateSale(ctx, "t1", CreateSaleInput{Items: []LineRequest{{ProductID: "p1", Quantity: 1}}})
	require.NoError(t, err)

	found, err := svc.FindSale(ctx, "t1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	store.AddProduct(&product.Product{ID: "p1", TenantID: "t1", Name: "Café Especial", Price: decimal.NewFromInt(150), Stock: 4})

	again, err := svc.FindSale(ctx, "t1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, sale.Format(found.Total), sale.Format(again.Total))
	require.Len(t, again.Items, 1)
	assert.Equal(t, "Café", again.Items[0].ProductName)
	assert.Equal(t, "100.00", sale.Format(again.Items[0].Price))
	assert.Equal(t, found.Items[0].ID, again.Items[0].ID)

	_, err = svc.FindSale(ctx, "t2", created.ID)
	assert.ErrorIs(t, err, failure.ErrNotFound)

	list, err := svc.ListSales(ctx, "t1")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCreateSale_RunsCommitHooksOnlyOnSuccess(t *testing.T) {
	store := newStore()
	svc := newTestService(t, store)
	var seen []string
	svc.OnCommit(func(ctx context.Context, committed *sale.Sale) {
		seen = append(seen, committed.ID)
	})

	created, err := svc.CreateSale(context.Background(), "t1", CreateSaleInput{Items: []LineRequest{{ProductID: "p1", Quantity: 1}}})
	require.NoError(t, err)

	_, err = svc.CreateSale(context.Background(), "t1", CreateSaleInput{Items: []LineRequest{{ProductID: "p1", Quantity: 99}}})
	require.Error(t, err)

	assert.Equal(t, []string{created.ID}, seen)
}

type readFailStore struct {
	*memory.Store
}

func (readFailStore) FindByID(ctx context.Context, tenantID, id string) (*sale.Sale, error) {
	return nil, errors.New("conexão perdida")
}

func TestCreateSale_ReadBackFailureReturnsCommittedSale(t *testing.T) {
	store := newStore()
	svc := newTestService(t, readFailStore{store})
	var hooked int
	svc.OnCommit(func(ctx context.Context, committed *sale.Sale) { hooked++ })

	created, err := svc.CreateSale(context.Background(), "t1", CreateSaleInput{
		ClientID: ptr("c1"),
		CouponID: ptr("save10"),
		Items:    []LineRequest{{ProductID: "p1", Quantity: 2}},
	})
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.Equal(t, 1, store.SaleCount())
	assert.Equal(t, 3, stockOf(t, store, "p1"))
	assert.Equal(t, 1, hooked)

	assert.Equal(t, "180.00", sale.Format(created.Total))
	require.NotNil(t, created.Client)
	assert.Equal(t, "c1", created.Client.ID)
	require.NotNil(t, created.Coupon)
	assert.Equal(t, "SAVE10", created.Coupon.Name)
	assert.Len(t, created.Items, 1)
}
