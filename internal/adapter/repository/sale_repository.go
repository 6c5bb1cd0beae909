package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/hugohenrick/erp-pdv/internal/domain/client"
	"github.com/hugohenrick/erp-pdv/internal/domain/coupon"
	"github.com/hugohenrick/erp-pdv/internal/domain/failure"
	"github.com/hugohenrick/erp-pdv/internal/domain/product"
	"github.com/hugohenrick/erp-pdv/internal/domain/sale"
	"github.com/hugohenrick/erp-pdv/internal/infrastructure/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// Transactor abre transações no banco
type Transactor interface {
	Transaction(ctx context.Context, txFunc func(tx pgx.Tx) error) error
}

const productColumns = "id, tenant_id, name, price, stock, created_at, updated_at"

const saleSelect = `SELECT
		s.id, s.tenant_id, s.client_id, s.coupon_id, s.subtotal, s.discount, s.total, s.created_at,
		c.id, c.name, c.last_name, c.email, c.phone, c.created_at,
		k.id, k.name, k.expiration_date, k.discount_percentage, k.created_at
	FROM sales s
	LEFT JOIN clients c ON c.id = s.client_id AND c.tenant_id = s.tenant_id
	LEFT JOIN coupons k ON k.id = s.coupon_id AND k.tenant_id = s.tenant_id
	WHERE s.tenant_id = $1`

// SaleRepository implementa sale.Repository e sale.UnitOfWork
type SaleRepository struct {
	db querier
	tx Transactor
}

// NewSaleRepository cria uma nova instância de SaleRepository
func NewSaleRepository(db *database.PostgresDB) *SaleRepository {
	return &SaleRepository{db: db.Pool(), tx: db}
}

// WithinTx implementa sale.UnitOfWork
func (r *SaleRepository) WithinTx(ctx context.Context, fn func(ctx context.Context, tx sale.Tx) error) error {
	return r.tx.Transaction(ctx, func(tx pgx.Tx) error {
		return fn(ctx, &saleTx{tx: tx})
	})
}

// FindByID implementa sale.Repository.FindByID
func (r *SaleRepository) FindByID(ctx context.Context, tenantID, id string) (*sale.Sale, error) {
	sales, err := r.query(ctx, saleSelect+` AND s.id = $2`, tenantID, id)
	if err != nil {
		return nil, err
	}
	if len(sales) == 0 {
		return nil, failure.NotFound("Venda", id)
	}
	return sales[0], nil
}

// List implementa sale.Repository.List
func (r *SaleRepository) List(ctx context.Context, tenantID string) ([]*sale.Sale, error) {
	return r.query(ctx, saleSelect+` ORDER BY s.created_at DESC`, tenantID)
}

// FindInRange implementa sale.Repository.FindInRange
func (r *SaleRepository) FindInRange(ctx context.Context, tenantID string, from, to time.Time) ([]*sale.Sale, error) {
	return r.query(ctx,
		saleSelect+` AND s.created_at >= $2 AND s.created_at < $3 ORDER BY s.created_at DESC`,
		tenantID, from, to)
}

func (r *SaleRepository) query(ctx context.Context, sql string, args ...any) ([]*sale.Sale, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar vendas: %w", err)
	}
	defer rows.Close()

	sales := make([]*sale.Sale, 0)
	index := make(map[string]*sale.Sale)
	ids := make([]string, 0)
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		sales = append(sales, s)
		index[s.ID] = s
		ids = append(ids, s.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar vendas: %w", err)
	}
	rows.Close()

	if len(ids) == 0 {
		return sales, nil
	}
	if err := r.loadItems(ctx, ids, index); err != nil {
		return nil, err
	}
	return sales, nil
}

func (r *SaleRepository) loadItems(ctx context.Context, ids []string, index map[string]*sale.Sale) error {
	rows, err := r.db.Query(ctx,
		`SELECT id, sale_id, product_id, product_name, price, quantity, subtotal
		FROM sale_line_items WHERE sale_id = ANY($1) ORDER BY sale_id, position`,
		ids)
	if err != nil {
		return fmt.Errorf("erro ao buscar itens das vendas: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var it sale.LineItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.ProductName, &it.Price, &it.Quantity, &it.Subtotal); err != nil {
			return fmt.Errorf("erro ao ler item da venda: %w", err)
		}
		if s, ok := index[it.SaleID]; ok {
			s.Items = append(s.Items, it)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("erro ao iterar itens das vendas: %w", err)
	}
	return nil
}

func scanSale(row pgx.Row) (*sale.Sale, error) {
	var (
		s sale.Sale

		clientID, clientName, clientLastName, clientEmail, clientPhone *string
		clientCreatedAt                                                *time.Time

		couponID, couponName *string
		couponExpiration     *time.Time
		couponPercentage     decimal.NullDecimal
		couponCreatedAt      *time.Time
	)

	err := row.Scan(
		&s.ID, &s.TenantID, &s.ClientID, &s.CouponID, &s.Subtotal, &s.Discount, &s.Total, &s.CreatedAt,
		&clientID, &clientName, &clientLastName, &clientEmail, &clientPhone, &clientCreatedAt,
		&couponID, &couponName, &couponExpiration, &couponPercentage, &couponCreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler venda: %w", err)
	}

	if clientID != nil {
		s.Client = &client.Client{
			ID:        *clientID,
			TenantID:  s.TenantID,
			Name:      deref(clientName),
			LastName:  deref(clientLastName),
			Email:     deref(clientEmail),
			Phone:     deref(clientPhone),
			CreatedAt: derefTime(clientCreatedAt),
		}
	}
	if couponID != nil {
		s.Coupon = &coupon.Coupon{
			ID:                 *couponID,
			TenantID:           s.TenantID,
			Name:               deref(couponName),
			ExpirationDate:     coupon.DateOnly(derefTime(couponExpiration)),
			DiscountPercentage: couponPercentage.Decimal,
			CreatedAt:          derefTime(couponCreatedAt),
		}
	}
	s.Items = make([]sale.LineItem, 0)
	return &s, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

// saleTx implementa sale.Tx sobre uma pgx.Tx
type saleTx struct {
	tx pgx.Tx
}

func (t *saleTx) FindClient(ctx context.Context, tenantID, id string) (*client.Client, error) {
	return findClient(ctx, t.tx, tenantID, id)
}

func (t *saleTx) FindCoupon(ctx context.Context, tenantID, id string) (*coupon.Coupon, error) {
	return findCoupon(ctx, t.tx, tenantID, id)
}

// LockProducts bloqueia as linhas com SELECT ... FOR UPDATE em ordem de ID
func (t *saleTx) LockProducts(ctx context.Context, tenantID string, ids []string) (map[string]*product.Product, error) {
	rows, err := t.tx.Query(ctx, scopedByIDs("products", productColumns)+" FOR UPDATE", tenantID, ids)
	if err != nil {
		return nil, fmt.Errorf("erro ao bloquear produtos: %w", err)
	}
	defer rows.Close()

	locked := make(map[string]*product.Product, len(ids))
	for rows.Next() {
		var p product.Product
		if err := rows.Scan(&p.ID, &p.TenantID, &p.Name, &p.Price, &p.Stock, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("erro ao ler produto: %w", err)
		}
		locked[p.ID] = &p
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar produtos: %w", err)
	}
	return locked, nil
}

func (t *saleTx) UpdateStock(ctx context.Context, tenantID, productID string, stock int) error {
	tag, err := t.tx.Exec(ctx,
		`UPDATE products SET stock = $3, updated_at = now() WHERE tenant_id = $1 AND id = $2`,
		tenantID, productID, stock)
	if err != nil {
		return fmt.Errorf("erro ao atualizar estoque: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return failure.NotFound("Produto", productID)
	}
	return nil
}

func (t *saleTx) Insert(ctx context.Context, s *sale.Sale) error {
	err := t.tx.QueryRow(ctx,
		`INSERT INTO sales (id, tenant_id, client_id, coupon_id, subtotal, discount, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`,
		s.ID, s.TenantID, s.ClientID, s.CouponID, s.Subtotal, s.Discount, s.Total,
	).Scan(&s.CreatedAt)
	if err != nil {
		return fmt.Errorf("erro ao inserir venda: %w", err)
	}

	batch := &pgx.Batch{}
	for i, it := range s.Items {
		batch.Queue(
			`INSERT INTO sale_line_items (id, sale_id, product_id, product_name, price, quantity, subtotal, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			it.ID, s.ID, it.ProductID, it.ProductName, it.Price, it.Quantity, it.Subtotal, i,
		)
	}

	br := t.tx.SendBatch(ctx, batch)
	for range s.Items {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("erro ao inserir item da venda: %w", err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("erro ao finalizar inserção dos itens: %w", err)
	}
	return nil
}
