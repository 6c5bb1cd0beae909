package repository

import (
	"context"
	"fmt"

	"github.com/hugohenrick/erp-pdv/internal/domain/coupon"
	"github.com/hugohenrick/erp-pdv/internal/domain/failure"
	"github.com/jackc/pgx/v5/pgxpool"
)

const couponColumns = "id, tenant_id, name, expiration_date, discount_percentage, created_at"

// CouponRepository implementa as interfaces coupon.Repository e coupon.Finder
type CouponRepository struct {
	db *pgxpool.Pool
}

// NewCouponRepository cria uma nova instância de CouponRepository
func NewCouponRepository(db *pgxpool.Pool) *CouponRepository {
	return &CouponRepository{db: db}
}

// Create implementa coupon.Repository.Create
func (r *CouponRepository) Create(ctx context.Context, c *coupon.Coupon) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO coupons (id, tenant_id, name, expiration_date, discount_percentage)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`,
		c.ID, c.TenantID, c.Name, c.ExpirationDate, c.DiscountPercentage,
	).Scan(&c.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: já existe um cupom com o nome %q", failure.ErrConflict, c.Name)
		}
		return fmt.Errorf("erro ao criar cupom: %w", err)
	}
	return nil
}

// ExistsByName implementa coupon.Repository.ExistsByName
func (r *CouponRepository) ExistsByName(ctx context.Context, tenantID, name string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM coupons WHERE tenant_id = $1 AND lower(name) = lower($2))`,
		tenantID, name,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("erro ao verificar cupom: %w", err)
	}
	return exists, nil
}

// FindCoupon implementa coupon.Finder.FindCoupon
func (r *CouponRepository) FindCoupon(ctx context.Context, tenantID, id string) (*coupon.Coupon, error) {
	return findCoupon(ctx, r.db, tenantID, id)
}

func findCoupon(ctx context.Context, q querier, tenantID, id string) (*coupon.Coupon, error) {
	var c coupon.Coupon
	err := findScoped(ctx, q, "Cupom", "coupons", couponColumns, tenantID, id,
		&c.ID, &c.TenantID, &c.Name, &c.ExpirationDate, &c.DiscountPercentage, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	c.ExpirationDate = coupon.DateOnly(c.ExpirationDate)
	return &c, nil
}
