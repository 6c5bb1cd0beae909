package coupon

import "context"

// Repository define a interface de persistência de cupons
type Repository interface {
	// Create persiste um novo cupom
	Create(ctx context.Context, c *Coupon) error

	// ExistsByName verifica se já existe um cupom com o nome no tenant
	ExistsByName(ctx context.Context, tenantID, name string) (bool, error)
}

// Finder busca um cupom restrito ao tenant
type Finder interface {
	FindCoupon(ctx context.Context, tenantID, id string) (*Coupon, error)
}
