package product

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa um produto do catálogo de um tenant
type Product struct {
	ID        string          `json:"id"`         // ID do Produto
	TenantID  string          `json:"tenant_id"`  // ID do Tenant
	Name      string          `json:"name"`       // Nome de exibição
	Price     decimal.Decimal `json:"price"`      // Preço unitário
	Stock     int             `json:"stock"`      // Quantidade em estoque
	CreatedAt time.Time       `json:"created_at"` // Data de Criação
	UpdatedAt time.Time       `json:"updated_at"` // Data de Atualização
}
