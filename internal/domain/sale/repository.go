package sale

import (
	"context"
	"time"

	"github.com/hugohenrick/erp-pdv/internal/domain/client"
	"github.com/hugohenrick/erp-pdv/internal/domain/coupon"
	"github.com/hugohenrick/erp-pdv/internal/domain/product"
)

// Repository define as leituras de vendas confirmadas
type Repository interface {
	// FindByID busca uma venda completa (cliente, cupom e itens)
	FindByID(ctx context.Context, tenantID, id string) (*Sale, error)

	// List lista as vendas do tenant, mais recentes primeiro
	List(ctx context.Context, tenantID string) ([]*Sale, error)

	// FindInRange busca as vendas com created_at em [from, to), mais recentes primeiro
	FindInRange(ctx context.Context, tenantID string, from, to time.Time) ([]*Sale, error)
}

// UnitOfWork executa uma função dentro de uma transação. Se fn retornar
// erro nada é gravado; caso contrário tudo é confirmado de uma vez.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// Tx são as operações disponíveis dentro da transação de venda
type Tx interface {
	coupon.Finder

	// FindClient busca um cliente restrito ao tenant
	FindClient(ctx context.Context, tenantID, id string) (*client.Client, error)

	// LockProducts bloqueia os produtos do tenant para atualização e os
	// retorna indexados por ID. IDs inexistentes ficam fora do mapa.
	LockProducts(ctx context.Context, tenantID string, ids []string) (map[string]*product.Product, error)

	// UpdateStock grava o novo estoque de um produto bloqueado
	UpdateStock(ctx context.Context, tenantID, productID string, stock int) error

	// Insert grava a venda e seus itens, preenchendo CreatedAt
	Insert(ctx context.Context, s *Sale) error
}
