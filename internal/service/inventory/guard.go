package inventory

import (
	"context"
	"fmt"

	"github.com/hugohenrick/erp-pdv/internal/domain/product"
)

// Locker bloqueia produtos do tenant para leitura e escrita
type Locker interface {
	LockProducts(ctx context.Context, tenantID string, ids []string) (map[string]*product.Product, error)
}

// StockWriter grava o estoque final de um produto
type StockWriter interface {
	UpdateStock(ctx context.Context, tenantID, productID string, stock int) error
}

// Guard abre ledgers de estoque e aplica as mudanças dentro da transação
type Guard struct{}

// NewGuard cria um novo Guard
func NewGuard() *Guard {
	return &Guard{}
}

// Open bloqueia todos os produtos citados e retorna um ledger sobre eles
func (g *Guard) Open(ctx context.Context, locker Locker, tenantID string, productIDs []string) (*Ledger, error) {
	locked, err := locker.LockProducts(ctx, tenantID, DistinctIDs(productIDs))
	if err != nil {
		return nil, fmt.Errorf("erro ao bloquear produtos: %w", err)
	}
	return NewLedger(tenantID, locked), nil
}

// Apply grava o estoque final de cada produto reservado no ledger
func (g *Guard) Apply(ctx context.Context, writer StockWriter, tenantID string, l *Ledger) error {
	for _, ch := range l.Changes() {
		if ch.Stock < 0 {
			return fmt.Errorf("estoque negativo calculado para o produto %s", ch.ProductID)
		}
		if err := writer.UpdateStock(ctx, tenantID, ch.ProductID, ch.Stock); err != nil {
			return fmt.Errorf("erro ao atualizar estoque do produto %s: %w", ch.ProductID, err)
		}
	}
	return nil
}
