// Package inventory valida e reserva estoque durante a transação de venda.
package inventory

import (
	"sort"

	"github.com/hugohenrick/erp-pdv/internal/domain/failure"
	"github.com/hugohenrick/erp-pdv/internal/domain/product"
)

// StockChange é o estoque final de um produto tocado pela venda
type StockChange struct {
	ProductID string
	Stock     int
}

// Ledger guarda as reservas pendentes de uma única transação.
// Os produtos bloqueados nunca são alterados; o estoque disponível é
// sempre o estoque lido menos o que já foi reservado.
type Ledger struct {
	tenantID string
	products map[string]*product.Product
	reserved map[string]int
	order    []string
}

// NewLedger cria um ledger sobre os produtos bloqueados do tenant
func NewLedger(tenantID string, locked map[string]*product.Product) *Ledger {
	return &Ledger{
		tenantID: tenantID,
		products: locked,
		reserved: make(map[string]int),
	}
}

// Available retorna o estoque ainda disponível para o produto
func (l *Ledger) Available(productID string) int {
	p, ok := l.products[productID]
	if !ok {
		return 0
	}
	return p.Stock - l.reserved[productID]
}

// Reserve verifica e reserva quantity unidades do produto.
// Falha com NotFound se o produto não existe para o tenant e com
// InsufficientStock se o disponível for menor que o solicitado.
func (l *Ledger) Reserve(productID string, quantity int) (*product.Product, error) {
	if quantity < 1 {
		return nil, failure.Validation("quantity", "quantidade deve ser maior que zero")
	}

	p, ok := l.products[productID]
	if !ok || p.TenantID != l.tenantID {
		return nil, failure.NotFound("Produto", productID)
	}

	available := l.Available(productID)
	if available < quantity {
		return nil, &failure.InsufficientStockError{
			ProductID:   p.ID,
			ProductName: p.Name,
			Available:   available,
			Requested:   quantity,
		}
	}

	if _, seen := l.reserved[productID]; !seen {
		l.order = append(l.order, productID)
	}
	l.reserved[productID] += quantity
	return p, nil
}

// Changes retorna o estoque final de cada produto reservado, na ordem
// da primeira reserva
func (l *Ledger) Changes() []StockChange {
	changes := make([]StockChange, 0, len(l.order))
	for _, id := range l.order {
		changes = append(changes, StockChange{
			ProductID: id,
			Stock:     l.products[id].Stock - l.reserved[id],
		})
	}
	return changes
}

// DistinctIDs retorna os IDs únicos em ordem crescente, que é a ordem
// em que as linhas devem ser bloqueadas
func DistinctIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
