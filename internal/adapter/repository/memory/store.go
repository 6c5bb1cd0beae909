// Package memory implementa os repositórios em memória, com as mesmas
// garantias de atomicidade do PostgreSQL: cada transação é serializada e
// só publica suas escritas no commit.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/hugohenrick/erp-pdv/internal/domain/client"
	"github.com/hugohenrick/erp-pdv/internal/domain/coupon"
	"github.com/hugohenrick/erp-pdv/internal/domain/failure"
	"github.com/hugohenrick/erp-pdv/internal/domain/product"
	"github.com/hugohenrick/erp-pdv/internal/domain/sale"
	"github.com/hugohenrick/erp-pdv/pkg/tenant"
)

// Store guarda produtos, clientes, cupons e vendas em memória
type Store struct {
	txMu sync.Mutex   // uma transação de escrita por vez
	mu   sync.RWMutex // protege os mapas

	products map[string]*product.Product
	clients  map[string]*client.Client
	coupons  map[string]*coupon.Coupon
	sales    []*sale.Sale

	now func() time.Time
}

// NewStore cria um Store vazio. now define o relógio do "servidor" usado
// em created_at; nil usa time.Now.
func NewStore(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{
		products: make(map[string]*product.Product),
		clients:  make(map[string]*client.Client),
		coupons:  make(map[string]*coupon.Coupon),
		now:      now,
	}
}

// lookup é a busca por ID restrita ao tenant usada por todas as entidades
func lookup[T any](m map[string]*T, tenantID, id string, owner func(*T) string) (*T, bool) {
	v, ok := m[id]
	if !ok || !tenant.Owns(tenantID, owner(v)) {
		return nil, false
	}
	return v, true
}

func productOwner(p *product.Product) string { return p.TenantID }
func clientOwner(c *client.Client) string    { return c.TenantID }
func couponOwner(c *coupon.Coupon) string    { return c.TenantID }

// AddProduct insere ou substitui um produto
func (s *Store) AddProduct(p *product.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	s.products[p.ID] = &cp
}

// RemoveProduct remove um produto. Itens de vendas antigas mantêm o snapshot.
func (s *Store) RemoveProduct(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.products, id)
	for _, sl := range s.sales {
		for i := range sl.Items {
			if sl.Items[i].ProductID != nil && *sl.Items[i].ProductID == id {
				sl.Items[i].ProductID = nil
			}
		}
	}
}

// AddClient insere ou substitui um cliente
func (s *Store) AddClient(c *client.Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *c
	s.clients[c.ID] = &cp
}

// AddCoupon insere ou substitui um cupom
func (s *Store) AddCoupon(c *coupon.Coupon) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *c
	s.coupons[c.ID] = &cp
}

// AddSale grava uma venda já confirmada, usada para carga de dados
func (s *Store) AddSale(sl *sale.Sale) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sales = append(s.sales, copySale(sl))
}

// Product retorna uma cópia do produto, sem escopo de tenant
func (s *Store) Product(id string) (product.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[id]
	if !ok {
		return product.Product{}, false
	}
	return *p, true
}

// SaleCount retorna o total de vendas gravadas
func (s *Store) SaleCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sales)
}

// LineItemCount retorna o total de itens de venda gravados
func (s *Store) LineItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, sl := range s.sales {
		n += len(sl.Items)
	}
	return n
}

// WithinTx implementa sale.UnitOfWork
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx sale.Tx) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	tx := &memTx{store: s, stock: make(map[string]int)}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, stock := range tx.stock {
		if p, ok := s.products[id]; ok {
			p.Stock = stock
			p.UpdatedAt = s.now()
		}
	}
	s.sales = append(s.sales, tx.inserted...)
	return nil
}

// memTx acumula as escritas até o commit
type memTx struct {
	store    *Store
	stock    map[string]int
	inserted []*sale.Sale
}

func (t *memTx) FindClient(ctx context.Context, tenantID, id string) (*client.Client, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	c, ok := lookup(t.store.clients, tenantID, id, clientOwner)
	if !ok {
		return nil, failure.NotFound("Cliente", id)
	}
	cp := *c
	return &cp, nil
}

func (t *memTx) FindCoupon(ctx context.Context, tenantID, id string) (*coupon.Coupon, error) {
	return t.store.FindCoupon(ctx, tenantID, id)
}

func (t *memTx) LockProducts(ctx context.Context, tenantID string, ids []string) (map[string]*product.Product, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	out := make(map[string]*product.Product, len(ids))
	for _, id := range ids {
		p, ok := lookup(t.store.products, tenantID, id, productOwner)
		if !ok {
			continue
		}
		cp := *p
		if staged, ok := t.stock[id]; ok {
			cp.Stock = staged
		}
		out[id] = &cp
	}
	return out, nil
}

func (t *memTx) UpdateStock(ctx context.Context, tenantID, productID string, stock int) error {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	if _, ok := lookup(t.store.products, tenantID, productID, productOwner); !ok {
		return failure.NotFound("Produto", productID)
	}
	t.stock[productID] = stock
	return nil
}

func (t *memTx) Insert(ctx context.Context, s *sale.Sale) error {
	s.CreatedAt = t.store.now()
	t.inserted = append(t.inserted, copySale(s))
	return nil
}

// FindCoupon busca um cupom restrito ao tenant
func (s *Store) FindCoupon(ctx context.Context, tenantID, id string) (*coupon.Coupon, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := lookup(s.coupons, tenantID, id, couponOwner)
	if !ok {
		return nil, failure.NotFound("Cupom", id)
	}
	cp := *c
	return &cp, nil
}

// Create implementa coupon.Repository.Create
func (s *Store) Create(ctx context.Context, c *coupon.Coupon) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.coupons {
		if tenant.Owns(c.TenantID, existing.TenantID) && strings.EqualFold(existing.Name, c.Name) {
			return failure.ErrConflict
		}
	}
	cp := *c
	s.coupons[c.ID] = &cp
	return nil
}

// ExistsByName implementa coupon.Repository.ExistsByName
func (s *Store) ExistsByName(ctx context.Context, tenantID, name string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.coupons {
		if tenant.Owns(tenantID, c.TenantID) && strings.EqualFold(c.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

// ListByTenant implementa client.Repository.ListByTenant
func (s *Store) ListByTenant(ctx context.Context, tenantID string) ([]*client.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*client.Client, 0)
	for _, c := range s.clients {
		if tenant.Owns(tenantID, c.TenantID) {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// FindByID implementa sale.Repository.FindByID
func (s *Store) FindByID(ctx context.Context, tenantID, id string) (*sale.Sale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sl := range s.sales {
		if sl.ID == id && tenant.Owns(tenantID, sl.TenantID) {
			return s.hydrate(sl), nil
		}
	}
	return nil, failure.NotFound("Venda", id)
}

// List implementa sale.Repository.List
func (s *Store) List(ctx context.Context, tenantID string) ([]*sale.Sale, error) {
	return s.filter(tenantID, func(*sale.Sale) bool { return true }), nil
}

// FindInRange implementa sale.Repository.FindInRange
func (s *Store) FindInRange(ctx context.Context, tenantID string, from, to time.Time) ([]*sale.Sale, error) {
	return s.filter(tenantID, func(sl *sale.Sale) bool {
		return !sl.CreatedAt.Before(from) && sl.CreatedAt.Before(to)
	}), nil
}

func (s *Store) filter(tenantID string, keep func(*sale.Sale) bool) []*sale.Sale {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*sale.Sale, 0)
	for _, sl := range s.sales {
		if tenant.Owns(tenantID, sl.TenantID) && keep(sl) {
			out = append(out, s.hydrate(sl))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

// hydrate devolve uma cópia com cliente e cupom resolvidos. Chamado com mu travado.
func (s *Store) hydrate(sl *sale.Sale) *sale.Sale {
	out := copySale(sl)
	if out.ClientID != nil {
		if c, ok := s.clients[*out.ClientID]; ok {
			cp := *c
			out.Client = &cp
		}
	}
	if out.CouponID != nil {
		if c, ok := s.coupons[*out.CouponID]; ok {
			cp := *c
			out.Coupon = &cp
		}
	}
	return out
}

func copySale(sl *sale.Sale) *sale.Sale {
	cp := *sl
	cp.Client = nil
	cp.Coupon = nil
	cp.Items = make([]sale.LineItem, len(sl.Items))
	for i, it := range sl.Items {
		cp.Items[i] = it
		if it.ProductID != nil {
			id := *it.ProductID
			cp.Items[i].ProductID = &id
		}
	}
	return &cp
}
