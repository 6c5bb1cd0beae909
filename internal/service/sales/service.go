// Package sales implementa o motor transacional de vendas: converte um
// carrinho em uma venda confirmada, garantindo estoque, validade do cupom
// e totais exatos, de forma atômica.
package sales

import (
	"context"
	"errors"

	"github.com/hugohenrick/erp-pdv/internal/domain/client"
	"github.com/hugohenrick/erp-pdv/internal/domain/failure"
	"github.com/hugohenrick/erp-pdv/internal/domain/sale"
	"github.com/hugohenrick/erp-pdv/internal/service/coupon"
	"github.com/hugohenrick/erp-pdv/internal/service/inventory"
	"github.com/hugohenrick/erp-pdv/pkg/logger"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// LineRequest é um item solicitado no carrinho
type LineRequest struct {
	ProductID string
	Quantity  int
}

// CreateSaleInput é a requisição de criação de venda
type CreateSaleInput struct {
	ClientID *string
	CouponID *string
	Items    []LineRequest
}

// Store reúne o que o serviço precisa do armazenamento
type Store interface {
	sale.UnitOfWork
	sale.Repository
}

// CommitHook é chamado com a venda já confirmada
type CommitHook func(ctx context.Context, committed *sale.Sale)

// Service é o motor de vendas
type Service struct {
	store     Store
	guard     *inventory.Guard
	validator *coupon.Validator
	logger    logger.Logger
	tracer    trace.Tracer
	hooks     []CommitHook
}

// NewService cria uma nova instância de Service
func NewService(store Store, guard *inventory.Guard, validator *coupon.Validator, log logger.Logger, tracer trace.Tracer) *Service {
	return &Service{
		store:     store,
		guard:     guard,
		validator: validator,
		logger:    log,
		tracer:    tracer,
	}
}

// OnCommit registra um hook executado após cada venda confirmada
func (s *Service) OnCommit(h CommitHook) {
	s.hooks = append(s.hooks, h)
}

// Validate rejeita requisições malformadas antes de tocar o estoque
func (in CreateSaleInput) Validate() error {
	if len(in.Items) == 0 {
		return failure.Validation("items", "a venda deve conter ao menos um produto")
	}
	for _, it := range in.Items {
		if it.ProductID == "" {
			return failure.Validation("items.product_id", "produto não informado")
		}
		if it.Quantity < 1 {
			return failure.Validation("items.quantity", "quantidade deve ser maior que zero")
		}
	}
	return nil
}

func (in CreateSaleInput) productIDs() []string {
	ids := make([]string, len(in.Items))
	for i, it := range in.Items {
		ids[i] = it.ProductID
	}
	return ids
}

// CreateSale cria a venda dentro de uma única transação e retorna a venda
// completa lida após o commit. Se a releitura falhar, retorna a venda
// montada na transação. Qualquer falha desfaz tudo: nenhum estoque
// é alterado e nenhuma venda ou item fica gravado.
func (s *Service) CreateSale(ctx context.Context, tenantID string, in CreateSaleInput) (*sale.Sale, error) {
	ctx, span := s.tracer.Start(ctx, "sales.CreateSale", trace.WithAttributes(
		attribute.String("tenant.id", tenantID),
		attribute.Int("sale.items", len(in.Items)),
	))
	defer span.End()

	if err := in.Validate(); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	var committed *sale.Sale
	err := s.store.WithinTx(ctx, func(ctx context.Context, tx sale.Tx) error {
		created, err := s.create(ctx, tx, tenantID, in)
		if err != nil {
			return err
		}
		committed = created
		return nil
	})
	if err != nil {
		if !failure.IsDomain(err) {
			var pe *failure.PersistenceError
			if !errors.As(err, &pe) {
				err = failure.Persistence("confirmar venda", err)
			}
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.Warn("venda desfeita", "tenant_id", tenantID, "error", err)
		return nil, err
	}

	span.SetAttributes(attribute.String("sale.id", committed.ID))

	// A venda já está gravada: falha na releitura não pode virar erro
	created, err := s.store.FindByID(ctx, tenantID, committed.ID)
	if err != nil {
		s.logger.Warn("erro ao reler venda confirmada", "tenant_id", tenantID, "sale_id", committed.ID, "error", err)
		created = committed
	}

	s.logger.Info("venda confirmada",
		"tenant_id", tenantID,
		"sale_id", created.ID,
		"items", len(created.Items),
		"total", sale.Format(created.Total),
	)
	for _, h := range s.hooks {
		h(ctx, created)
	}
	return created, nil
}

func (s *Service) create(ctx context.Context, tx sale.Tx, tenantID string, in CreateSaleInput) (*sale.Sale, error) {
	var buyer *client.Client
	if in.ClientID != nil && *in.ClientID != "" {
		found, err := tx.FindClient(ctx, tenantID, *in.ClientID)
		if err != nil {
			if errors.Is(err, failure.ErrNotFound) {
				return nil, failure.NotFound("Cliente", *in.ClientID)
			}
			return nil, failure.Persistence("buscar cliente", err)
		}
		buyer = found
	} else {
		in.ClientID = nil
	}

	discount, err := s.validator.Resolve(ctx, tx, tenantID, in.CouponID)
	if err != nil {
		if failure.IsDomain(err) {
			return nil, err
		}
		return nil, failure.Persistence("buscar cupom", err)
	}
	var couponID *string
	if discount.Coupon != nil {
		id := discount.Coupon.ID
		couponID = &id
	}

	ledger, err := s.guard.Open(ctx, tx, tenantID, in.productIDs())
	if err != nil {
		return nil, failure.Persistence("bloquear produtos", err)
	}

	items := make([]sale.LineItem, 0, len(in.Items))
	for _, line := range in.Items {
		p, err := ledger.Reserve(line.ProductID, line.Quantity)
		if err != nil {
			return nil, err
		}
		items = append(items, sale.NewLineItem(p, line.Quantity))
	}

	created := sale.NewSale(tenantID, in.ClientID, couponID, items, discount.Percentage)

	if err := tx.Insert(ctx, created); err != nil {
		return nil, failure.Persistence("gravar venda", err)
	}
	if err := s.guard.Apply(ctx, tx, tenantID, ledger); err != nil {
		return nil, failure.Persistence("atualizar estoque", err)
	}
	created.Client = buyer
	created.Coupon = discount.Coupon
	return created, nil
}

// FindSale retorna uma venda do tenant
func (s *Service) FindSale(ctx context.Context, tenantID, id string) (*sale.Sale, error) {
	found, err := s.store.FindByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, failure.ErrNotFound) {
			return nil, failure.NotFound("Venda", id)
		}
		return nil, failure.Persistence("buscar venda", err)
	}
	return found, nil
}

// ListSales lista as vendas do tenant, mais recentes primeiro
func (s *Service) ListSales(ctx context.Context, tenantID string) ([]*sale.Sale, error) {
	list, err := s.store.List(ctx, tenantID)
	if err != nil {
		return nil, failure.Persistence("listar vendas", err)
	}
	return list, nil
}
