package coupon

import (
	"context"
	"fmt"
	"time"

	coupondomain "github.com/hugohenrick/erp-pdv/internal/domain/coupon"
	"github.com/hugohenrick/erp-pdv/internal/domain/failure"
	"github.com/hugohenrick/erp-pdv/pkg/logger"
	"github.com/shopspring/decimal"
)

// Notifier recebe o aviso de cupom criado. A implementação não pode
// bloquear nem falhar a criação do cupom.
type Notifier interface {
	CouponCreated(ctx context.Context, c *coupondomain.Coupon)
}

// CreateInput são os dados de criação de cupom
type CreateInput struct {
	Name               string
	DiscountPercentage decimal.Decimal
	ExpirationDate     time.Time
}

// Service cria cupons e dispara a notificação aos clientes
type Service struct {
	repo     coupondomain.Repository
	notifier Notifier
	logger   logger.Logger
}

// NewService cria uma nova instância de Service
func NewService(repo coupondomain.Repository, notifier Notifier, log logger.Logger) *Service {
	return &Service{repo: repo, notifier: notifier, logger: log}
}

// Create valida e persiste um cupom. O nome é único por tenant.
func (s *Service) Create(ctx context.Context, tenantID string, in CreateInput) (*coupondomain.Coupon, error) {
	c, err := coupondomain.NewCoupon(tenantID, in.Name, in.DiscountPercentage, in.ExpirationDate)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByName(ctx, tenantID, c.Name)
	if err != nil {
		return nil, failure.Persistence("verificar nome do cupom", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: já existe um cupom com o nome %q", failure.ErrConflict, c.Name)
	}

	if err := s.repo.Create(ctx, c); err != nil {
		if failure.IsDomain(err) {
			return nil, err
		}
		return nil, failure.Persistence("criar cupom", err)
	}

	s.logger.Info("cupom criado", "tenant_id", tenantID, "coupon_id", c.ID, "name", c.Name)

	if s.notifier != nil {
		s.notifier.CouponCreated(ctx, c)
	}
	return c, nil
}
