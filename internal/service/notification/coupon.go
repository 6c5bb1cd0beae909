package notification

import (
	"context"
	"errors"
	"fmt"
	"html"

	"github.com/hugohenrick/erp-pdv/internal/domain/client"
	coupondomain "github.com/hugohenrick/erp-pdv/internal/domain/coupon"
	"github.com/hugohenrick/erp-pdv/pkg/logger"
)

// BatchSize é o máximo de destinatários por e-mail
const BatchSize = 50

// Submitter recebe tarefas para execução em segundo plano
type Submitter interface {
	Submit(t Task) bool
}

// CouponNotifier avisa os clientes do tenant sobre um novo cupom
type CouponNotifier struct {
	clients client.Repository
	queue   Submitter
	sender  EmailSender
	from    string
	logger  logger.Logger
}

// NewCouponNotifier cria um novo CouponNotifier
func NewCouponNotifier(clients client.Repository, queue Submitter, sender EmailSender, from string, log logger.Logger) *CouponNotifier {
	return &CouponNotifier{
		clients: clients,
		queue:   queue,
		sender:  sender,
		from:    from,
		logger:  log,
	}
}

// CouponCreated agenda o envio e retorna imediatamente
func (n *CouponNotifier) CouponCreated(ctx context.Context, c *coupondomain.Coupon) {
	cp := *c
	accepted := n.queue.Submit(Task{
		Name: "notificar-cupom:" + cp.ID,
		Run: func(ctx context.Context) error {
			return n.Notify(ctx, &cp)
		},
	})
	if !accepted {
		n.logger.Warn("notificação de cupom não agendada", "tenant_id", cp.TenantID, "coupon_id", cp.ID)
	}
}

// Notify envia o cupom aos clientes com e-mail, em lotes de BatchSize
// destinatários em cópia oculta. Um lote com falha não impede os demais.
func (n *CouponNotifier) Notify(ctx context.Context, c *coupondomain.Coupon) error {
	list, err := n.clients.ListByTenant(ctx, c.TenantID)
	if err != nil {
		return fmt.Errorf("erro ao listar clientes: %w", err)
	}

	emails := make([]string, 0, len(list))
	for _, cl := range list {
		if cl.HasEmail() {
			emails = append(emails, cl.Email)
		}
	}
	if len(emails) == 0 {
		n.logger.Info("nenhum cliente com e-mail para notificar", "tenant_id", c.TenantID, "coupon_id", c.ID)
		return nil
	}

	subject, body := couponMessage(c)
	var errs []error
	for i, batch := range Batches(emails, BatchSize) {
		err := n.sender.Send(ctx, Message{From: n.from, Bcc: batch, Subject: subject, HTML: body})
		if err != nil {
			errs = append(errs, fmt.Errorf("lote %d: %w", i+1, err))
			continue
		}
		n.logger.Info("e-mail de cupom enviado", "tenant_id", c.TenantID, "coupon_id", c.ID, "batch", i+1, "recipients", len(batch))
	}
	return errors.Join(errs...)
}

// Batches divide items em fatias de até size elementos
func Batches(items []string, size int) [][]string {
	out := make([][]string, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		out = append(out, items[start:end])
	}
	return out
}

func couponMessage(c *coupondomain.Coupon) (string, string) {
	name := html.EscapeString(c.Name)
	subject := fmt.Sprintf("Novo cupom de desconto: %s", c.Name)
	body := fmt.Sprintf(
		"<h2>Você ganhou %s%% de desconto!</h2>"+
			"<p>Use o cupom <strong>%s</strong> na sua próxima compra.</p>"+
			"<p>Válido até %s.</p>",
		c.DiscountPercentage.String(), name, c.ExpirationDate.Format("02/01/2006"),
	)
	return subject, body
}
