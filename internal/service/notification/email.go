package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Message é o e-mail enviado ao gateway. Os destinatários vão sempre em cópia oculta.
type Message struct {
	From    string   `json:"from"`
	Bcc     []string `json:"bcc"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// EmailSender envia uma mensagem de e-mail
type EmailSender interface {
	Send(ctx context.Context, msg Message) error
}

// GatewaySender envia e-mails por um gateway HTTP
type GatewaySender struct {
	client *resty.Client
}

// NewGatewaySender cria um GatewaySender para o gateway em baseURL
func NewGatewaySender(baseURL string, timeout time.Duration) *GatewaySender {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond)
	return &GatewaySender{client: client}
}

// Send publica a mensagem em POST /messages
func (s *GatewaySender) Send(ctx context.Context, msg Message) error {
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(msg).
		Post("/messages")
	if err != nil {
		return fmt.Errorf("erro ao enviar e-mail: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("gateway de e-mail retornou status %d: %s", resp.StatusCode(), resp.String())
	}
	return nil
}
