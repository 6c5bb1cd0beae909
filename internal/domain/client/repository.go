package client

import "context"

// Repository define as consultas de clientes usadas pelo núcleo
type Repository interface {
	// ListByTenant lista os clientes de um tenant
	ListByTenant(ctx context.Context, tenantID string) ([]*Client, error)
}
