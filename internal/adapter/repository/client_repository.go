package repository

import (
	"context"
	"fmt"

	"github.com/hugohenrick/erp-pdv/internal/domain/client"
	"github.com/jackc/pgx/v5/pgxpool"
)

const clientColumns = "id, tenant_id, name, last_name, email, phone, created_at"

// ClientRepository implementa a interface client.Repository
type ClientRepository struct {
	db *pgxpool.Pool
}

// NewClientRepository cria uma nova instância de ClientRepository
func NewClientRepository(db *pgxpool.Pool) *ClientRepository {
	return &ClientRepository{db: db}
}

// ListByTenant implementa client.Repository.ListByTenant
func (r *ClientRepository) ListByTenant(ctx context.Context, tenantID string) ([]*client.Client, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE tenant_id = $1 ORDER BY name`,
		tenantID)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar clientes: %w", err)
	}
	defer rows.Close()

	clients := make([]*client.Client, 0)
	for rows.Next() {
		var c client.Client
		if err := rows.Scan(&c.ID, &c.TenantID, &c.Name, &c.LastName, &c.Email, &c.Phone, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("erro ao ler cliente: %w", err)
		}
		clients = append(clients, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar clientes: %w", err)
	}
	return clients, nil
}

func findClient(ctx context.Context, q querier, tenantID, id string) (*client.Client, error) {
	var c client.Client
	err := findScoped(ctx, q, "Cliente", "clients", clientColumns, tenantID, id,
		&c.ID, &c.TenantID, &c.Name, &c.LastName, &c.Email, &c.Phone, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
