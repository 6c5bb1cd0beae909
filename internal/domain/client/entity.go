package client

import (
	"strings"
	"time"
)

// Client representa um cliente do comerciante
type Client struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenant_id"`
	Name      string    `json:"name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

// FullName retorna nome e sobrenome
func (c *Client) FullName() string {
	return strings.TrimSpace(c.Name + " " + c.LastName)
}

// HasEmail verifica se o cliente pode receber e-mails
func (c *Client) HasEmail() bool {
	return strings.Contains(c.Email, "@")
}
