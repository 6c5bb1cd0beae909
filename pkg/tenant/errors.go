package tenant

import "errors"

// Erros comuns relacionados a operações de tenant
var (
	// ErrTenantNotSpecified ocorre quando um ID de tenant não é fornecido
	ErrTenantNotSpecified = errors.New("tenant ID não especificado")
)
