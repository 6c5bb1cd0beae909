package tenant

// Owns é a verificação única de escopo: um registro só é visível para o
// tenant que o possui. Toda busca por entidade passa por aqui (ou pela
// cláusula equivalente no SQL).
func Owns(tenantID, ownerID string) bool {
	return tenantID != "" && tenantID == ownerID
}
