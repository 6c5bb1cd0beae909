package tenant

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HeaderName é o cabeçalho aceito quando a autenticação é feita por um
// gateway confiável à frente da API
const HeaderName = "tenant-id"

// Extractor obtém o tenant ID da requisição
type Extractor func(c *gin.Context) string

// FromAuth lê o tenant definido pelo middleware de autenticação
func FromAuth(c *gin.Context) string {
	return c.GetString(GinKey)
}

// FromHeader lê o tenant do cabeçalho tenant-id
func FromHeader(c *gin.Context) string {
	return c.GetHeader(HeaderName)
}

// Middleware exige um tenant resolvido e o propaga para o contexto da requisição
func Middleware(extract Extractor) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID := extract(c)
		if tenantID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    http.StatusUnauthorized,
				"message": "Tenant ID não fornecido",
				"details": ErrTenantNotSpecified.Error(),
			})
			return
		}

		c.Set(GinKey, tenantID)
		c.Request = c.Request.WithContext(SetTenantIDContext(c.Request.Context(), tenantID))

		c.Next()
	}
}
