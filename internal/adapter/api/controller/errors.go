package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-pdv/internal/adapter/api/dto"
	"github.com/hugohenrick/erp-pdv/internal/domain/failure"
	"github.com/hugohenrick/erp-pdv/pkg/logger"
	"github.com/hugohenrick/erp-pdv/pkg/tenant"
)

// statusFor traduz a categoria da falha no status HTTP. Persistência vem
// primeiro porque pode envolver um NotFound vindo do banco.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, failure.ErrPersistence):
		return http.StatusInternalServerError, "erro ao acessar o banco de dados"
	case errors.Is(err, failure.ErrValidation):
		return http.StatusBadRequest, "dados inválidos"
	case errors.Is(err, failure.ErrNotFound):
		return http.StatusNotFound, "registro não encontrado"
	case errors.Is(err, failure.ErrCouponExpired):
		return http.StatusUnprocessableEntity, "cupom expirado"
	case errors.Is(err, failure.ErrInsufficientStock):
		return http.StatusConflict, "estoque insuficiente"
	case errors.Is(err, failure.ErrConflict):
		return http.StatusConflict, "registro duplicado"
	default:
		return http.StatusInternalServerError, "erro interno"
	}
}

// respondError escreve a resposta de erro. Falhas internas não expõem detalhes.
func respondError(ctx *gin.Context, log logger.Logger, err error) {
	code, message := statusFor(err)
	details := err.Error()
	if code == http.StatusInternalServerError {
		log.Error(message, "path", ctx.FullPath(), "error", err)
		details = ""
	}
	ctx.JSON(code, dto.NewErrorResponse(code, message, details))
}

func tenantID(ctx *gin.Context) string {
	return tenant.GetTenantID(ctx)
}
