package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-pdv/internal/adapter/api/dto"
	"github.com/hugohenrick/erp-pdv/internal/service/metrics"
	"github.com/hugohenrick/erp-pdv/pkg/logger"
)

// MetricsController expõe os relatórios de vendas
type MetricsController struct {
	metrics *metrics.Service
	logger  logger.Logger
}

// NewMetricsController cria uma nova instância de MetricsController
func NewMetricsController(metricsService *metrics.Service, logger logger.Logger) *MetricsController {
	return &MetricsController{
		metrics: metricsService,
		logger:  logger,
	}
}

// History retorna o histórico de vendas do período
// @Summary Histórico de vendas
// @Description Período por dateFrom/dateTo (ambas) ou por period. Sem filtros, o dia corrente.
// @Tags metrics
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param dateFrom query string false "Data inicial (YYYY-MM-DD)"
// @Param dateTo query string false "Data final (YYYY-MM-DD)"
// @Param period query string false "daily, weekly ou monthly"
// @Success 200 {object} metrics.History
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /sales/history [get]
func (c *MetricsController) History(ctx *gin.Context) {
	var q dto.PeriodQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "parâmetros inválidos", err.Error()))
		return
	}

	history, err := c.metrics.History(ctx.Request.Context(), tenantID(ctx), q.ToFilter())
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, history)
}

// TopProducts retorna o ranking de produtos do período
// @Summary Produtos mais vendidos
// @Tags metrics
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param dateFrom query string false "Data inicial (YYYY-MM-DD)"
// @Param dateTo query string false "Data final (YYYY-MM-DD)"
// @Param period query string false "daily, weekly ou monthly"
// @Param limit query int false "Quantidade de produtos" default(5)
// @Success 200 {object} dto.TopProductsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /sales/top-products [get]
func (c *MetricsController) TopProducts(ctx *gin.Context) {
	var q dto.TopProductsQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "parâmetros inválidos", err.Error()))
		return
	}

	ranking, err := c.metrics.TopProducts(ctx.Request.Context(), tenantID(ctx), q.ToFilter(), q.Limit)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.TopProductsResponse{Products: ranking})
}

// Dashboard retorna os números de hoje e da semana
// @Summary Métricas do painel
// @Tags metrics
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} metrics.Dashboard
// @Failure 500 {object} dto.ErrorResponse
// @Router /sales/dashboard/metrics [get]
func (c *MetricsController) Dashboard(ctx *gin.Context) {
	dashboard, err := c.metrics.Dashboard(ctx.Request.Context(), tenantID(ctx))
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, dashboard)
}

// Activity retorna a série diária dos últimos 30 dias
// @Summary Atividade diária
// @Tags metrics
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} dto.ActivityResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /sales/dashboard/activity [get]
func (c *MetricsController) Activity(ctx *gin.Context) {
	days, err := c.metrics.Activity(ctx.Request.Context(), tenantID(ctx))
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ActivityResponse{Days: days})
}

// Insights retorna o resumo dos últimos 30 dias
// @Summary Resumo de desempenho
// @Tags metrics
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} metrics.Insights
// @Failure 500 {object} dto.ErrorResponse
// @Router /sales/insights [get]
func (c *MetricsController) Insights(ctx *gin.Context) {
	insights, err := c.metrics.Insights(ctx.Request.Context(), tenantID(ctx))
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, insights)
}
