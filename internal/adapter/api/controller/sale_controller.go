package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-pdv/internal/adapter/api/dto"
	"github.com/hugohenrick/erp-pdv/internal/service/sales"
	"github.com/hugohenrick/erp-pdv/pkg/logger"
)

// SaleController gerencia as requisições de vendas
type SaleController struct {
	sales  *sales.Service
	logger logger.Logger
}

// NewSaleController cria uma nova instância de SaleController
func NewSaleController(salesService *sales.Service, logger logger.Logger) *SaleController {
	return &SaleController{
		sales:  salesService,
		logger: logger,
	}
}

// Create registra uma venda
// @Summary Registrar venda
// @Description Baixa o estoque, aplica o cupom e grava a venda de forma atômica
// @Tags sales
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param sale body dto.CreateSaleRequest true "Carrinho"
// @Success 201 {object} dto.SaleResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /sales [post]
func (c *SaleController) Create(ctx *gin.Context) {
	var req dto.CreateSaleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	created, err := c.sales.CreateSale(ctx.Request.Context(), tenantID(ctx), req.ToInput())
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToSaleResponse(created))
}

// List lista as vendas do tenant
// @Summary Listar vendas
// @Tags sales
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {array} dto.SaleResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /sales [get]
func (c *SaleController) List(ctx *gin.Context) {
	list, err := c.sales.ListSales(ctx.Request.Context(), tenantID(ctx))
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToSaleListResponse(list))
}

// Get retorna uma venda pelo ID
// @Summary Buscar venda
// @Tags sales
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da venda"
// @Success 200 {object} dto.SaleResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /sales/{id} [get]
func (c *SaleController) Get(ctx *gin.Context) {
	found, err := c.sales.FindSale(ctx.Request.Context(), tenantID(ctx), ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToSaleResponse(found))
}
