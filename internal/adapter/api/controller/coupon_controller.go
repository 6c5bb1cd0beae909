package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-pdv/internal/adapter/api/dto"
	"github.com/hugohenrick/erp-pdv/internal/service/coupon"
	"github.com/hugohenrick/erp-pdv/pkg/logger"
)

// CouponController gerencia as requisições de cupons
type CouponController struct {
	coupons *coupon.Service
	loc     *time.Location
	logger  logger.Logger
}

// NewCouponController cria uma nova instância de CouponController.
// loc é o fuso em que a data de expiração é interpretada.
func NewCouponController(couponService *coupon.Service, loc *time.Location, logger logger.Logger) *CouponController {
	return &CouponController{
		coupons: couponService,
		loc:     loc,
		logger:  logger,
	}
}

// Create cria um cupom e avisa os clientes por e-mail em segundo plano
// @Summary Criar cupom
// @Tags coupons
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param coupon body dto.CreateCouponRequest true "Dados do cupom"
// @Success 201 {object} dto.CouponResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /coupons [post]
func (c *CouponController) Create(ctx *gin.Context) {
	var req dto.CreateCouponRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	expiration, err := time.ParseInLocation(time.DateOnly, req.ExpirationDate, c.loc)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", "expiration_date deve estar no formato YYYY-MM-DD"))
		return
	}

	created, err := c.coupons.Create(ctx.Request.Context(), tenantID(ctx), coupon.CreateInput{
		Name:               req.Name,
		DiscountPercentage: req.DiscountPercentage,
		ExpirationDate:     expiration,
	})
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToCouponResponse(created))
}
