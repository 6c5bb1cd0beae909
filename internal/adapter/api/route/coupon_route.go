package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-pdv/internal/adapter/api/controller"
)

// RegisterCouponRoutes registra as rotas de cupons
func RegisterCouponRoutes(r *gin.RouterGroup, couponController *controller.CouponController) {
	coupons := r.Group("/coupons")
	{
		coupons.POST("", couponController.Create)
	}
}
