package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-pdv/internal/adapter/api/controller"
)

// Controllers reúne os controllers expostos pela API
type Controllers struct {
	Sale    *controller.SaleController
	Metrics *controller.MetricsController
	Coupon  *controller.CouponController
	Health  *controller.HealthController
}

// Setup registra o health check público e as rotas do tenant sob basePath.
// protected são os middlewares de autenticação e de tenant, em ordem.
func Setup(router *gin.Engine, basePath string, c Controllers, protected ...gin.HandlerFunc) {
	router.GET("/health", c.Health.Check)

	api := router.Group(basePath)
	api.Use(protected...)

	RegisterSaleRoutes(api, c.Sale, c.Metrics)
	RegisterCouponRoutes(api, c.Coupon)
}
