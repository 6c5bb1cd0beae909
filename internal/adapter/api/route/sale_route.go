package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-pdv/internal/adapter/api/controller"
)

// RegisterSaleRoutes registra as rotas de vendas e relatórios
func RegisterSaleRoutes(r *gin.RouterGroup, saleController *controller.SaleController, metricsController *controller.MetricsController) {
	sales := r.Group("/sales")
	{
		sales.POST("", saleController.Create)
		sales.GET("", saleController.List)
		sales.GET("/history", metricsController.History)
		sales.GET("/top-products", metricsController.TopProducts)
		sales.GET("/dashboard/metrics", metricsController.Dashboard)
		sales.GET("/dashboard/activity", metricsController.Activity)
		sales.GET("/insights", metricsController.Insights)
		sales.GET("/:id", saleController.Get)
	}
}
