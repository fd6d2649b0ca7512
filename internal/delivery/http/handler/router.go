package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tokoniaga/order-service/internal/delivery/http/middleware"
)

func NewRouter(h *OrderHandler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Prometheus())

	order := router.Group("/order")
	{
		order.POST("/checkout", h.Checkout)
		order.POST("/transaction", h.Transaction)
		order.POST("/midtrans/webhook", h.Webhook)
	}

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return router
}
