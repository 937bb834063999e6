package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"wallet-sentinel.backend/internal/interfaces/http/handlers"
	"wallet-sentinel.backend/pkg/metrics"
)

type routeDeps struct {
	walletHandler      *handlers.WalletHandler
	transactionHandler *handlers.TransactionHandler
	alertHandler       *handlers.AlertHandler
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	v1 := r.Group("/api/v1")
	{
		// Wallet routes
		wallets := v1.Group("/wallets")
		{
			wallets.POST("", d.walletHandler.Register)
			wallets.GET("", d.walletHandler.List)
			wallets.GET("/:address/balance", d.walletHandler.GetBalance)
			wallets.DELETE("/:address", d.walletHandler.Deactivate)
		}

		// Transaction routes
		transactions := v1.Group("/transactions")
		{
			transactions.GET("", d.transactionHandler.List)
			transactions.GET("/stats/summary", d.transactionHandler.Summary)
			transactions.POST("/sync", d.transactionHandler.Sync)
			transactions.POST("/analyze", d.transactionHandler.Analyze)
			transactions.GET("/:hash", d.transactionHandler.Get)
		}

		// Alert routes
		alerts := v1.Group("/alerts")
		{
			alerts.GET("", d.alertHandler.List)
			alerts.GET("/stats/patterns", d.alertHandler.Patterns)
			alerts.GET("/rules", d.alertHandler.ListRules)
			alerts.POST("/rules", d.alertHandler.CreateRule)
			alerts.PUT("/rules/:id", d.alertHandler.UpdateRule)
			alerts.DELETE("/rules/:id", d.alertHandler.DeleteRule)
			alerts.GET("/:id", d.alertHandler.Get)
			alerts.POST("/:id/resolve", d.alertHandler.Resolve)
		}
	}
}
