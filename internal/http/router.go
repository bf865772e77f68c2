package api

import (
	"log"
	stdhttp "net/http"

	"tiketi/internal/clickpesa"
	intconfig "tiketi/internal/config"
	h "tiketi/internal/http/handlers"
	"tiketi/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	middleware.SetJWTSecret(env.JWTSecret)
	h.SetGateway(clickpesa.NewClient(env.ClickPesaAPIKey, env.ClickPesaClientID, env.ClickPesaBaseURL))

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)
		api.GET("/routes", h.Routes)

		// Auth
		auth := api.Group("/auth")
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)

		// Payments. The callback is open: the gateway authenticates through
		// the transaction verification round trip, not a session.
		payments := api.Group("/payments")
		payments.POST("/callback", h.PaymentCallback)
		payments.POST("/initiate", h.InitiatePayment)
		payments.GET("/:reference/verify", h.VerifyPayment)

		// Booking receipts
		api.GET("/bookings/:code/receipt", h.GetBookingReceiptPDF)

		// Public quote endpoint
		api.POST("/hire/quote", h.QuoteHire)

		// Authenticated fleet and order management
		authed := api.Group("")
		authed.Use(middleware.RequireAuth())
		{
			coasters := authed.Group("/coasters")
			coasters.GET("", h.ListCoasters)
			coasters.GET("/:id", h.GetCoaster)
			coasters.POST("", h.CreateCoaster)
			coasters.PUT("/:id", h.UpdateCoaster)
			coasters.PUT("/:id/location", h.UpdateCoasterLocation)
			coasters.DELETE("/:id", h.DeleteCoaster)
			coasters.GET("/:id/pricing", h.GetCoasterPricing)
			coasters.PUT("/:id/pricing", h.SetCoasterPricing)

			orders := authed.Group("/orders")
			orders.GET("", h.ListOrders)
			orders.GET("/:id", h.GetOrder)
			orders.POST("", h.CreateOrder)
			orders.PUT("/:id", h.UpdateOrder)
			orders.DELETE("/:id", h.DeleteOrder)
			orders.GET("/:id/voucher", h.GetHireVoucherPDF)

			authed.GET("/dashboard", h.GetDashboard)
			authed.GET("/earnings", h.GetEarnings)

			admin := authed.Group("/admin")
			admin.Use(middleware.RequireRole("admin"))
			admin.GET("/revenue", h.GetPlatformRevenue)
		}
	}

	h.SetRouter(r)
	return r
}
