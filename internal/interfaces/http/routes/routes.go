// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-gateway/internal/config"
	"github.com/your-org/storefront-gateway/internal/domain/session"
	"github.com/your-org/storefront-gateway/internal/interfaces/http/handlers"
	"github.com/your-org/storefront-gateway/internal/interfaces/http/middleware"
)

// SetupRoutes wires all API routes onto the given group
func SetupRoutes(api *gin.RouterGroup, h *handlers.Set, sessions *session.Store, cfg *config.Config) {
	// Public routes: auth, catalog browsing and the payment provider's
	// return redirect, which arrives without a session cookie or token
	auth := api.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
		auth.POST("/logout", h.Auth.Logout)
		auth.GET("/session", h.Auth.Session)
	}

	materials := api.Group("/materials")
	{
		materials.GET("", h.Catalog.List)
		materials.GET("/recent-by-category", h.Catalog.RecentByCategory)
		materials.GET("/:id", h.Catalog.Get)
	}
	api.GET("/categories", h.Catalog.Categories)

	api.GET("/payment/return", h.Checkout.PaymentReturn)

	// Authenticated routes
	authed := api.Group("")
	authed.Use(middleware.RequireSession(sessions))
	{
		cart := authed.Group("/cart")
		{
			cart.GET("", h.Cart.GetCart)
			cart.GET("/summary", h.Cart.Summary)
			cart.POST("/add", h.Cart.AddItem)
			cart.POST("/remove", h.Cart.RemoveOneUnit)
			cart.POST("/delete", h.Cart.DeleteItem)
		}

		authed.POST("/checkout", h.Checkout.Checkout)

		orders := authed.Group("/orders")
		{
			orders.GET("", h.Orders.List)
			orders.GET("/:id", h.Orders.Get)
			orders.DELETE("/:id", h.Orders.Delete)
			orders.POST("/:id/pay", h.Checkout.PayNow)
		}

		profile := authed.Group("/profile")
		{
			profile.GET("", h.Profile.Get)
			profile.PUT("", h.Profile.Update)
			profile.DELETE("", h.Profile.Delete)
			profile.GET("/stats", h.Profile.Stats)
		}

		support := authed.Group("/support")
		{
			support.POST("/open", h.Support.Open)
			support.POST("/close", h.Support.Close)
			support.GET("/messages", h.Support.Messages)
			support.POST("/send", h.Support.Send)
		}

		notifications := authed.Group("/notifications")
		{
			notifications.GET("", h.Notifications.List)
			notifications.PATCH("/read-all", h.Notifications.MarkAllRead)
			notifications.PATCH("/:id/read", h.Notifications.MarkRead)
		}

		// Admin routes
		admin := authed.Group("/admin")
		admin.Use(middleware.RequireAdmin())
		{
			admin.GET("/orders", h.Orders.AdminList)
			admin.GET("/orders/market-share", h.Orders.MarketShare)
			admin.PATCH("/orders/:id/delivery", h.Orders.SetDeliveryStatus)
			admin.GET("/customers", h.Profile.AdminCustomers)
			admin.GET("/support/conversations", h.Support.AdminConversations)
			admin.GET("/support/messages/:userId", h.Support.AdminThread)
			admin.POST("/support/messages/:userId", h.Support.AdminReply)
		}
	}
}
