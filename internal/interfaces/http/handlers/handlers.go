// internal/interfaces/http/handlers/handlers.go
package handlers

import (
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-gateway/internal/config"
	"github.com/your-org/storefront-gateway/internal/domain/cart"
	"github.com/your-org/storefront-gateway/internal/domain/catalog"
	"github.com/your-org/storefront-gateway/internal/domain/checkout"
	"github.com/your-org/storefront-gateway/internal/domain/notification"
	"github.com/your-org/storefront-gateway/internal/domain/order"
	"github.com/your-org/storefront-gateway/internal/domain/profile"
	"github.com/your-org/storefront-gateway/internal/domain/session"
	"github.com/your-org/storefront-gateway/internal/domain/support"
	"github.com/your-org/storefront-gateway/internal/infrastructure/backend"
)

// Deps carries everything the handlers need, wired once in main
type Deps struct {
	Config        *config.Config
	Log           *logrus.Logger
	Backend       *backend.Client
	Sessions      *session.Store
	Cart          *cart.Manager
	Checkout      *checkout.Orchestrator
	Orders        *order.Service
	Profile       *profile.Service
	Support       *support.Service
	Notifications *notification.Service
	Catalog       *catalog.Service
}

// Set bundles all route handlers
type Set struct {
	Auth          *AuthHandler
	Cart          *CartHandler
	Checkout      *CheckoutHandler
	Orders        *OrderHandler
	Profile       *ProfileHandler
	Support       *SupportHandler
	Notifications *NotificationHandler
	Catalog       *CatalogHandler
}

// NewSet creates all handlers from the shared dependencies
func NewSet(d Deps) *Set {
	return &Set{
		Auth:          NewAuthHandler(d.Backend, d.Sessions, d.Cart, d.Notifications, d.Log),
		Cart:          NewCartHandler(d.Cart, d.Profile, d.Log),
		Checkout:      NewCheckoutHandler(d.Checkout, d.Orders, d.Config, d.Log),
		Orders:        NewOrderHandler(d.Orders, d.Log),
		Profile:       NewProfileHandler(d.Profile, d.Log),
		Support:       NewSupportHandler(d.Support, d.Log),
		Notifications: NewNotificationHandler(d.Notifications, d.Log),
		Catalog:       NewCatalogHandler(d.Catalog, d.Log),
	}
}
