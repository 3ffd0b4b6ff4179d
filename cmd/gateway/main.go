// cmd/gateway/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

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
	"github.com/your-org/storefront-gateway/internal/infrastructure/persistence"
	gatewayhttp "github.com/your-org/storefront-gateway/internal/interfaces/http"
	"github.com/your-org/storefront-gateway/internal/interfaces/http/handlers"
	"github.com/your-org/storefront-gateway/internal/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logg := logger.New(cfg)
	logg.WithField("version", cfg.App.Version).Infof("Starting %s in %s mode", cfg.App.Name, cfg.App.Environment)

	// Durable session storage
	persist, err := persistence.New(cfg)
	if err != nil {
		logg.WithError(err).Fatal("Failed to set up session persistence")
	}
	defer persist.Close()

	// Session store, restored from the last run if a valid token survives
	sessions := session.NewStore(persist, logg)
	if err := sessions.Restore(context.Background()); err != nil {
		logg.WithError(err).Warn("Failed to restore persisted session")
	}

	// Backend client; the session store supplies the bearer token and a
	// 401/403 from any authenticated call force-ends the session
	api := backend.NewClient(cfg, sessions, logg)
	api.SetAuthExpiredHook(func() {
		sessions.Logout(context.Background())
	})

	// Domain services
	cartManager := cart.NewManager(api, sessions, logg)
	orders := order.NewService(api, sessions, logg)
	profiles := profile.NewService(api, sessions, logg)
	supportChat := support.NewService(api, sessions, cfg, logg)
	notifications := notification.NewService(api, sessions, cfg, logg)
	catalogService := catalog.NewService(api, logg)
	orchestrator := checkout.NewOrchestrator(api, cartManager, sessions, cfg, logg)

	// A cleared session clears everything that depends on it
	sessions.OnLogout(cartManager.Reset)
	sessions.OnLogout(orders.Reset)
	sessions.OnLogout(supportChat.Reset)
	sessions.OnLogout(notifications.Reset)
	sessions.OnLogout(orchestrator.Reset)

	// A restored session picks up where the last run left off
	if _, ok := sessions.Current(); ok {
		if err := cartManager.Refresh(context.Background()); err != nil {
			logg.WithError(err).Warn("Initial cart refresh failed")
		}
		notifications.Start(context.Background())
	}

	server := gatewayhttp.NewServer(cfg, handlers.NewSet(handlers.Deps{
		Config:        cfg,
		Log:           logg,
		Backend:       api,
		Sessions:      sessions,
		Cart:          cartManager,
		Checkout:      orchestrator,
		Orders:        orders,
		Profile:       profiles,
		Support:       supportChat,
		Notifications: notifications,
		Catalog:       catalogService,
	}), sessions, logg)

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil {
			logg.WithError(err).Fatal("Failed to start HTTP server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logg.Info("Shutting down gracefully")

	notifications.Stop()
	supportChat.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		logg.WithError(err).Error("Failed to shutdown HTTP server gracefully")
	}

	logg.Info("Server shutdown completed")
}
