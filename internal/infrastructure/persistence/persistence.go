// internal/infrastructure/persistence/persistence.go
package persistence

import (
	"context"
	"fmt"

	"github.com/your-org/storefront-gateway/internal/config"
)

// Record is the durable form of a session. It mirrors what the original
// client kept in browser local storage: token, role, user id, email.
type Record struct {
	Token  string `json:"token"`
	Role   string `json:"role"`
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

// Store persists the single client session across process restarts
type Store interface {
	Save(ctx context.Context, rec Record) error
	// Load returns the stored record and whether one exists.
	Load(ctx context.Context) (Record, bool, error)
	Clear(ctx context.Context) error
	Close() error
}

// New selects the configured provider
func New(cfg *config.Config) (Store, error) {
	switch cfg.Session.Provider {
	case "file":
		return NewFileStore(cfg.Session.FilePath), nil
	case "redis":
		return NewRedisStore(cfg)
	default:
		return nil, fmt.Errorf("unknown session provider: %q", cfg.Session.Provider)
	}
}
