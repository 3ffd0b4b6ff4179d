// internal/domain/catalog/service.go
package catalog

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-gateway/internal/infrastructure/backend"
)

// Backend is the slice of the commerce API the catalog service needs
type Backend interface {
	Materials(ctx context.Context, search string) ([]backend.Material, error)
	MaterialByID(ctx context.Context, id string) (*backend.Material, error)
	RecentByCategory(ctx context.Context) (map[string][]backend.Material, error)
	Categories(ctx context.Context) ([]backend.Category, error)
}

// Service serves the product catalog. Browsing needs no session; the backend
// owns all catalog data, so this stays a thin pass-through with a latest-wins
// guard on search.
type Service struct {
	mu     sync.Mutex
	issued uint64

	backend Backend
	log     *logrus.Entry
}

// NewService creates a catalog service
func NewService(api Backend, log *logrus.Logger) *Service {
	return &Service{
		backend: api,
		log:     log.WithField("component", "catalog_service"),
	}
}

// Search fetches the catalog, optionally filtered. Search-as-you-type can
// deliver responses out of order; an overtaken response returns nil so the
// newer one stands.
func (s *Service) Search(ctx context.Context, search string) ([]backend.Material, error) {
	s.mu.Lock()
	s.issued++
	seq := s.issued
	s.mu.Unlock()

	materials, err := s.backend.Materials(ctx, search)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq < s.issued {
		s.log.Debug("Discarding stale catalog listing")
		return nil, nil
	}
	return materials, nil
}

// Material fetches a single product
func (s *Service) Material(ctx context.Context, id string) (*backend.Material, error) {
	if id == "" {
		return nil, backend.NewValidationError("material id is required")
	}
	return s.backend.MaterialByID(ctx, id)
}

// RecentByCategory fetches the newest products grouped by category
func (s *Service) RecentByCategory(ctx context.Context) (map[string][]backend.Material, error) {
	return s.backend.RecentByCategory(ctx)
}

// Categories fetches all product categories
func (s *Service) Categories(ctx context.Context) ([]backend.Category, error) {
	return s.backend.Categories(ctx)
}
