// internal/domain/order/service.go
package order

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-gateway/internal/domain/session"
	"github.com/your-org/storefront-gateway/internal/infrastructure/backend"
)

// Backend is the slice of the commerce API the order service needs
type Backend interface {
	ListOrders(ctx context.Context, search string) ([]backend.Order, error)
	GetOrder(ctx context.Context, id string) (*backend.Order, error)
	DeleteOrder(ctx context.Context, id string) error
	AdminListOrders(ctx context.Context, search string) ([]backend.Order, error)
	SetDeliveryStatus(ctx context.Context, orderID, status string) error
	MarketShare(ctx context.Context) ([]backend.MarketShareEntry, error)
}

// Sessions supplies the active session
type Sessions interface {
	Current() (session.Session, bool)
}

var deliveryStatuses = map[string]bool{
	backend.DeliveryStatusNotDelivered: true,
	backend.DeliveryStatusShipped:      true,
	backend.DeliveryStatusDelivered:    true,
}

// Service serves order history. Successive List calls race when the search
// term changes quickly, so results carry a sequence number and only the
// latest issued request may update the cached listing.
type Service struct {
	mu     sync.Mutex
	issued uint64
	orders []backend.Order

	backend  Backend
	sessions Sessions
	log      *logrus.Entry
}

// NewService creates an order service
func NewService(api Backend, sessions Sessions, log *logrus.Logger) *Service {
	return &Service{
		backend:  api,
		sessions: sessions,
		log:      log.WithField("component", "order_service"),
	}
}

// List fetches the caller's order history, optionally filtered by a search
// term. A response that was overtaken by a newer List call is discarded and
// the newer result stands.
func (s *Service) List(ctx context.Context, search string) ([]backend.Order, error) {
	if _, ok := s.sessions.Current(); !ok {
		return nil, backend.NewValidationError("please login to view your orders")
	}

	s.mu.Lock()
	s.issued++
	seq := s.issued
	s.mu.Unlock()

	orders, err := s.backend.ListOrders(ctx, search)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq < s.issued {
		s.log.Debug("Discarding stale order listing")
		return s.copyOrders(), nil
	}
	s.orders = orders
	return s.copyOrders(), nil
}

// Orders returns a copy of the last fetched listing
func (s *Service) Orders() []backend.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyOrders()
}

func (s *Service) copyOrders() []backend.Order {
	orders := make([]backend.Order, len(s.orders))
	copy(orders, s.orders)
	return orders
}

// Get fetches a single order by id
func (s *Service) Get(ctx context.Context, id string) (*backend.Order, error) {
	if _, ok := s.sessions.Current(); !ok {
		return nil, backend.NewValidationError("please login to view your orders")
	}
	if id == "" {
		return nil, backend.NewValidationError("order id is required")
	}
	return s.backend.GetOrder(ctx, id)
}

// Delete removes an order from the caller's history and drops it from the
// cached listing
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, ok := s.sessions.Current(); !ok {
		return backend.NewValidationError("please login to manage your orders")
	}
	if id == "" {
		return backend.NewValidationError("order id is required")
	}

	if err := s.backend.DeleteOrder(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.orders {
		if s.orders[i].ID == id {
			s.orders = append(s.orders[:i], s.orders[i+1:]...)
			break
		}
	}
	return nil
}

// AdminAll fetches every order in the system (admin only)
func (s *Service) AdminAll(ctx context.Context, search string) ([]backend.Order, error) {
	if err := s.requireAdmin(); err != nil {
		return nil, err
	}
	return s.backend.AdminListOrders(ctx, search)
}

// SetDeliveryStatus transitions an order's delivery status (admin only)
func (s *Service) SetDeliveryStatus(ctx context.Context, orderID, status string) error {
	if err := s.requireAdmin(); err != nil {
		return err
	}
	if orderID == "" {
		return backend.NewValidationError("order id is required")
	}
	if !deliveryStatuses[status] {
		return backend.NewValidationError("invalid delivery status")
	}
	return s.backend.SetDeliveryStatus(ctx, orderID, status)
}

// MarketShare fetches the per-category sales report (admin only)
func (s *Service) MarketShare(ctx context.Context) ([]backend.MarketShareEntry, error) {
	if err := s.requireAdmin(); err != nil {
		return nil, err
	}
	return s.backend.MarketShare(ctx)
}

func (s *Service) requireAdmin() error {
	sess, ok := s.sessions.Current()
	if !ok {
		return backend.NewValidationError("please login first")
	}
	if !sess.IsAdmin() {
		return backend.NewValidationError("admin access required")
	}
	return nil
}

// Reset drops the cached listing. Registered as a session logout hook.
func (s *Service) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = nil
}
