// internal/domain/cart/manager.go
package cart

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-gateway/internal/domain/session"
	"github.com/your-org/storefront-gateway/internal/infrastructure/backend"
)

// Backend is the slice of the commerce API the cart manager needs
type Backend interface {
	GetCart(ctx context.Context) (*backend.Cart, error)
	AddToCart(ctx context.Context, materialID string, sel backend.VariantSelection) error
	RemoveFromCart(ctx context.Context, materialID string, sel backend.VariantSelection) error
	DeleteFromCart(ctx context.Context, materialID string, sel backend.VariantSelection) error
}

// Sessions supplies the active session; the session store implements it
type Sessions interface {
	Current() (session.Session, bool)
}

// Manager owns the local view of the shopping cart. The backend stays
// authoritative: every mutation is a write followed by a full refetch, never
// a local merge, so client and server line-item identity rules cannot drift.
//
// Concurrent refreshes are resolved by issue order: each fetch gets a
// sequence number and a response is discarded if a newer fetch was issued
// while it was in flight.
type Manager struct {
	mu         sync.Mutex
	state      State
	lastStable State
	items      []Item
	issued     uint64

	backend  Backend
	sessions Sessions
	log      *logrus.Entry
}

// NewManager creates a cart manager
func NewManager(api Backend, sessions Sessions, log *logrus.Logger) *Manager {
	return &Manager{
		backend:  api,
		sessions: sessions,
		log:      log.WithField("component", "cart_manager"),
	}
}

// Refresh fetches the authoritative cart for the current session. With no
// session the cart is simply empty; that is not an error. On a failed fetch
// the previous cart view stands untouched.
func (m *Manager) Refresh(ctx context.Context) error {
	if _, ok := m.sessions.Current(); !ok {
		m.mu.Lock()
		m.items = nil
		m.state = StateReady
		m.lastStable = StateReady
		m.mu.Unlock()
		return nil
	}

	m.mu.Lock()
	m.issued++
	seq := m.issued
	m.state = StateLoading
	m.mu.Unlock()

	wire, err := m.backend.GetCart(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()

	if seq < m.issued {
		// A newer refresh was issued while this one was in flight; its
		// response decides the cart, not this one.
		m.log.Debug("Discarding stale cart response")
		return nil
	}

	if err != nil {
		m.state = m.lastStable
		return err
	}

	items := make([]Item, 0, len(wire.Items))
	for _, w := range wire.Items {
		items = append(items, itemFromWire(w))
	}
	m.items = items
	m.state = StateReady
	m.lastStable = StateReady
	return nil
}

// AddItem adds one unit of the given material/variant. Requires an active
// session; without one no network call is made. On success the cart is
// refetched so the view matches the server's line-item bookkeeping.
func (m *Manager) AddItem(ctx context.Context, materialID string, sel backend.VariantSelection) error {
	if _, ok := m.sessions.Current(); !ok {
		return backend.NewValidationError("please login to add items to cart")
	}

	if err := m.backend.AddToCart(ctx, materialID, sel); err != nil {
		return err
	}
	return m.Refresh(ctx)
}

// RemoveOneUnit decrements the matching line item by one unit. Whether a
// quantity of zero removes the line is the backend's call; the refreshed
// cart just reflects it.
func (m *Manager) RemoveOneUnit(ctx context.Context, materialID string, sel backend.VariantSelection) error {
	if _, ok := m.sessions.Current(); !ok {
		return backend.NewValidationError("please login to update your cart")
	}

	if err := m.backend.RemoveFromCart(ctx, materialID, sel); err != nil {
		return err
	}
	return m.Refresh(ctx)
}

// DeleteItem removes the matching line item entirely regardless of quantity
func (m *Manager) DeleteItem(ctx context.Context, materialID string, sel backend.VariantSelection) error {
	if _, ok := m.sessions.Current(); !ok {
		return backend.NewValidationError("please login to update your cart")
	}

	if err := m.backend.DeleteFromCart(ctx, materialID, sel); err != nil {
		return err
	}
	return m.Refresh(ctx)
}

// Items returns a copy of the current cart view
func (m *Manager) Items() []Item {
	m.mu.Lock()
	defer m.mu.Unlock()
	items := make([]Item, len(m.items))
	copy(items, m.items)
	return items
}

// IsEmpty reports whether the cart view has no line items
func (m *Manager) IsEmpty() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items) == 0
}

// State returns the cart view state
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Summary computes the checkout summary for the current cart view
func (m *Manager) Summary(loyaltyPoints int64, useLoyalty bool) Summary {
	return ComputeSummary(m.Items(), loyaltyPoints, useLoyalty)
}

// Reset drops all cart state. Registered as the session store's logout hook:
// a cleared session means no cart.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = nil
	m.state = StateUninitialized
	m.lastStable = StateUninitialized
	m.log.Debug("Cart state reset")
}
