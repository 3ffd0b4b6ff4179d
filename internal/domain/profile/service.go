// internal/domain/profile/service.go
package profile

import (
	"context"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-gateway/internal/domain/session"
	"github.com/your-org/storefront-gateway/internal/infrastructure/backend"
)

// Backend is the slice of the commerce API the profile service needs
type Backend interface {
	GetProfile(ctx context.Context) (*backend.Profile, error)
	UpdateProfile(ctx context.Context, update backend.ProfileUpdate) (*backend.Profile, error)
	DeleteProfile(ctx context.Context) error
	ProfileStats(ctx context.Context) (*backend.ProfileStats, error)
	ListCustomers(ctx context.Context, search string) ([]backend.Customer, error)
}

// Sessions supplies the active session and ends it when the account goes away
type Sessions interface {
	Current() (session.Session, bool)
	Logout(ctx context.Context)
}

// Service serves the account profile. The loyalty point balance lives here
// because the checkout summary needs it; the backend owns the balance and the
// service never adjusts it locally.
type Service struct {
	mu     sync.Mutex
	issued uint64

	backend  Backend
	sessions Sessions
	log      *logrus.Entry
}

// NewService creates a profile service
func NewService(api Backend, sessions Sessions, log *logrus.Logger) *Service {
	return &Service{
		backend:  api,
		sessions: sessions,
		log:      log.WithField("component", "profile_service"),
	}
}

// Get fetches the caller's account record
func (s *Service) Get(ctx context.Context) (*backend.Profile, error) {
	if _, ok := s.sessions.Current(); !ok {
		return nil, backend.NewValidationError("please login to view your profile")
	}
	return s.backend.GetProfile(ctx)
}

// LoyaltyPoints fetches the current loyalty point balance
func (s *Service) LoyaltyPoints(ctx context.Context) (int64, error) {
	profile, err := s.Get(ctx)
	if err != nil {
		return 0, err
	}
	return profile.LoyaltyPoints, nil
}

// Update changes the caller's name and email
func (s *Service) Update(ctx context.Context, update backend.ProfileUpdate) (*backend.Profile, error) {
	if _, ok := s.sessions.Current(); !ok {
		return nil, backend.NewValidationError("please login to update your profile")
	}
	if strings.TrimSpace(update.Name) == "" || strings.TrimSpace(update.Email) == "" {
		return nil, backend.NewValidationError("name and email are required")
	}
	return s.backend.UpdateProfile(ctx, update)
}

// Delete permanently deletes the caller's account. A deleted account has no
// session, so a successful delete logs out immediately.
func (s *Service) Delete(ctx context.Context) error {
	if _, ok := s.sessions.Current(); !ok {
		return backend.NewValidationError("please login first")
	}

	if err := s.backend.DeleteProfile(ctx); err != nil {
		return err
	}
	s.log.Info("Account deleted, ending session")
	s.sessions.Logout(ctx)
	return nil
}

// Stats fetches the caller's account summary
func (s *Service) Stats(ctx context.Context) (*backend.ProfileStats, error) {
	if _, ok := s.sessions.Current(); !ok {
		return nil, backend.NewValidationError("please login to view your profile")
	}
	return s.backend.ProfileStats(ctx)
}

// Customers fetches the customer directory (admin only). Search responses
// can arrive out of order; an overtaken response is dropped.
func (s *Service) Customers(ctx context.Context, search string) ([]backend.Customer, error) {
	sess, ok := s.sessions.Current()
	if !ok {
		return nil, backend.NewValidationError("please login first")
	}
	if !sess.IsAdmin() {
		return nil, backend.NewValidationError("admin access required")
	}

	s.mu.Lock()
	s.issued++
	seq := s.issued
	s.mu.Unlock()

	customers, err := s.backend.ListCustomers(ctx, search)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq < s.issued {
		s.log.Debug("Discarding stale customer listing")
		return nil, nil
	}
	return customers, nil
}
