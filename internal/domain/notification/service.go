// internal/domain/notification/service.go
package notification

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-gateway/internal/config"
	"github.com/your-org/storefront-gateway/internal/domain/session"
	"github.com/your-org/storefront-gateway/internal/infrastructure/backend"
	"github.com/your-org/storefront-gateway/internal/pkg/poller"
)

// Backend is the slice of the commerce API the notification service needs
type Backend interface {
	Notifications(ctx context.Context) ([]backend.Notification, error)
	MarkNotificationRead(ctx context.Context, id string) error
	MarkAllNotificationsRead(ctx context.Context) error
}

// Sessions supplies the active session
type Sessions interface {
	Current() (session.Session, bool)
}

// Service keeps the notification feed fresh while a session is active. The
// feed is polled on a fixed interval; when the unread count grows between
// polls the registered callback fires with the new total.
type Service struct {
	mu            sync.Mutex
	notifications []backend.Notification
	unread        int
	onUnreadGrew  func(unread int)

	backend  Backend
	sessions Sessions
	poll     *poller.Poller
	log      *logrus.Entry
}

// NewService creates a notification service
func NewService(api Backend, sessions Sessions, cfg *config.Config, log *logrus.Logger) *Service {
	s := &Service{
		backend:  api,
		sessions: sessions,
		log:      log.WithField("component", "notification_service"),
	}
	s.poll = poller.New("notifications", cfg.Polling.NotificationInterval, cfg.Polling.BackoffCap, s.log, s.refresh)
	return s
}

// OnUnreadGrew registers the callback fired when new unread notifications
// arrive. Must be called before Start.
func (s *Service) OnUnreadGrew(fn func(unread int)) {
	s.mu.Lock()
	s.onUnreadGrew = fn
	s.mu.Unlock()
}

// Start begins polling the feed. No-op without a session or when already
// running.
func (s *Service) Start(ctx context.Context) {
	if _, ok := s.sessions.Current(); !ok {
		return
	}
	s.poll.Start(ctx)
}

// Stop halts polling. The cached feed stays.
func (s *Service) Stop() {
	s.poll.Stop()
}

// Running reports whether the feed poller is active
func (s *Service) Running() bool {
	return s.poll.Running()
}

func (s *Service) refresh(ctx context.Context) error {
	notifications, err := s.backend.Notifications(ctx)
	if err != nil {
		return err
	}
	if ctx.Err() != nil {
		// Stopped while the fetch was in flight; the result no longer applies
		return ctx.Err()
	}

	unread := 0
	for _, n := range notifications {
		if !n.IsRead {
			unread++
		}
	}

	s.mu.Lock()
	prev := s.unread
	s.notifications = notifications
	s.unread = unread
	fn := s.onUnreadGrew
	s.mu.Unlock()

	if unread > prev && fn != nil {
		fn(unread)
	}
	return nil
}

// Notifications returns a copy of the cached feed
func (s *Service) Notifications() []backend.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	notifications := make([]backend.Notification, len(s.notifications))
	copy(notifications, s.notifications)
	return notifications
}

// Unread returns the cached unread count
func (s *Service) Unread() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unread
}

// MarkRead marks one notification as read and updates the cache in place
func (s *Service) MarkRead(ctx context.Context, id string) error {
	if _, ok := s.sessions.Current(); !ok {
		return backend.NewValidationError("please login first")
	}
	if id == "" {
		return backend.NewValidationError("notification id is required")
	}

	if err := s.backend.MarkNotificationRead(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notifications {
		if s.notifications[i].ID == id && !s.notifications[i].IsRead {
			s.notifications[i].IsRead = true
			s.unread--
			break
		}
	}
	return nil
}

// MarkAllRead marks the whole feed as read
func (s *Service) MarkAllRead(ctx context.Context) error {
	if _, ok := s.sessions.Current(); !ok {
		return backend.NewValidationError("please login first")
	}

	if err := s.backend.MarkAllNotificationsRead(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notifications {
		s.notifications[i].IsRead = true
	}
	s.unread = 0
	return nil
}

// Reset stops polling and drops the cached feed. Registered as a session
// logout hook.
func (s *Service) Reset() {
	s.poll.Stop()
	s.mu.Lock()
	s.notifications = nil
	s.unread = 0
	s.mu.Unlock()
}
