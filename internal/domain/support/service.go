// internal/domain/support/service.go
package support

import (
	"context"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-gateway/internal/config"
	"github.com/your-org/storefront-gateway/internal/domain/session"
	"github.com/your-org/storefront-gateway/internal/infrastructure/backend"
	"github.com/your-org/storefront-gateway/internal/pkg/poller"
)

// Backend is the slice of the commerce API the support service needs
type Backend interface {
	SupportMessages(ctx context.Context) ([]backend.SupportMessage, error)
	SendSupportMessage(ctx context.Context, text string) (*backend.SupportMessage, error)
	AdminConversations(ctx context.Context) ([]backend.Conversation, error)
	AdminThread(ctx context.Context, userID string) ([]backend.SupportMessage, error)
	AdminReply(ctx context.Context, userID, text string) (*backend.SupportMessage, error)
}

// Sessions supplies the active session
type Sessions interface {
	Current() (session.Session, bool)
}

// Service runs the customer support chat. The conversation only refreshes
// while the chat is open: Open starts a short-interval poller, Close stops
// it. Messages sent in between are appended locally from the server's echo
// so the sender sees them before the next poll lands.
type Service struct {
	mu       sync.Mutex
	messages []backend.SupportMessage

	backend  Backend
	sessions Sessions
	poll     *poller.Poller
	log      *logrus.Entry
}

// NewService creates a support service
func NewService(api Backend, sessions Sessions, cfg *config.Config, log *logrus.Logger) *Service {
	s := &Service{
		backend:  api,
		sessions: sessions,
		log:      log.WithField("component", "support_service"),
	}
	s.poll = poller.New("support", cfg.Polling.SupportInterval, cfg.Polling.BackoffCap, s.log, s.refresh)
	return s
}

// Open starts refreshing the conversation. No-op without a session or when
// already open.
func (s *Service) Open(ctx context.Context) {
	if _, ok := s.sessions.Current(); !ok {
		return
	}
	s.poll.Start(ctx)
}

// Close stops refreshing the conversation. The cached messages stay so a
// reopened chat renders instantly.
func (s *Service) Close() {
	s.poll.Stop()
}

// IsOpen reports whether the chat is currently refreshing
func (s *Service) IsOpen() bool {
	return s.poll.Running()
}

func (s *Service) refresh(ctx context.Context) error {
	messages, err := s.backend.SupportMessages(ctx)
	if err != nil {
		return err
	}
	if ctx.Err() != nil {
		// Stopped while the fetch was in flight; the result no longer applies
		return ctx.Err()
	}

	s.mu.Lock()
	s.messages = messages
	s.mu.Unlock()
	return nil
}

// Messages returns a copy of the cached conversation
func (s *Service) Messages() []backend.SupportMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	messages := make([]backend.SupportMessage, len(s.messages))
	copy(messages, s.messages)
	return messages
}

// Send appends a message to the conversation. The server's echo is appended
// to the cache immediately; the next poll reconciles.
func (s *Service) Send(ctx context.Context, text string) (*backend.SupportMessage, error) {
	if _, ok := s.sessions.Current(); !ok {
		return nil, backend.NewValidationError("please login to contact support")
	}
	if strings.TrimSpace(text) == "" {
		return nil, backend.NewValidationError("message cannot be empty")
	}

	msg, err := s.backend.SendSupportMessage(ctx, text)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.messages = append(s.messages, *msg)
	s.mu.Unlock()
	return msg, nil
}

// Conversations lists all customer threads (admin only)
func (s *Service) Conversations(ctx context.Context) ([]backend.Conversation, error) {
	if err := s.requireAdmin(); err != nil {
		return nil, err
	}
	return s.backend.AdminConversations(ctx)
}

// Thread fetches one customer's conversation (admin only)
func (s *Service) Thread(ctx context.Context, userID string) ([]backend.SupportMessage, error) {
	if err := s.requireAdmin(); err != nil {
		return nil, err
	}
	if userID == "" {
		return nil, backend.NewValidationError("user id is required")
	}
	return s.backend.AdminThread(ctx, userID)
}

// Reply answers a customer's conversation (admin only)
func (s *Service) Reply(ctx context.Context, userID, text string) (*backend.SupportMessage, error) {
	if err := s.requireAdmin(); err != nil {
		return nil, err
	}
	if userID == "" {
		return nil, backend.NewValidationError("user id is required")
	}
	if strings.TrimSpace(text) == "" {
		return nil, backend.NewValidationError("message cannot be empty")
	}
	return s.backend.AdminReply(ctx, userID, text)
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

// Reset closes the chat and drops the cached conversation. Registered as a
// session logout hook.
func (s *Service) Reset() {
	s.poll.Stop()
	s.mu.Lock()
	s.messages = nil
	s.mu.Unlock()
}
