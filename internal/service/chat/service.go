package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/studybuddy/assistant/backend/internal/metrics"
	"github.com/studybuddy/assistant/backend/internal/model/chat"
)

// ErrInvalidTurn is returned when a turn has an empty body, an empty session key or an unknown role.
var ErrInvalidTurn = errors.New("invalid turn")

// Service is the in-memory conversation store. Histories live for the process lifetime
// unless cleared; there is no expiry.
type Service struct {
	mu       sync.RWMutex
	sessions map[string][]chat.Turn
}

// NewService bootstraps an empty store.
func NewService() *Service {
	return &Service{
		sessions: make(map[string][]chat.Turn),
	}
}

type appendRequest struct {
	SessionKey string
	Role       chat.Role
	Content    string
}

func (r appendRequest) validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.SessionKey, validation.Required),
		validation.Field(&r.Role, validation.Required, validation.In(chat.RoleUser, chat.RoleAssistant)),
		validation.Field(&r.Content, validation.Required),
	)
}

// Get returns a copy of the session history in insertion order. Unknown keys yield an empty slice.
func (s *Service) Get(_ context.Context, sessionKey string) []chat.Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()

	turns := s.sessions[sessionKey]
	copied := make([]chat.Turn, len(turns))
	copy(copied, turns)
	return copied
}

// Append adds a turn, creating the session on first write.
func (s *Service) Append(_ context.Context, sessionKey string, role chat.Role, content string) error {
	req := appendRequest{
		SessionKey: strings.TrimSpace(sessionKey),
		Role:       role,
		Content:    strings.TrimSpace(content),
	}
	if err := req.validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTurn, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	turns, ok := s.sessions[sessionKey]
	if !ok {
		turns = make([]chat.Turn, 0, 16)
		metrics.ActiveSessions.Inc()
	}
	// Content is stored as given; trimming only decides validity.
	s.sessions[sessionKey] = append(turns, chat.Turn{Role: role, Content: content})
	return nil
}

// Clear removes the session. Clearing an unknown key is a no-op.
func (s *Service) Clear(_ context.Context, sessionKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sessionKey]; ok {
		delete(s.sessions, sessionKey)
		metrics.ActiveSessions.Dec()
	}
}

// Len reports the number of turns stored for the session.
func (s *Service) Len(_ context.Context, sessionKey string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions[sessionKey])
}
