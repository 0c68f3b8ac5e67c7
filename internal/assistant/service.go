package assistant

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/ulhasvenkateshm13-dotcom/buildit/internal/catalog"
)

const greetingText = "Hi! I'm your Engineer AI.\n\nTell me what you're building (e.g., \"I need to paint a 10x12 room\" or \"Build a brick wall\"), and I'll create a complete project bundle for you."

const fallbackText = "I'm having trouble calculating that project right now. Please try again."

// Service owns the assistant conversation. A single request may be
// outstanding at a time; the busy flag is cleared unconditionally on
// completion or failure.
type Service struct {
	client Client
	store  catalog.Store

	busy atomic.Bool

	mu       sync.Mutex
	messages []Message
}

// NewService creates the assistant. client may be nil when no API
// credential is configured; Send then becomes a guarded no-op.
func NewService(client Client, store catalog.Store) *Service {
	s := &Service{
		client: client,
		store:  store,
	}
	s.messages = append(s.messages, Message{
		ID:        uuid.New().String(),
		Role:      RoleModel,
		Text:      greetingText,
		CreatedAt: time.Now(),
	})
	return s
}

// Messages returns a copy of the conversation history.
func (s *Service) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Busy reports whether a request is currently outstanding.
func (s *Service) Busy() bool {
	return s.busy.Load()
}

// Send forwards the user's project description to the AI collaborator
// and appends its reply to the conversation. External failures of any
// kind surface as the fallback conversational message, never as an
// error.
func (s *Service) Send(ctx context.Context, text string) (*Message, error) {
	if s.client == nil {
		return nil, ErrNotConfigured
	}

	if !s.busy.CompareAndSwap(false, true) {
		return nil, ErrRequestInFlight
	}
	defer s.busy.Store(false)

	s.append(Message{
		ID:        uuid.New().String(),
		Role:      RoleUser,
		Text:      text,
		CreatedAt: time.Now(),
	})

	reply, err := s.estimate(ctx, text)
	if err != nil {
		log.Printf("assistant estimate error: %v", err)
		fallback := Message{
			ID:        uuid.New().String(),
			Role:      RoleModel,
			Text:      fallbackText,
			CreatedAt: time.Now(),
		}
		s.append(fallback)
		return &fallback, nil
	}

	msg := Message{
		ID:                    uuid.New().String(),
		Role:                  RoleModel,
		Text:                  reply.Response,
		RecommendedProductIDs: s.knownIDs(ctx, reply.RecommendedProductIDs),
		Bundle:                reply.Bundle,
		CreatedAt:             time.Now(),
	}
	s.append(msg)
	return &msg, nil
}

func (s *Service) estimate(ctx context.Context, text string) (*Reply, error) {
	excerpt, err := s.store.Excerpt(ctx)
	if err != nil {
		return nil, err
	}
	return s.client.Estimate(ctx, text, excerpt)
}

// knownIDs filters recommended ids down to products that exist, so the
// stored message never references an unknown product.
func (s *Service) knownIDs(ctx context.Context, ids []string) []string {
	var known []string
	for _, id := range ids {
		if _, err := s.store.Get(ctx, id); err == nil {
			known = append(known, id)
		}
	}
	return known
}

func (s *Service) append(m Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, m)
}
