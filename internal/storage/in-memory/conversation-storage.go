package in_memory

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/shivampatadiya-ai-hub/nutrigenie/internal/model"
)

var (
	ErrConversationDoesNotExist = errors.New("conversation does not exist")
)

// ConversationStorage keeps the ordered message log of each conversation in
// memory. Nothing survives a process restart, which is exactly the intended
// lifetime of a chat session here.
type ConversationStorage struct {
	mu            sync.RWMutex
	conversations map[uuid.UUID][]model.Message
}

func NewConversationStorage() *ConversationStorage {
	return &ConversationStorage{
		conversations: make(map[uuid.UUID][]model.Message),
	}
}

func (s *ConversationStorage) CreateConversation() uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	conversationID := uuid.New()
	s.conversations[conversationID] = make([]model.Message, 0)
	return conversationID
}

func (s *ConversationStorage) AppendMessage(conversationID uuid.UUID, msg model.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	messages, ok := s.conversations[conversationID]
	if !ok {
		return ErrConversationDoesNotExist
	}
	s.conversations[conversationID] = append(messages, msg)
	return nil
}

// ListMessages returns a copy of the log in insertion order.
func (s *ConversationStorage) ListMessages(conversationID uuid.UUID) ([]model.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	messages, ok := s.conversations[conversationID]
	if !ok {
		return nil, ErrConversationDoesNotExist
	}
	out := make([]model.Message, len(messages))
	copy(out, messages)
	return out, nil
}

func (s *ConversationStorage) DeleteConversation(conversationID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.conversations, conversationID)
}
