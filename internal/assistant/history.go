package assistant

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/rishav-026/Gamified-Coding-platform/internal/domain"
)

// History is a bounded conversation log. When full, the oldest messages are dropped.
type History struct {
	mu       sync.Mutex
	limit    int
	messages []domain.ChatMessage
}

// NewHistory creates a history holding at most limit messages
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &History{limit: limit}
}

// Append adds messages, trimming from the front past the limit
func (h *History) Append(msgs ...domain.ChatMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.messages = append(h.messages, msgs...)
	if over := len(h.messages) - h.limit; over > 0 {
		h.messages = append([]domain.ChatMessage(nil), h.messages[over:]...)
	}
}

// Messages returns a copy of the log, oldest first
func (h *History) Messages() []domain.ChatMessage {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]domain.ChatMessage, len(h.messages))
	copy(out, h.messages)
	return out
}

func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.messages)
}

func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.messages = nil
}

// HistoryStore keeps one History per user. Least recently used conversations are evicted.
type HistoryStore struct {
	mu    sync.Mutex
	limit int
	cache *lru.Cache[string, *History]
}

// NewHistoryStore creates a store for up to users conversations of limit messages each
func NewHistoryStore(users, limit int) *HistoryStore {
	if users <= 0 {
		users = DefaultHistoryUsers
	}
	cache, err := lru.New[string, *History](users)
	if err != nil {
		// only fails for a non-positive size
		panic(err)
	}
	return &HistoryStore{limit: limit, cache: cache}
}

// Get returns the user's history, creating it if absent
func (s *HistoryStore) Get(userID string) *History {
	s.mu.Lock()
	defer s.mu.Unlock()
	if h, ok := s.cache.Get(userID); ok {
		return h
	}
	h := NewHistory(s.limit)
	s.cache.Add(userID, h)
	return h
}

// Clear drops the user's history
func (s *HistoryStore) Clear(userID string) {
	s.cache.Remove(userID)
}

// Len reports how many conversations are held
func (s *HistoryStore) Len() int {
	return s.cache.Len()
}
