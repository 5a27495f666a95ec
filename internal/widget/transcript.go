package widget

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zhouzirui/flight-insights/backend/internal/model/chat"
)

// Transcript is the append-only message list of one widget session.
type Transcript struct {
	mu       sync.RWMutex
	messages []chat.Message
}

// NewTranscript returns an empty transcript.
func NewTranscript() *Transcript {
	return &Transcript{messages: make([]chat.Message, 0, 16)}
}

// Append adds a message at the end and returns the stored copy.
func (t *Transcript) Append(origin chat.Origin, text string) chat.Message {
	message := chat.Message{
		ID:        uuid.NewString(),
		Text:      text,
		Origin:    origin,
		CreatedAt: time.Now().UTC(),
	}

	t.mu.Lock()
	t.messages = append(t.messages, message)
	t.mu.Unlock()

	return message
}

// Messages returns a snapshot in display order.
func (t *Transcript) Messages() []chat.Message {
	t.mu.RLock()
	defer t.mu.RUnlock()

	copied := make([]chat.Message, len(t.messages))
	copy(copied, t.messages)
	return copied
}

// Len returns the number of messages.
func (t *Transcript) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.messages)
}
