package chat

import "time"

// Origin tags who authored a transcript entry.
type Origin string

const (
	OriginUser Origin = "user"
	OriginBot  Origin = "bot"
)

// Message is a single transcript entry.
type Message struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Origin    Origin    `json:"origin"`
	CreatedAt time.Time `json:"createdAt"`
}
