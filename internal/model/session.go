package model

import (
	"fmt"
	"time"
)

// SessionKind is a closed tag selecting which format options a session offers.
type SessionKind string

const (
	// SessionKindVideo means the prompt offers video resolutions plus an
	// audio-only fallback.
	SessionKindVideo SessionKind = "video"

	// SessionKindAudio means the prompt offers audio output codecs only.
	SessionKindAudio SessionKind = "audio"
)

// String returns the string representation of SessionKind.
func (k SessionKind) String() string {
	return string(k)
}

// Valid reports whether the kind is one of the closed set of tags.
func (k SessionKind) Valid() bool {
	return k == SessionKindVideo || k == SessionKindAudio
}

// SessionKey composes the durable key for a conversation prompt. A session is
// keyed by the chat and the message carrying the selection controls, so one
// user may hold several pending prompts at once.
func SessionKey(chatID int64, messageID int) string {
	return fmt.Sprintf("%d:%d", chatID, messageID)
}

// Session binds a conversation prompt to a pending user choice. It is created
// when link metadata has been extracted and a selection prompt was sent, and
// removed when the transfer it triggered reaches a terminal state.
type Session struct {
	URL       string      `json:"url"`
	Kind      SessionKind `json:"kind"`
	Metadata  Metadata    `json:"metadata"`
	Title     string      `json:"title"`  // sanitized, filesystem- and caption-safe
	Author    string      `json:"author"` // uploader/artist display name
	UserID    int64       `json:"user_id"`
	CreatedAt time.Time   `json:"created_at,omitempty"`
}

// Caption returns the prompt caption shown with the selection keyboard.
func (s *Session) Caption() string {
	return s.Title + " - " + s.Author
}
