package chat

import (
	"time"

	"github.com/ouwenyi03/Jay-Agent/internal/storage"
)

// TimestampLayout formats turn timestamps on the local clock.
const TimestampLayout = "2006-01-02 15:04:05"

// DefaultConversationID keys the one conversation every client shares.
const DefaultConversationID = storage.DefaultConversation

// Turn is one user message together with the persona's reply.
type Turn struct {
	User      string `json:"user"`
	AI        string `json:"ai"`
	Timestamp string `json:"timestamp"`
}

// NewTurn stamps a turn with the given instant in local time.
func NewTurn(user, ai string, at time.Time) Turn {
	return Turn{
		User:      user,
		AI:        ai,
		Timestamp: at.Local().Format(TimestampLayout),
	}
}
