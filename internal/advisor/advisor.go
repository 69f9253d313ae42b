// Package advisor answers money questions with a generative model, grounded
// in a summary of the user's own finances.
package advisor

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotConfigured = errors.New("advisor model is not configured")
	ErrEmptyQuestion = errors.New("question is required")
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry of a user's chat history.
type Message struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Role      Role
	Content   string
	CreatedAt time.Time
}
