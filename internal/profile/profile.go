package profile

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("profile not found")

type Profile struct {
	ID        uuid.UUID
	Email     string
	FullName  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DisplayName returns the full name, falling back to the email's local part.
func (p *Profile) DisplayName() string {
	if p.FullName != "" {
		return p.FullName
	}

	for i, r := range p.Email {
		if r == '@' {
			return p.Email[:i]
		}
	}

	return p.Email
}
