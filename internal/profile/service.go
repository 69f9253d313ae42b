package profile

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=profile
type Repository interface {
	// UpsertProfile inserts the profile if missing and returns the stored row.
	// Existing non-empty fields are kept.
	UpsertProfile(ctx context.Context, p *Profile) (*Profile, error)
	GetProfile(ctx context.Context, id uuid.UUID) (*Profile, error)
	UpdateFullName(ctx context.Context, id uuid.UUID, fullName string) (*Profile, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// EnsureExists creates the user's profile on first sight. Every other table
// references profiles, so this runs before the user's first write.
func (s *Service) EnsureExists(ctx context.Context, id uuid.UUID, email, fullName string) (*Profile, error) {
	return s.repo.UpsertProfile(ctx, &Profile{
		ID:       id,
		Email:    strings.TrimSpace(email),
		FullName: strings.TrimSpace(fullName),
	})
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Profile, error) {
	return s.repo.GetProfile(ctx, id)
}

func (s *Service) UpdateFullName(ctx context.Context, id uuid.UUID, fullName string) (*Profile, error) {
	return s.repo.UpdateFullName(ctx, id, strings.TrimSpace(fullName))
}
