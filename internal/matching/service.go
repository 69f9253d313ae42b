package matching

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound     = errors.New("rule not found")
	ErrEmptyPattern = errors.New("pattern is required")
)

// Rule assigns CategoryID to any transaction whose description contains Pattern.
type Rule struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Pattern    string
	CategoryID uuid.UUID
	CreatedAt  time.Time
}

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=matching
type Repository interface {
	// FindMatch returns the category of the longest pattern contained in
	// description, or ok=false when no rule matches.
	FindMatch(ctx context.Context, userID uuid.UUID, description string) (categoryID uuid.UUID, ok bool, err error)
	CreateRule(ctx context.Context, rule *Rule) error
	ListRules(ctx context.Context, userID uuid.UUID) ([]*Rule, error)
	DeleteRule(ctx context.Context, userID, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Suggest returns the category a description should be filed under.
func (s *Service) Suggest(ctx context.Context, userID uuid.UUID, description string) (uuid.UUID, bool, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return uuid.Nil, false, nil
	}

	return s.repo.FindMatch(ctx, userID, description)
}

// Learn remembers that descriptions containing pattern belong to categoryID.
func (s *Service) Learn(ctx context.Context, userID uuid.UUID, pattern string, categoryID uuid.UUID) (*Rule, error) {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return nil, ErrEmptyPattern
	}

	rule := &Rule{UserID: userID, Pattern: pattern, CategoryID: categoryID}
	if err := s.repo.CreateRule(ctx, rule); err != nil {
		return nil, err
	}

	return rule, nil
}

func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*Rule, error) {
	return s.repo.ListRules(ctx, userID)
}

func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.repo.DeleteRule(ctx, userID, id)
}
