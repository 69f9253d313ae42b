package advisor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dompet-app/dompet/internal/budget"
)

const persona = "You are Willy, a friendly financial mentor for high school students."

//go:generate mockgen -source=service.go -destination=service_mock.go -package=advisor
type Repository interface {
	SaveMessage(ctx context.Context, msg *Message) error
	ListMessages(ctx context.Context, userID uuid.UUID, limit int) ([]*Message, error)
	ClearMessages(ctx context.Context, userID uuid.UUID) error
}

// Model turns a prompt into an answer.
type Model interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// SnapshotSource gathers the data a summary is built from.
type SnapshotSource interface {
	Snapshot(ctx context.Context, userID uuid.UUID, spent budget.SpentSource, now time.Time) (Snapshot, error)
}

type Service struct {
	repo    Repository
	model   Model
	sources SnapshotSource
	now     func() time.Time
}

// NewService returns an advisor. A nil model makes Ask fail with
// ErrNotConfigured while history stays readable.
func NewService(repo Repository, model Model, sources SnapshotSource) *Service {
	return &Service{repo: repo, model: model, sources: sources, now: time.Now}
}

// Ask records the question, asks the model about it in the context of the
// user's finances, and records the answer.
func (s *Service) Ask(
	ctx context.Context, userID uuid.UUID, question string, spent budget.SpentSource,
) (*Message, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, ErrEmptyQuestion
	}

	if s.model == nil {
		return nil, ErrNotConfigured
	}

	snap, err := s.sources.Snapshot(ctx, userID, spent, s.now())
	if err != nil {
		return nil, fmt.Errorf("collecting financial summary: %w", err)
	}

	if err := s.repo.SaveMessage(ctx, &Message{UserID: userID, Role: RoleUser, Content: question}); err != nil {
		return nil, fmt.Errorf("saving question: %w", err)
	}

	answer, err := s.model.Generate(ctx, BuildPrompt(persona, Summarize(snap), question))
	if err != nil {
		return nil, fmt.Errorf("asking model: %w", err)
	}

	reply := &Message{UserID: userID, Role: RoleAssistant, Content: answer}
	if err := s.repo.SaveMessage(ctx, reply); err != nil {
		return nil, fmt.Errorf("saving answer: %w", err)
	}

	return reply, nil
}

// History returns up to limit of the most recent messages, oldest first.
func (s *Service) History(ctx context.Context, userID uuid.UUID, limit int) ([]*Message, error) {
	return s.repo.ListMessages(ctx, userID, limit)
}

func (s *Service) Clear(ctx context.Context, userID uuid.UUID) error {
	return s.repo.ClearMessages(ctx, userID)
}
