package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dompet-app/dompet/internal/database"
	"github.com/dompet-app/dompet/internal/profile"
)

type Store struct {
	db database.DB
}

func New(db database.DB) *Store {
	return &Store{db: db}
}

const profileColumns = `id, email, full_name, created_at, updated_at`

func scanProfile(row pgx.Row) (*profile.Profile, error) {
	var p profile.Profile
	if err := row.Scan(&p.ID, &p.Email, &p.FullName, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}

	return &p, nil
}

func (s *Store) UpsertProfile(ctx context.Context, p *profile.Profile) (*profile.Profile, error) {
	stored, err := scanProfile(s.db.QueryRow(ctx, `
		INSERT INTO profiles (id, email, full_name) VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE
		SET email     = COALESCE(NULLIF(profiles.email, ''), EXCLUDED.email),
		    full_name = COALESCE(NULLIF(profiles.full_name, ''), EXCLUDED.full_name)
		RETURNING `+profileColumns,
		p.ID, p.Email, p.FullName,
	))
	if err != nil {
		return nil, fmt.Errorf("upserting profile: %w", err)
	}

	return stored, nil
}

func (s *Store) GetProfile(ctx context.Context, id uuid.UUID) (*profile.Profile, error) {
	p, err := scanProfile(s.db.QueryRow(ctx, `SELECT `+profileColumns+` FROM profiles WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, profile.ErrNotFound
		}

		return nil, fmt.Errorf("getting profile: %w", err)
	}

	return p, nil
}

func (s *Store) UpdateFullName(ctx context.Context, id uuid.UUID, fullName string) (*profile.Profile, error) {
	p, err := scanProfile(s.db.QueryRow(ctx,
		`UPDATE profiles SET full_name = $2, updated_at = NOW() WHERE id = $1 RETURNING `+profileColumns,
		id, fullName,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, profile.ErrNotFound
		}

		return nil, fmt.Errorf("updating profile: %w", err)
	}

	return p, nil
}
