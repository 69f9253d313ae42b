// Package middleware holds the HTTP middleware specific to this API. Generic
// middleware comes from chi.
package middleware

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dompet-app/dompet/internal/http/respond"
	"github.com/dompet-app/dompet/internal/profile"
)

type contextKey string

const userIDKey contextKey = "userID"

// Claims are the bearer token claims the API reads. Subject carries the user id.
type Claims struct {
	Email        string `json:"email"`
	UserMetadata struct {
		FullName string `json:"full_name"`
	} `json:"user_metadata"`
	jwt.RegisteredClaims
}

type ProfileEnsurer interface {
	EnsureExists(ctx context.Context, id uuid.UUID, email, fullName string) (*profile.Profile, error)
}

// Authenticator verifies HS256 bearer tokens and makes sure a profile exists
// for every user it lets through.
type Authenticator struct {
	secret   []byte
	audience string
	profiles ProfileEnsurer

	// ensured remembers users whose profile was already upserted by this process.
	ensured sync.Map
}

func NewAuthenticator(secret, audience string, profiles ProfileEnsurer) *Authenticator {
	return &Authenticator{secret: []byte(secret), audience: audience, profiles: profiles}
}

// Verify parses a raw token and returns its claims.
func (a *Authenticator) Verify(raw string) (*Claims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if a.audience != "" {
		opts = append(opts, jwt.WithAudience(a.audience))
	}

	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(*jwt.Token) (any, error) {
		return a.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

// Middleware rejects requests without a valid bearer token and stores the
// caller's user id in the request context.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		scheme, raw, ok := strings.Cut(r.Header.Get("Authorization"), " ")
		if !ok || !strings.EqualFold(scheme, "bearer") || raw == "" {
			respond.Message(w, http.StatusUnauthorized, "bearer token required")
			return
		}

		claims, err := a.Verify(raw)
		if err != nil {
			respond.Message(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		userID, err := uuid.Parse(claims.Subject)
		if err != nil {
			respond.Message(w, http.StatusUnauthorized, "invalid subject")
			return
		}

		if _, done := a.ensured.Load(userID); !done {
			if _, err := a.profiles.EnsureExists(r.Context(), userID, claims.Email, claims.UserMetadata.FullName); err != nil {
				slog.ErrorContext(r.Context(), "failed to ensure profile", "user_id", userID, "error", err)
				respond.Message(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))

				return
			}

			a.ensured.Store(userID, struct{}{})
		}

		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
	})
}

// Forget drops the cached profile check for userID.
func (a *Authenticator) Forget(userID uuid.UUID) {
	a.ensured.Delete(userID)
}

func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// UserID returns the authenticated user. Handlers behind Middleware can rely on ok.
func UserID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	return id, ok
}

// RequireUser returns the authenticated user or writes 401.
func RequireUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, ok := UserID(r.Context())
	if !ok {
		respond.Message(w, http.StatusUnauthorized, "not authenticated")
	}

	return id, ok
}
