// Package params reads path and query parameters shared by the handlers.
package params

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// ID parses the {id} path parameter.
func ID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid id")
	}

	return id, nil
}

// OptionalUUID parses query parameter name, returning nil when it is absent.
func OptionalUUID(r *http.Request, name string) (*uuid.UUID, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return nil, nil
	}

	id, err := uuid.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("invalid %s", name)
	}

	return &id, nil
}

// OptionalDate parses a YYYY-MM-DD query parameter.
func OptionalDate(r *http.Request, name string) (*time.Time, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return nil, nil
	}

	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, fmt.Errorf("invalid %s", name)
	}

	return &t, nil
}

// Int parses query parameter name, returning def when it is absent.
func Int(r *http.Request, name string, def int) (int, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return def, nil
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", name)
	}

	return n, nil
}

// Month reads ?month=&year=, defaulting to the month containing now.
// Range checking is left to the services.
func Month(r *http.Request, now time.Time) (month, year int, err error) {
	month, err = Int(r, "month", int(now.Month()))
	if err != nil {
		return 0, 0, err
	}

	year, err = Int(r, "year", now.Year())
	if err != nil {
		return 0, 0, err
	}

	return month, year, nil
}
