package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Dompet"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"dompet"`
		SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	Log struct {
		Level  string `envconfig:"LOG_LEVEL" default:"info"`
		Format string `envconfig:"LOG_FORMAT" default:"text"`
	}

	Auth struct {
		JWTSecret   string `envconfig:"AUTH_JWT_SECRET"`
		JWTAudience string `envconfig:"AUTH_JWT_AUDIENCE" default:"authenticated"`
	}

	CORS struct {
		AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
	}

	Spending struct {
		// MaxAge bounds how long a cached total is served without a refetch. Zero keeps totals until invalidated.
		MaxAge             time.Duration `envconfig:"SPENDING_MAX_AGE" default:"0"`
		RefetchConcurrency int           `envconfig:"SPENDING_REFETCH_CONCURRENCY" default:"4"`
		SafetyNetRefetch   bool          `envconfig:"SPENDING_SAFETY_NET_REFETCH" default:"false"`
	}

	Gemini struct {
		APIKey string `envconfig:"GEMINI_API_KEY"`
		Model  string `envconfig:"GEMINI_MODEL" default:"gemini-2.5-flash"`
	}

	Advisor struct {
		HistoryLimit int `envconfig:"ADVISOR_HISTORY_LIMIT" default:"50"`
	}

	TUI struct {
		UserID string `envconfig:"TUI_USER_ID"`
	}
}

func (c *Config) ConnectionString() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DB.User, c.DB.Password),
		Host:     fmt.Sprintf("%s:%d", c.DB.Host, c.DB.Port),
		Path:     c.DB.Name,
		RawQuery: url.Values{"sslmode": {c.DB.SSLMode}}.Encode(),
	}

	return u.String()
}

// TUIUser parses TUI_USER_ID.
func (c *Config) TUIUser() (uuid.UUID, error) {
	if c.TUI.UserID == "" {
		return uuid.Nil, fmt.Errorf("TUI_USER_ID is not set")
	}

	id, err := uuid.Parse(c.TUI.UserID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("parsing TUI_USER_ID: %w", err)
	}

	return id, nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
