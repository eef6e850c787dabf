package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Dealboard"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"dealboard"`
	}

	Server struct {
		Timeout        time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		AllowedOrigins []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:5173"`
	}

	// Export authenticates data-room downloads against the document service.
	Export struct {
		Token string `envconfig:"DOCUMENTS_TOKEN"`
	}

	Notes struct {
		Debounce time.Duration `envconfig:"NOTES_DEBOUNCE" default:"500ms"`
		Refresh  time.Duration `envconfig:"NOTES_REFRESH" default:"10s"`
	}

	// Client is read by the TUI only.
	Client struct {
		BaseURL string        `envconfig:"API_URL" default:"http://localhost:8080"`
		Timeout time.Duration `envconfig:"API_TIMEOUT" default:"5s"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
