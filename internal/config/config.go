package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all client configuration. Values come from environment
// variables with the PRDESK_ prefix, optionally seeded from a .env file.
type Config struct {
	// BaseURL is the HTTP origin of the approval API, e.g. "http://localhost:8000".
	BaseURL string
	// WSURL is the websocket origin for the notification stream. Empty means
	// derive it from BaseURL by swapping the scheme.
	WSURL string
	// DBPath is the local SQLite database used for the session cache.
	DBPath string
	// LogFile receives structured client logs. Empty disables file logging.
	LogFile string
	// TimeoutMs bounds every HTTP call.
	TimeoutMs int
	// StrictQuantity makes a non-numeric item quantity a validation error
	// instead of silently coercing it to zero on submit.
	StrictQuantity bool
	// ReconnectMaxMs caps the exponential backoff between stream reconnects.
	ReconnectMaxMs int
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		BaseURL:        "http://localhost:8000",
		TimeoutMs:      15000,
		StrictQuantity: false,
		ReconnectMaxMs: 30000,
	}
}

// LoadConfig reads configuration from the environment, falling back to
// defaults for any unset values. A .env file in the working directory is
// loaded first when present; real environment variables win over it.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()

	if v := os.Getenv("PRDESK_API_URL"); v != "" {
		cfg.BaseURL = strings.TrimRight(v, "/")
	}
	if v := os.Getenv("PRDESK_WS_URL"); v != "" {
		cfg.WSURL = strings.TrimRight(v, "/")
	}
	if v := os.Getenv("PRDESK_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("PRDESK_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("PRDESK_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("PRDESK_STRICT_QUANTITY"); v != "" {
		cfg.StrictQuantity, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("PRDESK_RECONNECT_MAX_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.ReconnectMaxMs = n
		}
	}

	if cfg.DBPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, fmt.Errorf("finding home directory: %w", err)
		}
		cfg.DBPath = filepath.Join(home, ".prdesk", "prdesk.db")
	}

	return cfg, nil
}

// StreamURL returns the full websocket endpoint for the notification stream,
// deriving the origin from BaseURL when WSURL is unset.
func (c Config) StreamURL() (string, error) {
	origin := c.WSURL
	if origin == "" {
		u, err := url.Parse(c.BaseURL)
		if err != nil {
			return "", fmt.Errorf("parsing base URL: %w", err)
		}
		switch u.Scheme {
		case "https":
			u.Scheme = "wss"
		default:
			u.Scheme = "ws"
		}
		origin = u.String()
	}
	return strings.TrimRight(origin, "/") + "/ws/notifications/", nil
}
