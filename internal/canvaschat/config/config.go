// Package config loads canvaschat settings from the environment. A .env file
// in the working directory is read first when present; real environment
// variables win over it.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Defaults.
const (
	DefaultDatabasePath         = "./canvaschat.db"
	DefaultHTTPAddr             = ":8080"
	DefaultWorkspaceFile        = "./workspace.yaml"
	DefaultMaxComponentThreads  = 64
	DefaultPreviewRetryAttempts = 3
)

// Config holds application configuration.
type Config struct {
	// DatabasePath is the SQLite file for the command audit log. Empty
	// disables auditing.
	DatabasePath string
	// HTTPAddr is the listen address of the HTTP API. Empty disables it.
	HTTPAddr string
	// ChatOrigins are browser origins allowed on the chat websocket besides
	// the server's own host.
	ChatOrigins []string
	// WorkspaceFile seeds the in-memory workspace. Empty starts blank.
	WorkspaceFile       string
	MaxComponentThreads int
	// PreviewRetryAttempts bounds host data and query preview calls.
	PreviewRetryAttempts int
	LogLevel             slog.Level
	// LogFormat is "text" or "json".
	LogFormat string
	Matrix    MatrixConfig
}

// MatrixConfig configures the optional Matrix transport.
type MatrixConfig struct {
	Homeserver  string
	UserID      string
	AccessToken string
	// Rooms are the room IDs treated as chat panels.
	Rooms []string
}

// Enabled reports whether a homeserver is configured.
func (m MatrixConfig) Enabled() bool {
	return m.Homeserver != ""
}

// LogValue implements slog.LogValuer; the access token is never logged.
func (m MatrixConfig) LogValue() slog.Value {
	token := ""
	if m.AccessToken != "" {
		token = "[REDACTED]"
	}
	return slog.GroupValue(
		slog.String("homeserver", m.Homeserver),
		slog.String("user_id", m.UserID),
		slog.String("access_token", token),
		slog.Any("rooms", m.Rooms),
	)
}

// Load reads .env (if present) and the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: reading .env: %w", err)
	}
	return FromEnv()
}

// FromEnv reads the environment only.
func FromEnv() (*Config, error) {
	level, err := parseLevel(stringOr("CANVASCHAT_LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg := &Config{
		DatabasePath:         stringOr("DATABASE_PATH", DefaultDatabasePath),
		HTTPAddr:             stringOr("HTTP_ADDR", DefaultHTTPAddr),
		ChatOrigins:          list("CHAT_ALLOWED_ORIGINS"),
		WorkspaceFile:        stringOr("WORKSPACE_FILE", DefaultWorkspaceFile),
		MaxComponentThreads:  intOr("MAX_COMPONENT_THREADS", DefaultMaxComponentThreads),
		PreviewRetryAttempts: intOr("PREVIEW_RETRY_ATTEMPTS", DefaultPreviewRetryAttempts),
		LogLevel:             level,
		LogFormat:            strings.ToLower(stringOr("CANVASCHAT_LOG_FORMAT", "text")),
		Matrix: MatrixConfig{
			Homeserver:  stringOr("MATRIX_HOMESERVER", ""),
			UserID:      stringOr("MATRIX_USER_ID", ""),
			AccessToken: stringOr("MATRIX_ACCESS_TOKEN", ""),
			Rooms:       list("MATRIX_ROOMS"),
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	var errs []error
	if c.MaxComponentThreads < 1 {
		errs = append(errs, fmt.Errorf("MAX_COMPONENT_THREADS must be positive, got %d", c.MaxComponentThreads))
	}
	if c.PreviewRetryAttempts < 1 {
		errs = append(errs, fmt.Errorf("PREVIEW_RETRY_ATTEMPTS must be positive, got %d", c.PreviewRetryAttempts))
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		errs = append(errs, fmt.Errorf("CANVASCHAT_LOG_FORMAT must be text or json, got %q", c.LogFormat))
	}
	if c.Matrix.Enabled() {
		if c.Matrix.UserID == "" {
			errs = append(errs, errors.New("MATRIX_USER_ID is required with MATRIX_HOMESERVER"))
		}
		if c.Matrix.AccessToken == "" {
			errs = append(errs, errors.New("MATRIX_ACCESS_TOKEN is required with MATRIX_HOMESERVER"))
		}
		if len(c.Matrix.Rooms) == 0 {
			errs = append(errs, errors.New("MATRIX_ROOMS is required with MATRIX_HOMESERVER"))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// NewLogger builds the process logger described by the config.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.LogLevel}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("config: CANVASCHAT_LOG_LEVEL: %w", err)
	}
	return level, nil
}

func stringOr(name, def string) string {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		return v
	}
	return def
}

// intOr returns def when the variable is unset or not a number.
func intOr(name string, def int) int {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("config: ignoring non-numeric value", "var", name, "value", v)
		return def
	}
	return n
}

// list splits a comma-separated variable, dropping empty items.
func list(name string) []string {
	var out []string
	for _, s := range strings.Split(os.Getenv(name), ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
