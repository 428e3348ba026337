package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"sync"
	"time"
	"unicode/utf8"

	app_errors "chatflow/client/internal/errors"
)

const (
	keyMinNewTokens     = "min_new_tokens"
	keyNumBeams         = "num_beams"
	keyTokensPerChar    = "tokens_per_char"
	keyTypingIntervalMs = "typing_interval_ms"
)

// Settings are the locally persisted generation defaults.
type Settings struct {
	MinNewTokens     int     `json:"min_new_tokens" validate:"required,min=1,max=8192"`
	TokensPerChar    float64 `json:"tokens_per_char" validate:"required,gt=0,lte=20"`
	NumBeams         int     `json:"num_beams" validate:"required,min=1,max=10"`
	TypingIntervalMs int     `json:"typing_interval_ms" validate:"required,min=1,max=1000"`
}

func DefaultSettings() Settings {
	return Settings{
		MinNewTokens:     150,
		TokensPerChar:    2.5,
		NumBeams:         2,
		TypingIntervalMs: 30,
	}
}

// MaxNewTokens estimates the token budget for a reply to text.
func (s Settings) MaxNewTokens(text string) int {
	estimate := float64(utf8.RuneCountInString(text)) * s.TokensPerChar
	return int(math.Round(math.Max(float64(s.MinNewTokens), estimate)))
}

func (s Settings) TypingInterval() time.Duration {
	return time.Duration(s.TypingIntervalMs) * time.Millisecond
}

func (s Settings) check() error {
	switch {
	case s.MinNewTokens < 1:
		return fmt.Errorf("%w: min_new_tokens must be positive", app_errors.ErrValidation)
	case s.TokensPerChar <= 0:
		return fmt.Errorf("%w: tokens_per_char must be positive", app_errors.ErrValidation)
	case s.NumBeams < 1:
		return fmt.Errorf("%w: num_beams must be positive", app_errors.ErrValidation)
	case s.TypingIntervalMs < 1:
		return fmt.Errorf("%w: typing_interval_ms must be positive", app_errors.ErrValidation)
	}
	return nil
}

type SettingsService struct {
	db *sql.DB

	mu       sync.RWMutex
	current  Settings
	onChange []func(Settings)
}

func NewSettingsService(db *sql.DB) *SettingsService {
	return &SettingsService{db: db, current: DefaultSettings()}
}

// OnChange registers fn to be called with the new settings after every
// successful load or save.
func (s *SettingsService) OnChange(fn func(Settings)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = append(s.onChange, fn)
}

// Current returns the last loaded or saved settings without touching the database.
func (s *SettingsService) Current() Settings {
	if s == nil {
		return DefaultSettings()
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// InitAndGet loads stored settings, writing defaults on first run.
func (s *SettingsService) InitAndGet(ctx context.Context, defaults Settings) (*Settings, error) {
	values, err := s.load(ctx)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("could not read settings: %w", err)
	}

	if len(values) == 0 {
		slog.Info("No stored settings found, writing defaults")
		if err := s.Save(ctx, &defaults); err != nil {
			return nil, fmt.Errorf("failed to save initial settings: %w", err)
		}
		return &defaults, nil
	}

	settings := fromValues(values, defaults)
	s.apply(settings)
	return &settings, nil
}

// Get reads the settings from the database. Missing or unreadable keys fall
// back to the defaults.
func (s *SettingsService) Get(ctx context.Context) (*Settings, error) {
	values, err := s.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not read settings: %w", err)
	}
	settings := fromValues(values, DefaultSettings())
	return &settings, nil
}

// Save validates and stores settings in a single transaction.
func (s *SettingsService) Save(ctx context.Context, settings *Settings) error {
	if err := settings.check(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value")
	if err != nil {
		return fmt.Errorf("could not prepare statement: %w", err)
	}
	defer stmt.Close()

	pairs := [][2]string{
		{keyMinNewTokens, strconv.Itoa(settings.MinNewTokens)},
		{keyNumBeams, strconv.Itoa(settings.NumBeams)},
		{keyTokensPerChar, strconv.FormatFloat(settings.TokensPerChar, 'f', -1, 64)},
		{keyTypingIntervalMs, strconv.Itoa(settings.TypingIntervalMs)},
	}
	for _, p := range pairs {
		if _, err := stmt.ExecContext(ctx, p[0], p[1]); err != nil {
			return fmt.Errorf("could not save setting %s: %w", p[0], err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("could not commit settings: %w", err)
	}

	s.apply(*settings)
	return nil
}

func (s *SettingsService) apply(settings Settings) {
	s.mu.Lock()
	s.current = settings
	hooks := append([]func(Settings){}, s.onChange...)
	s.mu.Unlock()

	for _, fn := range hooks {
		fn(settings)
	}
}

func (s *SettingsService) load(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT key, value FROM settings")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		values[key] = value
	}
	return values, rows.Err()
}

func fromValues(values map[string]string, defaults Settings) Settings {
	out := defaults
	if v, err := strconv.Atoi(values[keyMinNewTokens]); err == nil && v > 0 {
		out.MinNewTokens = v
	}
	if v, err := strconv.Atoi(values[keyNumBeams]); err == nil && v > 0 {
		out.NumBeams = v
	}
	if v, err := strconv.ParseFloat(values[keyTokensPerChar], 64); err == nil && v > 0 {
		out.TokensPerChar = v
	}
	if v, err := strconv.Atoi(values[keyTypingIntervalMs]); err == nil && v > 0 {
		out.TypingIntervalMs = v
	}
	return out
}
