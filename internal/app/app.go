package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"

	"chatflow/client/internal/api"
	"chatflow/client/internal/config"
	"chatflow/client/internal/database"
	"chatflow/client/internal/llm"
	"chatflow/client/internal/outbox"
	"chatflow/client/internal/repository"
	"chatflow/client/internal/service"
	"chatflow/client/internal/typing"
)

// App holds the wired orchestration core and the view API server.
type App struct {
	Config     *config.Config
	DB         *sql.DB
	Redis      *redis.Client
	Store      *service.Store
	Animator   *typing.Animator
	Settings   *service.SettingsService
	Feedback   *service.FeedbackService
	Sessions   *service.SessionManager
	Dispatcher *service.Dispatcher
	Outbox     outbox.Outbox
	Server     *http.Server
}

// NewApp opens local storage, loads the generation settings and wires every
// component. It does not contact the chat backend.
func NewApp(cfg *config.Config) (*App, error) {
	db, err := database.InitDB(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	a := &App{Config: cfg, DB: db}

	ob, err := a.openOutbox()
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Outbox = ob

	a.Store = service.NewStore(cfg.UserID)
	a.Animator = typing.NewAnimator(cfg.TypingInterval, a.Store)

	a.Settings = service.NewSettingsService(db)
	a.Settings.OnChange(func(s service.Settings) {
		a.Animator.SetInterval(s.TypingInterval())
	})

	defaults := service.DefaultSettings()
	if ms := int(cfg.TypingInterval / time.Millisecond); ms > 0 {
		defaults.TypingIntervalMs = ms
	}
	settings, err := a.Settings.InitAndGet(context.Background(), defaults)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to initialize settings: %w", err)
	}
	slog.Info("Loaded generation settings", "min_new_tokens", settings.MinNewTokens, "num_beams", settings.NumBeams, "typing_interval_ms", settings.TypingIntervalMs)

	repo := repository.NewHTTPRepository(cfg.APIBaseURL, cfg.RequestTimeout)
	gen := llm.NewHTTPGenerator(cfg.APIBaseURL, cfg.GenerateTimeout)

	a.Feedback = service.NewFeedbackService(a.Store, repo, cfg.HydrateConcurrency)
	a.Sessions = service.NewSessionManager(a.Store, repo, a.Animator, a.Feedback)
	a.Dispatcher = service.NewDispatcher(a.Sessions, gen, a.Outbox, a.Settings)

	chatHandler := api.NewChatHandler(a.Sessions, a.Dispatcher, a.Settings)
	feedbackHandler := api.NewFeedbackHandler(a.Feedback)
	router := api.NewRouter(chatHandler, feedbackHandler)

	a.Server = &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           router,
		ReadHeaderTimeout: 20 * time.Second,
		WriteTimeout:      0, // Disabled for the state stream
		IdleTimeout:       120 * time.Second,
	}

	return a, nil
}

func (a *App) openOutbox() (outbox.Outbox, error) {
	driver := outbox.Driver(strings.ToLower(a.Config.OutboxDriver))
	switch driver {
	case outbox.DriverRedis:
		a.Redis = redis.NewClient(&redis.Options{Addr: a.Config.RedisAddr})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.Redis.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("failed to connect to redis at %s: %w", a.Config.RedisAddr, err)
		}
		slog.Info("Successfully connected to Redis.", "addr", a.Config.RedisAddr)
		return outbox.New(driver, outbox.WithRedisClient(a.Redis))
	case "":
		driver = outbox.DriverSQLite
	}
	ob, err := outbox.New(driver, outbox.WithDB(a.DB))
	if err != nil {
		return nil, fmt.Errorf("failed to open outbox %q: %w", driver, err)
	}
	return ob, nil
}

// Bootstrap loads the ongoing list when an identity is configured.
func (a *App) Bootstrap(ctx context.Context) {
	if a.Store.Snapshot().UserID == "" {
		slog.Warn("No USER_ID configured; set an identity before chatting")
		return
	}
	if _, err := a.Sessions.LoadSessions(ctx); err != nil {
		slog.Warn("Initial session list not loaded", "error", err)
	}
}

// Serve runs the view API until ctx ends, then shuts it down gracefully.
func (a *App) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting server", "addr", a.Server.Addr)
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	// Open state streams never go idle on their own.
	a.Store.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	slog.Info("Shutting down server")
	return a.Server.Shutdown(shutdownCtx)
}

// Close ends state streams, stops the animation, waits for running turns and releases storage.
func (a *App) Close() {
	if a.Store != nil {
		a.Store.Close()
	}
	if a.Animator != nil {
		a.Animator.Cancel()
	}
	if a.Dispatcher != nil {
		a.Dispatcher.Wait()
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			slog.Error("Failed to close redis client", "error", err)
		}
	}
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}
}

// Setup loads the configuration and installs the logger.
func Setup() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	setupLogger(cfg.LogLevel)
	logConfigSource()
	return cfg, nil
}

func logConfigSource() {
	configFileUsed := viper.ConfigFileUsed()
	if configFileUsed != "" {
		slog.Info("Successfully loaded configuration from file.", "file", configFileUsed)
	} else {
		slog.Info("Configuration file not found. Using environment variables and defaults.")
	}
}

func setupLogger(logLevel string) {
	var level slog.Level
	switch strings.ToUpper(logLevel) {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}
