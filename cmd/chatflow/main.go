// @title        Chatflow client API
// @version      1.0
// @description  Local view API over the chat orchestration core: session store, message dispatcher, feedback and outbox.
// @host         localhost:8088
// @BasePath     /api
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"chatflow/client/internal/app"
)

var (
	userID string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "chatflow",
	Short: "Chat client orchestration core",
	Long: `chatflow keeps a local view of chat sessions in sync with the chat
persistence and inference services.

Configuration is read from .env and the environment (API_BASE_URL, USER_ID,
DATABASE_PATH, OUTBOX_DRIVER, ...).`,
	SilenceUsage: true,
}

// serveCmd runs the local view API
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the local view API",
	RunE:  runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&userID, "user", "u", "", "Caller identity (overrides USER_ID)")

	sendCmd.Flags().StringVarP(&sendSession, "session", "s", "", "Session to send to (default: a new session)")
	sendCmd.Flags().IntVar(&sendBeams, "beams", 0, "Number of beams (default: stored settings)")
	sendCmd.Flags().IntVar(&sendMaxTokens, "max-tokens", 0, "Max new tokens (default: estimated from the text)")
	sessionsCmd.Flags().BoolVar(&sessionsArchived, "archived", false, "List archived sessions")

	outboxCmd.AddCommand(outboxListCmd)
	outboxCmd.AddCommand(outboxRetryCmd)

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(outboxCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.Bootstrap(ctx)
	return a.Serve(ctx)
}

// openApp loads the configuration, applies the --user override and wires the
// application.
func openApp() (*app.App, error) {
	cfg, err := app.Setup()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if userID != "" {
		cfg.UserID = userID
	}
	a, err := app.NewApp(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize application: %w", err)
	}
	return a, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
