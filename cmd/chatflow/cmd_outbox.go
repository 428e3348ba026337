package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// outboxCmd manages message pairs whose save failed
var outboxCmd = &cobra.Command{
	Use:   "outbox",
	Short: "Inspect and retry unsaved messages",
	Long: `Messages whose save failed stay visible locally and are queued in the
outbox. Nothing is retried automatically.

Available subcommands:
  list  - Show queued saves
  retry - Save every queued pair again`,
}

var outboxListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show queued saves",
	RunE:  runOutboxList,
}

var outboxRetryCmd = &cobra.Command{
	Use:   "retry",
	Short: "Save every queued pair again",
	RunE:  runOutboxRetry,
}

func runOutboxList(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	pending, err := a.Dispatcher.PendingSaves(commandContext(cmd))
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(pending) == 0 {
		fmt.Fprintln(out, "Outbox is empty.")
		return nil
	}
	for _, p := range pending {
		fmt.Fprintf(out, "%s\tsession %s\t%d messages\t%s\n", p.ID, p.SessionID, len(p.Messages), p.LastError)
	}
	return nil
}

func runOutboxRetry(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	saved, err := a.Dispatcher.RetryPendingSaves(commandContext(cmd))
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %d pending pair(s).\n", saved)
	return err
}
