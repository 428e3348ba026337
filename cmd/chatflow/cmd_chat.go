package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"chatflow/client/internal/model"
	"chatflow/client/internal/service"
)

var (
	sendSession      string
	sendBeams        int
	sendMaxTokens    int
	sessionsArchived bool
)

// sendCmd sends one message and waits for the reply to be saved
var sendCmd = &cobra.Command{
	Use:   "send [text]",
	Short: "Send a message and print the reply",
	Long: `Send a message to a session and print the reply once it has been
generated and saved. Without --session a new session titled "New Chat" is
created. A failed save is kept in the outbox; see 'chatflow outbox retry'.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSend,
}

// sessionsCmd lists sessions
var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List chat sessions",
	RunE:  runSessions,
}

func runSend(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := commandContext(cmd)
	if sendSession != "" {
		if err := a.Sessions.Select(ctx, sendSession); err != nil {
			return fmt.Errorf("could not open session %s: %w", sendSession, err)
		}
	}

	turn, err := a.Dispatcher.SendMessage(ctx, strings.Join(args, " "), service.SendParams{
		MaxNewTokens: sendMaxTokens,
		NumBeams:     sendBeams,
	})
	if err != nil {
		return err
	}

	outcome, err := turn.Wait(ctx)
	out := cmd.OutOrStdout()
	if reply := replyText(a.Store.Snapshot(), turn.AssistantMessageID()); reply != "" {
		fmt.Fprintln(out, reply)
	}
	switch outcome {
	case service.TurnPersisted:
		fmt.Fprintf(out, "\nsession %s\n", turn.SessionID)
		return nil
	case service.TurnSaveFailed:
		fmt.Fprintf(out, "\nsession %s (not saved, queued in outbox)\n", turn.SessionID)
		return err
	default:
		if err == nil {
			err = fmt.Errorf("turn ended: %s", outcome)
		}
		return err
	}
}

func replyText(st service.State, messageID string) string {
	if st.CurrentSession == nil || messageID == "" {
		return ""
	}
	if idx := st.CurrentSession.MessageIndex(messageID); idx >= 0 {
		return st.CurrentSession.Messages[idx].Content
	}
	return ""
}

func runSessions(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	view := service.ViewOngoing
	if sessionsArchived {
		view = service.ViewArchived
	}
	sessions, err := a.Sessions.LoadView(commandContext(cmd), view)
	if err != nil {
		return err
	}
	printSessions(cmd, sessions)
	return nil
}

func printSessions(cmd *cobra.Command, sessions []model.Session) {
	out := cmd.OutOrStdout()
	if len(sessions) == 0 {
		fmt.Fprintln(out, "No sessions.")
		return
	}
	for _, s := range sessions {
		fmt.Fprintf(out, "%s\t%s\t%s\n", s.ID, s.UpdatedAt.Local().Format("2006-01-02 15:04"), s.Title)
	}
}
