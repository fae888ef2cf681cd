// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/deep-research/internal/session"
	"github.com/pdiddy/deep-research/internal/synthesis"
	"github.com/pdiddy/deep-research/pkg/types"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List or reload stored research sessions",
	Long: `Sessions manages the local SQLite database of completed research runs.
Use list to see recent sessions and show to reprint a stored report.`,
}

// --- list subcommand ---

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored sessions, newest first",
	RunE:  runSessionsList,
}

func runSessionsList(cmd *cobra.Command, args []string) error {
	store, err := openSessionStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	summaries, err := store.List(context.Background(), limit)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summaries)
	}

	if len(summaries) == 0 {
		fmt.Println("No stored sessions.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-36s  %-19s  %-10s  %-10s  %-6s  %s\n",
		"ID", "Created", "Preset", "Confidence", "Risk", "Question")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 110))
	for _, sum := range summaries {
		question := sum.Question
		if len(question) > 40 {
			question = question[:37] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-36s  %-19s  %-10s  %-10.2f  %-6s  %s\n",
			sum.ID, sum.CreatedAt.Format("2006-01-02 15:04:05"),
			sum.Preset, sum.Confidence, sum.Risk, question)
	}
	fmt.Fprintf(os.Stdout, "\n%d session(s)\n", len(summaries))
	return nil
}

// --- show subcommand ---

var sessionsShowCmd = &cobra.Command{
	Use:   "show [session-id]",
	Short: "Reprint the report for a stored session",
	RunE:  runSessionsShow,
}

func runSessionsShow(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("provide exactly one session ID (see sessions list)")
	}

	store, err := openSessionStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	sess, err := store.Get(context.Background(), args[0])
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(sess)
	}

	synthesis.FormatReport(sess.Synthesis, sess.Verification, os.Stdout)
	return nil
}

// --- shared helpers ---

func openSessionStore(cmd *cobra.Command) (*session.Store, error) {
	sessionsDir, _ := cmd.Flags().GetString("sessions-dir")
	return session.NewStore(types.SessionConfig{SessionsDir: sessionsDir})
}

func init() {
	sessionsCmd.PersistentFlags().String("sessions-dir", "sessions", "directory for the session database")
	sessionsCmd.PersistentFlags().Bool("json", false, "output as JSON")

	sessionsListCmd.Flags().Int("limit", 20, "maximum sessions to list")

	sessionsCmd.AddCommand(sessionsListCmd)
	sessionsCmd.AddCommand(sessionsShowCmd)

	rootCmd.AddCommand(sessionsCmd)
}
