// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/relaychat/relay-tui/internal/api"
)

// =============================================================================
// ASK COMMAND
// =============================================================================

var askKeep bool

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Stream a one-shot answer to stdout",
	Long: `Create a session, send one message, and stream the reply to stdout.

The session is deleted afterwards unless --keep is given.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAsk(cmd.Context(), strings.Join(args, " "))
	},
}

func init() {
	askCmd.Flags().BoolVar(&askKeep, "keep", false, "Keep the session after the reply")
	rootCmd.AddCommand(askCmd)
}

func runAsk(ctx context.Context, question string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	client := newClient(cfg, nil)

	created, err := client.CreateSession(ctx, "")
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	if !askKeep {
		defer func() {
			// Cleanup uses a fresh context so a cancelled ask still
			// deletes its session.
			_ = client.DeleteSession(context.Background(), created.SessionID)
		}()
	}

	stream, err := client.SendMessage(ctx, created.SessionID, api.SendMessageRequest{
		Content: question,
		Model:   cfg.Service.DefaultModel,
	})
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	defer stream.Close()

	for ev := range stream.Events() {
		switch {
		case ev.Chunk != nil:
			fmt.Print(ev.Chunk.Content)
		case ev.Err != nil:
			fmt.Fprintln(os.Stderr)
			return fmt.Errorf("stream: %w", ev.Err)
		case ev.Done:
			fmt.Println()
			return nil
		}
	}
	fmt.Println()
	return nil
}
