// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// =============================================================================
// DOCTOR COMMAND
// =============================================================================

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check service connectivity",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, cfgPath, err := loadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		client := newClient(cfg, nil)

		fmt.Printf("config:   %s\n", cfgPath)
		fmt.Printf("service:  %s\n", cfg.Service.BaseURL)
		if cfg.Service.DefaultModel != "" {
			fmt.Printf("model:    %s\n", cfg.Service.DefaultModel)
		}

		if client.CheckHealth(cmd.Context()) {
			fmt.Println("status:   online")
			return nil
		}
		fmt.Println("status:   offline")
		return fmt.Errorf("service unreachable at %s", cfg.Service.BaseURL)
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
