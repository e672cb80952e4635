// Copyright 2026 The Geosync Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"log"

	"github.com/divyadesam/geosync/temples"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report temples with missing data, no coordinates or duplicate names",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		store := temples.NewFileStore(cfg.File)

		text, err := store.Read()
		if err != nil {
			return err
		}

		parsed, err := temples.Parse(text)
		if err != nil {
			return err
		}

		if parsed.Degraded() {
			log.Printf("⚠️ %s could not be decoded strictly, only name, displayName, lat and lng were recovered", store.Path())
		}

		printAnalysis(cmd.OutOrStdout(), store.Path(), temples.Analyze(parsed.Records))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
