// Copyright 2026 The Geosync Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/divyadesam/geosync/config"
	"github.com/spf13/cobra"
)

type logWriter struct {
	writer io.Writer
}

func (w *logWriter) Write(bytes []byte) (int, error) {
	return fmt.Fprintf(w.writer, "%s %s", time.Now().Format("2006-01-02 15:04:05"), string(bytes))
}

func init() {
	log.SetFlags(0)
	log.SetOutput(&logWriter{writer: os.Stderr})
}

var configFile string

var rootCmd = &cobra.Command{
	Use:   "geosync",
	Short: "keeps the Divya Desam temple coordinates in sync with Google Places and HERE",
	Long: `
geosync reads the temple dataset kept as a JavaScript array in temple-data.js,
looks every temple up by its display name (Google Places first, HERE as a
fallback), applies the new coordinates and rewrites the file after taking a
timestamped backup. Significant moves are recorded in a JSON change log.

Run without a command it behaves like "geosync update".
`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runUpdate,
}

var Version = "dev"

func Execute(version string) {
	Version = version

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Printf("❌ %v", err)
		cancel()
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file (default ./"+config.ConfigName+".yaml)")
	flags.String(config.KeyFile, config.DefaultFile, "temple dataset to reconcile")
	flags.String(config.KeyLogFile, config.DefaultLogFile, "change log of significant updates")
	flags.Duration(config.KeyDelay, config.DefaultDelay, "minimum spacing between provider lookups")
	flags.Float64(config.KeyThreshold, config.DefaultThreshold, "per-axis change in degrees that counts as significant")
	flags.Bool(config.KeyDryRun, false, "reconcile and report without writing any file")
	flags.Bool(config.KeyOnlyMissing, false, "only look up temples without coordinates")
	flags.Bool(config.KeyTraceHTTP, false, "dump provider HTTP traffic to stderr, API keys redacted")
}

// loadConfig resolves the configuration for cmd, flags included.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	config.LoadDotEnv()

	v := config.New()
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return nil, err
	}

	cfg, err := config.Load(v, configFile)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	if cfg.ConfigFile != "" {
		log.Printf("Using config file %s", cfg.ConfigFile)
	}

	return cfg, nil
}
