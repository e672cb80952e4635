// Copyright 2026 The Geosync Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/divyadesam/geosync/config"
	"github.com/divyadesam/geosync/geocode"
	"github.com/divyadesam/geosync/temples"
	"github.com/divyadesam/geosync/utils/httputils"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"
)

const providerTimeout = 10 * time.Second

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Look every temple up and rewrite the dataset with the new coordinates",
	Args:  cobra.NoArgs,
	RunE:  runUpdate,
}

func init() {
	rootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	for _, k := range cfg.MissingKeys() {
		log.Printf("⚠️ %s is not set, that provider will fail every lookup", k)
	}

	s := &syncer{
		cfg:    cfg,
		chain:  newChain(cfg),
		store:  temples.NewFileStore(cfg.File),
		now:    time.Now,
		report: cmd.OutOrStdout(),
		tty:    isatty.IsTerminal(os.Stderr.Fd()),
	}

	_, err = s.run(cmd.Context())

	return err
}

// newChain wires Google Places as the primary provider and HERE as the
// fallback, sharing one HTTP client.
func newChain(cfg *config.Config) geocode.Chain {
	var trace io.Writer
	if cfg.TraceHTTP {
		trace = os.Stderr
	}

	client := httputils.NewClient(providerTimeout, trace, true, map[string]string{
		"User-Agent": "geosync/" + Version,
	})

	return geocode.Chain{
		{Name: "Google", Geocoder: geocode.NewGooglePlaces(geocode.GoogleConfig{
			APIKey:     cfg.GoogleAPIKey,
			BaseURL:    cfg.GoogleBaseURL,
			HTTPClient: client,
		})},
		{Name: "HERE", Geocoder: geocode.NewHERE(geocode.HEREConfig{
			APIKey:     cfg.HEREAPIKey,
			BaseURL:    cfg.HEREBaseURL,
			HTTPClient: client,
		})},
	}
}

// syncer runs one reconcile pass over the dataset file.
type syncer struct {
	cfg    *config.Config
	chain  geocode.Chain
	store  *temples.FileStore
	now    func() time.Time
	report io.Writer // summary output
	tty    bool      // draw a progress bar on stderr instead of a log line per temple
}

func (s *syncer) run(ctx context.Context) (*temples.Summary, error) {
	text, err := s.store.Read()
	if err != nil {
		return nil, err
	}

	parsed, err := temples.Parse(text)
	if err != nil {
		return nil, err
	}

	if parsed.Degraded() {
		log.Printf("⚠️ %s could not be decoded strictly, recovered %d temples line by line", s.store.Path(), len(parsed.Records))

		for _, w := range parsed.Warnings {
			log.Printf("⚠️ %s", w)
		}
	}

	log.Printf("🔎 Reconciling %d temples with %s", len(parsed.Records), s.chain.Names())

	limiter := rate.NewLimiter(rate.Every(s.cfg.Delay), 1)
	opts := temples.RunOptions{Wait: limiter.Wait}

	if s.cfg.OnlyMissing {
		opts.Select = func(t temples.Temple) bool { return t.Point().IsZero() }
	}

	var bar *progressbar.ProgressBar
	if s.tty {
		bar = progressbar.NewOptions(len(parsed.Records),
			progressbar.OptionSetDescription("Reconciling"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	total := len(parsed.Records)
	opts.Progress = func(i int, o temples.Outcome) {
		if bar == nil {
			logOutcome(i, total, o)

			return
		}

		if err := bar.Add(1); err != nil {
			log.Printf("updating progress bar: %v", err)
		}
	}

	r := temples.NewReconciler(s.chain, temples.WithThreshold(s.cfg.Threshold))

	outcomes, err := r.ReconcileAll(ctx, parsed.Records, opts)
	if err != nil {
		return nil, fmt.Errorf("reconciling %s, nothing written: %w", s.store.Path(), err)
	}

	for _, name := range r.Exhausted() {
		log.Printf("⚠️ %s quota exhausted, it was skipped for the rest of the run", name)
	}

	summary := temples.Summarize(outcomes)

	if s.cfg.DryRun {
		log.Printf("🧪 Dry run, %s and %s left untouched", s.store.Path(), s.cfg.LogFile)
	} else if err := s.persist(outcomes, summary); err != nil {
		return nil, err
	}

	printSummary(s.report, s.chain, summary)

	return &summary, nil
}

// persist backs the dataset up, then replaces it and the change log.
func (s *syncer) persist(outcomes []temples.Outcome, summary temples.Summary) error {
	now := s.now()

	backup, err := s.store.Backup(now)
	if err != nil {
		return err
	}

	log.Printf("💾 Backup written to %s", backup)

	if err := s.store.Write(temples.Serialize(temples.Records(outcomes), now)); err != nil {
		return err
	}

	log.Printf("✅ %s updated", s.store.Path())

	if err := temples.WriteLog(s.cfg.LogFile, summary.Entries); err != nil {
		return err
	}

	log.Printf("📝 %d significant updates logged to %s", len(summary.Entries), s.cfg.LogFile)

	return nil
}

func logOutcome(i, total int, o temples.Outcome) {
	label := o.Original.DisplayName
	if label == "" {
		label = o.Original.Name
	}

	prefix := fmt.Sprintf("[%d/%d] %s", i+1, total, label)

	switch o.Status {
	case temples.StatusSignificant:
		log.Printf("📍 %s: moved %.2f km (%s)", prefix, o.Original.Point().HaversineDistance(o.Temple.Point())/1000, o.Source)
	case temples.StatusMinor:
		log.Printf("✓ %s: minor adjustment (%s)", prefix, o.Source)
	case temples.StatusFailed:
		log.Printf("❌ %s: %s", prefix, o.Reason())
	case temples.StatusSkipped:
		log.Printf("⏭️ %s: skipped", prefix)
	}
}
