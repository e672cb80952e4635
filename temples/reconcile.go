// Copyright 2026 The Geosync Authors
// SPDX-License-Identifier: Apache-2.0

package temples

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/divyadesam/geosync/geocode"
	"github.com/divyadesam/geosync/spatial"
)

// DefaultThreshold is the per-axis change in degrees (roughly 1km) above
// which an update is significant.
const DefaultThreshold = 0.01

// Status classifies the outcome of reconciling one record.
type Status int

const (
	// StatusSkipped the record was not sent to any provider.
	StatusSkipped Status = iota
	// StatusSignificant new coordinates applied and logged.
	StatusSignificant
	// StatusMinor new coordinates applied, not logged.
	StatusMinor
	// StatusFailed every provider failed; coordinates kept.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusSkipped:
		return "skipped"
	case StatusSignificant:
		return "significant"
	case StatusMinor:
		return "minor"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// ProviderFailure is one failed provider call.
type ProviderFailure struct {
	Provider string
	Err      error
}

// Outcome is the result of reconciling one record.
type Outcome struct {
	Original   Temple
	Temple     Temple // Original with the accepted coordinates, if any
	Status     Status
	Source     string          // chain link that supplied the result
	Result     *geocode.Result // accepted provider result
	Difference spatial.Point   // absolute deltas between old and new coordinates
	Entry      *UpdateLogEntry // set for significant updates only
	Failures   []ProviderFailure
}

// Reason describes why the record failed, one clause per provider.
func (o Outcome) Reason() string {
	if len(o.Failures) == 0 {
		if o.Status == StatusFailed {
			return "no providers configured"
		}

		return ""
	}

	reasons := make([]string, len(o.Failures))
	for i, f := range o.Failures {
		reasons[i] = fmt.Sprintf("%s: %v", f.Provider, f.Err)
	}

	return strings.Join(reasons, "; ")
}

// Reconciler checks records against a provider chain. A link that reports
// an exhausted quota is not called again by the same Reconciler. It is not
// safe for concurrent use.
type Reconciler struct {
	chain     geocode.Chain
	threshold float64
	exhausted map[string]error // link name -> quota failure
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithThreshold overrides DefaultThreshold.
func WithThreshold(degrees float64) Option {
	return func(r *Reconciler) {
		r.threshold = degrees
	}
}

// NewReconciler returns a Reconciler trying chain links in order.
func NewReconciler(chain geocode.Chain, opts ...Option) *Reconciler {
	r := &Reconciler{chain: chain, threshold: DefaultThreshold, exhausted: make(map[string]error)}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Reconcile geocodes t by its display name. The first successful link wins;
// its coordinates replace the record's regardless of significance. Records
// without a display name are returned untouched.
func (r *Reconciler) Reconcile(ctx context.Context, t Temple) Outcome {
	out := Outcome{Original: t, Temple: t, Status: StatusSkipped}
	if !t.Geocodable() {
		return out
	}

	for _, link := range r.chain {
		if ctx.Err() != nil {
			out.Failures = append(out.Failures, ProviderFailure{Provider: link.Name, Err: ctx.Err()})

			break
		}

		if cause, ok := r.exhausted[link.Name]; ok {
			out.Failures = append(out.Failures, ProviderFailure{
				Provider: link.Name,
				Err:      fmt.Errorf("skipped, quota exhausted earlier in this run: %w", cause),
			})

			continue
		}

		res, err := geocodeSafely(ctx, link.Geocoder, t.DisplayName)
		if err != nil {
			if geocode.IsQuotaExceededError(err) {
				r.exhausted[link.Name] = err
			}

			out.Failures = append(out.Failures, ProviderFailure{Provider: link.Name, Err: err})

			continue
		}

		old := t.Point()
		current := spatial.Point{Lat: res.Lat, Lng: res.Lng}
		diff := old.Delta(current)

		out.Temple.Lat, out.Temple.Lng = res.Lat, res.Lng
		out.Source, out.Result, out.Difference = link.Name, res, diff

		if diff.Lat > r.threshold || diff.Lng > r.threshold {
			out.Status = StatusSignificant
			out.Entry = &UpdateLogEntry{
				Temple:     t.DisplayName,
				Old:        old,
				New:        current,
				Difference: diff,
				Source:     link.Name,
			}
		} else {
			out.Status = StatusMinor
		}

		return out
	}

	out.Status = StatusFailed

	return out
}

// Exhausted returns, in chain order, the links no longer called because
// their quota ran out.
func (r *Reconciler) Exhausted() []string {
	var names []string

	for _, link := range r.chain {
		if _, ok := r.exhausted[link.Name]; ok {
			names = append(names, link.Name)
		}
	}

	return names
}

// geocodeSafely turns a nil result or a panic into an error.
func geocodeSafely(ctx context.Context, g geocode.Geocoder, query string) (res *geocode.Result, err error) {
	defer func() {
		if p := recover(); p != nil {
			res, err = nil, fmt.Errorf("provider panicked: %v", p)
		}
	}()

	res, err = g.Geocode(ctx, query)
	if err == nil && res == nil {
		err = errors.New("provider returned no result")
	}

	return res, err
}

// RunOptions tune ReconcileAll.
type RunOptions struct {
	// Wait is called before every record that goes to the providers; it
	// enforces the spacing between calls. An error aborts the run.
	Wait func(ctx context.Context) error
	// Select picks the records to reconcile; nil selects all. Unselected
	// records pass through as StatusSkipped.
	Select func(Temple) bool
	// Progress is called after each record with its index.
	Progress func(i int, o Outcome)
}

// ReconcileAll reconciles records one at a time and returns the outcomes in
// input order.
func (r *Reconciler) ReconcileAll(ctx context.Context, records []Temple, opts RunOptions) ([]Outcome, error) {
	outcomes := make([]Outcome, 0, len(records))

	for i, t := range records {
		var o Outcome

		if t.Geocodable() && (opts.Select == nil || opts.Select(t)) {
			if opts.Wait != nil {
				if err := opts.Wait(ctx); err != nil {
					return outcomes, fmt.Errorf("waiting before %q: %w", t.Name, err)
				}
			}

			o = r.Reconcile(ctx, t)
		} else {
			o = Outcome{Original: t, Temple: t, Status: StatusSkipped}
		}

		outcomes = append(outcomes, o)

		if opts.Progress != nil {
			opts.Progress(i, o)
		}
	}

	return outcomes, nil
}

// Records returns the updated records of outcomes, in order.
func Records(outcomes []Outcome) []Temple {
	out := make([]Temple, len(outcomes))
	for i, o := range outcomes {
		out[i] = o.Temple
	}

	return out
}

// Entries returns the change log entries of outcomes, in order. The result
// is never nil.
func Entries(outcomes []Outcome) []UpdateLogEntry {
	out := []UpdateLogEntry{}

	for _, o := range outcomes {
		if o.Entry != nil {
			out = append(out, *o.Entry)
		}
	}

	return out
}
