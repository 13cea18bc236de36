// Package upsert reconciles a template catalog against a remote template store.
//
// Each template is created; if the store reports that it already exists the
// same fields are sent as an update instead. Templates are processed one at a
// time in catalog order and a failure on one never stops the others.
package upsert

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/carpoolnu/sestmpl/internal/catalog"
	"github.com/carpoolnu/sestmpl/internal/store"
)

// State is the terminal state of one template within a run.
type State string

// Terminal states.
const (
	StateCreated State = "created"
	StateUpdated State = "updated"
	StateFailed  State = "failed"
	StatePlanned State = "planned" // dry run, no remote call made
)

// Outcome describes what happened to one template.
type Outcome struct {
	Name     string
	State    State
	Conflict bool   // create reported the template already exists
	Op       string // step that failed: "create" or "update"
	Err      error
}

// Reason returns the failure message, or "" on success.
func (o Outcome) Reason() string {
	if o.Err == nil {
		return ""
	}
	var remote *store.RemoteError
	if errors.As(o.Err, &remote) && remote.Message != "" {
		if remote.Code != "" {
			return remote.Code + ": " + remote.Message
		}
		return remote.Message
	}
	return o.Err.Error()
}

// Report lists outcomes in catalog order.
type Report struct {
	Outcomes []Outcome
}

// Count returns how many outcomes ended in state.
func (r Report) Count(state State) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.State == state {
			n++
		}
	}
	return n
}

// Observer receives progress as the run advances.
type Observer interface {
	// Conflict is called when create reports an existing template, before the update.
	Conflict(name string)
	// Done is called once per template with its terminal outcome.
	Done(o Outcome)
}

type options struct {
	observer Observer
	logger   zerolog.Logger
	dryRun   bool
}

// Option configures Synchronize.
type Option func(*options)

// WithObserver reports progress to obs.
func WithObserver(obs Observer) Option {
	return func(o *options) { o.observer = obs }
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithDryRun skips all remote calls and marks every template planned.
func WithDryRun(dryRun bool) Option {
	return func(o *options) { o.dryRun = dryRun }
}

type nopObserver struct{}

func (nopObserver) Conflict(string) {}
func (nopObserver) Done(Outcome)    {}

// Synchronize upserts every template in c through client, sequentially.
// It never returns early: every template gets exactly one Outcome.
func Synchronize(ctx context.Context, c catalog.Catalog, client store.Client, opts ...Option) Report {
	o := options{observer: nopObserver{}, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	report := Report{Outcomes: make([]Outcome, 0, len(c))}
	for _, tmpl := range c {
		var out Outcome
		if o.dryRun {
			out = Outcome{Name: tmpl.Name, State: StatePlanned}
		} else {
			out = syncOne(ctx, tmpl, client, o)
		}

		ev := o.logger.Info()
		if out.State == StateFailed {
			ev = o.logger.Warn().Err(out.Err).Str("op", out.Op)
		}
		ev.Str("template", out.Name).Str("state", string(out.State)).Bool("conflict", out.Conflict).Msg("template synchronized")

		o.observer.Done(out)
		report.Outcomes = append(report.Outcomes, out)
	}
	return report
}

// syncOne drives a single template through create, then update on conflict.
func syncOne(ctx context.Context, tmpl catalog.Template, client store.Client, o options) Outcome {
	out := Outcome{Name: tmpl.Name}

	if err := ctx.Err(); err != nil {
		out.State, out.Op, out.Err = StateFailed, "create", err
		return out
	}

	err := client.CreateTemplate(ctx, tmpl)
	if err == nil {
		out.State = StateCreated
		return out
	}
	if !errors.Is(err, store.ErrConflict) {
		out.State, out.Op, out.Err = StateFailed, "create", err
		return out
	}

	out.Conflict = true
	o.observer.Conflict(tmpl.Name)

	if err := client.UpdateTemplate(ctx, tmpl); err != nil {
		out.State, out.Op, out.Err = StateFailed, "update", err
		return out
	}
	out.State = StateUpdated
	return out
}
