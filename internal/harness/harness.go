package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/roach88/techbar/internal/engine"
	"github.com/roach88/techbar/internal/ledger"
	"github.com/roach88/techbar/internal/store"
	"github.com/roach88/techbar/internal/testutil"
)

// Harness drives one scenario on a fresh engine.
type Harness struct {
	store  *store.Store
	ledger *ledger.Ledger
	engine *engine.Engine
	logger *slog.Logger

	// effects keeps every effect of the run for trace-wide assertions.
	effects engine.Effects
}

// Run executes a scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database for isolation.
// Deterministic helpers ensure reproducible results.
//
// Execution flow:
// 1. Create fresh in-memory database, ledger and engine
// 2. Dispatch every step, checking its expectations
// 3. Snapshot the final state
// 4. Evaluate assertions
//
// Events refused by the engine are part of the trace. Only store failures
// abort the run.
func Run(scenario *Scenario) (*Result, error) {
	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil)) // Suppress logs in tests
	l := ledger.New(st,
		ledger.WithClock(testutil.NewSteppingClock(testutil.Epoch, 0)),
		ledger.WithLogger(logger),
	)
	h := &Harness{
		store:  st,
		ledger: l,
		engine: engine.New(l,
			engine.WithIDGenerator(testutil.NewSequenceGenerator("id")),
			engine.WithLogger(logger),
		),
		logger: logger,
	}

	ctx := context.Background()
	result := NewResult()
	if err := h.executeSteps(ctx, scenario.Steps, result); err != nil {
		return nil, fmt.Errorf("failed to execute steps: %w", err)
	}

	final, err := h.snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot state: %w", err)
	}
	result.Final = final

	for _, msg := range EvaluateAssertions(final, h.effects, scenario.Assertions) {
		result.AddError(msg)
	}
	return result, nil
}

func (h *Harness) executeSteps(ctx context.Context, steps []ScriptStep, result *Result) error {
	for i, step := range steps {
		ev, err := decodeStep(step)
		if err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}

		fx, err := h.engine.Dispatch(ctx, ev)
		rec := Step{Seq: h.engine.Seq(), Event: ev.Kind()}

		var engErr *engine.Error
		switch {
		case errors.As(err, &engErr):
			rec.Error = string(engErr.Code)
			rec.Message = engErr.Message
		case err != nil:
			return fmt.Errorf("step %d %s: %w", i+1, ev.Kind(), err)
		}
		for _, f := range fx {
			rec.Effects = append(rec.Effects, f.String())
		}
		h.effects = append(h.effects, fx...)
		result.AddStep(rec)

		for _, msg := range checkStep(step.Expect, fx, rec) {
			result.AddError(fmt.Sprintf("step %d %s: %s", i+1, ev.Kind(), msg))
		}
		if step.Expect == nil && rec.Error != "" {
			result.AddError(fmt.Sprintf("step %d %s: unexpected error %s: %s", i+1, ev.Kind(), rec.Error, rec.Message))
		}
	}
	return nil
}

// checkStep compares one dispatch with its expectation.
func checkStep(want *StepExpect, fx engine.Effects, rec Step) []string {
	if want == nil {
		return nil
	}
	var msgs []string
	if want.Error != rec.Error {
		msgs = append(msgs, fmt.Sprintf("error: expected %q, got %q", want.Error, rec.Error))
	}
	if want.Kinds != nil && !slices.Equal(want.Kinds, fx.Kinds()) {
		msgs = append(msgs, fmt.Sprintf("kinds: expected %v, got %v", want.Kinds, fx.Kinds()))
	}
	if want.Notices != nil && !slices.Equal(want.Notices, fx.Notices()) {
		msgs = append(msgs, fmt.Sprintf("notices: expected %q, got %q", want.Notices, fx.Notices()))
	}
	return msgs
}

func (h *Harness) snapshot(ctx context.Context) (Snapshot, error) {
	orders, err := h.ledger.Orders(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	history, err := h.ledger.History(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{
		State:   h.engine.State().String(),
		Screen:  h.engine.Screen().String(),
		Items:   len(h.engine.Items()),
		Total:   engine.Money(h.engine.Total()),
		Orders:  len(orders),
		History: len(history),
	}, nil
}

// effectTexts returns the text of every effect of kind.
func effectTexts(effects engine.Effects, kind string) []string {
	var out []string
	for _, f := range effects {
		if f.Kind() == kind {
			out = append(out, f.String())
		}
	}
	return out
}

func containsText(texts []string, want string) bool {
	return slices.ContainsFunc(texts, func(s string) bool {
		return strings.Contains(s, want)
	})
}
