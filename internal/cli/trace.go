package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/techbar/internal/harness"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	Event string // optional - filter to one event kind
}

// TraceResult holds the complete trace output.
type TraceResult struct {
	Scenario string           `json:"scenario"`
	Pass     bool             `json:"pass"`
	Timeline []harness.Step   `json:"timeline"`
	Final    harness.Snapshot `json:"final"`
	Errors   []string         `json:"errors,omitempty"`
	Stats    TraceStats       `json:"stats"`
}

// TraceStats holds summary statistics for the trace.
type TraceStats struct {
	Steps   int `json:"steps"`
	Refused int `json:"refused"`
	Effects int `json:"effects"`
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace <scenario.yaml>",
		Short: "Show the effect trace of a scenario",
		Long: `Run one scenario on a fresh in-memory engine and show what every
event did.

The output includes:
- Timeline: every dispatched event with its effects or its refusal
- Final: the session state after the last event
- Stats: summary counts for the run

Examples:
  techbar trace ./scenarios/vodka_bottle_order.yaml
  techbar trace ./scenarios/vodka_bottle_order.yaml --event increment_drink
  techbar trace ./scenarios/vodka_bottle_order.yaml --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Event, "event", "", "filter to one event kind")

	return cmd
}

func runTrace(opts *TraceOptions, path string, cmd *cobra.Command) error {
	scenario, err := harness.LoadScenario(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load scenario", err)
	}
	result, err := harness.Run(scenario)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to run scenario", err)
	}

	trace := buildTraceResult(scenario.Name, result, opts.Event)
	if opts.Format == "json" {
		if err := formatter(cmd, opts.RootOptions).Success(trace); err != nil {
			return err
		}
	} else {
		printTrace(cmd, trace)
	}

	if !result.Pass {
		return NewExitError(ExitFailure, fmt.Sprintf("scenario %s failed", scenario.Name))
	}
	return nil
}

func buildTraceResult(name string, result *harness.Result, event string) TraceResult {
	trace := TraceResult{
		Scenario: name,
		Pass:     result.Pass,
		Timeline: []harness.Step{},
		Final:    result.Final,
		Errors:   result.Errors,
	}
	for _, s := range result.Trace {
		if event != "" && s.Event != event {
			continue
		}
		trace.Timeline = append(trace.Timeline, s)
		trace.Stats.Effects += len(s.Effects)
		if s.Error != "" {
			trace.Stats.Refused++
		}
	}
	trace.Stats.Steps = len(trace.Timeline)
	return trace
}

func printTrace(cmd *cobra.Command, trace TraceResult) {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Scenario: %s\n\n", trace.Scenario)

	fmt.Fprintln(w, "Timeline:")
	if len(trace.Timeline) == 0 {
		fmt.Fprintln(w, "  (no events)")
	}
	for _, s := range trace.Timeline {
		fmt.Fprintf(w, "  [%d] %s\n", s.Seq, s.Event)
		if s.Error != "" {
			fmt.Fprintf(w, "      refused %s: %s\n", s.Error, s.Message)
		}
		for _, fx := range s.Effects {
			for _, line := range strings.Split(fx, "\n") {
				fmt.Fprintf(w, "      %s\n", line)
			}
		}
	}

	fmt.Fprintf(w, "\nFinal: %s\n", trace.Final)
	fmt.Fprintf(w, "Stats: %d steps, %d refused, %d effects\n",
		trace.Stats.Steps, trace.Stats.Refused, trace.Stats.Effects)

	if !trace.Pass {
		fmt.Fprintln(w, "\nFailures:")
		for _, e := range trace.Errors {
			fmt.Fprintf(w, "  %s\n", e)
		}
	}
}
