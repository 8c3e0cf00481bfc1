package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/roach88/techbar/internal/swipe"
)

// NavigateResult is where a gesture leads.
type NavigateResult struct {
	From      string `json:"from"`
	To        string `json:"to,omitempty"`
	Direction string `json:"direction"`
	Indicator string `json:"indicator"`
	Ignored   bool   `json:"ignored,omitempty"`
}

func (r NavigateResult) String() string {
	switch {
	case r.Ignored:
		return fmt.Sprintf("%s: gesture ignored", r.From)
	case r.To == "":
		return fmt.Sprintf("%s: no swipe (indicator %s)", r.From, r.Indicator)
	}
	return fmt.Sprintf("%s -> %s (%s)", r.From, r.To, r.Direction)
}

// NewNavigateCommand creates the navigate command.
func NewNavigateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "navigate <category> <from-x> <to-x> [element...]",
		Short: "Show where a horizontal swipe leads",
		Long: `Interpret one horizontal gesture on a menu page.

A leftward swipe of at least the configured distance shows the next
category, a rightward one the previous category, wrapping around. Gestures
that start on a button, a picture or inside a dialog are ignored. The
elements name the touched element followed by its ancestors.

Examples:
  techbar navigate vodka 300 120
  techbar navigate vodka 120 300 price-button`,
		Args:          cobra.MinimumNArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNavigate(rootOpts, cmd, args)
		},
	}
	return cmd
}

func runNavigate(opts *RootOptions, cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	logger, err := newLogger(cmd, opts, cfg)
	if err != nil {
		return err
	}
	cat, err := loadCatalog(cfg.Catalog)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load catalog", err)
	}

	out := formatter(cmd, opts)
	page, ok := cat.Category(args[0])
	if !ok {
		message := fmt.Sprintf("unknown category %q", args[0])
		if err := out.Error(CodeNotFound, message, cat.Keys()); err != nil {
			return err
		}
		return NewExitError(ExitFailure, message)
	}
	from, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid from-x", err)
	}
	to, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid to-x", err)
	}

	// Nothing is rendered here; the navigator only records the target.
	in := swipe.New(cat.Keys(), swipe.NavigatorFunc(func(string) error { return nil }),
		swipe.WithMinDistance(cfg.Swipe.MinDistance),
		swipe.WithLogger(logger),
	)

	result := NavigateResult{
		From:      page.Key,
		Direction: swipe.Classify(from-to, in.MinDistance()).String(),
	}
	if !in.Start(from, page.Key, args[3:]...) {
		result.Ignored = true
		result.Direction = swipe.DirectionNone.String()
		result.Indicator = swipe.IndicatorNone.String()
		return out.Success(result)
	}
	result.Indicator = in.Move(to).String()
	result.To, err = in.End(to)
	if err != nil {
		return WrapExitError(ExitFailure, "navigation failed", err)
	}
	return out.Success(result)
}
