package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/techbar/internal/engine"
	"github.com/roach88/techbar/internal/ledger"
)

// NewOrdersCommand creates the orders command and its subcommands.
func NewOrdersCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "List or delete saved orders",
		Long: `List the saved orders, oldest first, or delete one.

A deleted order moves to the history with a deletion stamp.

Examples:
  techbar orders --db ./techbar.db
  techbar orders delete 0192f1c4-... --db ./techbar.db`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listRecords(rootOpts, cmd, false)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:           "delete <id>",
		Short:         "Move a saved order to the history",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return deleteOrder(rootOpts, cmd, args[0])
		},
	})

	return cmd
}

// NewHistoryCommand creates the history command and its subcommands.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List or clear deleted orders",
		Long: `List the deleted orders, newest first, or clear them.

Clearing needs the history secret.

Examples:
  techbar history --db ./techbar.db
  techbar history clear --secret 12345 --db ./techbar.db`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listRecords(rootOpts, cmd, true)
		},
	}

	var secret string
	clearCmd := &cobra.Command{
		Use:           "clear",
		Short:         "Empty the history",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return clearHistory(rootOpts, cmd, secret)
		},
	}
	clearCmd.Flags().StringVar(&secret, "secret", "", "history secret (required)")
	_ = clearCmd.MarkFlagRequired("secret")
	cmd.AddCommand(clearCmd)

	return cmd
}

func listRecords(opts *RootOptions, cmd *cobra.Command, history bool) error {
	e, err := openEnv(cmd, opts)
	if err != nil {
		return err
	}
	defer e.Close()

	load, empty := e.ledger.Orders, engine.EmptyOrders
	if history {
		load, empty = e.ledger.History, engine.EmptyHistory
	}
	recs, err := load(cmd.Context())
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load orders", err)
	}

	views := engine.OrderViews(recs)
	out := formatter(cmd, opts)
	if opts.Format == "json" {
		return out.Success(views)
	}
	if history {
		return out.Success(engine.RenderHistory{Orders: views, Empty: emptyText(views, empty)})
	}
	return out.Success(engine.RenderOrders{Orders: views, Empty: emptyText(views, empty)})
}

func emptyText(views []engine.OrderView, text string) string {
	if len(views) == 0 {
		return text
	}
	return ""
}

func deleteOrder(opts *RootOptions, cmd *cobra.Command, id string) error {
	e, err := openEnv(cmd, opts)
	if err != nil {
		return err
	}
	defer e.Close()

	moved, err := e.ledger.Delete(cmd.Context(), ledger.ID(id))
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to delete order", err)
	}
	out := formatter(cmd, opts)
	if !moved {
		message := fmt.Sprintf("no saved order %s", id)
		if err := out.Error(CodeNotFound, message, nil); err != nil {
			return err
		}
		return NewExitError(ExitFailure, message)
	}
	e.metrics.OrderDeleted()
	e.logger.Info("order moved to history", "id", id)
	return out.Success(fmt.Sprintf("order %s moved to history", id))
}

func clearHistory(opts *RootOptions, cmd *cobra.Command, secret string) error {
	e, err := openEnv(cmd, opts)
	if err != nil {
		return err
	}
	defer e.Close()

	out := formatter(cmd, opts)
	err = e.ledger.ClearHistory(cmd.Context(), secret)
	if errors.Is(err, ledger.ErrSecretMismatch) {
		if err := out.Error(CodeSecret, engine.PlaceholderRejected, nil); err != nil {
			return err
		}
		return NewExitError(ExitFailure, "wrong history secret")
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to clear history", err)
	}
	e.metrics.HistoryCleared()
	e.logger.Info("history cleared")
	return out.Success("history cleared")
}
