package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// StoreKey describes one stored key.
type StoreKey struct {
	Key      string `json:"key"`
	Revision int64  `json:"revision"`
	Bytes    int    `json:"bytes"`
}

// StoreKeys lists the stored keys.
type StoreKeys []StoreKey

func (ks StoreKeys) String() string {
	if len(ks) == 0 {
		return "(empty)"
	}
	lines := make([]string, len(ks))
	for i, k := range ks {
		lines[i] = fmt.Sprintf("%s rev=%d bytes=%d", k.Key, k.Revision, k.Bytes)
	}
	return strings.Join(lines, "\n")
}

// NewStoreCommand creates the store command.
func NewStoreCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "store",
		Short: "Show the keys in the order database",
		Long: `Show every key in the order database with its revision (the number
of times it was written) and the size of its value.

Example:
  techbar store --db ./techbar.db`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStore(rootOpts, cmd)
		},
	}
}

func runStore(opts *RootOptions, cmd *cobra.Command) error {
	e, err := openEnv(cmd, opts)
	if err != nil {
		return err
	}
	defer e.Close()

	ctx := cmd.Context()
	keys, err := e.store.Keys(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list keys", err)
	}

	result := make(StoreKeys, 0, len(keys))
	for _, k := range keys {
		rev, err := e.store.Revision(ctx, k)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to read revision", err)
		}
		value, _, err := e.store.Get(ctx, k)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to read value", err)
		}
		result = append(result, StoreKey{Key: k, Revision: rev, Bytes: len(value)})
	}
	return formatter(cmd, opts).Success(result)
}
