package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/techbar/internal/catalog"
	"github.com/roach88/techbar/internal/config"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid      bool            `json:"valid"`
	Catalog    string          `json:"catalog"`
	Categories int             `json:"categories"`
	Products   int             `json:"products"`
	Issues     []catalog.Issue `json:"issues,omitempty"`
}

func (r ValidationResult) String() string {
	if !r.Valid {
		var b strings.Builder
		fmt.Fprintf(&b, "✗ %s: %d issue(s)", r.Catalog, len(r.Issues))
		for _, issue := range r.Issues {
			fmt.Fprintf(&b, "\n  %s", issue)
		}
		return b.String()
	}
	return fmt.Sprintf("✓ %s: %d categories, %d products", r.Catalog, r.Categories, r.Products)
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [catalog.yaml]",
		Short: "Validate the settings and the menu catalog",
		Long: `Validate the settings file (--config) and a menu catalog.

The catalog is checked against the catalog schema, then for unique
category keys and one price cell per price column on every row. Without
an argument the configured catalog is checked, or the embedded menu when
none is configured.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runValidate(rootOpts, path, cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	out := formatter(cmd, opts)

	cfg := config.Default()
	if opts.Config != "" {
		loaded, err := config.Load(opts.Config)
		if err != nil {
			return outputValidateError(out, CodeConfig, err.Error())
		}
		cfg = loaded
		out.VerboseLog("Settings in %s are valid", opts.Config)
	}
	if path == "" {
		path = cfg.Catalog
	}

	name := path
	var (
		c   *catalog.Catalog
		err error
	)
	if path == "" {
		name = "embedded menu"
		c, err = catalog.Default()
	} else {
		c, err = decodeCatalogFile(path)
		if err == nil {
			err = c.Validate()
		}
	}

	result := ValidationResult{Valid: err == nil, Catalog: name}
	var verr *catalog.ValidationError
	switch {
	case errors.As(err, &verr):
		result.Issues = verr.Issues
	case err != nil:
		return outputValidateError(out, CodeCatalog, err.Error())
	default:
		result.Categories = len(c.Categories)
		for _, cat := range c.Categories {
			result.Products += len(cat.Products)
		}
	}

	if !result.Valid {
		if opts.Format == "json" {
			if err := out.Error(CodeCatalog, verr.Error(), result); err != nil {
				return err
			}
		} else {
			fmt.Fprintln(out.Writer, result)
		}
		return NewExitError(ExitFailure, fmt.Sprintf("%d catalog issue(s)", len(result.Issues)))
	}
	return out.Success(result)
}

func decodeCatalogFile(path string) (*catalog.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return catalog.Decode(data)
}

func outputValidateError(out *OutputFormatter, code, message string) error {
	if err := out.Error(code, message, nil); err != nil {
		return err
	}
	return NewExitError(ExitFailure, message)
}
