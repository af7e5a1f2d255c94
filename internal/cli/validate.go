package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/inspectreport/pkg/inspection"

	errs "github.com/matzehuels/inspectreport/pkg/errors"
)

// validateCommand creates the validate command.
func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [record.json...]",
		Short: "Check records for structural problems",
		Long: `Check records for structural problems without rendering them.

Every problem is listed: duplicate or missing ids, unknown conditions or item
kinds, warn values that are not options, malformed dates and out-of-range
scores. Photos that cannot be loaded are reported as warnings; they would be
drawn as placeholders.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runValidate(cmd.Context(), args)
		},
	}
}

func (c *CLI) runValidate(ctx context.Context, paths []string) error {
	ui := c.ui()
	invalid := 0
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}
		rec, warnings, err := inspection.ReadFile(path)
		if err != nil {
			ui.failure("%s: %s", path, errs.UserMessage(err))
			invalid++
			continue
		}
		problems := rec.Problems()
		if len(problems) == 0 {
			ui.success("%s", path)
		} else {
			ui.failure("%s", path)
			invalid++
		}
		for _, p := range problems {
			ui.detail("%s", p)
		}
		for _, w := range warnings {
			ui.warning("%v", w)
		}
	}
	if invalid > 0 {
		return errs.New(errs.ErrCodeInvalidRecord, "%d of %d record(s) invalid", invalid, len(paths))
	}
	c.Logger.Debug("validated records", "count", len(paths))
	return nil
}
