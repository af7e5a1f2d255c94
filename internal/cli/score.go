package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/inspectreport/pkg/inspection"
)

// scoreCommand creates the score command.
func (c *CLI) scoreCommand() *cobra.Command {
	var (
		asJSON  bool
		noCache bool
	)
	cmd := &cobra.Command{
		Use:   "score [record.json]",
		Short: "Print the overall and per-category scores of a record",
		Long: `Print the overall and per-category scores of a record.

The overall score is the record's own score, or the mean of the section
condition scores when the record carries none. It is not derived from the
checklist; the checklist score is the mean of the category scores.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runScore(cmd.Context(), args[0], asJSON, noCache)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the summary as JSON")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}

func (c *CLI) runScore(ctx context.Context, path string, asJSON, noCache bool) error {
	rec, _, err := inspection.ReadFile(path)
	if err != nil {
		return err
	}
	if err := rec.Validate(); err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	sum, _, err := runner.Score(ctx, rec, nil)
	if err != nil {
		return err
	}
	if asJSON {
		enc := json.NewEncoder(c.out)
		enc.SetIndent("", "  ")
		return enc.Encode(sum)
	}

	ui := c.ui()
	ui.line(StyleTitle.Render(sum.Vehicle))
	ui.keyValue("Overall", scoreStyle(sum.Overall).Render(fmt.Sprintf("%d", sum.Overall))+" "+StyleDim.Render(sum.Verdict))
	ui.keyValue("Checklist", scoreStyle(sum.Checklist).Render(fmt.Sprintf("%d", sum.Checklist)))
	ui.keyValue("Photos", fmt.Sprintf("%d", sum.Photos))
	ui.line(scoreTable(sum))
	return nil
}
