package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/inspectreport/pkg/inspection"
	"github.com/matzehuels/inspectreport/pkg/pipeline"
)

// previewCommand creates the preview command.
func (c *CLI) previewCommand() *cobra.Command {
	var dump bool
	cmd := &cobra.Command{
		Use:   "preview [record.json]",
		Short: "Browse the laid-out pages of a report in the terminal",
		Long: `Lay out a record and browse its pages in the terminal without rendering
an artifact. Each line shows the baseline of a text run in millimetres from
the top of the page; photo slots are listed with their size.

With --dump the text of every page is printed instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPreview(cmd.Context(), args[0], dump)
		},
	}
	cmd.Flags().BoolVar(&dump, "dump", false, "print every page instead of starting the browser")
	return cmd
}

func (c *CLI) runPreview(ctx context.Context, path string, dump bool) error {
	rec, warnings, err := inspection.ReadFile(path)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		c.Logger.Warn("photo not loaded", "err", w)
	}
	opts := pipeline.Options{Theme: c.cfg.Theme(), Logger: c.Logger}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	doc, err := pipeline.GenerateLayout(ctx, rec, opts)
	if err != nil {
		return err
	}

	model := NewPreviewModel(doc)
	if dump {
		ui := c.ui()
		for i, lines := range model.lines {
			ui.line(StyleTitle.Render(fmt.Sprintf("Page %d/%d", i+1, len(model.lines))))
			for _, l := range lines {
				ui.line(l.render())
			}
			ui.line("")
		}
		return nil
	}
	_, err = tea.NewProgram(model, tea.WithContext(ctx), tea.WithAltScreen()).Run()
	return err
}
