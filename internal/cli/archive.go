package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/matzehuels/inspectreport/pkg/archive"

	errs "github.com/matzehuels/inspectreport/pkg/errors"
)

// archiveCommand creates the archive command.
func (c *CLI) archiveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "List, fetch and delete archived reports",
	}
	cmd.AddCommand(c.archiveListCommand())
	cmd.AddCommand(c.archiveGetCommand())
	cmd.AddCommand(c.archiveDeleteCommand())
	return cmd
}

// withArchive opens the configured archive for the duration of fn.
func (c *CLI) withArchive(ctx context.Context, fn func(archive.Store) error) error {
	store, err := c.newArchive(ctx)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	if store == nil {
		return errs.New(errs.ErrCodeInvalidConfig, "no [archive] backend configured")
	}
	defer store.Close()
	return fn(store)
}

func (c *CLI) archiveListCommand() *cobra.Command {
	var q archive.Query
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List archived reports, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withArchive(cmd.Context(), func(s archive.Store) error {
				entries, err := s.List(cmd.Context(), q)
				if err != nil {
					return err
				}
				if len(entries) == 0 {
					c.ui().info("Archive is empty")
					return nil
				}
				c.ui().line(archiveTable(entries))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&q.VIN, "vin", "", "only reports of this VIN")
	cmd.Flags().StringVar(&q.ReportID, "report", "", "only artifacts of this report id")
	cmd.Flags().IntVarP(&q.Limit, "limit", "n", archive.DefaultLimit, "maximum entries")
	return cmd
}

func (c *CLI) archiveGetCommand() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "get [id]",
		Short: "Write an archived report to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withArchive(cmd.Context(), func(s archive.Store) error {
				e, data, err := s.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				path := output
				if path == "" || isDir(path) {
					path = filepath.Join(output, e.FileName)
				}
				if err := writeFile(path, data); err != nil {
					return err
				}
				c.ui().success("%s", e.Vehicle)
				c.ui().file(path)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file or directory (default current directory)")
	return cmd
}

func (c *CLI) archiveDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id...]",
		Short: "Delete archived reports",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withArchive(cmd.Context(), func(s archive.Store) error {
				for _, id := range args {
					if err := s.Delete(cmd.Context(), id); err != nil {
						return fmt.Errorf("%s: %w", id, err)
					}
					c.ui().success("Deleted %s", id)
				}
				return nil
			})
		},
	}
}

func archiveTable(entries []archive.Entry) string {
	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{
			e.ID,
			e.Vehicle,
			e.Format,
			strconv.Itoa(e.Score),
			strconv.Itoa(e.Pages),
			humanize.Bytes(uint64(e.Size)),
			humanize.Time(e.CreatedAt),
		}
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Vehicle", "Format", "Score", "Pages", "Size", "Archived").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if col == 0 || col == 6 {
				return base.Foreground(colorDim)
			}
			if col == 3 && row >= 0 && row < len(entries) {
				return base.Foreground(scoreStyle(entries[row].Score).GetForeground())
			}
			return base
		}).
		Render()
}
