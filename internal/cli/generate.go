package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/inspectreport/pkg/archive"
	"github.com/matzehuels/inspectreport/pkg/pipeline"

	errs "github.com/matzehuels/inspectreport/pkg/errors"
)

// generateOpts holds the flags of the generate command.
type generateOpts struct {
	formats     string
	output      string
	scale       float64
	noCache     bool
	refresh     bool
	concurrency int
	archive     bool
}

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	opts := generateOpts{concurrency: pipeline.DefaultConcurrency}

	cmd := &cobra.Command{
		Use:   "generate [record.json...]",
		Short: "Generate inspection reports from record files",
		Long: `Generate inspection reports from one or more record files.

Photo paths in a record are resolved relative to the record file. Photos that
cannot be loaded are drawn as placeholders and reported as warnings.

Each report is written next to its record, or into the --output directory,
under a name built from the vehicle make, model and year plus the report id,
for example AIS_Toyota_Corolla_2019_AIS-202405-4821.pdf. With a single
record and a single format, --output may name the file itself.

Files are written only after every requested format has rendered. Rendered
reports are cached; an unchanged record is served from the cache.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd.Context(), args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): pdf (default), png, svg, json (comma-separated)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output directory, or file for a single record and format")
	cmd.Flags().Float64Var(&opts.scale, "scale", pipeline.DefaultScale, "PNG resolution in pixels per millimetre")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached reports and render again")
	cmd.Flags().IntVarP(&opts.concurrency, "jobs", "j", opts.concurrency, "records generated in parallel")
	cmd.Flags().BoolVar(&opts.archive, "archive", false, "store the reports in the configured archive")

	return cmd
}

func (c *CLI) runGenerate(ctx context.Context, paths []string, o generateOpts) error {
	formats, err := pipeline.ParseFormats(splitList(o.formats))
	if err != nil {
		return err
	}
	opts := pipeline.Options{
		Formats: formats,
		Scale:   o.scale,
		Refresh: o.refresh,
		Theme:   c.cfg.Theme(),
		Logger:  c.Logger,
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	var store archive.Store
	if o.archive {
		if store, err = c.newArchive(ctx); err != nil {
			return fmt.Errorf("open archive: %w", err)
		}
		if store == nil {
			return errs.New(errs.ErrCodeInvalidConfig, "archiving needs an [archive] backend in the config")
		}
		defer store.Close()
	}

	runner, err := c.newRunner(ctx, o.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Generating %d report(s)...", len(paths)))
	runner.Progress = func(done, total int) {
		spinner.SetMessage(fmt.Sprintf("Generating reports %d/%d...", done, total))
	}
	spinner.Start()
	items := runner.ExecuteBatch(ctx, paths, opts, o.concurrency)
	spinner.Stop()
	if spinner.Cancelled() {
		return errs.Wrap(errs.ErrCodeTimeout, ctx.Err(), "generation interrupted; no files written")
	}

	ui := c.ui()
	names := newOutputNames(o.output, len(paths) == 1 && len(formats) == 1)
	written := 0
	for _, it := range items {
		if it.Err != nil {
			ui.failure("%s: %s", it.Path, errs.UserMessage(it.Err))
			continue
		}
		res := it.Result
		ui.success("%s", res.Meta.FileName)
		for _, w := range res.Warnings {
			ui.warning("%v", w)
		}
		for _, f := range formats {
			path, err := names.path(it.Path, res.Meta.ArtifactName(f))
			if err != nil {
				return err
			}
			if err := writeFile(path, res.Artifacts[f]); err != nil {
				return err
			}
			ui.file(path)
			if store != nil {
				e := archive.NewEntry(res.Meta, res.Record.Vehicle, f, time.Now())
				if err := store.Put(ctx, e, res.Artifacts[f]); err != nil {
					return fmt.Errorf("archive %s: %w", path, err)
				}
				ui.detail("archived as %s", e.ID)
			}
		}
		ui.stats(res.Meta, res.CacheInfo.RenderHit)
		written++
	}
	prog.done(fmt.Sprintf("Generated %d of %d report(s)", written, len(items)))
	return pipeline.BatchErr(items)
}

// outputNames places artifacts and keeps names unique within one run.
type outputNames struct {
	output string
	single bool
	used   map[string]bool
}

func newOutputNames(output string, single bool) *outputNames {
	return &outputNames{output: output, single: single, used: make(map[string]bool)}
}

// path returns where the artifact named name, generated from the record at
// input, is written.
func (n *outputNames) path(input, name string) (string, error) {
	if n.single && n.output != "" && !isDir(n.output) && filepath.Ext(n.output) != "" {
		return n.output, nil
	}
	dir := n.output
	if dir == "" {
		dir = filepath.Dir(input)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	path := filepath.Join(dir, name)
	if n.used[path] {
		// Same make, model, year and report id: fall back to the record name.
		base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
		path = filepath.Join(dir, base+filepath.Ext(name))
	}
	n.used[path] = true
	return path, nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errs.Wrap(errs.ErrCodeStorage, err, "write %s", path)
	}
	return nil
}

// splitList splits a comma-separated flag value, dropping empty entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
