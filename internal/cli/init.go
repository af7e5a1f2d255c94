package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/inspectreport/pkg/config"
	"github.com/matzehuels/inspectreport/pkg/inspection"

	errs "github.com/matzehuels/inspectreport/pkg/errors"
)

// initCommand creates the init command.
func (c *CLI) initCommand() *cobra.Command {
	var (
		vehicle inspection.Vehicle
		cfgOnly bool
		force   bool
	)
	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a template record or configuration file",
		Long: `Write a template inspection record with the default photo sections and
checklist categories, ready to be filled in by the capture tool or by hand.

With --config, write the default configuration instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			if cfgOnly {
				return c.runInitConfig(path, force)
			}
			if vehicle.Date == "" {
				vehicle.Date = time.Now().Format(time.DateOnly)
			}
			if path == "" {
				path = "inspection.json"
			}
			return c.runInitRecord(path, vehicle, force)
		},
	}
	cmd.Flags().StringVar(&vehicle.Make, "make", "", "vehicle make")
	cmd.Flags().StringVar(&vehicle.Model, "model", "", "vehicle model")
	cmd.Flags().StringVar(&vehicle.Year, "year", "", "model year")
	cmd.Flags().StringVar(&vehicle.VIN, "vin", "", "vehicle identification number")
	cmd.Flags().IntVar(&vehicle.Mileage, "mileage", 0, "odometer reading in km")
	cmd.Flags().StringVar(&vehicle.Inspector, "inspector", "", "inspector name")
	cmd.Flags().StringVar(&vehicle.Date, "date", "", "inspection date YYYY-MM-DD (default today)")
	cmd.Flags().BoolVar(&cfgOnly, "config", false, "write the default configuration instead of a record")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func (c *CLI) runInitRecord(path string, v inspection.Vehicle, force bool) error {
	rec := inspection.NewRecord(v)
	if err := rec.Validate(); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := inspection.Write(&buf, rec); err != nil {
		return err
	}
	if err := createFile(path, buf.Bytes(), force); err != nil {
		return err
	}
	ui := c.ui()
	ui.success("Wrote template record")
	ui.file(path)
	ui.nextStep("Generate the report", fmt.Sprintf("%s generate %s", appName, path))
	return nil
}

func (c *CLI) runInitConfig(path string, force bool) error {
	if path == "" {
		dir, err := config.Dir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errs.Wrap(errs.ErrCodeStorage, err, "create %s", dir)
		}
		path = filepath.Join(dir, "config.toml")
	}
	var buf bytes.Buffer
	if err := config.Write(&buf, config.Default()); err != nil {
		return err
	}
	if err := createFile(path, buf.Bytes(), force); err != nil {
		return err
	}
	c.ui().success("Wrote configuration")
	c.ui().file(path)
	return nil
}

// createFile writes data to path, refusing to replace an existing file
// unless force is set.
func createFile(path string, data []byte, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return errs.New(errs.ErrCodeInvalidPath, "%s exists (use --force to overwrite)", path)
		}
	}
	return writeFile(path, data)
}
