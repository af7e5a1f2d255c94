package report

import (
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/inspectreport/pkg/inspection"
	"github.com/matzehuels/inspectreport/pkg/observability"
	"github.com/matzehuels/inspectreport/pkg/report/grid"
	"github.com/matzehuels/inspectreport/pkg/report/style"
)

// Option configures Generate.
type Option func(*config)

type config struct {
	theme     style.Theme
	clock     func() time.Time
	rand      *rand.Rand
	logger    *log.Logger
	hooks     observability.ReportHooks
	scorer    inspection.Scorer
	maxPixels int
	reportID  string
}

func newConfig(opts []Option) config {
	cfg := config{
		theme:     style.DefaultTheme(),
		clock:     time.Now,
		logger:    log.New(io.Discard),
		hooks:     observability.Report(),
		maxPixels: grid.MaxPixelWidth,
	}
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.rand == nil {
		cfg.rand = rand.New(rand.NewPCG(uint64(cfg.clock().UnixNano()), 0x41495321))
	}
	return cfg
}

// WithTheme replaces the page geometry, layout, brand and palette.
func WithTheme(th style.Theme) Option {
	return func(c *config) { c.theme = th }
}

// WithBrand replaces only the brand of the current theme.
func WithBrand(b style.Brand) Option {
	return func(c *config) { c.theme.Brand = b }
}

// WithClock sets the source of the generation time.
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		if now != nil {
			c.clock = now
		}
	}
}

// WithReportID reuses an existing report id instead of drawing a new one.
// Combined with WithClock it reproduces an earlier generation exactly.
func WithReportID(id string) Option {
	return func(c *config) { c.reportID = id }
}

// WithRand sets the source of the report id suffix.
func WithRand(src rand.Source) Option {
	return func(c *config) {
		if src != nil {
			c.rand = rand.New(src)
		}
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithHooks sets the report hooks. The default is the globally registered
// observability.Report().
func WithHooks(h observability.ReportHooks) Option {
	return func(c *config) {
		if h != nil {
			c.hooks = h
		}
	}
}

// WithScorer sets the scorer used for records without a score.
func WithScorer(s inspection.Scorer) Option {
	return func(c *config) { c.scorer = s }
}

// WithMaxPixelWidth bounds the pixel width of embedded photos.
func WithMaxPixelWidth(px int) Option {
	return func(c *config) {
		if px > 0 {
			c.maxPixels = px
		}
	}
}
