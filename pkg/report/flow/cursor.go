// Package flow implements vertical pagination: a Cursor hands out vertical
// space on the current page and starts a new page whenever a block would
// cross the printable bound. Blocks are placed whole or moved to the next
// page; they are never split.
package flow

import (
	"github.com/matzehuels/inspectreport/pkg/report/page"

	errs "github.com/matzehuels/inspectreport/pkg/errors"
)

// HeaderFunc draws the running header of a freshly started page. label names
// the region on the page; continued is true when the region carries over from
// the previous page.
type HeaderFunc func(p *page.Page, label string, continued bool)

// Cursor tracks the write position across an ordered list of pages.
// It is not safe for concurrent use; one generation owns one cursor.
type Cursor struct {
	top, bottom float64
	header      HeaderFunc

	pages  []*page.Page
	cur    *page.Page
	y      float64
	breaks int
	err    error

	// last is the label of the most recently placed block.
	last string
}

// New returns a cursor whose continuation pages start at top and whose
// blocks never extend below bottom.
func New(top, bottom float64, header HeaderFunc) *Cursor {
	if header == nil {
		header = func(*page.Page, string, bool) {}
	}
	return &Cursor{top: top, bottom: bottom, header: header}
}

// NewPage starts a page with a running header for a new region and returns
// the first usable offset.
func (c *Cursor) NewPage(title string) float64 {
	c.start(title, false)
	return c.y
}

// NewBarePage starts a page without running header at offset 0. The caller
// positions the cursor with SetY after drawing its own header.
func (c *Cursor) NewBarePage() *page.Page {
	c.cur = page.New(len(c.pages))
	c.pages = append(c.pages, c.cur)
	c.y = 0
	c.last = ""
	return c.cur
}

func (c *Cursor) start(label string, continued bool) {
	c.cur = page.New(len(c.pages))
	c.pages = append(c.pages, c.cur)
	c.header(c.cur, label, continued)
	c.y = c.top
	c.last = label
}

// Reserve claims height on the current page and returns the offset to draw
// at. When the block does not fit below the current offset, a new page is
// started first. Its header is marked continued only when label matches
// the block placed before, so a region opening at the top of a page is not
// announced as a continuation.
func (c *Cursor) Reserve(height float64, label string) float64 {
	return c.ReserveKeep(height, 0, label)
}

// ReserveKeep is Reserve for a block that must not be left alone at the
// bottom of a page: it also breaks when the following block of height next
// would not fit after it.
func (c *Cursor) ReserveKeep(height, next float64, label string) float64 {
	capacity := c.bottom - c.top
	if height > capacity {
		if c.err == nil {
			c.err = errs.New(errs.ErrCodeLayoutOverflow,
				"block of %.1f mm exceeds the printable height of %.1f mm", height, capacity)
		}
	}
	if height+next > capacity {
		next = 0
	}
	if c.cur == nil {
		c.start(label, false)
	} else if c.y+height+next > c.bottom && c.y > c.top {
		c.breaks++
		c.start(label, label == c.last)
	}
	y := c.y
	c.y += height
	c.last = label
	return y
}

// Fits reports whether a block of height fits below the current offset.
func (c *Cursor) Fits(height float64) bool {
	return c.cur != nil && c.y+height <= c.bottom
}

// Break starts a page unconditionally, marked continued when label matches
// the block placed before.
func (c *Cursor) Break(label string) float64 {
	if c.cur != nil {
		c.breaks++
	}
	c.start(label, c.cur != nil && label == c.last)
	return c.y
}

// Skip adds vertical whitespace. It never starts a page; a gap reaching past
// the bottom leaves the cursor at the bottom so the next block breaks.
func (c *Cursor) Skip(gap float64) {
	c.y = min(c.y+gap, c.bottom)
}

// SetY moves the write position on the current page, clamped to the bottom.
func (c *Cursor) SetY(y float64) {
	c.y = min(y, c.bottom)
}

// Y returns the current offset.
func (c *Cursor) Y() float64 { return c.y }

// Bottom returns the printable bound.
func (c *Cursor) Bottom() float64 { return c.bottom }

// Page returns the current page, nil before the first page.
func (c *Cursor) Page() *page.Page { return c.cur }

// Pages returns every page started so far, in order.
func (c *Cursor) Pages() []*page.Page { return c.pages }

// Breaks returns the number of overflow page breaks.
func (c *Cursor) Breaks() int { return c.breaks }

// Err returns the first block that could not be placed on any page.
func (c *Cursor) Err() error { return c.err }
