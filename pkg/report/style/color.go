package style

import (
	"fmt"
	"strconv"
	"strings"

	errs "github.com/matzehuels/inspectreport/pkg/errors"
)

// Color is an opaque sRGB color.
type Color struct {
	R, G, B uint8
}

// RGB returns a Color.
func RGB(r, g, b uint8) Color { return Color{r, g, b} }

// Hex returns the color as #rrggbb.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Floats returns the channels scaled to [0,1].
func (c Color) Floats() (r, g, b float64) {
	return float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255
}

// ParseHex parses #rrggbb. The leading "#" is optional.
func ParseHex(s string) (Color, error) {
	s = "#" + strings.TrimPrefix(s, "#")
	if err := errs.ValidateHexColor(s); err != nil {
		return Color{}, err
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return Color{}, errs.Wrap(errs.ErrCodeInvalidConfig, err, "invalid color %q", s)
	}
	return Color{uint8(v >> 16), uint8(v >> 8), uint8(v)}, nil
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(b []byte) error {
	v, err := ParseHex(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}
