// Package fonts provides text metrics and font faces for report rendering.
//
// Layout is measured against the standard Helvetica and Helvetica-Bold
// metrics, which every PDF viewer provides without embedding. Raster output
// uses the Go fonts from golang.org/x/image, whose proportions are close
// enough that measured text never overflows its box.
package fonts

import (
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// PostScript names of the two standard faces used in PDF output.
const (
	Regular = "Helvetica"
	Bold    = "Helvetica-Bold"
)

// FontFamily is the CSS font-family used in SVG output.
const FontFamily = "Helvetica, Arial, sans-serif"

// Parsed fonts (computed once on first access).
var (
	parsedOnce    sync.Once
	parsedRegular *opentype.Font
	parsedBold    *opentype.Font
	parsedErr     error
)

func parsed() (*opentype.Font, *opentype.Font, error) {
	parsedOnce.Do(func() {
		parsedRegular, parsedErr = opentype.Parse(goregular.TTF)
		if parsedErr != nil {
			return
		}
		parsedBold, parsedErr = opentype.Parse(gobold.TTF)
	})
	return parsedRegular, parsedBold, parsedErr
}

// Face returns a raster face of the given pixel size.
// The caller owns the face and should Close it.
func Face(bold bool, sizePx float64) (font.Face, error) {
	regular, boldFont, err := parsed()
	if err != nil {
		return nil, err
	}
	f := regular
	if bold {
		f = boldFont
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    sizePx,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}
