// Package grid lays out a section's photos in a fixed-column grid with a
// forced 4:3 aspect ratio and a caption strip under each photo.
//
// Decoding is separated from drawing: [Decode] turns one payload into a
// [Result] that is either a ready image or a degraded placeholder reason, and
// [Draw] renders whatever it is given. A bad payload therefore only ever
// affects its own cell.
package grid

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	"github.com/zeebo/xxh3"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/matzehuels/inspectreport/pkg/inspection"
	"github.com/matzehuels/inspectreport/pkg/report/page"
)

// MaxPixelWidth bounds the width of embedded photos.
const MaxPixelWidth = 1200

// Aspect ratio every photo is cropped to.
const (
	AspectW = 4
	AspectH = 3
)

// Result is the outcome of preparing one photo: either Image is set, or
// Reason says why a placeholder is drawn instead.
type Result struct {
	Image  page.Image
	Reason string
}

// Ok returns a successful result.
func Ok(img image.Image, key uint64) Result {
	return Result{Image: page.Image{Img: img, Key: key}}
}

// Degraded returns a placeholder result.
func Degraded(reason string) Result {
	return Result{Reason: reason}
}

// OK reports whether the photo can be drawn.
func (r Result) OK() bool {
	return r.Image.Img != nil
}

// Decode prepares a photo for drawing: it decodes the payload, crops it to
// 4:3 around the center and bounds its width to maxWidth pixels.
func Decode(p inspection.Photo, maxWidth int) (res Result) {
	if err := p.Err(); err != nil {
		return Degraded(err.Error())
	}
	if len(p.Data) == 0 {
		return Degraded("empty payload")
	}
	defer func() {
		if r := recover(); r != nil {
			res = Degraded(fmt.Sprintf("decoder failure: %v", r))
		}
	}()

	img, format, err := image.Decode(bytes.NewReader(p.Data))
	if err != nil {
		return Degraded(fmt.Sprintf("undecodable image: %v", err))
	}
	b := img.Bounds()
	if b.Dx() < AspectW || b.Dy() < AspectH {
		return Degraded(fmt.Sprintf("%s image too small (%dx%d)", format, b.Dx(), b.Dy()))
	}

	w, h := frame(b.Dx(), b.Dy(), maxWidth)
	fitted := imaging.Fill(img, w, h, imaging.Center, imaging.Lanczos)
	return Ok(fitted, xxh3.Hash(p.Data))
}

// frame returns the largest 4:3 pixel box inside a w×h image, bounded to
// maxWidth wide.
func frame(w, h, maxWidth int) (int, int) {
	fw := min(w, h*AspectW/AspectH)
	if maxWidth > 0 {
		fw = min(fw, maxWidth)
	}
	fw -= fw % AspectW
	return fw, fw * AspectH / AspectW
}

// DecodeAll decodes every photo of a section, in order.
func DecodeAll(photos []inspection.Photo, maxWidth int) []Result {
	out := make([]Result, len(photos))
	for i, p := range photos {
		out[i] = Decode(p, maxWidth)
	}
	return out
}
