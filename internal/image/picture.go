// Package image provides image loading, display scaling and pixel picking.
package image

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"

	"fixthecolor/pkg/colorutil"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Default display box for picked images.
const (
	DefaultMaxWidth  = 400
	DefaultMaxHeight = 300
)

// Extensions lists the file types Load can decode.
var Extensions = []string{".png", ".jpg", ".jpeg", ".bmp", ".gif", ".tif", ".tiff", ".webp"}

// Picture is a source image plus a copy scaled for display.
type Picture struct {
	Path    string      // Source file path
	Source  image.Image // Full resolution image, sampled on pick
	Display *image.RGBA // Scaled copy shown to the user
}

// Load decodes the image at path and scales it to fit maxW x maxH.
func Load(path string, maxW, maxH int) (*Picture, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	p := FromImage(img, maxW, maxH)
	p.Path = path
	log.Printf("Loaded %s image %s (%dx%d, display %dx%d)",
		format, path, p.Width(), p.Height(), p.Display.Bounds().Dx(), p.Display.Bounds().Dy())
	return p, nil
}

// FromImage wraps an already decoded image.
func FromImage(img image.Image, maxW, maxH int) *Picture {
	b := img.Bounds()
	w, h := FitSize(b.Dx(), b.Dy(), maxW, maxH)

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if w == b.Dx() && h == b.Dy() {
		draw.Copy(dst, image.Point{}, img, b, draw.Src, nil)
	} else {
		draw.CatmullRom.Scale(dst, dst.Rect, img, b, draw.Src, nil)
	}
	return &Picture{Source: img, Display: dst}
}

// FitSize scales w x h down to fit inside maxW x maxH keeping the aspect
// ratio. Images already inside the box are not enlarged. Non-positive
// limits select the defaults.
func FitSize(w, h, maxW, maxH int) (int, int) {
	if maxW <= 0 {
		maxW = DefaultMaxWidth
	}
	if maxH <= 0 {
		maxH = DefaultMaxHeight
	}
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	if w <= maxW && h <= maxH {
		return w, h
	}
	scale := min(float64(maxW)/float64(w), float64(maxH)/float64(h))
	return max(1, int(float64(w)*scale)), max(1, int(float64(h)*scale))
}

// Width returns the source width in pixels.
func (p *Picture) Width() int {
	if p.Source == nil {
		return 0
	}
	return p.Source.Bounds().Dx()
}

// Height returns the source height in pixels.
func (p *Picture) Height() int {
	if p.Source == nil {
		return 0
	}
	return p.Source.Bounds().Dy()
}

// SourcePoint maps a position on the image as shown at viewW x viewH back
// to source pixel coordinates. ok is false outside the shown image.
func (p *Picture) SourcePoint(x, y, viewW, viewH float64) (image.Point, bool) {
	if p.Source == nil || viewW <= 0 || viewH <= 0 {
		return image.Point{}, false
	}
	if x < 0 || y < 0 || x > viewW || y > viewH {
		return image.Point{}, false
	}
	b := p.Source.Bounds()
	sx := int(x * float64(b.Dx()) / viewW)
	sy := int(y * float64(b.Dy()) / viewH)
	sx = min(max(sx, 0), b.Dx()-1)
	sy = min(max(sy, 0), b.Dy()-1)
	return image.Pt(b.Min.X+sx, b.Min.Y+sy), true
}

// ColorAt returns the source pixel under a position on the shown image.
func (p *Picture) ColorAt(x, y, viewW, viewH float64) (colorutil.RGB, bool) {
	pt, ok := p.SourcePoint(x, y, viewW, viewH)
	if !ok {
		return colorutil.RGB{}, false
	}
	return colorutil.FromColor(p.Source.At(pt.X, pt.Y)), true
}
