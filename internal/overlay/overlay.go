// Package overlay renders landmark markers onto a face photo.
package overlay

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"sync"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
	_ "golang.org/x/image/webp"

	"github.com/kozaktomas/physiognomy/internal/landmark"
)

// ErrDecode is returned when the input is not a supported image.
var ErrDecode = errors.New("failed to decode image")

// Options controls rendering.
type Options struct {
	MaxSize int         // longest edge of the output; 0 keeps the original size
	Color   color.Color // marker color; defaults to white
}

// Result is a rendered overlay.
type Result struct {
	PNG       []byte
	Width     int
	Height    int
	Scale     float64             // factor applied to the landmarks
	Landmarks []landmark.Landmark // landmarks in output coordinates
	Dots      []Dot
}

// Render decodes data, optionally downscales it, draws the landmark dots and
// encodes the result as PNG.
func Render(data []byte, points []landmark.Landmark, opts Options) (*Result, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	canvas, scaled, factor := Draw(img, points, opts)

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, fmt.Errorf("failed to encode overlay: %w", err)
	}

	bounds := canvas.Bounds()
	return &Result{
		PNG:       buf.Bytes(),
		Width:     bounds.Dx(),
		Height:    bounds.Dy(),
		Scale:     factor,
		Landmarks: scaled,
		Dots:      Dots(scaled),
	}, nil
}

// Draw renders onto a copy of img and returns it together with the landmarks
// in the copy's coordinates and the scale factor used.
func Draw(img image.Image, points []landmark.Landmark, opts Options) (*image.RGBA, []landmark.Landmark, float64) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	factor := 1.0
	if opts.MaxSize > 0 && (width > opts.MaxSize || height > opts.MaxSize) {
		factor = float64(opts.MaxSize) / float64(max(width, height))
	}

	var canvas *image.RGBA
	if factor < 1 {
		newWidth := max(1, int(float64(width)*factor))
		newHeight := max(1, int(float64(height)*factor))
		canvas = image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
		draw.CatmullRom.Scale(canvas, canvas.Bounds(), img, bounds, draw.Over, nil)
		points = landmark.Scale(points, factor)
	} else {
		canvas = image.NewRGBA(image.Rect(0, 0, width, height))
		draw.Draw(canvas, canvas.Bounds(), img, bounds.Min, draw.Src)
	}

	c := opts.Color
	if c == nil {
		c = color.White
	}
	src := image.NewUniform(c)
	for _, d := range Dots(points) {
		drawDot(canvas, d, src)
	}
	return canvas, points, factor
}

var (
	maskMu sync.Mutex
	masks  = map[int]*image.Alpha{}
)

// dotMask returns an anti-aliased disc of the given radius centered on the
// middle pixel of an odd-sized square mask.
func dotMask(radius int) *image.Alpha {
	maskMu.Lock()
	defer maskMu.Unlock()
	if m, ok := masks[radius]; ok {
		return m
	}

	size := 2*radius + 3
	c := float32(size) / 2
	r := float32(radius)
	const k = 0.5522848 // cubic Bezier circle approximation

	z := vector.NewRasterizer(size, size)
	z.MoveTo(c+r, c)
	z.CubeTo(c+r, c+k*r, c+k*r, c+r, c, c+r)
	z.CubeTo(c-k*r, c+r, c-r, c+k*r, c-r, c)
	z.CubeTo(c-r, c-k*r, c-k*r, c-r, c, c-r)
	z.CubeTo(c+k*r, c-r, c+r, c-k*r, c+r, c)
	z.ClosePath()

	m := image.NewAlpha(image.Rect(0, 0, size, size))
	z.Draw(m, m.Bounds(), image.Opaque, image.Point{})
	masks[radius] = m
	return m
}

func drawDot(dst *image.RGBA, d Dot, src image.Image) {
	if d.Radius <= 0 {
		return
	}
	mask := dotMask(d.Radius)
	half := mask.Bounds().Dx() / 2
	r := image.Rect(d.X-half, d.Y-half, d.X+half+1, d.Y+half+1)
	draw.DrawMask(dst, r, src, image.Point{}, mask, image.Point{}, draw.Over)
}
