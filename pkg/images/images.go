// Package images provides the generic pixel accumulation buffer shared by
// the sampling engine and its front ends.
package images

import (
	"image"
	"image/color"
	"math"

	"github.com/willbeason/buddhabrot/pkg/colors"
)

// Image is a flat, row-major grid of accumulation values.
//
// The zero value of T is the additive identity, so a freshly constructed
// Image is an all-zero histogram. Height is Size / Width; a Width that does
// not divide Size evenly truncates the effective height.
type Image[T colors.Value[T]] struct {
	// Size is the total cell count.
	Size int

	// Width is the row width in cells.
	Width int

	data []T
}

// New returns a zero-initialized Image with size cells in rows of width.
func New[T colors.Value[T]](size, width int) *Image[T] {
	return &Image[T]{
		Size:  size,
		Width: width,
		data:  make([]T, size),
	}
}

// Height returns the number of full rows.
func (im *Image[T]) Height() int {
	return im.Size / im.Width
}

// At returns the value at (x, y).
func (im *Image[T]) At(x, y int) T {
	return im.data[y*im.Width+x]
}

// Add accumulates c into the cell at (x, y).
func (im *Image[T]) Add(x, y int, c T) {
	i := y*im.Width + x
	im.data[i] = im.data[i].Add(c)
}

// ForEach visits every cell in row-major order.
func (im *Image[T]) ForEach(fn func(x, y int, c T)) {
	for i, c := range im.data {
		fn(i%im.Width, i/im.Width, c)
	}
}

// AddImage accumulates every cell of other into im at the same coordinate.
// Both images must have the same dimensions.
func (im *Image[T]) AddImage(other *Image[T]) {
	other.ForEach(func(x, y int, c T) {
		im.Add(x, y, c)
	})
}

// MaxValue returns the elementwise maximum over all cells.
func (im *Image[T]) MaxValue() T {
	var m T
	for _, c := range im.data {
		m = m.Max(c)
	}
	return m
}

// Normalize divides every cell by the per-channel maximum of the image,
// bringing accumulated magnitudes into [0, 1]. An all-zero channel divides
// by zero and propagates NaN, as elementwise division always does.
func (im *Image[T]) Normalize() {
	m := im.MaxValue()
	for i, c := range im.data {
		im.data[i] = c.Div(m)
	}
}

// Map applies f to every channel of every cell.
func (im *Image[T]) Map(f func(float64) float64) {
	for i, c := range im.data {
		im.data[i] = c.Map(f)
	}
}

// RGBA64 widens every cell to red, green, blue and quantizes to a 16-bit
// image. Channel magnitudes are expected in [0, 1]; values outside clamp.
func (im *Image[T]) RGBA64() *image.RGBA64 {
	width := im.Width
	height := im.Height()

	img := image.NewRGBA64(image.Rect(0, 0, width, height))
	for i := 0; i < width*height; i++ {
		r, g, b := im.data[i].RGB()

		img.SetRGBA64(i%width, i/width, color.RGBA64{
			R: quantize(r),
			G: quantize(g),
			B: quantize(b),
			A: math.MaxUint16,
		})
	}

	return img
}

func quantize(v float64) uint16 {
	if !(v > 0) { // also catches NaN
		return 0
	}
	if v >= 1 {
		return math.MaxUint16
	}
	return uint16(v * math.MaxUint16)
}
