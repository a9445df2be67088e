// Package colors provides fixed-arity accumulation color values for
// histogram rendering.
//
// Unlike display colors, accumulation values have unbounded channel
// magnitudes: hits are summed into them during rendering and only
// normalized to [0, 1] by a later tone-mapping pass.
package colors

import "fmt"

// A Channel selects one component of a color value.
type Channel int

const (
	Red Channel = iota
	Green
	Blue
)

func (ch Channel) String() string {
	switch ch {
	case Red:
		return "Red"
	case Green:
		return "Green"
	case Blue:
		return "Blue"
	}
	return fmt.Sprintf("Channel(%d)", int(ch))
}

// A Value is an accumulation color of some fixed channel arity.
//
// All elementwise operations pair channels of matching arity; there is no
// cross-arity conversion except the lossy widening of RGB, which reports
// absent channels as zero. The zero value of every implementation is the
// additive identity, so zeroed buffers need no explicit initialization.
type Value[T any] interface {
	// Add returns the elementwise sum of the two values.
	Add(rhs T) T

	// Max returns the elementwise maximum of the two values.
	Max(rhs T) T

	// Map applies f independently to every channel.
	Map(f func(float64) float64) T

	// Div returns the elementwise quotient. Division by zero follows the
	// usual floating-point convention and produces Inf or NaN.
	Div(rhs T) T

	// One returns the unit value for ch: the named channel is 1 and the
	// rest are 0. Requesting a channel the arity does not carry panics.
	One(ch Channel) T

	// RGB widens the value to a red, green, blue triple, reporting
	// absent channels as zero.
	RGB() (r, g, b float64)
}

// Gray is a single-channel accumulation value.
type Gray float64

func (v Gray) Add(rhs Gray) Gray { return v + rhs }

func (v Gray) Max(rhs Gray) Gray {
	if rhs > v {
		return rhs
	}
	return v
}

func (v Gray) Map(f func(float64) float64) Gray { return Gray(f(float64(v))) }

func (v Gray) Div(rhs Gray) Gray { return v / rhs }

// One returns 1 for every selector; a single channel has no distinct red,
// green, or blue component to miss.
func (Gray) One(Channel) Gray { return 1 }

// RGB broadcasts the single channel into all three slots.
func (v Gray) RGB() (float64, float64, float64) {
	return float64(v), float64(v), float64(v)
}

// RG is a two-channel (red, green) accumulation value.
type RG struct {
	R, G float64
}

func (v RG) Add(rhs RG) RG {
	return RG{R: v.R + rhs.R, G: v.G + rhs.G}
}

func (v RG) Max(rhs RG) RG {
	return RG{R: max(v.R, rhs.R), G: max(v.G, rhs.G)}
}

func (v RG) Map(f func(float64) float64) RG {
	return RG{R: f(v.R), G: f(v.G)}
}

func (v RG) Div(rhs RG) RG {
	return RG{R: v.R / rhs.R, G: v.G / rhs.G}
}

func (RG) One(ch Channel) RG {
	switch ch {
	case Red:
		return RG{R: 1}
	case Green:
		return RG{G: 1}
	}
	panic(fmt.Sprintf("color channel %v is not valid for RG", ch))
}

func (v RG) RGB() (float64, float64, float64) {
	return v.R, v.G, 0
}

// RGB is a three-channel (red, green, blue) accumulation value.
type RGB struct {
	R, G, B float64
}

func (v RGB) Add(rhs RGB) RGB {
	return RGB{R: v.R + rhs.R, G: v.G + rhs.G, B: v.B + rhs.B}
}

func (v RGB) Max(rhs RGB) RGB {
	return RGB{R: max(v.R, rhs.R), G: max(v.G, rhs.G), B: max(v.B, rhs.B)}
}

func (v RGB) Map(f func(float64) float64) RGB {
	return RGB{R: f(v.R), G: f(v.G), B: f(v.B)}
}

func (v RGB) Div(rhs RGB) RGB {
	return RGB{R: v.R / rhs.R, G: v.G / rhs.G, B: v.B / rhs.B}
}

func (RGB) One(ch Channel) RGB {
	switch ch {
	case Red:
		return RGB{R: 1}
	case Green:
		return RGB{G: 1}
	case Blue:
		return RGB{B: 1}
	}
	panic(fmt.Sprintf("invalid color channel %v", ch))
}

func (v RGB) RGB() (float64, float64, float64) {
	return v.R, v.G, v.B
}

var (
	_ Value[Gray] = Gray(0)
	_ Value[RG]   = RG{}
	_ Value[RGB] = RGB{}
)
