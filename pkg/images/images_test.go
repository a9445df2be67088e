package images

import (
	"math"
	"testing"

	"github.com/willbeason/buddhabrot/pkg/colors"
)

func TestNew_ZeroInitialized(t *testing.T) {
	im := New[colors.RG](12, 4)

	if im.Size != 12 || im.Width != 4 {
		t.Fatalf("New(12, 4) has Size %d, Width %d", im.Size, im.Width)
	}
	if got := im.Height(); got != 3 {
		t.Fatalf("Height() = %d, want 3", got)
	}

	im.ForEach(func(x, y int, c colors.RG) {
		if c != (colors.RG{}) {
			t.Errorf("cell (%d, %d) = %v, want zero", x, y, c)
		}
	})
}

func TestHeight_Truncates(t *testing.T) {
	// A width that does not divide size truncates the effective height.
	im := New[colors.Gray](10, 4)
	if got := im.Height(); got != 2 {
		t.Fatalf("Height() = %d, want 2", got)
	}
}

func TestAdd_Accumulates(t *testing.T) {
	im := New[colors.Gray](16, 4)

	im.Add(1, 2, colors.Gray(1))
	im.Add(1, 2, colors.Gray(2.5))

	if got := im.At(1, 2); got != 3.5 {
		t.Errorf("At(1, 2) = %v, want 3.5", got)
	}
	if got := im.At(2, 1); got != 0 {
		t.Errorf("At(2, 1) = %v, want 0", got)
	}
}

func TestForEach_RowMajor(t *testing.T) {
	im := New[colors.Gray](6, 3)

	var xs, ys []int
	im.ForEach(func(x, y int, _ colors.Gray) {
		xs = append(xs, x)
		ys = append(ys, y)
	})

	wantX := []int{0, 1, 2, 0, 1, 2}
	wantY := []int{0, 0, 0, 1, 1, 1}
	for i := range wantX {
		if xs[i] != wantX[i] || ys[i] != wantY[i] {
			t.Fatalf("visit %d = (%d, %d), want (%d, %d)", i, xs[i], ys[i], wantX[i], wantY[i])
		}
	}
}

func TestAddImage_DoublesOnRepeat(t *testing.T) {
	src := New[colors.Gray](16, 4)
	src.Add(0, 0, colors.Gray(1))
	src.Add(3, 3, colors.Gray(2))
	src.Add(2, 1, colors.Gray(5))

	dst := New[colors.Gray](16, 4)
	dst.AddImage(src)
	dst.AddImage(src)

	src.ForEach(func(x, y int, c colors.Gray) {
		if got := dst.At(x, y); got != c.Add(c) {
			t.Errorf("At(%d, %d) = %v, want %v", x, y, got, c.Add(c))
		}
	})
}

func TestMaxValue(t *testing.T) {
	im := New[colors.RG](4, 2)
	im.Add(0, 0, colors.RG{R: 3, G: 1})
	im.Add(1, 1, colors.RG{R: 2, G: 7})

	if got, want := im.MaxValue(), (colors.RG{R: 3, G: 7}); got != want {
		t.Errorf("MaxValue() = %v, want %v", got, want)
	}
}

func TestNormalize(t *testing.T) {
	im := New[colors.Gray](4, 2)
	im.Add(0, 0, colors.Gray(2))
	im.Add(1, 0, colors.Gray(8))

	im.Normalize()

	if got := im.At(0, 0); got != 0.25 {
		t.Errorf("At(0, 0) = %v, want 0.25", got)
	}
	if got := im.At(1, 0); got != 1 {
		t.Errorf("At(1, 0) = %v, want 1", got)
	}
}

func TestMap_Gamma(t *testing.T) {
	im := New[colors.Gray](4, 2)
	im.Add(0, 1, colors.Gray(4))

	im.Map(math.Sqrt)

	if got := im.At(0, 1); got != 2 {
		t.Errorf("At(0, 1) = %v, want 2", got)
	}
	if got := im.At(1, 1); got != 0 {
		t.Errorf("At(1, 1) = %v, want 0", got)
	}
}

func TestRGBA64(t *testing.T) {
	im := New[colors.Gray](4, 2)
	im.Add(0, 0, colors.Gray(1))   // full white
	im.Add(1, 0, colors.Gray(0.5)) // mid gray
	im.Add(0, 1, colors.Gray(2))   // clamps to white

	img := im.RGBA64()

	if got := img.Bounds().Dx(); got != 2 {
		t.Fatalf("width = %d, want 2", got)
	}
	if got := img.Bounds().Dy(); got != 2 {
		t.Fatalf("height = %d, want 2", got)
	}

	if c := img.RGBA64At(0, 0); c.R != math.MaxUint16 || c.G != math.MaxUint16 || c.B != math.MaxUint16 {
		t.Errorf("pixel (0, 0) = %v, want white", c)
	}
	if c := img.RGBA64At(0, 1); c.R != math.MaxUint16 {
		t.Errorf("pixel (0, 1) = %v, want clamped white", c)
	}
	if c := img.RGBA64At(1, 1); c.R != 0 || c.G != 0 || c.B != 0 {
		t.Errorf("pixel (1, 1) = %v, want black", c)
	}
	halfWhite := 0.5 * float64(math.MaxUint16)
	if c := img.RGBA64At(1, 0); c.R != uint16(halfWhite) {
		t.Errorf("pixel (1, 0) red = %d, want %d", c.R, uint16(halfWhite))
	}
	if c := img.RGBA64At(0, 0); c.A != math.MaxUint16 {
		t.Errorf("alpha = %d, want opaque", c.A)
	}
}
