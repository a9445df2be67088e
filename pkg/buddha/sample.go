// Package buddha implements a stochastic Buddhabrot sampling engine.
//
// The engine draws random candidate points from the complex plane, runs
// the escape-time recurrence on each, and histogram-accumulates the
// surviving orbit points into a shared image. Work fans out across one
// goroutine per CPU; each worker accumulates into a private buffer and
// merges it into the shared image exactly once, at the end of its quota.
package buddha

import (
	"math/rand"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"

	"github.com/willbeason/buddhabrot/pkg/colors"
	"github.com/willbeason/buddhabrot/pkg/images"
)

// Progress receives sampling progress in whole update steps.
// *progressbar.ProgressBar satisfies it.
type Progress interface {
	Add(num int) error
	Clear() error
}

// Sample renders a Buddhabrot histogram into im and blocks until every
// worker has merged its private buffer.
//
// It draws im.Size*m candidates uniformly from [-2, 2)², transformed into
// world space by scale and center, and iterates each for up to n steps.
// Orbit points of escaping candidates are projected back onto the pixel
// grid and accumulated as unit Red values; points outside the viewport are
// dropped. A progress bar on stderr advances roughly every progressUpdate
// samples and is cleared before returning.
//
// Pixel placement is randomized, so two renders differ; the merge order of
// workers is also unspecified, so the float accumulation is not bit-exact
// across runs.
func Sample[T colors.Value[T]](im *images.Image[T], n, m, progressUpdate int, scale float64, center complex128) {
	workers := runtime.NumCPU()
	bar := newBar(int64(im.Size * m))

	sample(im, n, m, progressUpdate, scale, center, workers, bar, timeSeeded)

	_ = bar.Clear()
}

func timeSeeded(worker int) *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano() + int64(worker)))
}

func newBar(iters int64) *progressbar.ProgressBar {
	return progressbar.NewOptions64(iters,
		progressbar.OptionSetDescription("sampling"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(50),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}

// sample is the fan-out with explicit worker count, progress sink, and rng
// constructor so tests can pin all three. A panic inside a worker is not
// recovered and aborts the whole render.
func sample[T colors.Value[T]](
	im *images.Image[T],
	n, m, progressUpdate int,
	scale float64,
	center complex128,
	workers int,
	progress Progress,
	newRand func(worker int) *rand.Rand,
) {
	size := im.Size
	width := im.Width
	height := size / width
	iters := size * m

	// Quotas round up, so at most workers-1 extra samples run in total.
	quota := (iters + workers - 1) / workers
	workerUpdate := progressUpdate / workers

	var zero T
	red := zero.One(colors.Red)

	logger().Debug("sampling", "workers", workers, "samples", iters, "depth", n)

	var mu sync.Mutex
	var group errgroup.Group

	for id := 0; id < workers; id++ {
		id := id
		group.Go(func() error {
			rng := newRand(id)
			offset := id * workerUpdate

			// Private buffer: the shared image is touched once, at merge.
			sub := images.New[T](size, width)

			for i := 0; i < quota; i++ {
				r1 := rng.Float64()*4 - 2
				r2 := rng.Float64()*4 - 2

				c := complex(r1*scale, r2*scale) + center

				for _, z := range trajectory(c, n) {
					px, py, ok := project(z, center, scale, width, height)
					if !ok {
						continue
					}

					sub.Add(px, py, red)
				}

				// Workers stagger their reports by offset so the bar does
				// not advance in bursts.
				if i != 0 && (i+offset)%progressUpdate == 0 {
					_ = progress.Add(progressUpdate)
				}
			}

			mu.Lock()
			im.AddImage(sub)
			mu.Unlock()

			logger().Debug("worker merged", "worker", id)
			return nil
		})
	}

	_ = group.Wait()
}

// project maps an orbit point back to pixel coordinates, truncating toward
// zero. Points outside the viewport report ok = false.
func project(z, center complex128, scale float64, width, height int) (px, py int, ok bool) {
	// Both components shift by 0.5 so the view center lands mid-image.
	re := (real(z)-real(center))/scale*0.25 + 0.5
	im := (imag(z)-imag(center))/scale*0.25 + 0.5

	px = int(re * float64(width))
	py = int(im * float64(height))

	if px < 0 || py < 0 || px >= width || py >= height {
		return 0, 0, false
	}

	return px, py, true
}
