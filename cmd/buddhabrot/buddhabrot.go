package main

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"time"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"
	"golang.org/x/image/tiff"

	"github.com/willbeason/buddhabrot/pkg/buddha"
	"github.com/willbeason/buddhabrot/pkg/colors"
	"github.com/willbeason/buddhabrot/pkg/images"
)

// Settings holds one render's parameters. The JSON form is what --config
// files contain; flags override file values where explicitly set.
type Settings struct {
	Width          int     `json:"width"`
	Height         int     `json:"height"`
	Iterations     int     `json:"iterations"`
	Multiplier     int     `json:"multiplier"`
	ProgressUpdate int     `json:"progressUpdate"`
	Scale          float64 `json:"scale"`
	CenterReal     float64 `json:"centerReal"`
	CenterImag     float64 `json:"centerImag"`
	Channels       int     `json:"channels"`
	Gamma          float64 `json:"gamma"`
	Out            string  `json:"out"`
	Format         string  `json:"format"`
}

func defaultSettings() Settings {
	return Settings{
		Width:          1920,
		Height:         1080,
		Iterations:     200,
		Multiplier:     50,
		ProgressUpdate: 100_000,
		Scale:          1.0,
		CenterReal:     -0.5,
		CenterImag:     0.0,
		Channels:       1,
		Gamma:          2.2,
		Format:         "png",
	}
}

func mainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:  "buddhabrot",
		Args: cobra.ExactArgs(0),
		RunE: runCmd,
	}

	d := defaultSettings()
	flags := cmd.Flags()
	flags.Int("width", d.Width, "image width in pixels")
	flags.Int("height", d.Height, "image height in pixels")
	flags.Int("iterations", d.Iterations, "escape-time iteration depth per sample")
	flags.Int("multiplier", d.Multiplier, "samples per pixel")
	flags.Int("progress-update", d.ProgressUpdate, "progress bar granularity in samples")
	flags.Float64("scale", d.Scale, "view scale factor")
	flags.Float64("center-real", d.CenterReal, "real part of the view center")
	flags.Float64("center-imag", d.CenterImag, "imaginary part of the view center")
	flags.Int("channels", d.Channels, "color channel count (1, 2, or 3)")
	flags.Float64("gamma", d.Gamma, "gamma applied after normalization")
	flags.String("out", "", "output file (default out-<timestamp>.<format>)")
	flags.String("format", d.Format, "output format (png or tiff)")
	flags.String("config", "", "JSON render settings file")

	return cmd
}

func runCmd(cmd *cobra.Command, _ []string) error {
	// At this point usage information has already been printed if obviously incorrect.
	cmd.SilenceUsage = true

	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	var img *image.RGBA64
	switch settings.Channels {
	case 1:
		img = render[colors.Gray](settings)
	case 2:
		img = render[colors.RG](settings)
	case 3:
		img = render[colors.RGB](settings)
	default:
		return fmt.Errorf("channels must be 1, 2, or 3; got %d", settings.Channels)
	}

	return encode(img, settings)
}

func loadSettings(cmd *cobra.Command) (Settings, error) {
	settings := defaultSettings()
	flags := cmd.Flags()

	if path, _ := flags.GetString("config"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return settings, err
		}
		if err := sonic.Unmarshal(data, &settings); err != nil {
			return settings, fmt.Errorf("decoding %s: %w", path, err)
		}
	}

	if flags.Changed("width") {
		settings.Width, _ = flags.GetInt("width")
	}
	if flags.Changed("height") {
		settings.Height, _ = flags.GetInt("height")
	}
	if flags.Changed("iterations") {
		settings.Iterations, _ = flags.GetInt("iterations")
	}
	if flags.Changed("multiplier") {
		settings.Multiplier, _ = flags.GetInt("multiplier")
	}
	if flags.Changed("progress-update") {
		settings.ProgressUpdate, _ = flags.GetInt("progress-update")
	}
	if flags.Changed("scale") {
		settings.Scale, _ = flags.GetFloat64("scale")
	}
	if flags.Changed("center-real") {
		settings.CenterReal, _ = flags.GetFloat64("center-real")
	}
	if flags.Changed("center-imag") {
		settings.CenterImag, _ = flags.GetFloat64("center-imag")
	}
	if flags.Changed("channels") {
		settings.Channels, _ = flags.GetInt("channels")
	}
	if flags.Changed("gamma") {
		settings.Gamma, _ = flags.GetFloat64("gamma")
	}
	if flags.Changed("out") {
		settings.Out, _ = flags.GetString("out")
	}
	if flags.Changed("format") {
		settings.Format, _ = flags.GetString("format")
	}

	return settings, nil
}

func render[T colors.Value[T]](settings Settings) *image.RGBA64 {
	im := images.New[T](settings.Width*settings.Height, settings.Width)
	center := complex(settings.CenterReal, settings.CenterImag)

	buddha.Sample(im, settings.Iterations, settings.Multiplier,
		settings.ProgressUpdate, settings.Scale, center)

	im.Normalize()
	if settings.Gamma != 1.0 {
		inv := 1.0 / settings.Gamma
		im.Map(func(v float64) float64 { return math.Pow(v, inv) })
	}

	return im.RGBA64()
}

func encode(img *image.RGBA64, settings Settings) error {
	out := settings.Out
	if out == "" {
		out = fmt.Sprintf("out-%s.%s", time.Now().Format("20060102150405"), settings.Format)
	}

	f, err := os.Create(out)
	if err != nil {
		return err
	}

	switch settings.Format {
	case "png":
		err = png.Encode(f, img)
	case "tiff":
		err = tiff.Encode(f, img, nil)
	default:
		err = fmt.Errorf("unsupported format %q", settings.Format)
	}
	if err != nil {
		_ = f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return err
	}

	fmt.Println("wrote", out)
	return nil
}

func main() {
	ctx := context.Background()

	err := mainCmd().ExecuteContext(ctx)
	if err != nil {
		// At this point the error has already been printed; no need to print again.
		os.Exit(1)
	}
}
