package fixture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/png" // source images
	"os"

	"gopkg.in/yaml.v3"
)

var (
	// ErrReadConfig indicates the config file could not be read.
	ErrReadConfig = errors.New("read config failed")
	// ErrParseConfig indicates the config file is not valid YAML.
	ErrParseConfig = errors.New("parse config failed")
	// ErrInvalidPixels indicates a malformed pixel list.
	ErrInvalidPixels = errors.New("invalid pixels")
	// ErrLoadImage indicates the source image could not be loaded.
	ErrLoadImage = errors.New("load source image failed")
)

// Config describes one fixture run (ddsgen.yaml).
type Config struct {
	// OutputDir receives the generated files; created when missing.
	OutputDir string `yaml:"output_dir"`
	// Formats lists registry names; empty means all.
	Formats []string `yaml:"formats"`
	// EDDS also writes an .edds copy of every file.
	EDDS bool `yaml:"edds"`
	// Compress stores EDDS payloads as LZ4 when it pays off.
	Compress bool `yaml:"compress"`
	// Manifest is an optional JSON file listing the generated files.
	Manifest string `yaml:"manifest"`

	// Image is an optional PNG source. It wins over Pixels.
	Image string `yaml:"image"`
	// Width and Height shape Pixels; both default to 4.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	// Pixels is a row-major list of [r, g, b, a] values. Empty means the
	// reference pattern.
	Pixels [][]uint8 `yaml:"pixels"`
}

// DefaultConfig reproduces the reference fixture set in ./PluginData.
func DefaultConfig() Config {
	return Config{
		OutputDir: "PluginData",
		Compress:  true,
		Width:     Width,
		Height:    Height,
	}
}

// LoadConfig reads a YAML config on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %q: %v", ErrReadConfig, path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %q: %v", ErrParseConfig, path, err)
	}

	return cfg, nil
}

// SourceImage returns the image the config describes.
func (c Config) SourceImage() (*image.NRGBA, error) {
	if c.Image != "" {
		return loadImage(c.Image)
	}
	if len(c.Pixels) == 0 {
		return ReferenceImage(), nil
	}

	width, height := c.Width, c.Height
	if width <= 0 {
		width = Width
	}
	if height <= 0 {
		height = Height
	}
	if len(c.Pixels) != width*height {
		return nil, fmt.Errorf("%w: %d pixels for %dx%d", ErrInvalidPixels, len(c.Pixels), width, height)
	}

	px := make([]color.NRGBA, len(c.Pixels))
	for i, p := range c.Pixels {
		if len(p) != 4 {
			return nil, fmt.Errorf("%w: pixel %d has %d channels", ErrInvalidPixels, i, len(p))
		}
		px[i] = rgba(p[0], p[1], p[2], p[3])
	}

	return imageFromPixels(px, width, height), nil
}

func loadImage(path string) (*image.NRGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrLoadImage, path, err)
	}
	defer func() { _ = f.Close() }()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrLoadImage, path, err)
	}

	b := src.Bounds()
	img := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			img.Set(x, y, src.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return img, nil
}
