package fixture

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	"github.com/woozymasta/dds"
)

var (
	// ErrCreateOutputDir indicates the output directory could not be created.
	ErrCreateOutputDir = errors.New("create output dir failed")
	// ErrWriteManifest indicates the manifest could not be written.
	ErrWriteManifest = errors.New("write manifest failed")
)

// Result describes one generated file.
type Result struct {
	File   string `json:"file"`
	Format string `json:"format"`
	DXGI   string `json:"dxgi,omitempty"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Size   int64  `json:"size"`
	EDDS   bool   `json:"edds,omitempty"`
	Block  string `json:"block,omitempty"`
}

// Generate writes the source image in every configured format. Generation
// stops at the first failing format.
func Generate(ctx context.Context, cfg Config, logger *slog.Logger) ([]Result, error) {
	if logger == nil {
		logger = slog.Default()
	}

	formats, err := ParseFormats(cfg.Formats)
	if err != nil {
		return nil, err
	}
	img, err := cfg.SourceImage()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrCreateOutputDir, cfg.OutputDir, err)
	}

	b := img.Bounds()
	logger.Info("generating fixtures",
		"dir", cfg.OutputDir,
		"formats", len(formats),
		"width", b.Dx(),
		"height", b.Dy(),
		"edds", cfg.EDDS,
	)

	results := make([]Result, 0, len(formats))
	for _, format := range formats {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		opts := &dds.WriteOptions{
			Format:        format,
			EncodeOptions: encodeOptions(format, img),
		}

		res, err := writeOne(cfg.OutputDir, img, opts, logger)
		if err != nil {
			return results, err
		}
		results = append(results, res)

		if !cfg.EDDS {
			continue
		}
		opts.EDDS = true
		opts.Compress = cfg.Compress
		res, err = writeOne(cfg.OutputDir, img, opts, logger)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}

	if cfg.Manifest != "" {
		if err := WriteManifest(cfg.Manifest, results); err != nil {
			return results, err
		}
		logger.Info("manifest written", "path", cfg.Manifest, "files", len(results))
	}

	return results, nil
}

func writeOne(dir string, img image.Image, opts *dds.WriteOptions, logger *slog.Logger) (Result, error) {
	path := filepath.Join(dir, FileName(opts.Format, opts.EDDS))
	if err := dds.WriteWithOptions(img, path, opts); err != nil {
		return Result{}, fmt.Errorf("%s: %w", opts.Format, err)
	}

	f, err := dds.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("%s: verify: %w", opts.Format, err)
	}
	st, err := os.Stat(path)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", opts.Format, err)
	}

	res := Result{
		File:   path,
		Format: opts.Format.String(),
		DXGI:   opts.Format.DXGIName(),
		Width:  f.Width,
		Height: f.Height,
		Size:   st.Size(),
		EDDS:   f.EDDS,
		Block:  f.BlockMagic,
	}
	logger.Debug("wrote fixture", "file", path, "format", res.Format, "size", res.Size, "block", res.Block)

	return res, nil
}

// WriteManifest stores results as indented JSON.
func WriteManifest(path string, results []Result) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWriteManifest, err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrWriteManifest, path, err)
	}
	return nil
}
