package dds

import (
	"bufio"
	"fmt"
	"image"
	"io"
	"os"
)

// WriteOptions configures file writing.
type WriteOptions struct {
	// Format selects the output format. FormatUnknown means FormatRGBA32.
	Format Format
	// EDDS frames the file as Enfusion EDDS instead of plain DDS.
	EDDS bool
	// Compress stores the EDDS payload as an LZ4 chunk stream when that
	// saves space. Ignored for plain DDS.
	Compress bool
	// EncodeOptions are passed to the payload encoder.
	EncodeOptions *EncodeOptions
}

// Write writes img to path as an RGBA32 DDS file.
func Write(img image.Image, path string) error {
	return WriteWithOptions(img, path, nil)
}

// WriteWithFormat writes img to path as a DDS file in the given format.
func WriteWithFormat(img image.Image, path string, format Format) error {
	return WriteWithOptions(img, path, &WriteOptions{Format: format})
}

// WriteWithOptions writes img to path. Nil opts writes plain RGBA32 DDS.
func WriteWithOptions(img image.Image, path string, opts *WriteOptions) error {
	if opts == nil {
		opts = &WriteOptions{}
	}
	format := opts.Format
	if format == FormatUnknown {
		format = FormatRGBA32
	}

	payload, err := EncodePayload(img, format, opts.EncodeOptions)
	if err != nil {
		return err
	}

	bounds := img.Bounds()
	if opts.EDDS {
		return writeFile(path, func(w io.Writer) error {
			return WriteEDDS(w, format, bounds.Dx(), bounds.Dy(), payload, opts.Compress)
		})
	}

	return WriteFromPayload(path, format, bounds.Dx(), bounds.Dy(), payload)
}

// WriteFromPayload writes a DDS file from an already encoded payload.
func WriteFromPayload(path string, format Format, width, height int, payload []byte) error {
	return writeFile(path, func(w io.Writer) error {
		return WritePayload(w, format, width, height, payload)
	})
}

// WritePayload writes the headers and an already encoded payload to w. The
// payload length must match the format and size.
func WritePayload(w io.Writer, format Format, width, height int, payload []byte) error {
	hdr, dx10, err := newHeader(format, width, height)
	if err != nil {
		return err
	}
	if expected := format.PayloadSize(width, height); len(payload) != expected {
		return fmt.Errorf("%w: %s %dx%d: expected %d, got %d", ErrPayloadSizeMismatch, format, width, height, expected, len(payload))
	}

	if err := writeHeaders(w, hdr, dx10); err != nil {
		return err
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("%w: %v", ErrWritePayload, err)
	}

	return nil
}

// writeFile creates path and runs fn against a buffered writer.
func writeFile(path string, fn func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrCreateFile, path, err)
	}
	defer func() { _ = f.Close() }()

	bw := bufio.NewWriter(f)
	if err := fn(bw); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: %v", ErrWritePayload, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrCloseFile, path, err)
	}

	return nil
}
