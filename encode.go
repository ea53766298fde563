package dds

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"
)

// EncodeOptions configures payload encoding.
type EncodeOptions struct {
	// Palette is used by the palette formats. Pixels are mapped to their
	// nearest entry. Nil builds a palette with QuantizeIndexed.
	Palette color.Palette
}

// Encode writes img as a complete DDS stream (headers and payload).
// Nil opts uses defaults.
func Encode(w io.Writer, img image.Image, format Format, opts *EncodeOptions) error {
	bounds := img.Bounds()
	hdr, dx10, err := newHeader(format, bounds.Dx(), bounds.Dy())
	if err != nil {
		return err
	}

	payload, err := EncodePayload(img, format, opts)
	if err != nil {
		return err
	}

	if err := writeHeaders(w, hdr, dx10); err != nil {
		return err
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("%w: %v", ErrWritePayload, err)
	}

	return nil
}

// EncodePayload returns the bytes that follow the headers for img in the
// given format: raw pixels, concatenated blocks, or a palette table with
// indices. Block formats need width and height to be multiples of 4.
func EncodePayload(img image.Image, format Format, opts *EncodeOptions) ([]byte, error) {
	if !format.valid() {
		return nil, ErrInvalidFormat
	}

	src := toNRGBA(img)
	width, height := src.Rect.Dx(), src.Rect.Dy()
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}

	switch {
	case format.IsCompressed():
		if width%4 != 0 || height%4 != 0 {
			return nil, fmt.Errorf("%w: %dx%d is not a multiple of 4 for %s", ErrInvalidDimensions, width, height, format)
		}
		return encodeBlocks(src, format), nil

	case format.IsIndexed():
		return encodeIndexed(src, format, opts)

	default:
		return encodeRaw(src, format), nil
	}
}

// EncodeBlock encodes one block in a compressed format.
func EncodeBlock(b Block, format Format) ([]byte, error) {
	switch format {
	case FormatDXT1:
		out := EncodeBC1(b)
		return out[:], nil
	case FormatDXT5:
		out := EncodeBC3(b)
		return out[:], nil
	case FormatBC4:
		out := EncodeBC4(b.Channel(0))
		return out[:], nil
	case FormatBC5:
		out := EncodeBC5(b)
		return out[:], nil
	case FormatBC7:
		out := EncodeBC7(b)
		return out[:], nil
	case FormatBC6H:
		out := EncodeBC6H(b)
		return out[:], nil
	default:
		return nil, fmt.Errorf("%w: %s is not block compressed", ErrInvalidFormat, format)
	}
}

// encodeBlocks walks the image in 4x4 tiles, rows of blocks top to bottom.
func encodeBlocks(img *image.NRGBA, format Format) []byte {
	width, height := img.Rect.Dx(), img.Rect.Dy()
	out := make([]byte, 0, format.PayloadSize(width, height))

	for y := 0; y < height; y += 4 {
		for x := 0; x < width; x += 4 {
			enc, err := EncodeBlock(blockAt(img, x, y), format)
			if err != nil {
				// format was checked by the caller
				panic(err)
			}
			out = append(out, enc...)
		}
	}

	return out
}

func encodeIndexed(img *image.NRGBA, format Format, opts *EncodeOptions) ([]byte, error) {
	bits := format.IndexBits()

	var (
		pal     color.Palette
		indices []uint8
	)
	if opts != nil && opts.Palette != nil {
		pal = opts.Palette
		indices = MapIndexed(img, pal)
	} else {
		var err error
		pal, indices, err = QuantizeIndexed(img, bits)
		if err != nil {
			return nil, err
		}
	}

	return appendIndexed(make([]byte, 0, format.PayloadSize(img.Rect.Dx(), img.Rect.Dy())), pal, indices, bits)
}

// toNRGBA returns img as non-premultiplied RGBA, copying only when needed.
func toNRGBA(img image.Image) *image.NRGBA {
	if m, ok := img.(*image.NRGBA); ok {
		return m
	}

	b := img.Bounds()
	m := image.NewNRGBA(b)
	draw.Draw(m, b, img, b.Min, draw.Src)
	return m
}
