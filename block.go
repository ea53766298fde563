package dds

import (
	"fmt"
	"image"
	"image/color"
)

// BlockPixels is the number of samples in one 4x4 block.
const BlockPixels = 16

// Block is a 4x4 tile of RGBA samples in row-major order (index = row*4 + col).
type Block [BlockPixels]color.NRGBA

// ScalarBlock is a 4x4 tile of single-channel samples in row-major order.
type ScalarBlock [BlockPixels]uint8

// NewBlock copies exactly 16 samples into a Block.
// It panics on any other length.
func NewBlock(px []color.NRGBA) Block {
	if len(px) != BlockPixels {
		panic(fmt.Sprintf("dds: block needs %d samples, got %d", BlockPixels, len(px)))
	}

	var b Block
	copy(b[:], px)
	return b
}

// NewScalarBlock copies exactly 16 values into a ScalarBlock.
// It panics on any other length.
func NewScalarBlock(v []uint8) ScalarBlock {
	if len(v) != BlockPixels {
		panic(fmt.Sprintf("dds: block needs %d samples, got %d", BlockPixels, len(v)))
	}

	var b ScalarBlock
	copy(b[:], v)
	return b
}

// Channel extracts one channel (0=R, 1=G, 2=B, 3=A) as a ScalarBlock.
func (b *Block) Channel(c int) ScalarBlock {
	var out ScalarBlock
	for i, p := range b {
		switch c {
		case 0:
			out[i] = p.R
		case 1:
			out[i] = p.G
		case 2:
			out[i] = p.B
		case 3:
			out[i] = p.A
		default:
			panic(fmt.Sprintf("dds: channel %d out of range", c))
		}
	}
	return out
}

// blockAt gathers the 4x4 tile whose top-left pixel is (x, y) relative to
// the bounds of img.
func blockAt(img *image.NRGBA, x, y int) Block {
	var b Block
	for dy := 0; dy < 4; dy++ {
		off := img.PixOffset(img.Rect.Min.X+x, img.Rect.Min.Y+y+dy)
		for dx := 0; dx < 4; dx++ {
			p := img.Pix[off+dx*4 : off+dx*4+4 : off+dx*4+4]
			b[dy*4+dx] = color.NRGBA{R: p[0], G: p[1], B: p[2], A: p[3]}
		}
	}
	return b
}
