package dds

import (
	"image"
	"image/color"
)

// testPixels is the 4x4 reference pattern used by the fixture generator.
var testPixels = []color.NRGBA{
	{R: 255, A: 255}, {G: 255, A: 255}, {B: 255, A: 255}, {R: 255, G: 255, A: 255},
	{R: 255, B: 255, A: 255}, {G: 255, B: 255, A: 255}, {R: 128, G: 128, B: 128, A: 255}, {R: 255, G: 255, B: 255, A: 255},
	{R: 64, A: 255}, {G: 64, A: 255}, {B: 64, A: 255}, {R: 64, G: 64, A: 255},
	{A: 255}, {R: 32, G: 32, B: 32, A: 255}, {R: 192, G: 192, B: 192, A: 255}, {R: 128, B: 128, A: 255},
}

func testBlock() Block {
	return NewBlock(testPixels)
}

func solidBlock(c color.NRGBA) Block {
	var b Block
	for i := range b {
		b[i] = c
	}
	return b
}

// testImage tiles the reference pattern over a width x height image.
func testImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, testPixels[(y%4)*4+x%4])
		}
	}
	return img
}
