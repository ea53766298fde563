package dds

import "github.com/x448/float16"

// HalfBits returns the IEEE-754 binary16 encoding of f, rounding to nearest
// even. Magnitudes above 65504 become infinity; NaN stays NaN.
func HalfBits(f float32) uint16 {
	return float16.Fromfloat32(f).Bits()
}
