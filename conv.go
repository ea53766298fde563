// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/dds

package dds

import "fmt"

const (
	maxInt32  = int(^uint32(0) >> 1)
	maxUint32 = uint64(^uint32(0))
)

// i32FromInt converts a block size to the int32 stored in the EDDS block table.
func i32FromInt(n int) (int32, error) {
	if n < 0 || n > maxInt32 {
		return 0, fmt.Errorf("%w: %d does not fit int32", ErrSizeOverflow, n)
	}

	return int32(n), nil
}

// u32FromInt converts a header field to uint32.
func u32FromInt(n int) (uint32, error) {
	if n < 0 || uint64(n) > maxUint32 {
		return 0, fmt.Errorf("%w: %d does not fit uint32", ErrSizeOverflow, n)
	}

	// #nosec G115 -- bounds checked above.
	return uint32(n), nil
}

// headerDimensions validates an image size for the DDS header. Both sides
// must be at least one pixel.
func headerDimensions(width, height int) (uint32, uint32, error) {
	if width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}

	w, err := u32FromInt(width)
	if err != nil {
		return 0, 0, err
	}
	h, err := u32FromInt(height)
	if err != nil {
		return 0, 0, err
	}

	return w, h, nil
}
