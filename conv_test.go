package dds

import (
	"errors"
	"testing"
)

func TestCheckedConversions(t *testing.T) {
	t.Parallel()

	if _, err := i32FromInt(-1); !errors.Is(err, ErrSizeOverflow) {
		t.Fatalf("i32FromInt(-1) error = %v", err)
	}
	if v, err := i32FromInt(maxInt32); err != nil || int(v) != maxInt32 {
		t.Fatalf("i32FromInt(max) = %d, %v", v, err)
	}
	if _, err := u32FromInt(-5); !errors.Is(err, ErrSizeOverflow) {
		t.Fatalf("u32FromInt(-5) error = %v", err)
	}

	w, h, err := headerDimensions(4, 8)
	if err != nil || w != 4 || h != 8 {
		t.Fatalf("headerDimensions(4, 8) = %d, %d, %v", w, h, err)
	}
	if _, _, err := headerDimensions(0, 8); !errors.Is(err, ErrInvalidDimensions) {
		t.Fatalf("headerDimensions(0, 8) error = %v", err)
	}
}
