package buf

import (
	"math"
	"testing"
)

func TestAddOverflowSafe(t *testing.T) {
	if sum, ok := AddOverflowSafe(10, 5); !ok || sum != 15 {
		t.Fatalf("AddOverflowSafe(10,5)=%d,%v want 15,true", sum, ok)
	}
	if _, ok := AddOverflowSafe(math.MaxInt, 1); ok {
		t.Fatalf("expected overflow when adding to MaxInt")
	}
	if _, ok := AddOverflowSafe(math.MinInt, -1); ok {
		t.Fatalf("expected underflow when subtracting from MinInt")
	}
}

func TestSliceAndHas(t *testing.T) {
	data := []byte{0, 1, 2, 3, 4}
	if got, ok := Slice(data, 1, 3); !ok || len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Fatalf("Slice returned unexpected result: %v, %v", got, ok)
	}
	if _, ok := Slice(data, 4, 2); ok {
		t.Fatalf("Slice should fail when extending beyond len")
	}
	if Has(data, 2, 4) {
		t.Fatalf("Has should be false for out-of-bounds range")
	}
	if !Has(data, 2, 1) {
		t.Fatalf("Has should be true for valid range")
	}
	if _, ok := Slice(data, -1, 1); ok {
		t.Fatalf("Slice should reject negative offset")
	}
	if _, ok := Slice(data, 1, -1); ok {
		t.Fatalf("Slice should reject negative length")
	}
}

func TestSliceCapsCapacity(t *testing.T) {
	data := []byte{0, 1, 2, 3, 4}
	got, ok := Slice(data, 0, 2)
	if !ok {
		t.Fatalf("Slice failed")
	}
	if cap(got) != 2 {
		t.Fatalf("cap = %d, want 2 so appends cannot clobber the parent buffer", cap(got))
	}
}

func TestWithin(t *testing.T) {
	if !Within(10, 10, 20) {
		t.Fatalf("span ending at the limit should fit")
	}
	if Within(10, 11, 20) {
		t.Fatalf("span past the limit should not fit")
	}
	if Within(-1, 1, 20) || Within(1, -1, 20) {
		t.Fatalf("negative inputs should not fit")
	}
	if Within(math.MaxInt, 1, math.MaxInt) {
		t.Fatalf("overflow should not fit")
	}
}
