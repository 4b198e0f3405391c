package aztec

import (
	"testing"

	"github.com/azteccode/aztecgo/bitutil"
)

// smallCanonicalMatrix builds a matrix whose corner markers already read the
// canonical tuple around a 3x3 bullseye at the center, so Orient should
// leave it unchanged.
func smallCanonicalMatrix() (*bitutil.BitMatrix, Bounds) {
	m := bitutil.NewBitMatrix(9)
	bounds := Bounds{Top: 3, Left: 3, Bottom: 5, Right: 5}

	// top-left corner marker: {1,1,1}
	m.Set(bounds.Left-1, bounds.Top)
	m.Set(bounds.Left-1, bounds.Top-1)
	m.Set(bounds.Left, bounds.Top-1)

	// top-right corner marker: {0,1,1}
	m.Set(bounds.Right+1, bounds.Top-1)
	m.Set(bounds.Right+1, bounds.Top)

	// bottom-right corner marker: {1,0,0}
	m.Set(bounds.Right+1, bounds.Bottom)

	// bottom-left corner marker: {0,0,0} -- nothing to set

	return m, bounds
}

func TestOrientAlreadyCanonicalIsIdempotent(t *testing.T) {
	m, bounds := smallCanonicalMatrix()
	before := m.Clone()

	out := Orient(m, bounds)
	if !out.Equals(before) {
		t.Error("Orient should leave an already-canonical matrix unchanged")
	}
}

func TestOrientRotatesToCanonical(t *testing.T) {
	canonical, bounds := smallCanonicalMatrix()
	rotated := canonical.Clone()
	rotated.RotateClockwise90()

	out := Orient(rotated, bounds)
	patterns := readCornerPatterns(out, bounds)
	if needsRotation(patterns) {
		t.Error("Orient did not reach the canonical corner pattern")
	}
}

func TestNeedsRotationDetectsMismatch(t *testing.T) {
	_, bounds := smallCanonicalMatrix()
	blank := bitutil.NewBitMatrix(9)
	if !needsRotation(readCornerPatterns(blank, bounds)) {
		t.Error("a blank matrix should not read as canonically oriented")
	}
}
