package aztec

import (
	"testing"

	"github.com/azteccode/aztecgo/bitutil"
)

func TestCodewordReaderCompactBitCount(t *testing.T) {
	// A compact symbol whose mode message reports 3 data layers spans a
	// 23x23 matrix (11 + 4*3) and always emits exactly 408 bits: see the
	// spiral-length invariant for compact symbols.
	m := bitutil.NewBitMatrix(23)
	r := NewCodewordReader(m, 3, 22, Compact, false)
	bits, err := r.Bitmap()
	if err != nil {
		t.Fatalf("Bitmap: %v", err)
	}
	if len(bits) != 408 {
		t.Errorf("bit count = %d, want 408", len(bits))
	}
}

func TestCodewordReaderCompactNeverSkipsReference(t *testing.T) {
	// isReference can be true near the center regardless of symbol type;
	// what matters is that Compact traversal never treats it as a skip.
	m := bitutil.NewBitMatrix(23)
	r := NewCodewordReader(m, 3, 22, Compact, false)
	bits, err := r.Bitmap()
	if err != nil {
		t.Fatalf("Bitmap: %v", err)
	}
	if len(bits) != 408 {
		t.Errorf("compact traversal must never skip cells for reference grid: got %d bits, want 408", len(bits))
	}
}

func TestCodewordReaderFullSkipsReferenceGrid(t *testing.T) {
	// A generously sized full-symbol matrix so the reference grid (every
	// 16 modules from center) is crossed repeatedly during traversal.
	m := bitutil.NewBitMatrix(41)
	full := NewCodewordReader(m, 2, 10, Full, false)
	fullBits, err := full.Bitmap()
	if err != nil {
		t.Fatalf("Full Bitmap: %v", err)
	}

	compact := NewCodewordReader(m, 2, 10, Compact, false)
	compactBits, err := compact.Bitmap()
	if err != nil {
		t.Fatalf("Compact Bitmap: %v", err)
	}

	if len(fullBits) >= len(compactBits) {
		t.Errorf("full traversal (%d bits) should read fewer bits than an unskipped traversal over the same geometry (%d bits)", len(fullBits), len(compactBits))
	}
}

func TestCodewordReaderOversizedLayerCountStopsAtCenter(t *testing.T) {
	// A layer count demanding more rings than the matrix holds never walks
	// off the edge: the per-side geometry shrinks past the center and the
	// extra sides read empty ranges. A 15-wide matrix tiles into rings of
	// 104+72+40+8 bits and nothing more.
	m := bitutil.NewBitMatrix(15)
	r := NewCodewordReader(m, 8, 5, Compact, false)
	bits, err := r.Bitmap()
	if err != nil {
		t.Fatalf("Bitmap: %v", err)
	}
	if len(bits) != 224 {
		t.Errorf("bit count = %d, want 224", len(bits))
	}
}

func TestCodewordSizeClasses(t *testing.T) {
	cases := []struct {
		layers int
		want   int
	}{
		{1, 6}, {2, 6}, {3, 8}, {8, 8}, {9, 10}, {22, 10}, {23, 12}, {32, 12},
	}
	for _, c := range cases {
		if got := codewordSize(c.layers); got != c.want {
			t.Errorf("codewordSize(%d) = %d, want %d", c.layers, got, c.want)
		}
	}
}

func TestIsReferencePredicate(t *testing.T) {
	m := bitutil.NewBitMatrix(33) // center = 16
	r := NewCodewordReader(m, 2, 10, Full, false)
	if !r.isReference(16, 5) {
		t.Error("row == center should be a reference row")
	}
	if !r.isReference(5, 16) {
		t.Error("col == center should be a reference column")
	}
	if r.isReference(5, 5) {
		t.Error("(5,5) should not be on the reference grid for center 16")
	}
	if !r.isReference(0, 5) {
		t.Error("row 0 is 16 away from center 16 and should be a reference row")
	}
}
