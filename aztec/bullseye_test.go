package aztec

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/azteccode/aztecgo/bitutil"
)

// paintBullseye draws a 4-ring alternating bullseye (light/dark/light/dark
// outward, matching detectBullseye's color formula) centered in m, leaving
// everything outside the ring untouched (so callers can overlay their own
// orientation/mode/data content beyond radius 4).
func paintBullseye(m *bitutil.BitMatrix) {
	n := m.Width()
	cy, cx := n/2, n/2
	for layer := 1; layer <= 4; layer++ {
		color := (layer + 1) % 2
		for y := cy - layer; y <= cy+layer; y++ {
			setBit(m, cx-layer, y, color == 1)
			setBit(m, cx+layer, y, color == 1)
		}
		for x := cx - layer; x <= cx+layer; x++ {
			setBit(m, x, cy-layer, color == 1)
			setBit(m, x, cy+layer, color == 1)
		}
	}
}

func setBit(m *bitutil.BitMatrix, x, y int, v bool) {
	if v {
		m.Set(x, y)
	} else {
		m.Unset(x, y)
	}
}

func TestBullseyeDetectorCompact(t *testing.T) {
	m := bitutil.NewBitMatrix(23)
	paintBullseye(m)
	// Break the alternation just outside the bullseye so detection backs
	// off at layer 4; an all-light layer 5 would otherwise match the light
	// ring color and extend the bullseye to layer 5.
	m.Set(11-5, 11)

	bd, err := NewBullseyeDetector(m)
	if err != nil {
		t.Fatalf("NewBullseyeDetector: %v", err)
	}
	bounds, err := bd.Bounds()
	if err != nil {
		t.Fatalf("Bounds: %v", err)
	}
	want := Bounds{Top: 7, Left: 7, Bottom: 15, Right: 15}
	if bounds != want {
		t.Errorf("bounds = %+v, want %+v", bounds, want)
	}
	typ, err := bd.Type()
	if err != nil {
		t.Fatalf("Type: %v", err)
	}
	if typ != Compact {
		t.Errorf("type = %v, want COMPACT", typ)
	}
	layers, _ := bd.Layers()
	if layers != 2 {
		t.Errorf("layers = %d, want 2", layers)
	}
}

func TestBullseyeDetectorNoRing(t *testing.T) {
	m := bitutil.NewBitMatrix(15)
	// Leave the matrix all-zero: ring 1 must be color 0 (unset), which it
	// already is, so the very first ring never breaks... set one cell in
	// ring 1 to force an immediate mismatch.
	m.Set(7+1, 7)

	_, err := NewBullseyeDetector(m)
	if err != nil {
		t.Fatalf("NewBullseyeDetector: %v", err)
	}
	_, _, err = detectBullseye(m)
	if !errors.Is(err, ErrBullseyeDetection) {
		t.Errorf("err = %v, want ErrBullseyeDetection", err)
	}
}

func TestBullseyeDetectorRandomNoise(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 50; trial++ {
		n := 15 + 2*rng.Intn(20)
		m := bitutil.NewBitMatrix(n)
		for y := 0; y < n; y++ {
			for x := 0; x < n; x++ {
				if rng.Intn(2) == 1 {
					m.Set(x, y)
				}
			}
		}
		// Guarantee the innermost ring is mixed, whatever the noise drew.
		c := n / 2
		m.Set(c-1, c)
		m.Unset(c+1, c)

		_, _, err := detectBullseye(m)
		if !errors.Is(err, ErrBullseyeDetection) {
			t.Fatalf("trial %d (n=%d): err = %v, want ErrBullseyeDetection", trial, n, err)
		}
	}
}

func TestBullseyeDetectorRejectsNonSquare(t *testing.T) {
	m := bitutil.NewBitMatrixWithSize(15, 17)
	_, err := NewBullseyeDetector(m)
	if !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("err = %v, want ErrInvalidParameter", err)
	}
}

func TestBullseyeDetectorRejectsEvenSize(t *testing.T) {
	m := bitutil.NewBitMatrix(16)
	_, err := NewBullseyeDetector(m)
	if !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("err = %v, want ErrInvalidParameter", err)
	}
}

func TestBullseyeDetectorRejectsOutOfRange(t *testing.T) {
	m := bitutil.NewBitMatrix(13) // below the 15-module floor
	_, err := NewBullseyeDetector(m)
	if !errors.Is(err, ErrUnsupportedSymbol) {
		t.Errorf("err = %v, want ErrUnsupportedSymbol", err)
	}
}

func TestBullseyeDetectorRunsOffEdgeWithoutPanic(t *testing.T) {
	// A matrix that alternates all the way to its border has no ring break
	// to stop on before the bounds check kicks in; detection must back off
	// at the matrix edge rather than index out of bounds.
	m := bitutil.NewBitMatrix(9)
	paintBullseye(m)
	bounds, layers, err := detectBullseye(m)
	if err != nil {
		t.Fatalf("detectBullseye: %v", err)
	}
	if layers != 2 {
		t.Errorf("layers = %d, want 2", layers)
	}
	if bounds != (Bounds{Top: 0, Left: 0, Bottom: 8, Right: 8}) {
		t.Errorf("bounds = %+v, want full-matrix bounds", bounds)
	}
}
