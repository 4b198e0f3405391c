package aztec

import (
	"fmt"

	"github.com/azteccode/aztecgo/bitutil"
)

// BullseyeDetector locates the central square of alternating dark/light
// rings that identifies an Aztec symbol, and derives the data layer count
// and symbol type from how many rings it found.
type BullseyeDetector struct {
	matrix *bitutil.BitMatrix

	bounds Bounds
	layers int
	done   bool
}

// NewBullseyeDetector validates matrix shape and returns a detector ready to
// compute bounds and layers lazily.
func NewBullseyeDetector(matrix *bitutil.BitMatrix) (*BullseyeDetector, error) {
	if matrix.Width() != matrix.Height() {
		return nil, fmt.Errorf("%w: matrix must be square", ErrInvalidParameter)
	}
	if matrix.Width()%2 == 0 {
		return nil, fmt.Errorf("%w: Aztec symbol side length must be odd", ErrInvalidParameter)
	}
	if matrix.Width() < 15 || matrix.Width() > 151 {
		return nil, fmt.Errorf("%w: matrix side %d outside [15,151]", ErrUnsupportedSymbol, matrix.Width())
	}
	return &BullseyeDetector{matrix: matrix}, nil
}

// Bounds returns the outer edge of the bull's-eye, computing it on first
// access.
func (d *BullseyeDetector) Bounds() (Bounds, error) {
	if err := d.ensure(); err != nil {
		return Bounds{}, err
	}
	return d.bounds, nil
}

// Layers returns the number of data layers, computed alongside Bounds.
func (d *BullseyeDetector) Layers() (int, error) {
	if err := d.ensure(); err != nil {
		return 0, err
	}
	return d.layers, nil
}

// Type returns Compact when exactly two data layers were found, otherwise
// Full.
func (d *BullseyeDetector) Type() (AztecType, error) {
	layers, err := d.Layers()
	if err != nil {
		return 0, err
	}
	if layers == 2 {
		return Compact, nil
	}
	return Full, nil
}

func (d *BullseyeDetector) ensure() error {
	if d.done {
		return nil
	}
	bounds, layers, err := detectBullseye(d.matrix)
	if err != nil {
		return err
	}
	d.bounds = bounds
	d.layers = layers
	d.done = true
	return nil
}

// detectBullseye expands a square ring outward from the matrix center,
// requiring each ring to be a uniform color that alternates with its
// neighbor, until the alternation breaks.
func detectBullseye(m *bitutil.BitMatrix) (Bounds, int, error) {
	n := m.Width()
	cy, cx := n/2, n/2

	layer := 1
	for {
		if cy-layer < 0 || cy+layer >= m.Height() || cx-layer < 0 || cx+layer >= m.Width() {
			break
		}
		color := (layer + 1) % 2
		broke := false
		for y := cy - layer; y <= cy+layer && !broke; y++ {
			if boolToBit(m.Get(cx-layer, y)) != color || boolToBit(m.Get(cx+layer, y)) != color {
				broke = true
			}
		}
		for x := cx - layer; x <= cx+layer && !broke; x++ {
			if boolToBit(m.Get(x, cy-layer)) != color || boolToBit(m.Get(x, cy+layer)) != color {
				broke = true
			}
		}
		if broke {
			break
		}
		layer++
	}
	layer--

	if layer < 1 {
		return Bounds{}, 0, ErrBullseyeDetection
	}

	bounds := Bounds{Top: cy - layer, Left: cx - layer, Bottom: cy + layer, Right: cx + layer}
	l := layer - 2
	if l < 1 || l > 32 {
		return Bounds{}, 0, fmt.Errorf("%w: derived layer count %d outside [1,32]", ErrUnsupportedSymbol, l)
	}
	return bounds, l, nil
}

func boolToBit(b bool) int {
	if b {
		return 1
	}
	return 0
}
