package aztec

import (
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/azteccode/aztecgo/bitutil"
	"github.com/azteccode/aztecgo/reedsolomon"
)

// readingDirection names which edge of the current spiral ring is being
// scanned. The spiral starts at the upper-left corner reading BOTTOM.
type readingDirection int

const (
	readBottom readingDirection = iota
	readRight
	readTop
	readLeft
)

// primitivePolynomial is the Reed-Solomon primitive polynomial for each
// Aztec data codeword size.
var primitivePolynomial = map[int]int{
	6:  0x43,
	8:  0x12d,
	10: 0x409,
	12: 0x1069,
}

// aztecDataField returns the GF(2^k) used for RS-correcting data codewords
// of the given size.
func aztecDataField(cwSize int) *reedsolomon.GenericGF {
	switch cwSize {
	case 6:
		return reedsolomon.AztecData6
	case 10:
		return reedsolomon.AztecData10
	case 12:
		return reedsolomon.AztecData12
	default:
		return reedsolomon.AztecData8
	}
}

// codewordSize returns the data codeword bit width for a given layer count,
// per the fixed size classes in the Aztec standard.
func codewordSize(layers int) int {
	switch {
	case layers <= 2:
		return 6
	case layers <= 8:
		return 8
	case layers <= 22:
		return 10
	default:
		return 12
	}
}

// CodewordReader traverses the data spiral outward from the bull's-eye and
// groups the resulting bits into Reed-Solomon-corrected codewords.
type CodewordReader struct {
	matrix      *bitutil.BitMatrix
	layers      int
	dataWords   int
	aztecType   AztecType
	autoCorrect bool

	bitmap        []int
	correctedBits []int
	bitmapDone    bool
	correctedDone bool
}

// NewCodewordReader returns a reader for the data spiral of a matrix whose
// mode message has already been parsed.
func NewCodewordReader(matrix *bitutil.BitMatrix, layers, dataWords int, aztecType AztecType, autoCorrect bool) *CodewordReader {
	return &CodewordReader{matrix: matrix, layers: layers, dataWords: dataWords, aztecType: aztecType, autoCorrect: autoCorrect}
}

// Bitmap returns the raw bit stream collected by the spiral traversal,
// before Reed-Solomon correction.
func (c *CodewordReader) Bitmap() ([]int, error) {
	if !c.bitmapDone {
		bits, err := c.readBits()
		if err != nil {
			return nil, err
		}
		c.bitmap = bits
		c.bitmapDone = true
	}
	return c.bitmap, nil
}

// CorrectedBits returns the bit stream after grouping into codewords and
// applying Reed-Solomon correction.
func (c *CodewordReader) CorrectedBits() ([]int, error) {
	if !c.correctedDone {
		bits, err := c.correct()
		if err != nil {
			return nil, err
		}
		c.correctedBits = bits
		c.correctedDone = true
	}
	return c.correctedBits, nil
}

func (c *CodewordReader) isReference(r, cIdx int) bool {
	centre := c.matrix.Width() / 2
	return floorMod(r-centre, 16) == 0 || floorMod(cIdx-centre, 16) == 0
}

// supportedCodewordSizes lists the codeword sizes this decoder can
// Reed-Solomon-correct, sorted for stable error messages.
func supportedCodewordSizes() []int {
	sizes := maps.Keys(primitivePolynomial)
	slices.Sort(sizes)
	return sizes
}

func floorMod(x, m int) int {
	v := x % m
	if v < 0 {
		v += m
	}
	return v
}

func (c *CodewordReader) bitAt(row, col int) (int, error) {
	if row < 0 || col < 0 || row >= c.matrix.Height() || col >= c.matrix.Width() {
		return 0, fmt.Errorf("%w: index (%d,%d) outside matrix", ErrBitRead, row, col)
	}
	return boolToBit(c.matrix.Get(col, row)), nil
}

// readBits walks 4*layers ring sides, each (squareSize-2) dominoes wide,
// emitting two bits per domino while skipping reference-grid cells in FULL
// symbols.
func (c *CodewordReader) readBits() ([]int, error) {
	bits := make([]int, 0, 4*c.layers*2*c.matrix.Width())
	squareSize := c.matrix.Width()
	direction := readBottom
	startRow, startCol := 0, 0
	endRow, endCol := squareSize-1-2, 1
	applyToBorns := 0

	for side := 0; side < c.layers*4; side++ {
		for i := applyToBorns; i < squareSize-2+applyToBorns; i++ {
			var skip bool
			var domino []int
			var err error

			switch direction {
			case readBottom:
				skip = c.isReference(i, startCol) && c.aztecType != Compact
				if !skip {
					domino, err = c.readRowSegment(i, startCol, endCol, 1)
				}
			case readRight:
				skip = c.isReference(startRow, i) && c.aztecType != Compact
				if !skip {
					domino, err = c.readColSegment(i, startRow, endRow, -1)
				}
			case readTop:
				row := startRow - i + applyToBorns
				skip = c.isReference(row, startCol) && c.aztecType != Compact
				if !skip {
					domino, err = c.readRowSegment(row, startCol, endCol, -1)
				}
			case readLeft:
				col := startCol - i + applyToBorns
				skip = c.isReference(startRow, col) && c.aztecType != Compact
				if !skip {
					domino, err = c.readColSegment(col, startRow, endRow, 1)
				}
			}
			if err != nil {
				return nil, err
			}
			if !skip {
				bits = append(bits, domino...)
			}
		}

		switch direction {
		case readBottom:
			startRow = startRow + squareSize - 1
			endRow, endCol = startRow-1, startCol+squareSize-1-2
			direction = readRight
		case readRight:
			startCol = startCol + squareSize - 1
			endRow, endCol = startRow-squareSize+1+2, startCol-1
			direction = readTop
		case readTop:
			startRow = startRow - squareSize + 1
			endRow, endCol = startRow+1, startCol-squareSize+1+2
			direction = readLeft
		case readLeft:
			squareSize -= 4
			applyToBorns += 2
			startRow, startCol = endRow+1, endCol
			if c.isReference(startRow, startCol) {
				startRow, startCol = startRow+1, startCol+1
				squareSize -= 2
				applyToBorns++
			}
			endRow, endCol = startRow+squareSize-1-2, startCol+1
			direction = readBottom
		}
	}

	return bits, nil
}

// readRowSegment reads columns [from(col)..to(col)] along a fixed row,
// stepping by dir (+1 ascending, -1 descending), matching a 2-cell domino.
func (c *CodewordReader) readRowSegment(row, fromCol, toCol, dir int) ([]int, error) {
	var out []int
	for col := fromCol; (dir > 0 && col <= toCol) || (dir < 0 && col >= toCol); col += dir {
		b, err := c.bitAt(row, col)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

// readColSegment reads rows [from(row)..to(row)] along a fixed column,
// stepping by dir (+1 ascending, -1 descending), matching a 2-cell domino.
func (c *CodewordReader) readColSegment(col, fromRow, toRow, dir int) ([]int, error) {
	var out []int
	for row := fromRow; (dir > 0 && row <= toRow) || (dir < 0 && row >= toRow); row += dir {
		b, err := c.bitAt(row, col)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

func (c *CodewordReader) correct() ([]int, error) {
	raw, err := c.Bitmap()
	if err != nil {
		return nil, err
	}

	cwSize := codewordSize(c.layers)
	if _, ok := primitivePolynomial[cwSize]; !ok {
		return nil, fmt.Errorf("%w: unsupported codeword size %d (supported: %v)", ErrUnsupportedSymbol, cwSize, supportedCodewordSizes())
	}

	totalWords := len(raw) / cwSize
	symbols := make([]int, totalWords)
	for i := range symbols {
		symbols[i] = bitsToInt(raw[i*cwSize : (i+1)*cwSize])
	}

	eccWords := totalWords - c.dataWords
	if eccWords < 0 {
		return nil, fmt.Errorf("%w: data_words exceeds codewords read", ErrModeField)
	}

	dec := reedsolomon.NewDecoder(aztecDataField(cwSize))
	if _, err := dec.Decode(symbols, eccWords); err != nil {
		return nil, fmt.Errorf("%w: data codewords: %v", ErrReedSolomon, err)
	}

	corrected := make([]int, 0, totalWords*cwSize)
	for _, sym := range symbols {
		for shift := cwSize - 1; shift >= 0; shift-- {
			corrected = append(corrected, (sym>>uint(shift))&1)
		}
	}
	return corrected, nil
}
