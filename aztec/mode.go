package aztec

import (
	"fmt"

	"github.com/azteccode/aztecgo/bitutil"
	"github.com/azteccode/aztecgo/reedsolomon"
)

// ModeReader reads and optionally Reed-Solomon-corrects the mode message
// ring surrounding the bull's-eye, and extracts the layer count and data
// codeword count it encodes.
type ModeReader struct {
	matrix      *bitutil.BitMatrix
	bounds      Bounds
	aztecType   AztecType
	autoCorrect bool

	rawBits       []int
	correctedBits []int
	fields        ModeFields

	rawDone       bool
	correctedDone bool
	fieldsDone    bool
}

// NewModeReader validates matrix/bounds and returns a reader ready to
// extract the mode message lazily.
func NewModeReader(matrix *bitutil.BitMatrix, bounds Bounds, aztecType AztecType, autoCorrect bool) (*ModeReader, error) {
	if matrix.Width() != matrix.Height() {
		return nil, fmt.Errorf("%w: matrix must be square", ErrInvalidParameter)
	}
	if matrix.Width()%2 == 0 {
		return nil, fmt.Errorf("%w: Aztec symbol side length must be odd", ErrInvalidParameter)
	}
	if bounds.Top < 0 || bounds.Left < 0 || bounds.Bottom >= matrix.Height() || bounds.Right >= matrix.Width() {
		return nil, fmt.Errorf("%w: bounds outside matrix dimensions", ErrInvalidParameter)
	}
	return &ModeReader{matrix: matrix, bounds: bounds, aztecType: aztecType, autoCorrect: autoCorrect}, nil
}

// ModeBitmap returns the raw 28- or 40-bit mode message, read clockwise
// starting on the top row, before Reed-Solomon correction.
func (r *ModeReader) ModeBitmap() ([]int, error) {
	if !r.rawDone {
		bits, err := r.readModeBits()
		if err != nil {
			return nil, err
		}
		r.rawBits = bits
		r.rawDone = true
	}
	return r.rawBits, nil
}

// ModeCorrectedBits returns the mode message after Reed-Solomon correction
// over GF(2^4).
func (r *ModeReader) ModeCorrectedBits() ([]int, error) {
	if !r.correctedDone {
		bits, err := r.correctModeBits()
		if err != nil {
			return nil, err
		}
		r.correctedBits = bits
		r.correctedDone = true
	}
	return r.correctedBits, nil
}

// ModeFields returns the parsed layers/data_words/ecc_bits fields.
func (r *ModeReader) ModeFields() (ModeFields, error) {
	if !r.fieldsDone {
		fields, err := r.extractFields()
		if err != nil {
			return ModeFields{}, err
		}
		r.fields = fields
		r.fieldsDone = true
	}
	return r.fields, nil
}

// readModeBits walks the single ring immediately outside the bull's-eye,
// clockwise: top row left-to-right, right column top-to-bottom, bottom row
// right-to-left, left column bottom-to-top. FULL symbols skip one
// reference module at the midpoint of each side.
func (r *ModeReader) readModeBits() ([]int, error) {
	bits := make([]int, 0, 40)
	tlY, tlX, brY, brX := r.bounds.Top, r.bounds.Left, r.bounds.Bottom, r.bounds.Right
	trY, trX, blY, blX := tlY, brX, brY, tlX

	topStart := tlX + 1
	topEnd := trX - 1
	topRow := tlY - 1
	for x := topStart; x <= topEnd; x++ {
		if r.aztecType == Full && x == topStart+5 {
			continue
		}
		if !r.inBounds(x, topRow) {
			return nil, fmt.Errorf("%w: mode message indices out of range", ErrModeField)
		}
		bits = append(bits, boolToBit(r.matrix.Get(x, topRow)))
	}

	rightStart := trY + 1
	rightEnd := brY - 1
	rightCol := trX + 1
	for y := rightStart; y <= rightEnd; y++ {
		if r.aztecType == Full && y == rightStart+5 {
			continue
		}
		if !r.inBounds(rightCol, y) {
			return nil, fmt.Errorf("%w: mode message indices out of range", ErrModeField)
		}
		bits = append(bits, boolToBit(r.matrix.Get(rightCol, y)))
	}

	bottomStart := brX - 1
	bottomEnd := blX + 1
	bottomRow := brY + 1
	for x := bottomStart; x >= bottomEnd; x-- {
		if r.aztecType == Full && x == bottomStart-5 {
			continue
		}
		if !r.inBounds(x, bottomRow) {
			return nil, fmt.Errorf("%w: mode message indices out of range", ErrModeField)
		}
		bits = append(bits, boolToBit(r.matrix.Get(x, bottomRow)))
	}

	leftStart := blY - 1
	leftEnd := tlY + 1
	leftCol := blX - 1
	for y := leftStart; y >= leftEnd; y-- {
		if r.aztecType == Full && y == leftStart-5 {
			continue
		}
		if !r.inBounds(leftCol, y) {
			return nil, fmt.Errorf("%w: mode message indices out of range", ErrModeField)
		}
		bits = append(bits, boolToBit(r.matrix.Get(leftCol, y)))
	}

	return bits, nil
}

func (r *ModeReader) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < r.matrix.Width() && y < r.matrix.Height()
}

func (r *ModeReader) correctModeBits() ([]int, error) {
	raw, err := r.ModeBitmap()
	if err != nil {
		return nil, err
	}
	if len(raw)%4 != 0 {
		return nil, fmt.Errorf("%w: mode bitmap length not multiple of 4", ErrModeField)
	}

	nsym := 6
	if r.aztecType == Compact {
		nsym = 5
	}

	symbols := make([]int, len(raw)/4)
	for i := range symbols {
		symbols[i] = bitsToInt(raw[i*4 : i*4+4])
	}

	dec := reedsolomon.NewDecoder(reedsolomon.AztecParam)
	if _, err := dec.Decode(symbols, nsym); err != nil {
		return nil, fmt.Errorf("%w: mode message: %v", ErrReedSolomon, err)
	}

	corrected := make([]int, 0, len(symbols)*4)
	for _, sym := range symbols {
		for shift := 3; shift >= 0; shift-- {
			corrected = append(corrected, (sym>>uint(shift))&1)
		}
	}
	return corrected, nil
}

func (r *ModeReader) extractFields() (ModeFields, error) {
	var bits []int
	var err error
	if r.autoCorrect {
		bits, err = r.ModeCorrectedBits()
	} else {
		bits, err = r.ModeBitmap()
	}
	if err != nil {
		return ModeFields{}, err
	}

	var layersBits, dataWordsBits, eccBits []int
	if r.aztecType == Compact {
		if len(bits) < 28 {
			return ModeFields{}, fmt.Errorf("%w: compact mode message must be 28 bits", ErrModeField)
		}
		layersBits, dataWordsBits, eccBits = bits[:2], bits[2:8], bits[8:]
	} else {
		if len(bits) < 40 {
			return ModeFields{}, fmt.Errorf("%w: full mode message must be 40 bits", ErrModeField)
		}
		layersBits, dataWordsBits, eccBits = bits[0:5], bits[5:16], bits[16:]
	}

	layers := bitsToInt(layersBits) + 1
	dataWords := bitsToInt(dataWordsBits) + 1

	if layers < 1 || layers > 32 {
		return ModeFields{}, fmt.Errorf("%w: layers out of range: %d", ErrModeField, layers)
	}

	return ModeFields{Layers: layers, DataWords: dataWords, ECCBits: eccBits}, nil
}

func bitsToInt(bits []int) int {
	v := 0
	for _, b := range bits {
		v = v<<1 | b
	}
	return v
}
