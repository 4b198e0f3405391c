package aztec

import (
	"fmt"

	"github.com/azteccode/aztecgo/bitutil"
)

// Decoder decodes a single Aztec Code symbol from a module matrix. All
// intermediate results are memoized on first access; a Decoder has no
// mutable state shared with anything else, so distinct Decoder instances
// may run concurrently across goroutines without coordination even though
// no single instance is safe for concurrent use.
type Decoder struct {
	options Options

	rawMatrix *bitutil.BitMatrix

	matrix     *bitutil.BitMatrix
	matrixDone bool

	bullseye     *BullseyeDetector
	bullseyeErr  error
	bullseyeDone bool

	modeReader *ModeReader
	modeErr    error
	modeDone   bool

	codewordReader *CodewordReader
	cwErr          error
	cwDone         bool

	payload     []int
	payloadErr  error
	payloadDone bool

	message     string
	messageErr  error
	messageDone bool
}

// NewDecoder returns a Decoder for matrix using opts. The matrix is treated
// as read-only; Orient (if enabled) rotates a private view, never the
// caller's original.
func NewDecoder(matrix *bitutil.BitMatrix, opts Options) *Decoder {
	return &Decoder{options: opts, rawMatrix: matrix}
}

// Decode is the package entry point: it runs the full pipeline (orientation,
// bull's-eye, mode message, data spiral, stuff-bit removal, text decoding)
// and returns the decoded payload string.
func Decode(matrix *bitutil.BitMatrix, opts Options) (string, error) {
	return NewDecoder(matrix, opts).Message()
}

// Matrix returns the module matrix after orientation (or the input matrix
// unchanged, if AutoOrient is disabled).
func (d *Decoder) Matrix() (*bitutil.BitMatrix, error) {
	if !d.matrixDone {
		m := d.rawMatrix
		if d.options.AutoOrient {
			bd, err := NewBullseyeDetector(m)
			if err != nil {
				return nil, err
			}
			bounds, err := bd.Bounds()
			if err != nil {
				return nil, err
			}
			m = Orient(m.Clone(), bounds)
		}
		d.matrix = m
		d.matrixDone = true
	}
	return d.matrix, nil
}

func (d *Decoder) bullseyeDetector() (*BullseyeDetector, error) {
	if !d.bullseyeDone {
		m, err := d.Matrix()
		if err == nil {
			d.bullseye, err = NewBullseyeDetector(m)
		}
		d.bullseyeErr = err
		d.bullseyeDone = true
	}
	return d.bullseye, d.bullseyeErr
}

// BullseyeBounds returns the outer bounds of the central bull's-eye pattern,
// in the canonically-oriented matrix.
func (d *Decoder) BullseyeBounds() (Bounds, error) {
	bd, err := d.bullseyeDetector()
	if err != nil {
		return Bounds{}, err
	}
	return bd.Bounds()
}

// AztecType reports whether the symbol is COMPACT or FULL, derived from the
// bull's-eye ring count.
func (d *Decoder) AztecType() (AztecType, error) {
	bd, err := d.bullseyeDetector()
	if err != nil {
		return 0, err
	}
	return bd.Type()
}

func (d *Decoder) modeReaderFor() (*ModeReader, error) {
	if !d.modeDone {
		m, err := d.Matrix()
		if err != nil {
			d.modeErr = err
			d.modeDone = true
			return nil, err
		}
		bd, err := d.bullseyeDetector()
		if err != nil {
			d.modeErr = err
			d.modeDone = true
			return nil, err
		}
		bounds, err := bd.Bounds()
		if err != nil {
			d.modeErr = err
			d.modeDone = true
			return nil, err
		}
		aztecType, err := bd.Type()
		if err != nil {
			d.modeErr = err
			d.modeDone = true
			return nil, err
		}
		d.modeReader, d.modeErr = NewModeReader(m, bounds, aztecType, d.options.ModeAutoCorrect)
		d.modeDone = true
	}
	return d.modeReader, d.modeErr
}

// ModeBitmap returns the raw, pre-correction mode message bits.
func (d *Decoder) ModeBitmap() ([]int, error) {
	mr, err := d.modeReaderFor()
	if err != nil {
		return nil, err
	}
	return mr.ModeBitmap()
}

// ModeInfo returns the parsed layers/data_words/ecc_bits mode fields.
func (d *Decoder) ModeInfo() (ModeFields, error) {
	mr, err := d.modeReaderFor()
	if err != nil {
		return ModeFields{}, err
	}
	return mr.ModeFields()
}

func (d *Decoder) reader() (*CodewordReader, error) {
	if !d.cwDone {
		m, err := d.Matrix()
		if err != nil {
			d.cwErr = err
			d.cwDone = true
			return nil, err
		}
		aztecType, err := d.AztecType()
		if err != nil {
			d.cwErr = err
			d.cwDone = true
			return nil, err
		}
		fields, err := d.ModeInfo()
		if err != nil {
			d.cwErr = err
			d.cwDone = true
			return nil, err
		}
		d.codewordReader = NewCodewordReader(m, fields.Layers, fields.DataWords, aztecType, d.options.AutoCorrect)
		d.cwDone = true
	}
	return d.codewordReader, d.cwErr
}

// Bitmap returns the raw bit stream collected by the data-spiral traversal,
// before Reed-Solomon correction.
func (d *Decoder) Bitmap() ([]int, error) {
	r, err := d.reader()
	if err != nil {
		return nil, err
	}
	return r.Bitmap()
}

// CorrectedBits returns the data bit stream after codeword grouping and
// Reed-Solomon correction (or the raw bitmap, if AutoCorrect is disabled).
func (d *Decoder) CorrectedBits() ([]int, error) {
	r, err := d.reader()
	if err != nil {
		return nil, err
	}
	if !d.options.AutoCorrect {
		return r.Bitmap()
	}
	return r.CorrectedBits()
}

func (d *Decoder) payloadBits() ([]int, error) {
	if !d.payloadDone {
		bits, err := d.CorrectedBits()
		if err != nil {
			d.payloadErr = err
			d.payloadDone = true
			return nil, err
		}
		fields, err := d.ModeInfo()
		if err != nil {
			d.payloadErr = err
			d.payloadDone = true
			return nil, err
		}
		cwSize := codewordSize(fields.Layers)
		d.payload, d.payloadErr = removeStuffBits(bits, cwSize, fields.DataWords)
		d.payloadDone = true
	}
	return d.payload, d.payloadErr
}

// Message runs the full pipeline and returns the decoded payload string.
func (d *Decoder) Message() (string, error) {
	if !d.messageDone {
		bits, err := d.payloadBits()
		if err != nil {
			d.messageErr = err
			d.messageDone = true
			return "", err
		}
		fields, err := d.ModeInfo()
		if err != nil {
			d.messageErr = err
			d.messageDone = true
			return "", err
		}
		cwSize := codewordSize(fields.Layers)
		d.message, d.messageErr = decodeText(bits, cwSize, fields.DataWords)
		d.messageDone = true
	}
	return d.message, wrapMessageErr(d.messageErr)
}

func wrapMessageErr(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("aztec: decode: %w", err)
}
