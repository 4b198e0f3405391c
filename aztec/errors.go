package aztec

import "errors"

// Sentinel errors returned by the decoder pipeline. Every stage fails the
// whole decode; callers distinguish failure modes with errors.Is.
var (
	// ErrInvalidParameter indicates a malformed matrix or bounds: wrong
	// shape, wrong parity, bounds outside the matrix, or an empty shift
	// letter.
	ErrInvalidParameter = errors.New("aztec: invalid parameter")

	// ErrBullseyeDetection indicates no valid alternating ring was found
	// around the center of the matrix.
	ErrBullseyeDetection = errors.New("aztec: bullseye not found")

	// ErrOrientation indicates the canonical corner pattern was never
	// reached after four rotation attempts. It is not returned directly;
	// a symbol stuck in the wrong orientation instead surfaces as a
	// downstream mode or codeword failure.
	ErrOrientation = errors.New("aztec: orientation not resolved")

	// ErrModeField indicates the mode ring could not be read: wrong bit
	// length, an out-of-range index, or layers outside [1,32].
	ErrModeField = errors.New("aztec: mode field error")

	// ErrReedSolomon indicates uncorrectable errors in the mode message
	// or the data codewords.
	ErrReedSolomon = errors.New("aztec: reed-solomon correction failed")

	// ErrBitRead indicates the data-spiral traversal computed an
	// out-of-matrix index.
	ErrBitRead = errors.New("aztec: bit read out of bounds")

	// ErrBitStuffing indicates the bit stream was exhausted before
	// data_words codewords were recovered.
	ErrBitStuffing = errors.New("aztec: bit stream exhausted during stuff removal")

	// ErrSymbolDecode indicates an undefined table entry, such as a
	// DIGIT table index above 15.
	ErrSymbolDecode = errors.New("aztec: undefined symbol table entry")

	// ErrUnsupportedSymbol indicates the matrix size is outside [15,151]
	// or the derived layer count is outside [1,32]. An even size is
	// reported as ErrInvalidParameter.
	ErrUnsupportedSymbol = errors.New("aztec: unsupported symbol")

	// ErrStreamTermination indicates a FLG(7) escape or a byte-shift run
	// that reaches past the end of the bit stream.
	ErrStreamTermination = errors.New("aztec: stream terminated unexpectedly")
)
