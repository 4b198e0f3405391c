package aztec

import (
	"errors"
	"testing"

	"github.com/azteccode/aztecgo/bitutil"
)

func TestDecoderMatrixMemoizesAcrossCalls(t *testing.T) {
	m := bitutil.NewBitMatrix(23)
	paintBullseye(m)
	m.Set(11-5, 11)

	d := NewDecoder(m, Options{AutoOrient: false})
	first, err := d.Matrix()
	if err != nil {
		t.Fatalf("Matrix: %v", err)
	}
	second, err := d.Matrix()
	if err != nil {
		t.Fatalf("Matrix: %v", err)
	}
	if first != second {
		t.Error("Matrix should return the same cached pointer on a second call")
	}
}

func TestDecoderMatrixSkipsOrientationWhenDisabled(t *testing.T) {
	m := bitutil.NewBitMatrix(9)
	d := NewDecoder(m, Options{AutoOrient: false})
	got, err := d.Matrix()
	if err != nil {
		t.Fatalf("Matrix: %v", err)
	}
	if got != m {
		t.Error("AutoOrient=false should hand back the input matrix unchanged")
	}
}

func TestDecoderPropagatesBullseyeErrorThroughAztecType(t *testing.T) {
	// Too small to be a legal Aztec symbol at all.
	m := bitutil.NewBitMatrix(13)
	d := NewDecoder(m, DefaultOptions())
	_, err := d.AztecType()
	if !errors.Is(err, ErrUnsupportedSymbol) {
		t.Errorf("err = %v, want ErrUnsupportedSymbol", err)
	}
}

func TestDecoderMessageWrapsUnderlyingError(t *testing.T) {
	m := bitutil.NewBitMatrix(13)
	_, err := Decode(m, DefaultOptions())
	if err == nil {
		t.Fatal("expected an error for an undersized matrix")
	}
	if !errors.Is(err, ErrUnsupportedSymbol) {
		t.Errorf("err = %v, want ErrUnsupportedSymbol even after Message's wrapping", err)
	}
}

func TestDecoderBullseyeBoundsMatchesDetector(t *testing.T) {
	m := bitutil.NewBitMatrix(23)
	paintBullseye(m)
	m.Set(11-5, 11)

	d := NewDecoder(m, Options{AutoOrient: false})
	bounds, err := d.BullseyeBounds()
	if err != nil {
		t.Fatalf("BullseyeBounds: %v", err)
	}
	want := Bounds{Top: 7, Left: 7, Bottom: 15, Right: 15}
	if bounds != want {
		t.Errorf("bounds = %+v, want %+v", bounds, want)
	}
	typ, err := d.AztecType()
	if err != nil {
		t.Fatalf("AztecType: %v", err)
	}
	if typ != Compact {
		t.Errorf("type = %v, want COMPACT", typ)
	}
}

func TestDecoderMessageErrorsWhenStuffedPayloadIsTooShort(t *testing.T) {
	// A bullseye with nothing else painted: the mode ring decodes to
	// layers=1/data_words=1 (internally consistent, so ModeInfo itself
	// succeeds), but the all-zero data codeword loses its stuffed bit,
	// and the five bits left decode to a punct shift with no symbol
	// behind it.
	m := bitutil.NewBitMatrix(23)
	paintBullseye(m)
	m.Set(11-5, 11)

	d := NewDecoder(m, Options{AutoOrient: false, ModeAutoCorrect: false, AutoCorrect: false})
	_, err := d.ModeInfo()
	if err != nil {
		t.Fatalf("ModeInfo: %v", err)
	}
	_, err = d.Message()
	if err == nil {
		t.Fatal("expected an error decoding a data spiral with no real payload written")
	}
}
