package aztec

import "fmt"

// tokenKind tags the kind of action a table cell represents, so the text
// state machine never has to sniff string suffixes like "/S" or "/L".
type tokenKind int

const (
	tokenLiteral tokenKind = iota
	tokenShift
	tokenLatch
	tokenByteShift
	tokenFlg
	tokenUndefined
)

// token is one cell of an Aztec character table.
type token struct {
	kind    tokenKind
	literal string    // valid when kind == tokenLiteral
	mode    TableType // valid when kind == tokenShift or tokenLatch
}

func lit(s string) token      { return token{kind: tokenLiteral, literal: s} }
func shift(m TableType) token { return token{kind: tokenShift, mode: m} }
func latch(m TableType) token { return token{kind: tokenLatch, mode: m} }
func undef() token            { return token{kind: tokenUndefined} }

var byteShiftToken = token{kind: tokenByteShift}
var flgToken = token{kind: tokenFlg}

// tableRow holds one index's entry across all five tables.
type tableRow struct {
	upper, lower, mixed, punct, digit token
}

// tableEntries is the Aztec character mapping for index 0-31 (0-15 for
// DIGIT, which has no entries above 15).
var tableEntries = [32]tableRow{
	0:  {shift(Punct), shift(Punct), shift(Punct), flgToken, shift(Punct)},
	1:  {lit(" "), lit(" "), lit(" "), lit("\r"), lit(" ")},
	2:  {lit("A"), lit("a"), lit("\x01"), lit("\r\n"), lit("0")},
	3:  {lit("B"), lit("b"), lit("\x02"), lit(". "), lit("1")},
	4:  {lit("C"), lit("c"), lit("\x03"), lit(", "), lit("2")},
	5:  {lit("D"), lit("d"), lit("\x04"), lit(": "), lit("3")},
	6:  {lit("E"), lit("e"), lit("\x05"), lit("!"), lit("4")},
	7:  {lit("F"), lit("f"), lit("\x06"), lit("\""), lit("5")},
	8:  {lit("G"), lit("g"), lit("\x07"), lit("#"), lit("6")},
	9:  {lit("H"), lit("h"), lit("\x08"), lit("$"), lit("7")},
	10: {lit("I"), lit("i"), lit("\x09"), lit("%"), lit("8")},
	11: {lit("J"), lit("j"), lit("\x0a"), lit("&"), lit("9")},
	12: {lit("K"), lit("k"), lit("\x0b"), lit("'"), lit(",")},
	13: {lit("L"), lit("l"), lit("\x0c"), lit("("), lit(".")},
	14: {lit("M"), lit("m"), lit("\x0d"), lit(")"), latch(Upper)},
	15: {lit("N"), lit("n"), lit("\x1b"), lit("*"), shift(Upper)},
	16: {lit("O"), lit("o"), lit("\x1c"), lit("+"), undef()},
	17: {lit("P"), lit("p"), lit("\x1d"), lit(","), undef()},
	18: {lit("Q"), lit("q"), lit("\x1e"), lit("-"), undef()},
	19: {lit("R"), lit("r"), lit("\x1f"), lit("."), undef()},
	20: {lit("S"), lit("s"), lit("@"), lit("/"), undef()},
	21: {lit("T"), lit("t"), lit("\\"), lit(":"), undef()},
	22: {lit("U"), lit("u"), lit("^"), lit(";"), undef()},
	23: {lit("V"), lit("v"), lit("_"), lit("<"), undef()},
	24: {lit("W"), lit("w"), lit("`"), lit("="), undef()},
	25: {lit("X"), lit("x"), lit("|"), lit(">"), undef()},
	26: {lit("Y"), lit("y"), lit("~"), lit("?"), undef()},
	27: {lit("Z"), lit("z"), lit("\x7f"), lit("["), undef()},
	28: {latch(Lower), shift(Upper), latch(Lower), lit("]"), undef()},
	29: {latch(Mixed), latch(Mixed), latch(Upper), lit("{"), undef()},
	30: {latch(Digit), latch(Digit), latch(Punct), lit("}"), undef()},
	31: {byteShiftToken, byteShiftToken, byteShiftToken, latch(Upper), undef()},
}

// tableLookup returns the token at index for the given table, or
// ErrSymbolDecode if index is out of range or undefined in that table.
func tableLookup(index int, mode TableType) (token, error) {
	if index < 0 || index >= len(tableEntries) {
		return token{}, fmt.Errorf("%w: symbol index %d outside 0-31 range", ErrSymbolDecode, index)
	}
	row := tableEntries[index]
	var t token
	switch mode {
	case Upper:
		t = row.upper
	case Lower:
		t = row.lower
	case Mixed:
		t = row.mixed
	case Punct:
		t = row.punct
	case Digit:
		t = row.digit
	default:
		return token{}, fmt.Errorf("%w: unknown table %v", ErrSymbolDecode, mode)
	}
	if t.kind == tokenUndefined {
		return token{}, fmt.Errorf("%w: symbol %d undefined in %v table", ErrSymbolDecode, index, mode)
	}
	return t, nil
}
