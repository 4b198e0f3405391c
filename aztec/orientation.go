package aztec

import "github.com/azteccode/aztecgo/bitutil"

// cornerPatterns holds the three-module marker read just outside each of
// the bull's-eye's four corners, in clockwise order starting top-left.
type cornerPatterns [4][3]int

var canonicalPatterns = cornerPatterns{
	{1, 1, 1}, // top-left
	{0, 1, 1}, // top-right
	{1, 0, 0}, // bottom-right
	{0, 0, 0}, // bottom-left
}

// readCornerPatterns samples the marker triplets around the four bull's-eye
// corners, in the order tl, tr, br, bl.
func readCornerPatterns(m *bitutil.BitMatrix, b Bounds) cornerPatterns {
	tlY, tlX, brY, brX := b.Top, b.Left, b.Bottom, b.Right
	trY, trX, blY, blX := tlY, brX, brY, tlX

	return cornerPatterns{
		{boolToBit(m.Get(tlX-1, tlY)), boolToBit(m.Get(tlX-1, tlY-1)), boolToBit(m.Get(tlX, tlY-1))},
		{boolToBit(m.Get(trX, trY-1)), boolToBit(m.Get(trX+1, trY-1)), boolToBit(m.Get(trX+1, trY))},
		{boolToBit(m.Get(brX+1, brY)), boolToBit(m.Get(brX+1, brY+1)), boolToBit(m.Get(brX, brY+1))},
		{boolToBit(m.Get(blX, blY+1)), boolToBit(m.Get(blX-1, blY+1)), boolToBit(m.Get(blX-1, blY))},
	}
}

func needsRotation(patterns cornerPatterns) bool {
	return patterns != canonicalPatterns
}

// Orient rotates m clockwise up to three times until the four corner
// markers around bounds match the canonical tuple. bounds is unchanged by
// rotation: the bull's-eye stays centered in the square matrix. If no
// rotation reaches the canonical pattern, m is returned as-is after the
// fourth check (downstream stages then fail on the malformed symbol).
func Orient(m *bitutil.BitMatrix, bounds Bounds) *bitutil.BitMatrix {
	for i := 0; i < 4; i++ {
		if !needsRotation(readCornerPatterns(m, bounds)) {
			break
		}
		if i == 3 {
			break
		}
		m.RotateClockwise90()
	}
	return m
}
