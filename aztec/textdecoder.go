package aztec

import (
	"fmt"
	"strings"
)

// decodeText walks the post-stuff-removal bit stream and reconstructs the
// payload string, honoring shift/latch table switches, the byte-shift
// escape, and the FLG/ECI escape. A FLG(n) escape (1<=n<=6) emits its
// six-digit [ECI:NNNNNN] marker and nothing more: byte-shift runs are
// always decoded as Latin-1, and applying the named character set is left
// to the caller.
func decodeText(bits []int, cwSize, dataWords int) (string, error) {
	var out strings.Builder

	currentMode := Upper
	previousMode := Upper
	singleShift := false
	singleConsumed := 0

	i := 0
decodeLoop:
	for i/cwSize < dataWords {
		if singleShift && singleConsumed == 1 {
			currentMode = previousMode
			singleShift = false
			singleConsumed = 0
		}

		symbolWidth := 5
		if currentMode == Digit {
			symbolWidth = 4
		}
		symbolBits := take(bits, &i, symbolWidth)
		if len(symbolBits) == 0 {
			return "", fmt.Errorf("%w: bit stream exhausted mid-symbol", ErrStreamTermination)
		}
		val := bitsToInt(symbolBits)

		tok, err := tableLookup(val, currentMode)
		if err != nil {
			return "", err
		}

		switch tok.kind {
		case tokenByteShift:
			if i >= len(bits) {
				break decodeLoop
			}
			length := bitsToInt(take(bits, &i, 5))
			if length == 0 {
				extBits := take(bits, &i, 11)
				if len(extBits) == 0 {
					return "", fmt.Errorf("%w: byte-shift extended length truncated", ErrStreamTermination)
				}
				length = bitsToInt(extBits) + 31
			}
			byteBits := take(bits, &i, 8*length)
			if len(byteBits) < 8*length {
				return "", fmt.Errorf("%w: byte-shift run of %d bytes truncated", ErrStreamTermination, length)
			}
			out.WriteString(latin1ToUTF8(bitsToBytes(byteBits)))
			continue

		case tokenShift:
			previousMode = currentMode
			currentMode = tok.mode
			singleShift = true
			singleConsumed = 0
			continue

		case tokenLatch:
			currentMode = tok.mode
			previousMode = currentMode
			continue

		case tokenFlg:
			nBits := take(bits, &i, 3)
			if len(nBits) == 0 {
				return "", fmt.Errorf("%w: FLG escape truncated", ErrStreamTermination)
			}
			n := bitsToInt(nBits)
			switch {
			case n == 0:
				out.WriteByte(0x1D)
			case n >= 1 && n <= 6:
				var digits strings.Builder
				for d := 0; d < n; d++ {
					digitBits := take(bits, &i, 4)
					if len(digitBits) == 0 {
						return "", fmt.Errorf("%w: FLG(n) digit truncated", ErrStreamTermination)
					}
					ch, err := tableLookup(bitsToInt(digitBits), Digit)
					if err != nil {
						return "", err
					}
					digits.WriteString(ch.literal)
				}
				eciID := digits.String()
				for len(eciID) < 6 {
					eciID = "0" + eciID
				}
				out.WriteString("[ECI:" + eciID + "]")
			default:
				return "", fmt.Errorf("%w: FLG(7) reserved/illegal", ErrStreamTermination)
			}
			continue

		default: // tokenLiteral
			out.WriteString(tok.literal)
		}

		if singleShift {
			singleConsumed++
		}
	}

	return out.String(), nil
}

// take extracts the next n bits from bits starting at *i, clamped to
// whatever remains, and advances *i by the full width either way. The clamp
// matters at the tail of the stream: stuffed-bit removal can leave the
// payload a few bits short of dataWords*k, and the final codeword's pad bits
// routinely end mid-symbol, so the last read comes up short of its nominal
// width while the cursor still steps past the termination threshold.
func take(bits []int, i *int, n int) []int {
	start := *i
	*i += n
	if start >= len(bits) {
		return nil
	}
	end := start + n
	if end > len(bits) {
		end = len(bits)
	}
	return bits[start:end]
}

func bitsToBytes(bits []int) []byte {
	out := make([]byte, 0, (len(bits)+7)/8)
	for i := 0; i < len(bits); i += 8 {
		end := i + 8
		if end > len(bits) {
			end = len(bits)
		}
		out = append(out, byte(bitsToInt(bits[i:end])))
	}
	return out
}

// latin1ToUTF8 expands each Latin-1 byte to its matching Unicode code
// point.
func latin1ToUTF8(raw []byte) string {
	runes := make([]rune, len(raw))
	for i, b := range raw {
		runes[i] = rune(b)
	}
	return string(runes)
}
