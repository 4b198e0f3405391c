package charset

import "testing"

func TestDecodeBytesPassesThroughUTF8AndEmpty(t *testing.T) {
	cases := []struct {
		encoding string
		data     string
	}{
		{"UTF-8", "hello"},
		{"US-ASCII", "hello"},
		{"", "hello"},
	}
	for _, c := range cases {
		got := DecodeBytes([]byte(c.data), c.encoding)
		if got != c.data {
			t.Errorf("DecodeBytes(%q, %q) = %q, want %q", c.data, c.encoding, got, c.data)
		}
	}
}

func TestDecodeBytesUnknownEncodingPassesThrough(t *testing.T) {
	got := DecodeBytes([]byte("raw"), "not-a-real-encoding")
	if got != "raw" {
		t.Errorf("DecodeBytes with an unknown encoding name = %q, want unchanged input", got)
	}
}

func TestDecodeBytesISO8859_1MapsHighBytes(t *testing.T) {
	// 0xE9 in ISO-8859-1 is U+00E9 (e acute).
	got := DecodeBytes([]byte{0xE9}, "ISO8859_1")
	want := "é"
	if got != want {
		t.Errorf("DecodeBytes(0xE9, ISO8859_1) = %q, want %q", got, want)
	}
}

func TestDecodeBytesShiftJISRoundTripsASCIIRange(t *testing.T) {
	// Shift_JIS is ASCII-compatible in the 0x00-0x7F range.
	got := DecodeBytes([]byte("OK"), "Shift_JIS")
	if got != "OK" {
		t.Errorf("DecodeBytes(ASCII, Shift_JIS) = %q, want %q", got, "OK")
	}
}
