package charset

import (
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/transform"
)

// charmaps maps the Go encoding names carried on an ECI entry to their
// golang.org/x/text decoder, for the single-byte code pages a FLG(n) escape
// can name.
var charmaps = map[string]*charmap.Charmap{
	"ISO8859_1":   charmap.ISO8859_1,
	"ISO8859_2":   charmap.ISO8859_2,
	"ISO8859_3":   charmap.ISO8859_3,
	"ISO8859_4":   charmap.ISO8859_4,
	"ISO8859_5":   charmap.ISO8859_5,
	"ISO8859_6":   charmap.ISO8859_6,
	"ISO8859_7":   charmap.ISO8859_7,
	"ISO8859_8":   charmap.ISO8859_8,
	"ISO8859_9":   charmap.ISO8859_9,
	"ISO8859_10":  charmap.ISO8859_10,
	"ISO8859_13":  charmap.ISO8859_13,
	"ISO8859_14":  charmap.ISO8859_14,
	"ISO8859_15":  charmap.ISO8859_15,
	"ISO8859_16":  charmap.ISO8859_16,
	"Windows1250": charmap.Windows1250,
	"Windows1251": charmap.Windows1251,
	"Windows1252": charmap.Windows1252,
	"Windows1256": charmap.Windows1256,
	"IBM437":      charmap.CodePage437,
}

// DecodeBytes converts bytes tagged with the given Go encoding name (an
// ECI.GoName) to a UTF-8 string. Bytes that are already UTF-8/ASCII, or that
// fail to convert, are returned unchanged.
func DecodeBytes(data []byte, encoding string) string {
	switch encoding {
	case "Shift_JIS":
		return decodeWith(japanese.ShiftJIS.NewDecoder(), data)
	case "EUC-KR":
		return decodeWith(korean.EUCKR.NewDecoder(), data)
	case "Big5":
		return decodeWith(traditionalchinese.Big5.NewDecoder(), data)
	case "GB18030":
		return decodeWith(simplifiedchinese.GB18030.NewDecoder(), data)
	case "UTF-8", "US-ASCII", "":
		return string(data)
	default:
		if cm, ok := charmaps[encoding]; ok {
			return decodeWith(cm.NewDecoder(), data)
		}
		return string(data)
	}
}

func decodeWith(dec transform.Transformer, data []byte) string {
	decoded, _, err := transform.Bytes(dec, data)
	if err != nil {
		return string(data)
	}
	return string(decoded)
}
