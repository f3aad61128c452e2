package grid

import (
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// ValueKind is the declared type of a column. Each kind carries its own
// comparison, alignment and display policy.
type ValueKind int

const (
	KindUnknown ValueKind = iota
	KindString
	KindBool
	KindImage
	KindDate
	KindInt
	KindFloat
)

var kindNames = [...]string{
	KindUnknown: "unknown",
	KindString:  "string",
	KindBool:    "bool",
	KindImage:   "image",
	KindDate:    "date",
	KindInt:     "int",
	KindFloat:   "float",
}

func (k ValueKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// ParseKind maps a declared type name (Go, .NET or SQL flavored) to a kind.
// Unrecognized names yield KindUnknown.
func ParseKind(name string) ValueKind {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "string", "char", "text", "varchar", "nvarchar", "clob":
		return KindString
	case "bool", "boolean", "bit":
		return KindBool
	case "image", "bitmap", "blob", "png":
		return KindImage
	case "date", "datetime", "time", "timestamp", "time.time":
		return KindDate
	case "int", "int8", "int16", "int32", "int64", "uint", "uint8", "uint16", "uint32", "uint64",
		"byte", "sbyte", "short", "ushort", "long", "ulong", "integer", "bigint", "smallint", "tinyint":
		return KindInt
	case "float", "float32", "float64", "double", "decimal", "real", "numeric":
		return KindFloat
	default:
		return KindUnknown
	}
}

// Alignment positions content inside a rectangle along one axis.
type Alignment int

const (
	AlignNear Alignment = iota
	AlignCenter
	AlignFar
)

// ContentAlign returns the horizontal content alignment for cells of this kind.
func (k ValueKind) ContentAlign() Alignment {
	switch k {
	case KindBool, KindInt, KindDate, KindImage:
		return AlignCenter
	case KindFloat:
		return AlignFar
	default:
		return AlignNear
	}
}

// Accepted date layouts, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 03:04:05 PM",
}

const displayDateTime = "2006-01-02 03:04:05 PM"

var (
	upper   = cases.Upper(language.AmericanEnglish)
	printer = message.NewPrinter(language.AmericanEnglish)
)

// upperOrdinal upper-cases each rune on its own, so strings keep their
// length and compare ordinally without regard to case.
func upperOrdinal(s string) string {
	return strings.Map(unicode.ToUpper, s)
}

// UpperLabel returns the header label form of a column name.
func UpperLabel(name string) string {
	return upper.String(name)
}

// rawString renders a raw cell value as text before type-specific parsing.
// nil becomes the empty string.
func rawString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(v)
	}
}

// ParseBool accepts "true"/"false" in any case, plus native bools.
// Everything else is false with ok=false.
func ParseBool(v any) (value, ok bool) {
	if b, isBool := v.(bool); isBool {
		return b, true
	}
	switch strings.ToLower(strings.TrimSpace(rawString(v))) {
	case "true":
		return true, true
	case "false":
		return false, true
	default:
		return false, false
	}
}

// ParseDate parses a date-only or date + 12h time string. Unparseable input
// yields the zero time.
func ParseDate(v any) time.Time {
	if t, ok := v.(time.Time); ok {
		return t
	}
	s := strings.TrimSpace(rawString(v))
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t
		}
	}
	return time.Time{}
}

// normalizeNumber strips whitespace, thousands separators and a leading
// currency symbol, and turns parentheses or a leading sign into a '-' prefix.
func normalizeNumber(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	neg := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		neg = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	if strings.HasPrefix(s, "-") {
		neg = !neg
		s = s[1:]
	} else if strings.HasPrefix(s, "+") {
		s = s[1:]
	}
	for _, sym := range []string{"$", "€", "£", "¥", "¤"} {
		if strings.HasPrefix(s, sym) {
			s = strings.TrimSpace(s[len(sym):])
			break
		}
	}
	s = strings.ReplaceAll(s, ",", "")
	if s == "" || strings.ContainsAny(s, "+-") {
		return "", false
	}
	if neg {
		s = "-" + s
	}
	return s, true
}

// ParseInt parses an integer tolerating thousands separators, sign,
// parentheses, currency symbol and surrounding whitespace. A fractional part
// is truncated. Failure yields 0 with ok=false.
func ParseInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		if n > math.MaxInt64 {
			return math.MaxInt64, true
		}
		return int64(n), true
	case float32:
		return floatToInt(float64(n))
	case float64:
		return floatToInt(n)
	}
	s, ok := normalizeNumber(rawString(v))
	if !ok {
		return 0, false
	}
	i, err := strconv.ParseInt(s, 10, 64)
	if err == nil {
		return i, true
	}
	if errors.Is(err, strconv.ErrRange) {
		return i, true // saturated to MaxInt64 or MinInt64
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return floatToInt(f)
}

// floatToInt truncates f toward zero, saturating at the int64 range.
func floatToInt(f float64) (int64, bool) {
	switch {
	case math.IsNaN(f):
		return 0, false
	case f >= math.MaxInt64:
		return math.MaxInt64, true
	case f <= math.MinInt64:
		return math.MinInt64, true
	}
	return int64(f), true
}

// ParseFloat parses a float with the same tolerance as ParseInt.
func ParseFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	}
	s, ok := normalizeNumber(rawString(v))
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// FormatValue renders a cell value as its display string.
func FormatValue(kind ValueKind, v any) string {
	if v == nil {
		return "null"
	}
	switch kind {
	case KindBool:
		if b, ok := ParseBool(v); ok {
			return strconv.FormatBool(b)
		}
	case KindDate:
		t := ParseDate(v)
		if t.IsZero() {
			break
		}
		h, m, s := t.Clock()
		if h == 0 && m == 0 && s == 0 {
			return t.Format(dateLayouts[0])
		}
		return t.Format(displayDateTime)
	case KindInt:
		if n, ok := ParseInt(v); ok {
			return printer.Sprintf("%d", n)
		}
	case KindFloat:
		if f, ok := ParseFloat(v); ok {
			return printer.Sprint(number.Decimal(f, number.MaxFractionDigits(2)))
		}
	case KindImage:
		if _, ok := v.(image.Image); ok {
			return ""
		}
		if _, ok := v.([]byte); ok {
			return ""
		}
	}
	return rawString(v)
}

// imageKey returns a deterministic encoding of an image cell value: base64 of
// its canonical BMP encoding. Undecodable bytes fall back to base64 of the raw
// bytes; strings are taken as already encoded.
func imageKey(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case image.Image:
		b, err := CanonicalImage(t)
		if err != nil {
			return ""
		}
		return base64.StdEncoding.EncodeToString(b)
	case []byte:
		if img, err := DecodeImage(t); err == nil {
			if b, err := CanonicalImage(img); err == nil {
				return base64.StdEncoding.EncodeToString(b)
			}
		}
		return base64.StdEncoding.EncodeToString(t)
	default:
		s := rawString(v)
		if i := strings.LastIndexByte(s, ','); i >= 0 && strings.HasPrefix(s, "data:") {
			s = s[i+1:]
		}
		return strings.TrimSpace(s)
	}
}
