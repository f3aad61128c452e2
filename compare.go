package grid

import (
	"cmp"
	"slices"
	"strings"
)

// SortOrder is a column's sort direction.
type SortOrder int

const (
	SortNone SortOrder = iota
	SortAscending
	SortDescending
)

func (o SortOrder) String() string {
	switch o {
	case SortAscending:
		return "asc"
	case SortDescending:
		return "desc"
	default:
		return "none"
	}
}

// SortKey is one level of a multi-column sort.
type SortKey struct {
	Column string
	Kind   ValueKind
	Order  SortOrder
}

// compareKind orders two raw values ascending under kind's rules.
// Unrecognized kinds compare equal.
func compareKind(kind ValueKind, a, b any) int {
	switch kind {
	case KindString:
		return strings.Compare(upperOrdinal(rawString(a)), upperOrdinal(rawString(b)))
	case KindBool:
		x, _ := ParseBool(a)
		y, _ := ParseBool(b)
		switch {
		case x == y:
			return 0
		case !x:
			return -1
		default:
			return 1
		}
	case KindImage:
		return strings.Compare(imageKey(a), imageKey(b))
	case KindDate:
		return ParseDate(a).Compare(ParseDate(b))
	case KindInt:
		x, _ := ParseInt(a)
		y, _ := ParseInt(b)
		return cmp.Compare(x, y)
	case KindFloat:
		x, _ := ParseFloat(a)
		y, _ := ParseFloat(b)
		return cmp.Compare(x, y)
	default:
		return 0
	}
}

// CompareValues orders two raw cell values of the given kind. Descending
// order is applied by swapping the operands.
func CompareValues(kind ValueKind, a, b any, order SortOrder) int {
	if order == SortDescending {
		a, b = b, a
	}
	return compareKind(kind, a, b)
}

// CompareRows applies keys in priority order and returns the first non-zero
// comparison. Keys with SortNone are skipped.
func CompareRows(a, b *Row, keys []SortKey) int {
	for _, k := range keys {
		if k.Order == SortNone {
			continue
		}
		if c := CompareValues(k.Kind, a.Value(k.Column), b.Value(k.Column), k.Order); c != 0 {
			return c
		}
	}
	return 0
}

// SortRows stably sorts rows in place by keys.
func SortRows(rows []*Row, keys []SortKey) {
	if len(keys) == 0 {
		return
	}
	slices.SortStableFunc(rows, func(a, b *Row) int {
		return CompareRows(a, b, keys)
	})
}
