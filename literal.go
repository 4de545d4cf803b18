package xlformula

import (
	"fmt"
	"strconv"
)

// Literal wraps one immutable primitive value for use as a base-level
// function, formula, or expression argument.
type Literal struct {
	ownership
	value Primitive
}

// NewLiteral creates a literal node holding value
func NewLiteral(value Primitive) *Literal {
	return &Literal{value: value}
}

// Value returns the stored primitive value unchanged
func (l *Literal) Value() (Primitive, error) {
	return l.value, nil
}

func (l *Literal) Render() string {
	return finalize(l, l.text())
}

// text renders the stored value per Excel literal rules. Empty values render
// as "" so that joins with neighboring fragments keep a visible placeholder.
// Embedded double quotes in strings are not escaped; callers needing quotes
// inside string literals must pre-double them.
func (l *Literal) text() string {
	switch v := l.value.(type) {
	case nil:
		return `""`
	case string:
		if v == "" {
			return `""`
		}
		return `"` + v + `"`
	case bool:
		if v {
			return "TRUE"
		}
		return "FALSE"
	case float64:
		return formatNumber(v)
	case float32:
		return formatNumber(float64(v))
	default:
		return fmt.Sprint(v)
	}
}

func (l *Literal) String() string {
	return l.Render()
}

// formatNumber formats a float without unnecessary decimals
func formatNumber(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'g', -1, 64)
}
