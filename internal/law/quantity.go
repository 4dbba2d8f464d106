package law

import (
	"fmt"
	"strconv"
	"strings"
)

// Quantity is a numeric magnitude with an optional unit. Quantities are
// comparable only when their units match; a comparison across units is
// neither an implication nor a contradiction.
type Quantity struct {
	Value float64
	Unit  string
}

// ParseQuantity reads strings like "35 foot", "5 millimetres", or "3".
func ParseQuantity(text string) (Quantity, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Quantity{}, fmt.Errorf("empty quantity")
	}
	fields := strings.Fields(text)
	value, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return Quantity{}, fmt.Errorf("parse quantity %q: %w", text, err)
	}
	return Quantity{Value: value, Unit: strings.Join(fields[1:], " ")}, nil
}

// Comparable reports whether two quantities share a unit.
func (q Quantity) Comparable(other Quantity) bool {
	return q.Unit == other.Unit
}

// Equal reports whether two quantities have the same unit and value.
func (q Quantity) Equal(other Quantity) bool {
	return q.Comparable(other) && q.Value == other.Value
}

func (q Quantity) String() string {
	value := strconv.FormatFloat(q.Value, 'f', -1, 64)
	if q.Unit == "" {
		return value
	}
	return value + " " + q.Unit
}
