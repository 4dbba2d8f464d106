package law

import (
	"fmt"
	"strings"
)

// Truth is the asserted truth value of a Predicate. Undecided marks a
// "whether" clause that takes no stance.
type Truth int8

// Truth values.
const (
	TruthUndecided Truth = iota
	TruthFalse
	TruthTrue
)

func (t Truth) String() string {
	switch t {
	case TruthTrue:
		return "true"
	case TruthFalse:
		return "false"
	default:
		return "undecided"
	}
}

// oppositeComparisons maps each comparison operator to its logical
// negation, used to normalize false-truth comparison predicates.
var oppositeComparisons = map[string]string{
	"=":  "<>",
	"<>": "=",
	">=": "<",
	"<=": ">",
	">":  "<=",
	"<":  ">=",
}

var comparisonPhrases = map[string]string{
	"=":  "exactly equal to",
	"<>": "not equal to",
	">=": "at least",
	"<=": "no more than",
	">":  "greater than",
	"<":  "less than",
}

// Predicate is an atomic statement template. Slots written "{}" in the
// content are filled by the context terms of the Fact that carries the
// Predicate. A Predicate may constrain a numeric quantity, in which
// case its comparison operator is never empty.
type Predicate struct {
	content    string
	truth      Truth
	reciprocal bool
	comparison string
	quantity   *Quantity
}

// NewPredicate creates a Predicate without a numeric constraint.
func NewPredicate(content string, truth Truth, reciprocal bool) (*Predicate, error) {
	return newPredicate(content, truth, reciprocal, "", nil)
}

// NewComparison creates a Predicate constraining a quantity. A false
// truth value is normalized away by negating the comparison operator.
func NewComparison(content string, truth Truth, reciprocal bool, comparison string, quantity Quantity) (*Predicate, error) {
	return newPredicate(content, truth, reciprocal, comparison, &quantity)
}

func newPredicate(content string, truth Truth, reciprocal bool, comparison string, quantity *Quantity) (*Predicate, error) {
	switch comparison {
	case "==":
		comparison = "="
	case "!=":
		comparison = "<>"
	}
	if comparison != "" {
		if _, ok := oppositeComparisons[comparison]; !ok {
			return nil, fmt.Errorf("unknown comparison operator %q", comparison)
		}
		if quantity == nil {
			return nil, fmt.Errorf("comparison %q requires a quantity", comparison)
		}
		if truth == TruthFalse {
			truth = TruthTrue
			comparison = oppositeComparisons[comparison]
		}
	} else if quantity != nil {
		return nil, fmt.Errorf("a quantity requires a comparison operator")
	}
	p := &Predicate{
		content:    content,
		truth:      truth,
		reciprocal: reciprocal,
		comparison: comparison,
		quantity:   quantity,
	}
	if reciprocal && p.SlotCount() < 2 {
		return nil, fmt.Errorf(
			"reciprocal predicate %q needs at least 2 slots, has %d",
			content, p.SlotCount())
	}
	return p, nil
}

// Content returns the statement template.
func (p *Predicate) Content() string { return p.content }

// Truth returns the asserted truth value.
func (p *Predicate) Truth() Truth { return p.truth }

// Reciprocal reports whether the first two slots are interchangeable.
func (p *Predicate) Reciprocal() bool { return p.reciprocal }

// Comparison returns the comparison operator, or "".
func (p *Predicate) Comparison() string { return p.comparison }

// Quantity returns the constrained quantity, or nil.
func (p *Predicate) Quantity() *Quantity { return p.quantity }

// SlotCount returns the number of term slots in the content template.
func (p *Predicate) SlotCount() int {
	return strings.Count(p.content, "{}")
}

// Negated returns a copy asserting the opposite truth value.
func (p *Predicate) Negated() *Predicate {
	out := *p
	switch p.truth {
	case TruthTrue:
		if p.comparison != "" {
			out.comparison = oppositeComparisons[p.comparison]
		} else {
			out.truth = TruthFalse
		}
	case TruthFalse:
		out.truth = TruthTrue
	}
	return &out
}

func (p *Predicate) sameTemplate(other *Predicate) bool {
	return strings.EqualFold(p.content, other.content) &&
		p.reciprocal == other.reciprocal
}

// Means reports whether two predicates assert exactly the same thing.
func (p *Predicate) Means(other *Predicate) bool {
	if other == nil || !p.sameTemplate(other) {
		return false
	}
	if p.truth != other.truth || p.comparison != other.comparison {
		return false
	}
	if (p.quantity == nil) != (other.quantity == nil) {
		return false
	}
	return p.quantity == nil || p.quantity.Equal(*other.quantity)
}

// Implies reports whether every state of affairs satisfying p also
// satisfies other. For quantity predicates this is literal containment
// of p's solution range within other's.
func (p *Predicate) Implies(other *Predicate) bool {
	if other == nil {
		return true
	}
	if p.Means(other) {
		return true
	}
	if !p.sameTemplate(other) {
		return false
	}
	// Any stance on a statement implies the "whether" form of it.
	if other.truth == TruthUndecided {
		return true
	}
	if p.truth == TruthUndecided {
		return false
	}
	if p.quantity == nil || other.quantity == nil {
		return false
	}
	if !p.quantity.Comparable(*other.quantity) {
		return false
	}
	return rangeWithin(p.comparison, p.quantity.Value, other.comparison, other.quantity.Value)
}

// Contradicts reports whether p and other cannot both hold.
func (p *Predicate) Contradicts(other *Predicate) bool {
	if other == nil || !p.sameTemplate(other) {
		return false
	}
	if p.truth == TruthUndecided || other.truth == TruthUndecided {
		return false
	}
	if p.quantity != nil && other.quantity != nil {
		if !p.quantity.Comparable(*other.quantity) {
			return false
		}
		return rangesDisjoint(p.comparison, p.quantity.Value, other.comparison, other.quantity.Value)
	}
	if p.quantity != nil || other.quantity != nil {
		return false
	}
	return p.truth != other.truth
}

// rangeWithin reports whether the solution set of (aCmp, aQ) is a
// subset of the solution set of (bCmp, bQ).
func rangeWithin(aCmp string, aQ float64, bCmp string, bQ float64) bool {
	switch bCmp {
	case "=":
		return aCmp == "=" && aQ == bQ
	case "<>":
		switch aCmp {
		case "=":
			return aQ != bQ
		case "<>":
			return aQ == bQ
		case ">=":
			return bQ < aQ
		case ">":
			return bQ <= aQ
		case "<=":
			return bQ > aQ
		case "<":
			return bQ >= aQ
		}
	case ">=":
		switch aCmp {
		case "=", ">=", ">":
			return aQ >= bQ
		}
	case ">":
		switch aCmp {
		case "=", ">=":
			return aQ > bQ
		case ">":
			return aQ >= bQ
		}
	case "<=":
		switch aCmp {
		case "=", "<=", "<":
			return aQ <= bQ
		}
	case "<":
		switch aCmp {
		case "=", "<=":
			return aQ < bQ
		case "<":
			return aQ <= bQ
		}
	}
	return false
}

// rangesDisjoint reports whether the solution sets of the two
// constraints share no value.
func rangesDisjoint(aCmp string, aQ float64, bCmp string, bQ float64) bool {
	if aCmp == "=" || bCmp == "=" {
		// Normalize so a point constraint is on the left.
		if aCmp != "=" {
			aCmp, aQ, bCmp, bQ = bCmp, bQ, aCmp, aQ
		}
		switch bCmp {
		case "=":
			return aQ != bQ
		case "<>":
			return aQ == bQ
		case ">=":
			return aQ < bQ
		case ">":
			return aQ <= bQ
		case "<=":
			return aQ > bQ
		case "<":
			return aQ >= bQ
		}
	}
	lowerOpen := func(cmp string) bool { return cmp == ">" || cmp == ">=" }
	upperOpen := func(cmp string) bool { return cmp == "<" || cmp == "<=" }
	if lowerOpen(aCmp) && upperOpen(bCmp) {
		if aCmp == ">=" && bCmp == "<=" {
			return bQ < aQ
		}
		return bQ <= aQ
	}
	if upperOpen(aCmp) && lowerOpen(bCmp) {
		if aCmp == "<=" && bCmp == ">=" {
			return aQ < bQ
		}
		return aQ <= bQ
	}
	return false
}

// ContentWith renders the template with the given terms filling its
// slots, plus any quantity clause.
func (p *Predicate) ContentWith(terms []Factor) string {
	text := p.content
	for _, term := range terms {
		name := "?"
		if term != nil {
			name = term.String()
		}
		text = strings.Replace(text, "{}", name, 1)
	}
	if p.comparison != "" && p.quantity != nil {
		text = fmt.Sprintf("%s %s %s", text, comparisonPhrases[p.comparison], p.quantity)
	}
	switch p.truth {
	case TruthFalse:
		return "it is false that " + text
	case TruthUndecided:
		return "whether " + text
	default:
		return text
	}
}

// Key returns a canonical identity string for the predicate.
func (p *Predicate) Key() string {
	qty := ""
	if p.quantity != nil {
		qty = p.quantity.String()
	}
	return fmt.Sprintf("predicate|%s|%s|%t|%s|%s",
		strings.ToLower(p.content), p.truth, p.reciprocal, p.comparison, qty)
}
