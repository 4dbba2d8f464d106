package law

import "strings"

// Enactment is a passage of legislative text cited in support of a
// Rule. The text arrives already resolved; comparison here is purely
// over the selected passage.
type Enactment struct {
	// Source is the citation path, such as "/us/const/amendment-IV".
	Source string
	// Text is the selected passage from the cited provision.
	Text string
	// Name is an optional nickname used for back-references.
	Name string
}

// NewEnactment creates an Enactment from a citation path and its
// resolved passage.
func NewEnactment(source, text string) *Enactment {
	return &Enactment{Source: source, Text: text}
}

func strippedText(text string) string {
	return strings.Trim(text, ",:;. ")
}

// Implies reports whether e's passage covers everything other cites.
func (e *Enactment) Implies(other *Enactment) bool {
	if other == nil {
		return true
	}
	return strings.Contains(e.Text, strippedText(other.Text))
}

// Means reports whether the two passages contain the same legislative
// text, ignoring surrounding punctuation.
func (e *Enactment) Means(other *Enactment) bool {
	if other == nil {
		return false
	}
	return strippedText(e.Text) == strippedText(other.Text)
}

func (e *Enactment) String() string {
	return "\"" + e.Text + "\" (" + e.Source + ")"
}

// Combine merges two Enactments citing overlapping text of the same
// provision into one whose passage covers both, or returns nil if the
// passages neither contain each other nor adjoin.
func (e *Enactment) Combine(other *Enactment) *Enactment {
	if other == nil {
		return e
	}
	if e.Implies(other) && strings.HasPrefix(e.Source, other.Source) {
		return e
	}
	if other.Implies(e) && strings.HasPrefix(other.Source, e.Source) {
		return other
	}
	if merged := e.combineText(other); merged != nil {
		return merged
	}
	return other.combineText(e)
}

// combineText splices other's passage onto the end of e's when the two
// overlap, so "a warrant shall issue" plus "shall issue upon probable
// cause" becomes one passage.
func (e *Enactment) combineText(other *Enactment) *Enactment {
	if !strings.HasPrefix(other.Source, e.Source) {
		return nil
	}
	left, right := e.Text, other.Text
	for overlap := min(len(left), len(right)); overlap > 0; overlap-- {
		if strings.HasSuffix(left, right[:overlap]) {
			return &Enactment{Source: e.Source, Text: left + right[overlap:]}
		}
	}
	return nil
}

// ConsolidateEnactments repeatedly merges any two combinable passages
// in the list until none overlap.
func ConsolidateEnactments(enactments []*Enactment) []*Enactment {
	pending := append([]*Enactment(nil), enactments...)
	var consolidated []*Enactment
	for len(pending) > 0 {
		left := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		merged := false
		for i, right := range pending {
			if combined := left.Combine(right); combined != nil {
				pending = append(pending[:i], pending[i+1:]...)
				pending = append(pending, combined)
				merged = true
				break
			}
		}
		if !merged {
			consolidated = append(consolidated, left)
		}
	}
	return consolidated
}

// enactmentsImply reports whether every passage in need is covered by
// some passage in avail.
func enactmentsImply(avail, need []*Enactment) bool {
	for _, n := range need {
		covered := false
		for _, a := range avail {
			if a.Implies(n) {
				covered = true
				break
			}
		}
		if !covered {
			return false
		}
	}
	return true
}
