package law

import (
	"fmt"
	"iter"
	"strings"
)

// Holding is a court's posture toward a Rule. RuleValid true means
// the court affirms the Rule, false that it rejects it. Decided false
// marks dicta: the court leaves open whether the Rule is valid, which
// can overrule prior Holdings either way. Exclusive means the Rule's
// inputs are the only way to reach its output, so the Holding also
// asserts the contrapositives of its Rule.
type Holding struct {
	Rule      *Rule
	RuleValid bool
	Decided   bool
	Exclusive bool
	Generic   bool
}

// NewHolding creates a Holding affirming rule as decided law. Adjust
// the flags before first use, then Validate.
func NewHolding(rule *Rule) *Holding {
	return &Holding{Rule: rule, RuleValid: true, Decided: true}
}

// Validate checks the flag combinations that have no defined meaning.
func (h *Holding) Validate() error {
	if h.Rule == nil {
		return fmt.Errorf("a Holding requires a Rule")
	}
	if h.Exclusive {
		if !h.RuleValid {
			return fmt.Errorf(
				"a Holding cannot reject a Rule as the exclusive way to reach an output; " +
					"state the point without the exclusive flag")
		}
		if !h.Decided {
			return fmt.Errorf(
				"a Holding cannot leave undecided whether a Rule is exclusive; " +
					"state the point without the exclusive flag")
		}
		if _, err := h.Rule.Contrapositives(); err != nil {
			return err
		}
	}
	return nil
}

// Negated returns a copy with the opposite posture toward the Rule.
func (h *Holding) Negated() *Holding {
	out := *h
	out.RuleValid = !h.RuleValid
	out.Exclusive = false
	return &out
}

// NewContext returns a copy with the Rule's generic terms renamed per
// changes.
func (h *Holding) NewContext(changes *ContextRegister) *Holding {
	out := *h
	out.Rule = h.Rule.NewContext(changes)
	return &out
}

// NonexclusiveHoldings expands the exclusive flag: the Holding itself
// without the flag, plus one contrapositive Holding per input.
func (h *Holding) NonexclusiveHoldings() ([]*Holding, error) {
	if !h.Exclusive {
		return []*Holding{h}, nil
	}
	contrapositives, err := h.Rule.Contrapositives()
	if err != nil {
		return nil, err
	}
	plain := *h
	plain.Exclusive = false
	out := []*Holding{&plain}
	for _, rule := range contrapositives {
		out = append(out, NewHolding(rule))
	}
	return out, nil
}

// nonexclusive is NonexclusiveHoldings for comparison paths, where an
// invalid exclusive flag degrades to the unexpanded Holding.
func (h *Holding) nonexclusive() []*Holding {
	expanded, err := h.NonexclusiveHoldings()
	if err != nil {
		plain := *h
		plain.Exclusive = false
		return []*Holding{&plain}
	}
	return expanded
}

// impliesIfDecided yields witnesses that h implies other, assuming
// both are decided. Two rejections imply each other in reverse, and a
// mixed pair amounts to a contradiction between the Rules.
func (h *Holding) impliesIfDecided(other *Holding, ctx *ContextRegister) Explanations {
	if ctx == nil {
		ctx = NewContextRegister()
	}
	if h.RuleValid && other.RuleValid {
		return h.Rule.ExplanationsImplication(other.Rule, ctx)
	}
	if !h.RuleValid && !other.RuleValid {
		return reverseEach(other.Rule.ExplanationsImplication(h.Rule, ctx.Reversed()))
	}
	return h.Rule.ExplanationsContradiction(other.Rule, ctx)
}

// ExplanationsImplication yields witnesses that h implies other. An
// undecided Holding implies only itself and its own negation.
func (h *Holding) ExplanationsImplication(other *Holding, ctx *ContextRegister) iter.Seq[*Explanation] {
	return func(yield func(*Explanation) bool) {
		if other == nil {
			return
		}
		var registers Explanations
		switch {
		case h.Decided && other.Decided:
			registers = h.impliesIfDecided(other, ctx)
		case !h.Decided && !other.Decided:
			registers = func(y func(*ContextRegister) bool) {
				for reg := range h.explanationsSameMeaning(other, ctx) {
					if !y(reg) {
						return
					}
				}
				for reg := range h.explanationsSameMeaning(other.Negated(), ctx) {
					if !y(reg) {
						return
					}
				}
			}
		default:
			return
		}
		for reg := range registers {
			if !yield(&Explanation{Relation: RelationImplication, Left: h, Right: other, Context: reg}) {
				return
			}
		}
	}
}

// Implies reports whether h implies other. A nil other is trivially
// implied.
func (h *Holding) Implies(other *Holding) bool {
	if other == nil {
		return true
	}
	for range h.ExplanationsImplication(other, nil) {
		return true
	}
	return false
}

// ImpliedBy reports whether other implies h.
func (h *Holding) ImpliedBy(other *Holding) bool {
	if other == nil {
		return false
	}
	return other.Implies(h)
}

// ExplainImplication returns the first witness that h implies other,
// or nil.
func (h *Holding) ExplainImplication(other *Holding) *Explanation {
	for e := range h.ExplanationsImplication(other, nil) {
		return e
	}
	return nil
}

// contradictsIfNotExclusive yields witnesses of contradiction between
// two Holdings with the exclusive flag already expanded away. A
// decided Holding contradicts other when it implies other's negation;
// an undecided one contradicts a decided other that settles the same
// Rule either way.
func (h *Holding) contradictsIfNotExclusive(other *Holding, ctx *ContextRegister) Explanations {
	if !other.Decided {
		return noExplanations
	}
	if ctx == nil {
		ctx = NewContextRegister()
	}
	if h.Decided {
		return h.impliesIfDecided(other.Negated(), ctx)
	}
	return func(yield func(*ContextRegister) bool) {
		for reg := range reverseEach(other.impliesIfDecided(h, ctx.Reversed())) {
			if !yield(reg) {
				return
			}
		}
		for reg := range reverseEach(other.impliesIfDecided(h.Negated(), ctx.Reversed())) {
			if !yield(reg) {
				return
			}
		}
	}
}

// ExplanationsContradiction yields witnesses that h contradicts
// other, pairing each expanded form of h against each expanded form
// of other.
func (h *Holding) ExplanationsContradiction(other *Holding, ctx *ContextRegister) iter.Seq[*Explanation] {
	return func(yield func(*Explanation) bool) {
		if other == nil {
			return
		}
		for _, left := range h.nonexclusive() {
			for _, right := range other.nonexclusive() {
				for reg := range left.contradictsIfNotExclusive(right, ctx) {
					e := &Explanation{
						Relation: RelationContradiction,
						Left:     left,
						Right:    right,
						Context:  reg,
					}
					if !yield(e) {
						return
					}
				}
			}
		}
	}
}

// Contradicts reports whether h contradicts other.
func (h *Holding) Contradicts(other *Holding) bool {
	if other == nil {
		return false
	}
	for range h.ExplanationsContradiction(other, nil) {
		return true
	}
	return false
}

// ExplainContradiction returns the first witness that h contradicts
// other, or nil.
func (h *Holding) ExplainContradiction(other *Holding) *Explanation {
	for e := range h.ExplanationsContradiction(other, nil) {
		return e
	}
	return nil
}

func (h *Holding) explanationsSameMeaning(other *Holding, ctx *ContextRegister) Explanations {
	if other == nil || h.RuleValid != other.RuleValid || h.Decided != other.Decided {
		return noExplanations
	}
	return h.Rule.ExplanationsSameMeaning(other.Rule, ctx)
}

// ExplanationsSameMeaning yields witnesses that the two Holdings have
// the same meaning: same posture flags and Rules that state the same
// law.
func (h *Holding) ExplanationsSameMeaning(other *Holding, ctx *ContextRegister) iter.Seq[*Explanation] {
	return func(yield func(*Explanation) bool) {
		for reg := range h.explanationsSameMeaning(other, ctx) {
			e := &Explanation{Relation: RelationSameMeaning, Left: h, Right: other, Context: reg}
			if !yield(e) {
				return
			}
		}
	}
}

// Means reports whether the two Holdings have the same meaning.
func (h *Holding) Means(other *Holding) bool {
	for range h.ExplanationsSameMeaning(other, nil) {
		return true
	}
	return false
}

// Add chains other's Rule onto h's. Defined only for pairs of
// decided, affirming Holdings; returns nil otherwise or when the
// Rules cannot be chained.
func (h *Holding) Add(other *Holding) *Holding {
	if other == nil {
		return h
	}
	if !h.Decided || !h.RuleValid || !other.Decided || !other.RuleValid {
		return nil
	}
	for _, left := range h.nonexclusive() {
		for _, right := range other.nonexclusive() {
			if combined := left.Rule.Add(right.Rule); combined != nil {
				return NewHolding(combined)
			}
		}
	}
	return nil
}

func (h *Holding) unionIfNotExclusive(other *Holding) *Holding {
	if !h.Decided && !other.Decided {
		if h.Rule.Implies(other.Rule) {
			return other
		}
		if other.Rule.Implies(h.Rule) {
			return h
		}
		return nil
	}
	if !h.Decided || !other.Decided {
		return nil
	}
	// The union of two rejections is not well defined: rejecting a Rule
	// with an input present and rejecting it with the input absent does
	// not reject the Rule with the input omitted.
	if h.RuleValid != other.RuleValid || !h.RuleValid {
		return nil
	}
	combined := h.Rule.Union(other.Rule)
	if combined == nil {
		return nil
	}
	out := *h
	out.Rule = combined
	out.Exclusive = false
	return &out
}

// Union merges the effects of the two Holdings into one, or returns
// nil when no merged Holding captures both.
func (h *Holding) Union(other *Holding) *Holding {
	if other == nil {
		return h
	}
	for _, left := range h.nonexclusive() {
		for _, right := range other.nonexclusive() {
			if united := left.unionIfNotExclusive(right); united != nil {
				return united
			}
		}
	}
	return nil
}

func (h *Holding) String() string {
	action := "consider UNDECIDED"
	if h.Decided {
		if h.RuleValid {
			action = "ACCEPT"
		} else {
			action = "REJECT"
		}
	}
	exclusive := ""
	if h.Exclusive && len(h.Rule.Procedure.Outputs()) > 0 {
		exclusive = fmt.Sprintf(
			" that the EXCLUSIVE way to reach %s is", h.Rule.Procedure.Outputs()[0])
	}
	rule := "  " + strings.ReplaceAll(h.Rule.String(), "\n", "\n  ")
	return fmt.Sprintf("the Holding to %s%s\n%s", action, exclusive, rule)
}
