package law

import (
	"fmt"
	"strings"
)

// Rule is a Procedure plus its legal posture: the enactments cited in
// support, the enactments it applies despite, and whether the court
// must follow it (mandatory) in every qualifying case (universal).
// Rules are never mutated after construction; combination always
// produces a new Rule.
type Rule struct {
	Procedure         *Procedure
	Enactments        []*Enactment
	EnactmentsDespite []*Enactment
	Mandatory         bool
	Universal         bool
	Generic           bool
	Name              string
}

// NewRule creates a Rule around a Procedure with neither modality
// flag set. Callers adjust the exported fields before first use.
func NewRule(procedure *Procedure) (*Rule, error) {
	if procedure == nil {
		return nil, fmt.Errorf("a Rule requires a procedure")
	}
	return &Rule{Procedure: procedure}, nil
}

// GenericTerms returns the generic terms of the Rule's Procedure, or
// nothing when the whole Rule is a placeholder.
func (r *Rule) GenericTerms() []Factor {
	if r.Generic {
		return nil
	}
	return r.Procedure.GenericTerms()
}

// NewContext returns a copy with the Procedure's generic terms
// renamed per changes.
func (r *Rule) NewContext(changes *ContextRegister) *Rule {
	out := *r
	out.Procedure = r.Procedure.NewContext(changes)
	return &out
}

// NeedsSubsetOfEnactments reports whether r's enactment support is a
// subset of other's. A Rule makes a more powerful statement when it
// relies on fewer enactments and applies despite more of them, so
// this must hold for r to imply other.
func (r *Rule) NeedsSubsetOfEnactments(other *Rule) bool {
	if !enactmentsImply(other.Enactments, r.Enactments) {
		return false
	}
	support := append(append([]*Enactment{}, r.Enactments...), r.EnactmentsDespite...)
	return enactmentsImply(support, other.EnactmentsDespite)
}

func (r *Rule) hasAllSameEnactments(other *Rule) bool {
	groups := [][2][]*Enactment{
		{r.Enactments, other.Enactments},
		{r.EnactmentsDespite, other.EnactmentsDespite},
	}
	for _, pair := range groups {
		for _, otherE := range pair[1] {
			matched := false
			for _, selfE := range pair[0] {
				if otherE.Means(selfE) {
					matched = true
					break
				}
			}
			if !matched {
				return false
			}
		}
	}
	return true
}

// ExplanationsImplication yields registers under which r implies
// other, assuming both are posited by valid, decided Holdings. The
// modality flags form a partial order: mandatory may weaken to
// permissive and universal to particular, never the reverse.
func (r *Rule) ExplanationsImplication(other *Rule, ctx *ContextRegister) Explanations {
	if other == nil {
		return noExplanations
	}
	if !r.NeedsSubsetOfEnactments(other) {
		return noExplanations
	}
	if !r.Mandatory && other.Mandatory {
		return noExplanations
	}
	if !r.Universal && other.Universal {
		return noExplanations
	}
	if r.Universal && !other.Universal {
		return r.Procedure.ExplanationsImplicationAllToSome(other.Procedure, ctx)
	}
	if other.Universal {
		return r.Procedure.ExplanationsImplicationAllToAll(other.Procedure, ctx)
	}
	return r.Procedure.ExplanationsImplication(other.Procedure, ctx)
}

// Implies reports whether r implies other.
func (r *Rule) Implies(other *Rule) bool {
	return exists(r.ExplanationsImplication(other, nil))
}

// ExplanationsContradiction yields registers under which r and other
// cannot both be valid law. Contradiction requires at least one Rule
// to be mandatory and at least one to be universal; two permissive or
// two particular Rules can always coexist.
func (r *Rule) ExplanationsContradiction(other *Rule, ctx *ContextRegister) Explanations {
	if other == nil {
		return noExplanations
	}
	if !r.Mandatory && !other.Mandatory {
		return noExplanations
	}
	if !r.Universal && !other.Universal {
		return noExplanations
	}
	if ctx == nil {
		ctx = NewContextRegister()
	}
	return func(yield func(*ContextRegister) bool) {
		if other.Universal {
			for reg := range r.Procedure.ExplanationsContradictionSomeToAll(other.Procedure, ctx) {
				if !yield(reg) {
					return
				}
			}
		}
		if r.Universal {
			for reg := range reverseEach(other.Procedure.ExplanationsContradictionSomeToAll(r.Procedure, ctx.Reversed())) {
				if !yield(reg) {
					return
				}
			}
		}
	}
}

// Contradicts reports whether r contradicts other.
func (r *Rule) Contradicts(other *Rule) bool {
	return exists(r.ExplanationsContradiction(other, nil))
}

// ExplanationsSameMeaning yields registers under which the two Rules
// state the same law: same Procedure meaning, same enactment support,
// same modality flags.
func (r *Rule) ExplanationsSameMeaning(other *Rule, ctx *ContextRegister) Explanations {
	if other == nil {
		return noExplanations
	}
	if r.Mandatory != other.Mandatory || r.Universal != other.Universal {
		return noExplanations
	}
	if !r.hasAllSameEnactments(other) || !other.hasAllSameEnactments(r) {
		return noExplanations
	}
	return r.Procedure.ExplanationsSameMeaning(other.Procedure, ctx)
}

// Means reports whether the two Rules have the same meaning.
func (r *Rule) Means(other *Rule) bool {
	return exists(r.ExplanationsSameMeaning(other, nil))
}

// Add chains other's Procedure onto r's. Valid only when at least one
// Rule is universal (otherwise nothing guarantees the first Rule's
// outputs suffice to trigger the second) and other's enactment
// support is a subset of r's. The result unions and consolidates the
// enactments; each modality flag is the AND of the operands. Returns
// nil when the Rules cannot be chained.
func (r *Rule) Add(other *Rule) *Rule {
	if other == nil {
		return r
	}
	if !r.Universal && !other.Universal {
		return nil
	}
	if !other.NeedsSubsetOfEnactments(r) {
		return nil
	}
	combined := r.Procedure.Add(other.Procedure)
	if combined == nil {
		return nil
	}
	return &Rule{
		Procedure:         combined,
		Enactments:        ConsolidateEnactments(append(append([]*Enactment{}, r.Enactments...), other.Enactments...)),
		EnactmentsDespite: ConsolidateEnactments(append(append([]*Enactment{}, r.EnactmentsDespite...), other.EnactmentsDespite...)),
		Mandatory:         r.Mandatory && other.Mandatory,
		Universal:         r.Universal && other.Universal,
	}
}

// Union combines the inputs and despite factors of both Rules into
// one. When either Procedure subsumes the other all-to-all, the
// stronger modality flags survive; otherwise at least one Rule must
// be universal and the weaker flags are kept. Returns nil when the
// Procedures cannot be merged.
func (r *Rule) Union(other *Rule) *Rule {
	if other == nil {
		return r
	}
	combined := r.Procedure.Union(other.Procedure)
	if combined == nil {
		return nil
	}
	enactments := ConsolidateEnactments(append(append([]*Enactment{}, r.Enactments...), other.Enactments...))
	despite := ConsolidateEnactments(append(append([]*Enactment{}, r.EnactmentsDespite...), other.EnactmentsDespite...))
	if r.Procedure.ImpliesAllToAll(other.Procedure) || other.Procedure.ImpliesAllToAll(r.Procedure) {
		return &Rule{
			Procedure:         combined,
			Enactments:        enactments,
			EnactmentsDespite: despite,
			Mandatory:         r.Mandatory || other.Mandatory,
			Universal:         r.Universal || other.Universal,
		}
	}
	if !r.Universal && !other.Universal {
		return nil
	}
	return &Rule{
		Procedure:         combined,
		Enactments:        enactments,
		EnactmentsDespite: despite,
		Mandatory:         r.Mandatory && other.Mandatory,
		Universal:         r.Universal && other.Universal,
	}
}

// Contrapositives derives the Rules implied by treating r's inputs as
// the only way to reach its output: in the absence of any input, the
// output must be absent too. Requires exactly one present output and
// at least one input.
func (r *Rule) Contrapositives() ([]*Rule, error) {
	outputs := r.Procedure.Outputs()
	if len(outputs) != 1 {
		return nil, fmt.Errorf(
			"an exclusive Rule must have exactly one output, not %d", len(outputs))
	}
	if outputs[0].IsAbsent() {
		return nil, fmt.Errorf("an exclusive Rule cannot have an absent output")
	}
	inputs := r.Procedure.Inputs()
	if len(inputs) == 0 {
		return nil, fmt.Errorf("an exclusive Rule must have at least one input")
	}
	absentOutput := markAbsent(outputs[0])
	var out []*Rule
	for _, input := range inputs {
		flipped, err := NewProcedure(
			FactorGroup{absentOutput}, FactorGroup{markAbsent(input)}, nil)
		if err != nil {
			return nil, err
		}
		out = append(out, &Rule{
			Procedure:         flipped,
			Enactments:        r.Enactments,
			EnactmentsDespite: r.EnactmentsDespite,
			Mandatory:         !r.Mandatory,
			Universal:         !r.Universal,
		})
	}
	return out, nil
}

func (r *Rule) String() string {
	var b strings.Builder
	b.WriteString("the Rule that the court ")
	if r.Mandatory {
		b.WriteString("MUST ")
	} else {
		b.WriteString("MAY ")
	}
	if r.Universal {
		b.WriteString("ALWAYS ")
	} else {
		b.WriteString("SOMETIMES ")
	}
	b.WriteString("impose the ")
	b.WriteString(r.Procedure.String())
	if len(r.Enactments) > 0 {
		parts := make([]string, len(r.Enactments))
		for i, e := range r.Enactments {
			parts[i] = e.String()
		}
		b.WriteString("; GIVEN the ENACTMENTS: ")
		b.WriteString(strings.Join(parts, ", "))
	}
	if len(r.EnactmentsDespite) > 0 {
		parts := make([]string, len(r.EnactmentsDespite))
		for i, e := range r.EnactmentsDespite {
			parts[i] = e.String()
		}
		b.WriteString("; DESPITE the ENACTMENTS: ")
		b.WriteString(strings.Join(parts, ", "))
	}
	return b.String()
}
