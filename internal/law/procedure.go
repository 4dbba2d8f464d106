package law

import (
	"fmt"
	"strings"
)

// Procedure is a legal workflow: the Factors a court must find
// (inputs), the Factors it may then establish (outputs), and the
// Factors that do not defeat the workflow even though they might seem
// to cut against it (despite).
type Procedure struct {
	outputs FactorGroup
	inputs  FactorGroup
	despite FactorGroup
}

// NewProcedure creates a Procedure, rejecting nil members and Factors
// listed as both an output and a despite factor.
func NewProcedure(outputs, inputs, despite FactorGroup) (*Procedure, error) {
	groups := map[string]FactorGroup{"outputs": outputs, "inputs": inputs, "despite": despite}
	for role, group := range groups {
		for i, factor := range group {
			if factor == nil {
				return nil, fmt.Errorf("%s factor %d is nil", role, i)
			}
		}
	}
	for _, out := range outputs {
		for _, d := range despite {
			if out.Key() == d.Key() {
				return nil, fmt.Errorf(
					"%s cannot be both an output and a despite factor", out)
			}
		}
	}
	return &Procedure{outputs: outputs, inputs: inputs, despite: despite}, nil
}

// MustProcedure is NewProcedure for statically known-good inputs.
func MustProcedure(outputs, inputs, despite FactorGroup) *Procedure {
	p, err := NewProcedure(outputs, inputs, despite)
	if err != nil {
		panic(err)
	}
	return p
}

// Outputs returns the Factors the Procedure establishes.
func (p *Procedure) Outputs() FactorGroup { return p.outputs }

// Inputs returns the Factors the Procedure requires.
func (p *Procedure) Inputs() FactorGroup { return p.inputs }

// Despite returns the Factors that do not defeat the Procedure.
func (p *Procedure) Despite() FactorGroup { return p.despite }

func (p *Procedure) despiteOrInputs() FactorGroup {
	return append(append(FactorGroup{}, p.despite...), p.inputs...)
}

func (p *Procedure) outputsOrInputs() FactorGroup {
	return append(append(FactorGroup{}, p.outputs...), p.inputs...)
}

// GenericTerms collects the generic terms across all three groups,
// ordered and deduplicated.
func (p *Procedure) GenericTerms() []Factor {
	var out []Factor
	seen := make(map[string]bool)
	for _, group := range []FactorGroup{p.outputs, p.inputs, p.despite} {
		for _, g := range group.GenericTerms() {
			if !seen[g.Key()] {
				seen[g.Key()] = true
				out = append(out, g)
			}
		}
	}
	return out
}

// NewContext returns a copy with generic terms renamed per changes.
func (p *Procedure) NewContext(changes *ContextRegister) *Procedure {
	replace := func(group FactorGroup) FactorGroup {
		out := make(FactorGroup, len(group))
		for i, factor := range group {
			out[i] = ReplaceTerms(factor, changes)
		}
		return out
	}
	return &Procedure{
		outputs: replace(p.outputs),
		inputs:  replace(p.inputs),
		despite: replace(p.despite),
	}
}

// ExplanationsImplication yields registers under which p, applying in
// some cases, implies that other applies in some cases: every output
// and input of other is implied by one of p's, and every despite
// factor of other by one of p's despite factors or inputs, all under
// one joint assignment.
func (p *Procedure) ExplanationsImplication(other *Procedure, ctx *ContextRegister) Explanations {
	if other == nil {
		return noExplanations
	}
	return allAnalogyMatches([]analogy{
		{need: other.outputs, avail: p.outputs, cmp: factorImplies},
		{need: other.inputs, avail: p.inputs, cmp: factorImplies},
		{need: other.despite, avail: p.despiteOrInputs(), cmp: factorImplies},
	}, ctx)
}

// Implies reports the some-to-some implication of ExplanationsImplication.
func (p *Procedure) Implies(other *Procedure) bool {
	return exists(p.ExplanationsImplication(other, nil))
}

// ExplanationsSameMeaning yields registers under which the two
// Procedures hold all the same Factors in the same roles.
func (p *Procedure) ExplanationsSameMeaning(other *Procedure, ctx *ContextRegister) Explanations {
	if other == nil {
		return noExplanations
	}
	forward := []analogy{
		{need: p.outputs, avail: other.outputs, cmp: factorMeans, keyNeed: true},
		{need: p.inputs, avail: other.inputs, cmp: factorMeans, keyNeed: true},
		{need: p.despite, avail: other.despite, cmp: factorMeans, keyNeed: true},
	}
	backward := []analogy{
		{need: other.outputs, avail: p.outputs, cmp: factorMeans},
		{need: other.inputs, avail: p.inputs, cmp: factorMeans},
		{need: other.despite, avail: p.despite, cmp: factorMeans},
	}
	return func(yield func(*ContextRegister) bool) {
		for reg := range allAnalogyMatches(forward, ctx) {
			for out := range allAnalogyMatches(backward, reg) {
				if !yield(out) {
					return
				}
			}
		}
	}
}

// Means reports whether the two Procedures have the same meaning.
func (p *Procedure) Means(other *Procedure) bool {
	return exists(p.ExplanationsSameMeaning(other, nil))
}

// ExplanationsImplicationAllToAll yields registers under which p
// applying in all cases implies that other applies in all cases:
// other's outputs are implied by p's, p's inputs are implied by
// other's, and p's inputs stay consistent with other's despite
// factors under the joint assignment.
func (p *Procedure) ExplanationsImplicationAllToAll(other *Procedure, ctx *ContextRegister) Explanations {
	if other == nil {
		return noExplanations
	}
	return func(yield func(*ContextRegister) bool) {
		for reg := range p.ExplanationsSameMeaning(other, ctx) {
			if !yield(reg) {
				return
			}
		}
		relations := []analogy{
			{need: other.outputs, avail: p.outputs, cmp: factorImplies},
			{need: p.inputs, avail: other.inputs, cmp: factorImpliedBy, keyNeed: true},
		}
		for matches := range allAnalogyMatches(relations, ctx) {
			if p.inputs.ConsistentWith(other.despite, matches) {
				if !yield(matches) {
					return
				}
			}
		}
	}
}

// ImpliesAllToAll reports the all-to-all form of implication.
func (p *Procedure) ImpliesAllToAll(other *Procedure) bool {
	if other == nil {
		return true
	}
	return exists(p.ExplanationsImplicationAllToAll(other, nil))
}

// ExplanationsImplicationAllToSome yields registers under which p
// applying in all cases implies that other applies in some cases.
// Weaker than the all-to-all form: p's input list is not treated as
// exhaustive, so other may require more inputs, but nothing in
// other's inputs or despite factors may contradict p's inputs.
func (p *Procedure) ExplanationsImplicationAllToSome(other *Procedure, ctx *ContextRegister) Explanations {
	if other == nil {
		return noExplanations
	}
	return func(yield func(*ContextRegister) bool) {
		for reg := range p.ExplanationsImplicationAllToAll(other, ctx) {
			if !yield(reg) {
				return
			}
		}
		relations := []analogy{
			{need: other.outputs, avail: p.outputs, cmp: factorImplies},
			{need: other.despite, avail: p.despiteOrInputs(), cmp: factorImplies},
		}
		otherDespiteOrInputs := other.despiteOrInputs()
		for matches := range allAnalogyMatches(relations, ctx) {
			if p.inputs.ConsistentWith(otherDespiteOrInputs, matches) {
				if !yield(matches) {
					return
				}
			}
		}
	}
}

// ImpliesAllToSome reports the all-to-some form of implication.
func (p *Procedure) ImpliesAllToSome(other *Procedure) bool {
	if other == nil {
		return true
	}
	return exists(p.ExplanationsImplicationAllToSome(other, nil))
}

// ExplanationsContradictionSomeToAll yields registers under which p
// applying in some cases contradicts other applying in all cases: a
// joint context satisfies both input sets yet makes an output of p
// contradict an output of other.
func (p *Procedure) ExplanationsContradictionSomeToAll(other *Procedure, ctx *ContextRegister) Explanations {
	if other == nil {
		return noExplanations
	}
	relations := []analogy{
		{need: other.inputs, avail: p.despiteOrInputs(), cmp: factorImplies},
	}
	return func(yield func(*ContextRegister) bool) {
		for matches := range allAnalogyMatches(relations, ctx) {
			if p.contradictionBetweenOutputs(other, matches) {
				if !yield(matches) {
					return
				}
			}
		}
	}
}

// ContradictsSomeToAll reports the some-to-all form of contradiction.
func (p *Procedure) ContradictsSomeToAll(other *Procedure) bool {
	return exists(p.ExplanationsContradictionSomeToAll(other, nil))
}

// contradictionBetweenOutputs reports whether an output of p and an
// output of other contradict with their generic terms aligned the way
// matches already fixed them.
func (p *Procedure) contradictionBetweenOutputs(other *Procedure, matches *ContextRegister) bool {
	for _, selfFactor := range p.outputs {
		for _, otherFactor := range other.outputs {
			if !Contradicts(selfFactor, otherFactor) {
				continue
			}
			selfGenerics := selfFactor.GenericTerms()
			otherGenerics := otherFactor.GenericTerms()
			aligned := true
			for i := 0; i < min(len(selfGenerics), len(otherGenerics)); i++ {
				assigned := matches.Get(selfGenerics[i])
				if assigned == nil || assigned.Key() != otherGenerics[i].Key() {
					aligned = false
					break
				}
			}
			if aligned {
				return true
			}
		}
	}
	return false
}

// TriggersNext yields registers showing how the Factors left standing
// after p fires could satisfy other's inputs. Keys are p's generic
// terms; reverse a register to rename other into p's context.
func (p *Procedure) TriggersNext(other *Procedure) Explanations {
	return allAnalogyMatches([]analogy{
		{need: other.inputs, avail: p.outputsOrInputs(), cmp: factorImplies},
		{need: other.despite, avail: p.despiteOrInputs(), cmp: factorImplies},
	}, nil)
}

// Add chains other onto p: valid only when every input of other is
// discharged by p's outputs or already present among p's inputs and
// despite factors. The result keeps p's inputs plus any of other's
// inputs not discharged by p's outputs, unions the outputs, and
// unions the despite factors deduplicated by implication. Returns nil
// when no consistent discharge mapping exists.
func (p *Procedure) Add(other *Procedure) *Procedure {
	if other == nil {
		return p
	}
	matches := first(p.TriggersNext(other))
	if matches == nil {
		return nil
	}
	renamed := other.NewContext(matches.Reversed())

	inputs := append(FactorGroup{}, p.inputs...)
	for _, in := range renamed.inputs {
		discharged := false
		for _, out := range p.outputs {
			if Implies(out, in) {
				discharged = true
				break
			}
		}
		if !discharged && !containsKey(inputs, in) {
			inputs = append(inputs, in)
		}
	}

	outputs := append(FactorGroup{}, p.outputs...)
	for _, out := range renamed.outputs {
		if !containsKey(outputs, out) {
			outputs = append(outputs, out)
		}
	}

	despite := dedupeByImplication(append(append(FactorGroup{}, p.despite...), renamed.despite...))

	combined, err := NewProcedure(outputs, inputs, despite)
	if err != nil {
		return nil
	}
	return combined
}

// Union merges the groups of the two Procedures, keeping the broadest
// of any pair related by implication. Returns nil if an input or
// output of one contradicts a counterpart in the other; despite
// factors are allowed to conflict.
func (p *Procedure) Union(other *Procedure) *Procedure {
	if other == nil {
		return p
	}
	combine := func(selfList, otherList FactorGroup, allowContradictions bool) (FactorGroup, bool) {
		var merged FactorGroup
		for _, selfFactor := range selfList {
			broadest := selfFactor
			for _, otherFactor := range otherList {
				if !allowContradictions && Contradicts(otherFactor, selfFactor) {
					return nil, false
				}
				if Implies(otherFactor, selfFactor) {
					broadest = otherFactor
				}
			}
			merged = append(merged, broadest)
		}
		for _, otherFactor := range otherList {
			if !containsKey(merged, otherFactor) {
				merged = append(merged, otherFactor)
			}
		}
		return merged, true
	}
	inputs, ok := combine(p.inputs, other.inputs, false)
	if !ok {
		return nil
	}
	outputs, ok := combine(p.outputs, other.outputs, false)
	if !ok {
		return nil
	}
	despite, _ := combine(p.despite, other.despite, true)
	combined, err := NewProcedure(outputs, inputs, despite)
	if err != nil {
		return nil
	}
	return combined
}

func containsKey(group FactorGroup, factor Factor) bool {
	for _, member := range group {
		if member.Key() == factor.Key() {
			return true
		}
	}
	return false
}

// dedupeByImplication drops any member already implied by another
// kept member.
func dedupeByImplication(group FactorGroup) FactorGroup {
	var kept FactorGroup
	for _, candidate := range group {
		subsumed := false
		for _, member := range kept {
			if Implies(member, candidate) {
				subsumed = true
				break
			}
		}
		if subsumed {
			continue
		}
		next := FactorGroup{candidate}
		for _, member := range kept {
			if !Implies(candidate, member) {
				next = append(next, member)
			}
		}
		kept = next
	}
	return kept
}

func (p *Procedure) String() string {
	var b strings.Builder
	b.WriteString("RESULT: ")
	b.WriteString(p.outputs.String())
	if len(p.inputs) > 0 {
		b.WriteString("; GIVEN: ")
		b.WriteString(p.inputs.String())
	}
	if len(p.despite) > 0 {
		b.WriteString("; DESPITE: ")
		b.WriteString(p.despite.String())
	}
	return b.String()
}
