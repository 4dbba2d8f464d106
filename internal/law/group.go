package law

import "strings"

// FactorGroup is an unordered collection of Factors used together in a
// comparison, such as the inputs of a Procedure. Membership matters;
// position does not.
type FactorGroup []Factor

// FactorSequence is an ordered list of Factors where position is the
// correspondence key, such as the terms inside a single Fact.
type FactorSequence []Factor

// ExplanationsImplication yields registers under which every member of
// other is implied by some member of g, all sharing one consistent
// assignment.
func (g FactorGroup) ExplanationsImplication(other FactorGroup, ctx *ContextRegister) Explanations {
	return unorderedMatches(g, other, factorImplies, ctx)
}

// Implies reports whether some shared assignment makes every member of
// other implied by a member of g.
func (g FactorGroup) Implies(other FactorGroup) bool {
	return exists(g.ExplanationsImplication(other, nil))
}

// ExplanationsSameMeaning yields registers under which g and other
// contain factors with matching meanings in both directions.
func (g FactorGroup) ExplanationsSameMeaning(other FactorGroup, ctx *ContextRegister) Explanations {
	if ctx == nil {
		ctx = NewContextRegister()
	}
	return func(yield func(*ContextRegister) bool) {
		for reg := range unorderedCovers(g, other, factorMeans, ctx) {
			for out := range unorderedMatches(g, other, factorMeans, reg) {
				if !yield(out) {
					return
				}
			}
		}
	}
}

// Means reports whether the two groups have the same meaning.
func (g FactorGroup) Means(other FactorGroup) bool {
	return exists(g.ExplanationsSameMeaning(other, nil))
}

// ConsistentWith reports whether the two groups can avoid contradicting
// each other, given assignments in fixed that cannot be changed.
func (g FactorGroup) ConsistentWith(other FactorGroup, fixed *ContextRegister) bool {
	for _, sf := range g {
		for _, of := range other {
			if !consistentUnder(sf, of, fixed) {
				return false
			}
		}
	}
	return true
}

// Contradicts reports whether any member of g can be aligned to
// contradict a member of other.
func (g FactorGroup) Contradicts(other FactorGroup) bool {
	for _, sf := range g {
		for _, of := range other {
			if Contradicts(sf, of) {
				return true
			}
		}
	}
	return false
}

// GenericTerms collects the generic terms of every member, ordered and
// deduplicated.
func (g FactorGroup) GenericTerms() []Factor {
	var out []Factor
	seen := make(map[string]bool)
	for _, factor := range g {
		for _, generic := range factor.GenericTerms() {
			if !seen[generic.Key()] {
				seen[generic.Key()] = true
				out = append(out, generic)
			}
		}
	}
	return out
}

func (g FactorGroup) String() string {
	parts := make([]string, len(g))
	for i, factor := range g {
		parts[i] = factor.String()
	}
	return strings.Join(parts, "; ")
}

// ExplanationsImplication yields registers under which each member of
// g implies the member of other at the same position. A nil slot on
// the right is trivially implied; a nil slot on the left fails unless
// the right is nil too.
func (s FactorSequence) ExplanationsImplication(other FactorSequence, ctx *ContextRegister) Explanations {
	if ctx == nil {
		ctx = NewContextRegister()
	}
	return orderedPairings(s, other, factorImplies, ctx)
}

// ExplanationsSameMeaning yields registers under which corresponding
// members of the two sequences mean the same thing.
func (s FactorSequence) ExplanationsSameMeaning(other FactorSequence, ctx *ContextRegister) Explanations {
	if ctx == nil {
		ctx = NewContextRegister()
	}
	return orderedPairings(s, other, factorMeans, ctx)
}

// unorderedMatches is the bipartite backtracking search: every factor
// in need must satisfy cmp with some factor in avail, all extensions
// sharing one register. Factors in avail may go unused.
func unorderedMatches(avail FactorGroup, need []Factor, cmp comparer, matches *ContextRegister) Explanations {
	return func(yield func(*ContextRegister) bool) {
		if matches == nil {
			matches = NewContextRegister()
		}
		var step func(need []Factor, matches *ContextRegister) bool
		step = func(need []Factor, matches *ContextRegister) bool {
			if len(need) == 0 {
				return yield(matches)
			}
			target := need[len(need)-1]
			rest := need[:len(need)-1]
			for _, candidate := range avail {
				if !cmp(candidate, target) {
					continue
				}
				for next := range updateContextRegister(candidate, target, matches, cmp) {
					if !step(rest, next) {
						return false
					}
				}
			}
			return true
		}
		step(need, matches)
	}
}

// unorderedCovers is the same search keyed from the other end: every
// factor in need must satisfy cmp against some factor in avail, with
// registers keyed by the need side.
func unorderedCovers(need []Factor, avail FactorGroup, cmp comparer, matches *ContextRegister) Explanations {
	return func(yield func(*ContextRegister) bool) {
		if matches == nil {
			matches = NewContextRegister()
		}
		var step func(need []Factor, matches *ContextRegister) bool
		step = func(need []Factor, matches *ContextRegister) bool {
			if len(need) == 0 {
				return yield(matches)
			}
			target := need[len(need)-1]
			rest := need[:len(need)-1]
			for _, candidate := range avail {
				if !cmp(target, candidate) {
					continue
				}
				for next := range updateContextRegister(target, candidate, matches, cmp) {
					if !step(rest, next) {
						return false
					}
				}
			}
			return true
		}
		step(need, matches)
	}
}

// analogy pairs a group that must be fully matched with the group its
// matches may come from. Register keys stay on one chosen side of the
// comparison so that several analogies can share a register: with
// keyNeed false the keys come from avail, with keyNeed true from need.
type analogy struct {
	need    FactorGroup
	avail   FactorGroup
	cmp     comparer
	keyNeed bool
}

func (rel analogy) matches(reg *ContextRegister) Explanations {
	if rel.keyNeed {
		return unorderedCovers(rel.need, rel.avail, rel.cmp, reg)
	}
	return unorderedMatches(rel.avail, rel.need, rel.cmp, reg)
}

// allAnalogyMatches threads one register through every analogy in
// turn, yielding the assignments that satisfy them all jointly.
func allAnalogyMatches(relations []analogy, seed *ContextRegister) Explanations {
	return func(yield func(*ContextRegister) bool) {
		if seed == nil {
			seed = NewContextRegister()
		}
		seen := make(map[string]bool)
		var step func(relations []analogy, reg *ContextRegister) bool
		step = func(relations []analogy, reg *ContextRegister) bool {
			if len(relations) == 0 {
				fp := reg.Fingerprint()
				if seen[fp] {
					return true
				}
				seen[fp] = true
				return yield(reg)
			}
			for next := range relations[0].matches(reg) {
				if !step(relations[1:], next) {
					return false
				}
			}
			return true
		}
		step(relations, seed)
	}
}
