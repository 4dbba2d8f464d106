package law

import (
	"fmt"
	"iter"
	"strings"
)

// Factor is a typed legal proposition: one of Fact, Exhibit, Evidence,
// Pleading, or Allegation, or an Entity standing in a term slot. A
// Factor marked generic is a placeholder matchable against any Factor
// of the same kind; a Factor marked absent asserts the non-occurrence
// of its proposition.
type Factor interface {
	fmt.Stringer

	// Key returns a canonical identity string. Two Factors with equal
	// keys are the same value.
	Key() string
	// Name returns the optional nickname used for back-references.
	Name() string
	// IsGeneric reports whether the whole Factor is a placeholder.
	IsGeneric() bool
	// IsAbsent reports whether the Factor asserts non-occurrence.
	IsAbsent() bool
	// Terms returns the ordered context terms. Positions are
	// significant; entries may be nil for unfilled slots.
	Terms() []Factor
	// GenericTerms returns the Factor itself if generic, otherwise
	// the generic terms of its context terms, ordered and deduplicated.
	GenericTerms() []Factor

	kind() string
	// meansAttrs checks variant attributes for same-meaning, ignoring
	// terms, absence, and genericness.
	meansAttrs(other Factor) bool
	// impliesAttrs checks variant attributes for implication.
	impliesAttrs(other Factor) bool
	// contradictsAttrs checks variant attributes for contradiction of
	// two present Factors. Only Facts can contradict this way.
	contradictsAttrs(other Factor) bool
	// swaps returns term reorderings that preserve meaning, as
	// key-replacement registers.
	swaps() []*ContextRegister
}

// Explanations is a lazy stream of witness registers. Consumers that
// stop ranging stop the search.
type Explanations = iter.Seq[*ContextRegister]

type comparer func(a, b Factor) bool

func noExplanations(func(*ContextRegister) bool) {}

// Implies reports whether a implies b under some witness mapping.
func Implies(a, b Factor) bool {
	if b == nil {
		return true
	}
	return exists(ExplanationsImplication(a, b, nil))
}

// Means reports whether a and b have the same meaning under some
// witness mapping.
func Means(a, b Factor) bool {
	if b == nil {
		return false
	}
	return exists(ExplanationsSameMeaning(a, b, nil))
}

// Contradicts reports whether a and b can be aligned to contradict.
func Contradicts(a, b Factor) bool {
	if b == nil {
		return false
	}
	return exists(ExplanationsContradiction(a, b, nil))
}

// ConsistentWith reports whether some assignment of generic terms
// avoids any contradiction between a and b.
func ConsistentWith(a, b Factor) bool {
	return consistentUnder(a, b, nil)
}

// ExplainImplication returns the first witness register making a imply
// b, or nil.
func ExplainImplication(a, b Factor) *ContextRegister {
	return first(ExplanationsImplication(a, b, nil))
}

// ExplainContradiction returns the first witness register making a
// contradict b, or nil.
func ExplainContradiction(a, b Factor) *ContextRegister {
	return first(ExplanationsContradiction(a, b, nil))
}

// ExplainSameMeaning returns the first witness register making a and b
// mean the same, or nil.
func ExplainSameMeaning(a, b Factor) *ContextRegister {
	return first(ExplanationsSameMeaning(a, b, nil))
}

func exists(seq Explanations) bool {
	for range seq {
		return true
	}
	return false
}

func first(seq Explanations) *ContextRegister {
	for reg := range seq {
		return reg
	}
	return nil
}

// ExplanationsImplication yields registers under which a implies b,
// starting from the partial assignment ctx (nil for empty).
func ExplanationsImplication(a, b Factor, ctx *ContextRegister) Explanations {
	if a == nil || b == nil || a.kind() != b.kind() {
		return noExplanations
	}
	if ctx == nil {
		ctx = NewContextRegister()
	}
	if !a.IsAbsent() {
		if !b.IsAbsent() {
			return impliesIfPresent(a, b, ctx)
		}
		// A present Factor implies the absence of whatever it rules out.
		return contradictsIfPresent(a, b, ctx)
	}
	if b.IsAbsent() {
		return reverseEach(impliesIfPresent(b, a, ctx.Reversed()))
	}
	return reverseEach(contradictsIfPresent(b, a, ctx.Reversed()))
}

// ExplanationsContradiction yields registers under which a and b
// contradict.
func ExplanationsContradiction(a, b Factor, ctx *ContextRegister) Explanations {
	if a == nil || b == nil || a.kind() != b.kind() {
		return noExplanations
	}
	if ctx == nil {
		ctx = NewContextRegister()
	}
	if !a.IsAbsent() {
		if !b.IsAbsent() {
			return contradictsIfPresent(a, b, ctx)
		}
		// Establishing a Factor contradicts an assertion of its absence.
		return impliesIfPresent(a, b, ctx)
	}
	if !b.IsAbsent() {
		return reverseEach(impliesIfPresent(b, a, ctx.Reversed()))
	}
	return reverseEach(contradictsIfPresent(b, a, ctx.Reversed()))
}

// ExplanationsSameMeaning yields registers under which a and b mean
// the same thing.
func ExplanationsSameMeaning(a, b Factor, ctx *ContextRegister) Explanations {
	if a == nil || b == nil || a.kind() != b.kind() ||
		a.IsAbsent() != b.IsAbsent() || a.IsGeneric() != b.IsGeneric() {
		return noExplanations
	}
	if ctx == nil {
		ctx = NewContextRegister()
	}
	return func(yield func(*ContextRegister) bool) {
		if a.IsGeneric() {
			if !genericCompatible(a, b) {
				return
			}
			if merged, ok := ctx.Assign(a, b); ok {
				if !yield(merged) {
					return
				}
			}
			return
		}
		if !a.meansAttrs(b) || !compareTerms(a, b, factorMeans) {
			return
		}
		for reg := range pairingsWithSwaps(a, b, factorMeans, ctx) {
			if !yield(reg) {
				return
			}
		}
	}
}

func reverseEach(seq Explanations) Explanations {
	return func(yield func(*ContextRegister) bool) {
		for reg := range seq {
			if !yield(reg.Reversed()) {
				return
			}
		}
	}
}

// impliesIfPresent yields implication witnesses ignoring the absent
// flags of a and b.
func impliesIfPresent(a, b Factor, ctx *ContextRegister) Explanations {
	return func(yield func(*ContextRegister) bool) {
		if b.IsGeneric() && genericCompatible(a, b) {
			if assigned := ctx.Get(a); assigned == nil || assigned.Key() == b.Key() {
				if merged, ok := ctx.Assign(a, b); ok {
					if !yield(merged) {
						return
					}
				}
			}
		}
		if a.IsGeneric() {
			return
		}
		if !a.impliesAttrs(b) || !compareTerms(a, b, factorImplies) {
			return
		}
		for reg := range pairingsWithSwaps(a, b, factorImplies, ctx) {
			if !yield(reg) {
				return
			}
		}
	}
}

// contradictsIfPresent yields contradiction witnesses ignoring the
// absent flags of a and b.
func contradictsIfPresent(a, b Factor, ctx *ContextRegister) Explanations {
	return func(yield func(*ContextRegister) bool) {
		if !a.contradictsAttrs(b) {
			return
		}
		for reg := range pairingsWithSwaps(a, b, factorImplies, ctx) {
			if !yield(reg) {
				return
			}
		}
	}
}

// factorImplies treats a nil right side as trivially implied, so an
// unfilled slot never blocks implication.
func factorImplies(a, b Factor) bool { return Implies(a, b) }

func factorMeans(a, b Factor) bool { return Means(a, b) }

// factorImpliedBy runs implication right to left, for searches whose
// register keys sit on the implied side.
func factorImpliedBy(a, b Factor) bool { return Implies(b, a) }

// genericCompatible restricts wildcard matching between Entities to
// those of matching plurality.
func genericCompatible(a, b Factor) bool {
	ea, aIsEntity := a.(*Entity)
	eb, bIsEntity := b.(*Entity)
	if aIsEntity && bIsEntity {
		return ea.Plural == eb.Plural
	}
	return true
}

// compareTerms is a cheap pairwise precheck over ordered terms, run
// before the register search to prune hopeless branches.
func compareTerms(a, b Factor, cmp comparer) bool {
	left, right := a.Terms(), b.Terms()
	n := max(len(left), len(right))
	for i := range n {
		var l, r Factor
		if i < len(left) {
			l = left[i]
		}
		if i < len(right) {
			r = right[i]
		}
		if l == nil && r == nil {
			continue
		}
		if l == nil || !cmp(l, r) {
			return false
		}
	}
	return true
}

// pairRegisters yields candidate registers matching a's generic terms
// to b's, assuming cmp already holds between a and b. Equivalent of
// walking both term sequences in order while threading the register.
func pairRegisters(a, b Factor, cmp comparer, seed *ContextRegister) Explanations {
	return func(yield func(*ContextRegister) bool) {
		if a.IsGeneric() || b.IsGeneric() {
			if genericCompatible(a, b) {
				if merged, ok := seed.Assign(a, b); ok {
					yield(merged)
				}
			}
			return
		}
		orderedPairings(a.Terms(), b.Terms(), cmp, seed)(yield)
	}
}

// orderedPairings recursively matches term pairs at corresponding
// positions, threading every candidate register through the remainder
// of the sequence.
func orderedPairings(left, right []Factor, cmp comparer, seed *ContextRegister) Explanations {
	n := max(len(left), len(right))
	var step func(i int, reg *ContextRegister, yield func(*ContextRegister) bool) bool
	step = func(i int, reg *ContextRegister, yield func(*ContextRegister) bool) bool {
		if i == n {
			return yield(reg)
		}
		var l, r Factor
		if i < len(left) {
			l = left[i]
		}
		if i < len(right) {
			r = right[i]
		}
		if l == nil {
			if r != nil {
				return true
			}
			return step(i+1, reg, yield)
		}
		seen := make(map[string]bool)
		for next := range updateContextRegister(l, r, reg, cmp) {
			fp := next.Fingerprint()
			if seen[fp] {
				continue
			}
			seen[fp] = true
			if !step(i+1, next, yield) {
				return false
			}
		}
		return true
	}
	return func(yield func(*ContextRegister) bool) {
		step(0, seed, yield)
	}
}

// updateContextRegister yields every extension of reg consistent with
// matching l against r under cmp, including the alternate registers
// produced by interchangeable term orderings of l.
func updateContextRegister(l, r Factor, reg *ContextRegister, cmp comparer) Explanations {
	return func(yield func(*ContextRegister) bool) {
		if r == nil {
			if cmp(l, nil) {
				yield(reg)
			}
			return
		}
		if !cmp(l, r) {
			return
		}
		pairingsWithSwaps(l, r, cmp, reg)(yield)
	}
}

// pairingsWithSwaps pairs a's terms against b's from a fresh register,
// expands each pairing with a's interchangeable term orderings, and
// merges the variants into ctx, dropping conflicts and duplicates.
func pairingsWithSwaps(a, b Factor, cmp comparer, ctx *ContextRegister) Explanations {
	return func(yield func(*ContextRegister) bool) {
		seen := make(map[string]bool)
		for pairing := range pairRegisters(a, b, cmp, NewContextRegister()) {
			for _, variant := range swapVariants(a, pairing) {
				merged := ctx.MergedWith(variant)
				if merged == nil {
					continue
				}
				fp := merged.Fingerprint()
				if seen[fp] {
					continue
				}
				seen[fp] = true
				if !yield(merged) {
					return
				}
			}
		}
	}
}

// swapVariants returns the pairing register plus each distinct variant
// produced by an interchangeable reordering of l's terms.
func swapVariants(l Factor, pairing *ContextRegister) []*ContextRegister {
	variants := []*ContextRegister{pairing}
	seen := map[string]bool{pairing.Fingerprint(): true}
	for _, swap := range l.swaps() {
		variant := pairing.ReplaceKeys(swap)
		if variant == nil {
			continue
		}
		fp := variant.Fingerprint()
		if !seen[fp] {
			seen[fp] = true
			variants = append(variants, variant)
		}
	}
	return variants
}

// consistentUnder reports whether a contradiction between a and b can
// be avoided, given assignments in fixed that cannot be changed.
func consistentUnder(a, b Factor, fixed *ContextRegister) bool {
	if b == nil || !Contradicts(a, b) {
		return true
	}
	// The contradiction is forced only if every way of aligning the
	// two Factors is already entailed by the fixed assignments.
	for reg := range pairingsWithSwaps(a, b, factorMeans, NewContextRegister()) {
		if !registerEntailedBy(a, reg, fixed) {
			return true
		}
	}
	return false
}

func registerEntailedBy(a Factor, reg, fixed *ContextRegister) bool {
	for _, g := range a.GenericTerms() {
		v := reg.Get(g)
		if v == nil {
			continue
		}
		forward := fixed.Get(g)
		backward := fixed.Get(v)
		if forward != nil && forward.Key() == v.Key() {
			continue
		}
		if backward != nil && backward.Key() == g.Key() {
			continue
		}
		return false
	}
	return true
}

// attrs holds the attributes shared by every Factor variant.
type attrs struct {
	name     string
	absent   bool
	generic  bool
	standard string
}

// Option sets a shared Factor attribute at construction.
type Option func(*attrs)

// Named sets the Factor's nickname, used for back-references.
func Named(name string) Option { return func(a *attrs) { a.name = name } }

// Absent marks the Factor as asserting non-occurrence.
func Absent() Option { return func(a *attrs) { a.absent = true } }

// Generic marks the whole Factor as a placeholder.
func Generic() Option { return func(a *attrs) { a.generic = true } }

// ProvedBy sets a Fact's standard of proof. Ignored by other variants.
func ProvedBy(standard string) Option {
	return func(a *attrs) { a.standard = standard }
}

func applyOptions(opts []Option) attrs {
	var a attrs
	for _, opt := range opts {
		opt(&a)
	}
	return a
}

// termKeys joins the keys of a term sequence, with empty strings for
// unfilled slots.
func termKeys(terms []Factor) string {
	keys := make([]string, len(terms))
	for i, term := range terms {
		if term != nil {
			keys[i] = term.Key()
		}
	}
	return strings.Join(keys, ",")
}

// ReplaceTerms returns a copy of f with every generic term that is a
// key of changes replaced by its assigned value, recursively. Factors
// not touched by changes are shared, not copied.
func ReplaceTerms(f Factor, changes *ContextRegister) Factor {
	if f == nil || changes == nil {
		return f
	}
	if mapped := changes.Get(f); mapped != nil {
		return mapped
	}
	switch t := f.(type) {
	case *Entity:
		return t
	case *Fact:
		out := *t
		out.terms = make([]Factor, len(t.terms))
		for i, term := range t.terms {
			out.terms[i] = ReplaceTerms(term, changes)
		}
		return &out
	case *Exhibit:
		out := *t
		out.statement = replaceFact(t.statement, changes)
		out.statedBy = replaceEntity(t.statedBy, changes)
		return &out
	case *Evidence:
		out := *t
		out.exhibit = replaceExhibit(t.exhibit, changes)
		out.toEffect = replaceFact(t.toEffect, changes)
		return &out
	case *Pleading:
		out := *t
		out.filer = replaceEntity(t.filer, changes)
		return &out
	case *Allegation:
		out := *t
		out.statement = replaceFact(t.statement, changes)
		out.pleading = replacePleading(t.pleading, changes)
		return &out
	}
	return f
}

// markAbsent returns a copy of f asserting non-occurrence. Entities
// carry no absent flag and come back unchanged.
func markAbsent(f Factor) Factor {
	switch t := f.(type) {
	case *Fact:
		return t.WithAbsent(true)
	case *Exhibit:
		out := *t
		out.absent = true
		return &out
	case *Evidence:
		out := *t
		out.absent = true
		return &out
	case *Pleading:
		out := *t
		out.absent = true
		return &out
	case *Allegation:
		out := *t
		out.absent = true
		return &out
	}
	return f
}

func replaceFact(f *Fact, changes *ContextRegister) *Fact {
	if f == nil {
		return nil
	}
	if out, ok := ReplaceTerms(f, changes).(*Fact); ok {
		return out
	}
	return f
}

func replaceEntity(e *Entity, changes *ContextRegister) *Entity {
	if e == nil {
		return nil
	}
	if out, ok := ReplaceTerms(e, changes).(*Entity); ok {
		return out
	}
	return e
}

func replaceExhibit(e *Exhibit, changes *ContextRegister) *Exhibit {
	if e == nil {
		return nil
	}
	if out, ok := ReplaceTerms(e, changes).(*Exhibit); ok {
		return out
	}
	return e
}

func replacePleading(p *Pleading, changes *ContextRegister) *Pleading {
	if p == nil {
		return nil
	}
	if out, ok := ReplaceTerms(p, changes).(*Pleading); ok {
		return out
	}
	return p
}

// genericsOf collects generic terms of a Factor's terms, ordered and
// deduplicated by key.
func genericsOf(self Factor) []Factor {
	if self.IsGeneric() {
		return []Factor{self}
	}
	var out []Factor
	seen := make(map[string]bool)
	for _, term := range self.Terms() {
		if term == nil {
			continue
		}
		for _, g := range term.GenericTerms() {
			if !seen[g.Key()] {
				seen[g.Key()] = true
				out = append(out, g)
			}
		}
	}
	return out
}
