package law

import (
	"fmt"
	"strings"
)

// Evidence is an Exhibit offered to prove a Fact: the exhibit itself
// plus the Fact it tends to establish. Either part may be omitted.
type Evidence struct {
	attrs
	exhibit  *Exhibit
	toEffect *Fact
}

// NewEvidence creates Evidence. exhibit and toEffect may be nil.
func NewEvidence(exhibit *Exhibit, toEffect *Fact, opts ...Option) *Evidence {
	return &Evidence{attrs: applyOptions(opts), exhibit: exhibit, toEffect: toEffect}
}

// Exhibit returns the offered exhibit, or nil.
func (e *Evidence) Exhibit() *Exhibit { return e.exhibit }

// ToEffect returns the Fact the evidence tends to prove, or nil.
func (e *Evidence) ToEffect() *Fact { return e.toEffect }

func (e *Evidence) Name() string    { return e.name }
func (e *Evidence) IsGeneric() bool { return e.generic }
func (e *Evidence) IsAbsent() bool  { return e.absent }
func (e *Evidence) kind() string    { return "evidence" }

func (e *Evidence) Terms() []Factor {
	terms := make([]Factor, 2)
	if e.exhibit != nil {
		terms[0] = e.exhibit
	}
	if e.toEffect != nil {
		terms[1] = e.toEffect
	}
	return terms
}

func (e *Evidence) GenericTerms() []Factor { return genericsOf(e) }

func (e *Evidence) meansAttrs(Factor) bool       { return true }
func (e *Evidence) impliesAttrs(Factor) bool     { return true }
func (e *Evidence) contradictsAttrs(Factor) bool { return false }
func (e *Evidence) swaps() []*ContextRegister    { return nil }

func (e *Evidence) String() string {
	parts := []string{"evidence"}
	if e.exhibit != nil {
		parts = append(parts, "of "+e.exhibit.String())
	}
	if e.toEffect != nil {
		parts = append(parts, "which supports "+e.toEffect.String())
	}
	text := strings.Join(parts, " ")
	if e.generic {
		text = "<" + text + ">"
	}
	if e.absent {
		text = "absence of " + text
	}
	return text
}

// Key returns a canonical identity string.
func (e *Evidence) Key() string {
	return fmt.Sprintf("evidence|%t|%t|[%s]", e.absent, e.generic, termKeys(e.Terms()))
}
