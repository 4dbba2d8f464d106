package law

import "fmt"

// StandardsOfProof lists the allowed standards from weakest to
// strongest. A Fact with a stronger standard implies the same Fact
// asserted under a weaker one.
var StandardsOfProof = []string{
	"scintilla of evidence",
	"substantial evidence",
	"preponderance of evidence",
	"clear and convincing",
	"beyond reasonable doubt",
}

func standardIndex(standard string) int {
	for i, s := range StandardsOfProof {
		if s == standard {
			return i
		}
	}
	return -1
}

// Fact is an assertion accepted as factual by a court: a Predicate
// plus the ordered terms filling its slots.
type Fact struct {
	attrs
	predicate *Predicate
	terms     []Factor
}

// NewFact creates a Fact, checking that the terms fill the predicate's
// slots exactly and that any standard of proof is a known one.
func NewFact(predicate *Predicate, terms []Factor, opts ...Option) (*Fact, error) {
	if predicate == nil {
		return nil, fmt.Errorf("a Fact requires a predicate")
	}
	if len(terms) != predicate.SlotCount() {
		return nil, fmt.Errorf(
			"predicate %q has %d slots but %d terms were given",
			predicate.Content(), predicate.SlotCount(), len(terms))
	}
	for i, term := range terms {
		if term == nil {
			return nil, fmt.Errorf("term %d of %q is nil", i, predicate.Content())
		}
	}
	f := &Fact{attrs: applyOptions(opts), predicate: predicate, terms: terms}
	if f.standard != "" && standardIndex(f.standard) < 0 {
		return nil, fmt.Errorf(
			"standard of proof must be one of %v, not %q",
			StandardsOfProof, f.standard)
	}
	return f, nil
}

// MustFact is NewFact for statically known-good inputs.
func MustFact(predicate *Predicate, terms []Factor, opts ...Option) *Fact {
	f, err := NewFact(predicate, terms, opts...)
	if err != nil {
		panic(err)
	}
	return f
}

// Predicate returns the Fact's predicate.
func (f *Fact) Predicate() *Predicate { return f.predicate }

// StandardOfProof returns the standard of proof, or "".
func (f *Fact) StandardOfProof() string { return f.standard }

func (f *Fact) Name() string    { return f.name }
func (f *Fact) IsGeneric() bool { return f.generic }
func (f *Fact) IsAbsent() bool  { return f.absent }
func (f *Fact) Terms() []Factor { return f.terms }
func (f *Fact) kind() string    { return "fact" }

func (f *Fact) GenericTerms() []Factor { return genericsOf(f) }

// WithAbsent returns a copy with the absent flag set as given.
func (f *Fact) WithAbsent(absent bool) *Fact {
	out := *f
	out.absent = absent
	return &out
}

// Negated returns a copy asserting the predicate's opposite.
func (f *Fact) Negated() *Fact {
	out := *f
	out.predicate = f.predicate.Negated()
	return &out
}

func (f *Fact) meansAttrs(other Factor) bool {
	o := other.(*Fact)
	return f.predicate.Means(o.predicate) && f.standard == o.standard
}

func (f *Fact) impliesAttrs(other Factor) bool {
	o := other.(*Fact)
	if (f.standard == "") != (o.standard == "") {
		return false
	}
	if f.standard != "" && standardIndex(f.standard) < standardIndex(o.standard) {
		return false
	}
	return f.predicate.Implies(o.predicate)
}

func (f *Fact) contradictsAttrs(other Factor) bool {
	o := other.(*Fact)
	return f.predicate.Contradicts(o.predicate)
}

// swaps allows the first two terms of a reciprocal predicate to switch
// places.
func (f *Fact) swaps() []*ContextRegister {
	if !f.predicate.Reciprocal() || len(f.terms) < 2 {
		return nil
	}
	swap := NewContextRegister()
	swap, _ = swap.Assign(f.terms[0], f.terms[1])
	swap, ok := swap.Assign(f.terms[1], f.terms[0])
	if !ok {
		return nil
	}
	return []*ContextRegister{swap}
}

func (f *Fact) String() string {
	text := "the fact that " + f.predicate.ContentWith(f.terms)
	if f.standard != "" {
		text += ", proved by " + f.standard
	}
	if f.generic {
		text = "<" + text + ">"
	}
	if f.absent {
		text = "absence of " + text
	}
	return text
}

// Key returns a canonical identity string.
func (f *Fact) Key() string {
	return fmt.Sprintf("fact|%t|%t|%s|%s|[%s]",
		f.absent, f.generic, f.standard, f.predicate.Key(), termKeys(f.terms))
}
