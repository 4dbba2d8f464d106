package law

import "fmt"

// Pleading is a document filed by a party to make allegations.
type Pleading struct {
	attrs
	filer *Entity
}

// NewPleading creates a Pleading. filer may be nil.
func NewPleading(filer *Entity, opts ...Option) *Pleading {
	return &Pleading{attrs: applyOptions(opts), filer: filer}
}

// Filer returns the filing Entity, or nil.
func (p *Pleading) Filer() *Entity { return p.filer }

func (p *Pleading) Name() string    { return p.name }
func (p *Pleading) IsGeneric() bool { return p.generic }
func (p *Pleading) IsAbsent() bool  { return p.absent }
func (p *Pleading) kind() string    { return "pleading" }

func (p *Pleading) Terms() []Factor {
	terms := make([]Factor, 1)
	if p.filer != nil {
		terms[0] = p.filer
	}
	return terms
}

func (p *Pleading) GenericTerms() []Factor { return genericsOf(p) }

func (p *Pleading) meansAttrs(Factor) bool       { return true }
func (p *Pleading) impliesAttrs(Factor) bool     { return true }
func (p *Pleading) contradictsAttrs(Factor) bool { return false }
func (p *Pleading) swaps() []*ContextRegister    { return nil }

func (p *Pleading) String() string {
	text := "pleading"
	if p.filer != nil {
		text += " filed by " + p.filer.String()
	}
	if p.generic {
		text = "<" + text + ">"
	}
	if p.absent {
		text = "absence of " + text
	}
	return text
}

// Key returns a canonical identity string.
func (p *Pleading) Key() string {
	return fmt.Sprintf("pleading|%t|%t|[%s]", p.absent, p.generic, termKeys(p.Terms()))
}

// Allegation is a formal assertion of a Fact in a Pleading, made to
// establish a cause of action before the Fact has been found.
type Allegation struct {
	attrs
	statement *Fact
	pleading  *Pleading
}

// NewAllegation creates an Allegation. statement and pleading may be
// nil.
func NewAllegation(statement *Fact, pleading *Pleading, opts ...Option) *Allegation {
	return &Allegation{attrs: applyOptions(opts), statement: statement, pleading: pleading}
}

// Statement returns the alleged Fact, or nil.
func (a *Allegation) Statement() *Fact { return a.statement }

// Pleading returns the Pleading carrying the allegation, or nil.
func (a *Allegation) Pleading() *Pleading { return a.pleading }

func (a *Allegation) Name() string    { return a.name }
func (a *Allegation) IsGeneric() bool { return a.generic }
func (a *Allegation) IsAbsent() bool  { return a.absent }
func (a *Allegation) kind() string    { return "allegation" }

func (a *Allegation) Terms() []Factor {
	terms := make([]Factor, 2)
	if a.statement != nil {
		terms[0] = a.statement
	}
	if a.pleading != nil {
		terms[1] = a.pleading
	}
	return terms
}

func (a *Allegation) GenericTerms() []Factor { return genericsOf(a) }

func (a *Allegation) meansAttrs(Factor) bool       { return true }
func (a *Allegation) impliesAttrs(Factor) bool     { return true }
func (a *Allegation) contradictsAttrs(Factor) bool { return false }
func (a *Allegation) swaps() []*ContextRegister    { return nil }

func (a *Allegation) String() string {
	text := "allegation"
	if a.statement != nil {
		text += " of " + a.statement.String()
	}
	if a.pleading != nil {
		text += " in " + a.pleading.String()
	}
	if a.generic {
		text = "<" + text + ">"
	}
	if a.absent {
		text = "absence of " + text
	}
	return text
}

// Key returns a canonical identity string.
func (a *Allegation) Key() string {
	return fmt.Sprintf("allegation|%t|%t|[%s]", a.absent, a.generic, termKeys(a.Terms()))
}
