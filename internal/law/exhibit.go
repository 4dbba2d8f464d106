package law

import (
	"fmt"
	"strings"
)

// Exhibit is a source of information for use in litigation: a form
// descriptor (such as "testimony" or "contract"), the Fact stated by
// the exhibit, and the Entity the statement is attributed to. Any of
// the three may be omitted; an Exhibit with an empty form acts as a
// wildcard on the implied side of a comparison.
type Exhibit struct {
	attrs
	form      string
	statement *Fact
	statedBy  *Entity
}

// NewExhibit creates an Exhibit. statement and statedBy may be nil.
func NewExhibit(form string, statement *Fact, statedBy *Entity, opts ...Option) *Exhibit {
	return &Exhibit{
		attrs:     applyOptions(opts),
		form:      form,
		statement: statement,
		statedBy:  statedBy,
	}
}

// Form returns the form descriptor, or "".
func (e *Exhibit) Form() string { return e.form }

// Statement returns the stated Fact, or nil.
func (e *Exhibit) Statement() *Fact { return e.statement }

// StatedBy returns the attributed Entity, or nil.
func (e *Exhibit) StatedBy() *Entity { return e.statedBy }

func (e *Exhibit) Name() string    { return e.name }
func (e *Exhibit) IsGeneric() bool { return e.generic }
func (e *Exhibit) IsAbsent() bool  { return e.absent }
func (e *Exhibit) kind() string    { return "exhibit" }

func (e *Exhibit) Terms() []Factor {
	terms := make([]Factor, 2)
	if e.statement != nil {
		terms[0] = e.statement
	}
	if e.statedBy != nil {
		terms[1] = e.statedBy
	}
	return terms
}

func (e *Exhibit) GenericTerms() []Factor { return genericsOf(e) }

func (e *Exhibit) meansAttrs(other Factor) bool {
	o := other.(*Exhibit)
	return e.form == o.form
}

func (e *Exhibit) impliesAttrs(other Factor) bool {
	o := other.(*Exhibit)
	return e.form == o.form || o.form == ""
}

func (e *Exhibit) contradictsAttrs(Factor) bool { return false }

func (e *Exhibit) swaps() []*ContextRegister { return nil }

func (e *Exhibit) String() string {
	var parts []string
	if e.form != "" {
		parts = append(parts, e.form)
	} else {
		parts = append(parts, "exhibit")
	}
	if e.statement != nil {
		parts = append(parts, "asserting "+e.statement.String())
	}
	if e.statedBy != nil {
		parts = append(parts, "attributed to "+e.statedBy.String())
	}
	text := strings.Join(parts, ", ")
	if e.generic {
		text = "<" + text + ">"
	}
	if e.absent {
		text = "absence of " + text
	}
	return text
}

// Key returns a canonical identity string.
func (e *Exhibit) Key() string {
	return fmt.Sprintf("exhibit|%t|%t|%s|[%s]",
		e.absent, e.generic, e.form, termKeys(e.Terms()))
}
