package law

import (
	"fmt"
	"strings"
)

// Relation names the comparison an Explanation is a witness for.
type Relation string

const (
	RelationImplication   Relation = "IMPLIES"
	RelationContradiction Relation = "CONTRADICTS"
	RelationSameMeaning   Relation = "MEANS"
)

// Explanation packages a witness register with the two Holdings it
// relates, ready for presentation by a renderer.
type Explanation struct {
	Relation Relation
	Left     *Holding
	Right    *Holding
	Context  *ContextRegister
}

func (e *Explanation) String() string {
	var b strings.Builder
	if e.Context != nil && e.Context.Len() > 0 {
		fmt.Fprintf(&b, "Because %s,\n", e.Context.Prose())
	}
	indent := func(text string) string {
		return "  " + strings.ReplaceAll(text, "\n", "\n  ")
	}
	b.WriteString(indent(e.Left.String()))
	b.WriteString("\n")
	b.WriteString(string(e.Relation))
	b.WriteString("\n")
	b.WriteString(indent(e.Right.String()))
	return b.String()
}
