package law

import "fmt"

// Entity is a participant in a legal proposition: a person, place,
// thing, or event. A generic Entity stands for any instance of its
// kind and can be matched to another term during comparison; a
// concrete Entity refers to one specific thing and matches only
// itself.
type Entity struct {
	EntityName string
	Generic    bool
	Plural     bool
}

// NewEntity creates a generic Entity, the common case.
func NewEntity(name string) *Entity {
	return &Entity{EntityName: name, Generic: true}
}

func (e *Entity) Name() string    { return e.EntityName }
func (e *Entity) IsGeneric() bool { return e.Generic }
func (e *Entity) IsAbsent() bool  { return false }
func (e *Entity) Terms() []Factor { return nil }
func (e *Entity) kind() string    { return "entity" }

// GenericTerms returns the Entity itself when generic.
func (e *Entity) GenericTerms() []Factor {
	if e.Generic {
		return []Factor{e}
	}
	return nil
}

func (e *Entity) meansAttrs(other Factor) bool {
	o := other.(*Entity)
	return e.EntityName == o.EntityName && e.Plural == o.Plural
}

func (e *Entity) impliesAttrs(other Factor) bool {
	return e.meansAttrs(other)
}

func (e *Entity) contradictsAttrs(Factor) bool { return false }

func (e *Entity) swaps() []*ContextRegister { return nil }

func (e *Entity) String() string {
	if e.Generic {
		return fmt.Sprintf("<%s>", e.EntityName)
	}
	return e.EntityName
}

// Key returns a canonical identity string.
func (e *Entity) Key() string {
	return fmt.Sprintf("entity|%t|%t|%s", e.Generic, e.Plural, e.EntityName)
}
