package law

import (
	"fmt"
	"sort"
	"strings"
)

// ContextRegister records a correspondence between generic terms of two
// compared structures. Keys come from the left structure and values from
// the right. The mapping is injective in both directions: a term may not
// map to two counterparts, and two terms may not share one counterpart.
type ContextRegister struct {
	order []string
	pairs map[string]registerPair
	byVal map[string]string
}

type registerPair struct {
	key   Factor
	value Factor
}

// NewContextRegister creates an empty register.
func NewContextRegister() *ContextRegister {
	return &ContextRegister{
		pairs: make(map[string]registerPair),
		byVal: make(map[string]string),
	}
}

// Len returns the number of assignments in the register.
func (r *ContextRegister) Len() int {
	if r == nil {
		return 0
	}
	return len(r.order)
}

// Get returns the counterpart assigned to key, or nil.
func (r *ContextRegister) Get(key Factor) Factor {
	if r == nil || key == nil {
		return nil
	}
	if pair, ok := r.pairs[key.Key()]; ok {
		return pair.value
	}
	return nil
}

// GetReverse returns the key assigned to counterpart value, or nil.
func (r *ContextRegister) GetReverse(value Factor) Factor {
	if r == nil || value == nil {
		return nil
	}
	if keyID, ok := r.byVal[value.Key()]; ok {
		return r.pairs[keyID].key
	}
	return nil
}

func (r *ContextRegister) clone() *ContextRegister {
	out := &ContextRegister{
		order: make([]string, len(r.order)),
		pairs: make(map[string]registerPair, len(r.pairs)),
		byVal: make(map[string]string, len(r.byVal)),
	}
	copy(out.order, r.order)
	for k, v := range r.pairs {
		out.pairs[k] = v
	}
	for k, v := range r.byVal {
		out.byVal[k] = v
	}
	return out
}

// Assign returns a copy of the register extended with key -> value.
// It reports false if the assignment conflicts with an existing pair
// in either direction.
func (r *ContextRegister) Assign(key, value Factor) (*ContextRegister, bool) {
	if r == nil {
		r = NewContextRegister()
	}
	keyID := key.Key()
	valID := value.Key()
	if pair, ok := r.pairs[keyID]; ok {
		if pair.value.Key() != valID {
			return nil, false
		}
		return r, true
	}
	if _, taken := r.byVal[valID]; taken {
		return nil, false
	}
	out := r.clone()
	out.order = append(out.order, keyID)
	out.pairs[keyID] = registerPair{key: key, value: value}
	out.byVal[valID] = keyID
	return out, true
}

// MergedWith combines two registers, returning nil when any assignment
// of the incoming register conflicts with this one.
func (r *ContextRegister) MergedWith(incoming *ContextRegister) *ContextRegister {
	if r == nil {
		r = NewContextRegister()
	}
	merged := r
	ok := true
	for _, pair := range incoming.ordered() {
		merged, ok = merged.Assign(pair.key, pair.value)
		if !ok {
			return nil
		}
	}
	return merged
}

// Reversed swaps keys for values.
func (r *ContextRegister) Reversed() *ContextRegister {
	out := NewContextRegister()
	if r == nil {
		return out
	}
	for _, pair := range r.ordered() {
		out, _ = out.Assign(pair.value, pair.key)
	}
	return out
}

// ReplaceKeys builds a register with the same values but with any key
// found in replacements swapped for its replacement. Used to produce
// the alternate registers for interchangeable term orderings.
func (r *ContextRegister) ReplaceKeys(replacements *ContextRegister) *ContextRegister {
	out := NewContextRegister()
	if r == nil {
		return out
	}
	for _, pair := range r.ordered() {
		key := pair.key
		if repl := replacements.Get(key); repl != nil {
			key = repl
		}
		next, ok := out.Assign(key, pair.value)
		if !ok {
			return nil
		}
		out = next
	}
	return out
}

func (r *ContextRegister) ordered() []registerPair {
	if r == nil {
		return nil
	}
	out := make([]registerPair, 0, len(r.order))
	for _, keyID := range r.order {
		out = append(out, r.pairs[keyID])
	}
	return out
}

// Pairs returns the assignments in insertion order as key/value slices.
func (r *ContextRegister) Pairs() ([]Factor, []Factor) {
	pairs := r.ordered()
	keys := make([]Factor, len(pairs))
	values := make([]Factor, len(pairs))
	for i, pair := range pairs {
		keys[i] = pair.key
		values[i] = pair.value
	}
	return keys, values
}

// Fingerprint returns an order-insensitive identity for the register,
// used to discard duplicate branches during the search.
func (r *ContextRegister) Fingerprint() string {
	if r == nil {
		return ""
	}
	lines := make([]string, 0, len(r.order))
	for _, keyID := range r.order {
		lines = append(lines, keyID+"\x00"+r.pairs[keyID].value.Key())
	}
	sort.Strings(lines)
	return strings.Join(lines, "\x01")
}

func (r *ContextRegister) String() string {
	pairs := r.ordered()
	parts := make([]string, len(pairs))
	for i, pair := range pairs {
		parts[i] = fmt.Sprintf("%s -> %s", pair.key, pair.value)
	}
	return "ContextRegister(" + strings.Join(parts, ", ") + ")"
}

// Prose phrases the register as a statement matching analogous terms.
func (r *ContextRegister) Prose() string {
	pairs := r.ordered()
	likes := make([]string, len(pairs))
	for i, pair := range pairs {
		verb := "is"
		if e, ok := pair.key.(*Entity); ok && e.Plural {
			verb = "are"
		}
		likes[i] = fmt.Sprintf("%s %s like %s", pair.key, verb, pair.value)
	}
	if len(likes) > 1 {
		last := len(likes) - 1
		return strings.Join(likes[:last], ", ") + ", and " + likes[last]
	}
	return strings.Join(likes, ", ")
}
