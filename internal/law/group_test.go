package law

import "testing"

func TestFactorGroup_Implies_BipartiteMatching(t *testing.T) {
	rex := NewEntity("Rex")
	tom := NewEntity("Tom")
	x := NewEntity("some dog")
	y := NewEntity("some cat")

	avail := FactorGroup{
		mustFact(t, "{} was a dog", []Factor{rex}),
		mustFact(t, "{} was a cat", []Factor{tom}),
	}
	need := FactorGroup{
		mustFact(t, "{} was a cat", []Factor{y}),
		mustFact(t, "{} was a dog", []Factor{x}),
	}

	reg := first(avail.ExplanationsImplication(need, nil))
	if reg == nil {
		t.Fatal("Expected the group to imply its generic counterpart in any order")
	}
	if got := reg.Get(rex); got == nil || got.Key() != x.Key() {
		t.Errorf("Expected Rex matched to some dog, got %v", got)
	}
	if got := reg.Get(tom); got == nil || got.Key() != y.Key() {
		t.Errorf("Expected Tom matched to some cat, got %v", got)
	}
}

func TestFactorGroup_Implies_SharedGenericMustAgree(t *testing.T) {
	rex := NewEntity("Rex")
	tom := NewEntity("Tom")
	x := NewEntity("the animal")

	avail := FactorGroup{
		mustFact(t, "{} was a dog", []Factor{rex}),
		mustFact(t, "{} was a cat", []Factor{tom}),
	}
	// The same generic entity appears in both needed facts, so one
	// assignment cannot satisfy both.
	need := FactorGroup{
		mustFact(t, "{} was a dog", []Factor{x}),
		mustFact(t, "{} was a cat", []Factor{x}),
	}

	if avail.Implies(need) {
		t.Error("Expected no joint assignment mapping one generic to two entities")
	}
}

func TestFactorGroup_Means_RequiresBothDirections(t *testing.T) {
	rex := NewEntity("Rex")
	x := NewEntity("the animal")
	dog := mustFact(t, "{} was a dog", []Factor{rex})
	dogGeneric := mustFact(t, "{} was a dog", []Factor{x})
	cat := mustFact(t, "{} was a cat", []Factor{rex})

	if !(FactorGroup{dog}).Means(FactorGroup{dogGeneric}) {
		t.Error("Expected single-member groups with matching facts to mean the same")
	}
	if (FactorGroup{dog, cat}).Means(FactorGroup{dogGeneric}) {
		t.Error("Expected groups of different coverage not to mean the same")
	}
}

func TestFactorGroup_ConsistentWith_FixedAssignments(t *testing.T) {
	p, err := NewPredicate("{} was copyrightable", TruthTrue, false)
	if err != nil {
		t.Fatal(err)
	}
	menu := NewEntity("the Lotus menu command hierarchy")
	api := NewEntity("the Java API")
	yes := FactorGroup{MustFact(p, []Factor{menu})}
	no := FactorGroup{MustFact(p.Negated(), []Factor{api})}

	if !yes.ConsistentWith(no, NewContextRegister()) {
		t.Error("Expected consistency while the generics are unassigned")
	}
	fixed, _ := NewContextRegister().Assign(menu, api)
	if yes.ConsistentWith(no, fixed) {
		t.Error("Expected inconsistency once the generics are pinned to each other")
	}
}

func TestFactorSequence_OrderedComparison(t *testing.T) {
	rex := NewEntity("Rex")
	tom := NewEntity("Tom")
	x := NewEntity("the dog")
	y := NewEntity("the cat")

	left := FactorSequence{rex, tom}
	right := FactorSequence{x, y}
	reg := first(left.ExplanationsImplication(right, nil))
	if reg == nil {
		t.Fatal("Expected positional matching to succeed")
	}
	if got := reg.Get(rex); got == nil || got.Key() != x.Key() {
		t.Errorf("Expected Rex matched to the dog at position 0, got %v", got)
	}

	swapped := FactorSequence{tom, rex}
	if first(swapped.ExplanationsSameMeaning(FactorSequence{tom, tom}, nil)) != nil {
		t.Error("Expected injectivity to reject mapping two terms to one")
	}
}
