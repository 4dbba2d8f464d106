package law

import (
	"strings"
	"testing"
)

func copyrightHoldings(t *testing.T) (*Holding, *Holding) {
	t.Helper()
	p, err := NewPredicate("{} was copyrightable", TruthTrue, false)
	if err != nil {
		t.Fatal(err)
	}
	menu := NewEntity("the Lotus menu command hierarchy")
	api := NewEntity("the Java API")

	holds := NewHolding(&Rule{
		Procedure: MustProcedure(
			FactorGroup{MustFact(p, []Factor{menu})},
			FactorGroup{mustFact(t, "{} was an original work", []Factor{menu})},
			nil,
		),
		Mandatory: true,
		Universal: true,
	})
	denies := NewHolding(&Rule{
		Procedure: MustProcedure(
			FactorGroup{MustFact(p.Negated(), []Factor{api})},
			FactorGroup{mustFact(t, "{} was an original work", []Factor{api})},
			nil,
		),
		Mandatory: true,
		Universal: true,
	})
	return holds, denies
}

func TestHolding_Contradicts_OppositeOutputs(t *testing.T) {
	holds, denies := copyrightHoldings(t)
	if !holds.Contradicts(denies) {
		t.Fatal("Expected contradiction between holdings with opposite outputs")
	}
	e := holds.ExplainContradiction(denies)
	if e == nil {
		t.Fatal("Expected a packaged explanation")
	}
	if e.Relation != RelationContradiction {
		t.Errorf("Expected a contradiction explanation, got %s", e.Relation)
	}
	menu := NewEntity("the Lotus menu command hierarchy")
	api := NewEntity("the Java API")
	if got := e.Context.Get(menu); got == nil || got.Key() != api.Key() {
		t.Errorf("Expected the witness to pair the two works, got %v", got)
	}
	if !strings.Contains(e.String(), "CONTRADICTS") {
		t.Errorf("Expected the rendered explanation to name the relation, got %q", e.String())
	}
}

func TestHolding_Contradicts_RejectionOfImpliedRule(t *testing.T) {
	strong := NewHolding(searchRule(t, true, true))
	weakRejected := NewHolding(searchRule(t, false, false))
	weakRejected.RuleValid = false

	// Affirming a strong rule contradicts rejecting a weaker rule the
	// strong one implies.
	if !strong.Contradicts(weakRejected) {
		t.Error("Expected affirmance to contradict rejection of an implied rule")
	}
	if !weakRejected.Contradicts(strong) {
		t.Error("Expected the contradiction to hold from the rejecting side too")
	}
}

func TestHolding_Implies_TwoRejectionsReverse(t *testing.T) {
	strongRejected := NewHolding(searchRule(t, true, true))
	strongRejected.RuleValid = false
	weakRejected := NewHolding(searchRule(t, false, false))
	weakRejected.RuleValid = false

	// Rejecting the weak rule rejects everything stronger than it.
	if !weakRejected.Implies(strongRejected) {
		t.Error("Expected rejection of the weak rule to imply rejection of the strong one")
	}
	if strongRejected.Implies(weakRejected) {
		t.Error("Expected rejection of the strong rule not to imply rejection of the weak one")
	}
}

func TestHolding_Undecided(t *testing.T) {
	undecided := NewHolding(searchRule(t, true, true))
	undecided.Decided = false
	same := NewHolding(searchRule(t, true, true))
	same.Decided = false
	negatedSame := same.Negated()

	if !undecided.Implies(same) {
		t.Error("Expected an undecided holding to imply the matching undecided holding")
	}
	if !undecided.Implies(negatedSame) {
		t.Error("Expected an undecided holding to imply the negation of its undecided form")
	}

	decided := NewHolding(searchRule(t, true, true))
	if undecided.Implies(decided) || decided.Implies(undecided) {
		t.Error("Expected no implication between decided and undecided holdings")
	}

	// Deciding a rule contradicts a later holding that the same rule
	// is undecided.
	if !undecided.Contradicts(decided) {
		t.Error("Expected an undecided holding to contradict a decision of the same rule")
	}
}

func TestHolding_Negated(t *testing.T) {
	h := NewHolding(searchRule(t, true, true))
	n := h.Negated()
	if n.RuleValid {
		t.Error("Expected negation to flip rule validity")
	}
	if !h.Contradicts(n) {
		t.Error("Expected a holding to contradict its negation")
	}
	if h.RuleValid != true {
		t.Error("Expected the original holding to be unchanged")
	}
}

func TestHolding_Exclusive_Validation(t *testing.T) {
	h := NewHolding(searchRule(t, true, true))
	h.Exclusive = true
	if err := h.Validate(); err != nil {
		t.Errorf("Expected a valid exclusive holding, got %v", err)
	}

	h.RuleValid = false
	if err := h.Validate(); err == nil {
		t.Error("Expected error for exclusive holding rejecting its rule")
	}
	h.RuleValid = true
	h.Decided = false
	if err := h.Validate(); err == nil {
		t.Error("Expected error for exclusive holding left undecided")
	}
}

func TestHolding_Exclusive_ExpandsContrapositives(t *testing.T) {
	h := NewHolding(searchRule(t, true, true))
	h.Exclusive = true
	expanded, err := h.NonexclusiveHoldings()
	if err != nil {
		t.Fatalf("NonexclusiveHoldings: %v", err)
	}
	if len(expanded) != 2 {
		t.Fatalf("Expected the holding plus one contrapositive, got %d", len(expanded))
	}
	if expanded[0].Exclusive {
		t.Error("Expected the exclusive flag cleared on the expanded holding")
	}
	contra := expanded[1]
	if !contra.Rule.Procedure.Outputs()[0].IsAbsent() {
		t.Error("Expected the contrapositive to assert the output's absence")
	}
}

func TestHolding_Exclusive_ContradictsViaContrapositive(t *testing.T) {
	officer := NewEntity("the officer")
	house := NewEntity("the house")
	unlawful := mustFact(t, "{} conducted an unlawful search of {}", []Factor{officer, house})
	entered := mustFact(t, "{} entered {} without a warrant", []Factor{officer, house})

	exclusive := NewHolding(&Rule{
		Procedure: MustProcedure(FactorGroup{unlawful}, FactorGroup{entered}, nil),
		Mandatory: true,
		Universal: true,
	})
	exclusive.Exclusive = true

	// A holding that the search was unlawful even though no warrantless
	// entry occurred contradicts the contrapositive inferred from
	// exclusivity.
	without := NewHolding(&Rule{
		Procedure: MustProcedure(
			FactorGroup{unlawful},
			FactorGroup{entered.WithAbsent(true)},
			nil,
		),
		Mandatory: true,
		Universal: true,
	})

	if !exclusive.Contradicts(without) {
		t.Error("Expected the exclusive holding to contradict a rule reaching the output another way")
	}
}

func TestHolding_Means(t *testing.T) {
	a := NewHolding(searchRule(t, true, true))
	b := NewHolding(searchRule(t, true, true))
	if !a.Means(b) {
		t.Error("Expected identically built holdings to have the same meaning")
	}
	if a.Means(b.Negated()) {
		t.Error("Expected a holding not to mean its negation")
	}
}

func TestHolding_Add(t *testing.T) {
	rex := NewEntity("Rex")
	fido := NewEntity("Fido")
	base := NewHolding(&Rule{
		Procedure: MustProcedure(
			FactorGroup{mustFact(t, "{} was a dog", []Factor{rex})},
			FactorGroup{mustFact(t, "{} barked", []Factor{rex})},
			nil,
		),
		Universal: true,
	})
	next := NewHolding(&Rule{
		Procedure: MustProcedure(
			FactorGroup{mustFact(t, "{} was an animal", []Factor{fido})},
			FactorGroup{mustFact(t, "{} was a dog", []Factor{fido})},
			nil,
		),
		Universal: true,
	})

	combined := base.Add(next)
	if combined == nil {
		t.Fatal("Expected the holdings to chain")
	}
	if len(combined.Rule.Procedure.Outputs()) != 2 {
		t.Errorf("Expected outputs of both rules, got %v", combined.Rule.Procedure.Outputs())
	}

	undecided := NewHolding(searchRule(t, true, true))
	undecided.Decided = false
	if base.Add(undecided) != nil {
		t.Error("Expected no chain with an undecided holding")
	}
}

func TestHolding_Union(t *testing.T) {
	a := NewHolding(searchRule(t, true, true))
	b := NewHolding(searchRule(t, false, false))
	united := a.Union(b)
	if united == nil {
		t.Fatal("Expected a union of compatible holdings")
	}
	if !united.Rule.Mandatory || !united.Rule.Universal {
		t.Error("Expected the stronger modality to survive when one rule subsumes the other")
	}

	rejected := NewHolding(searchRule(t, true, true))
	rejected.RuleValid = false
	if a.Union(rejected) != nil {
		t.Error("Expected no union between an affirmance and a rejection")
	}
}
