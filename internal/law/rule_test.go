package law

import "testing"

func searchRule(t *testing.T, mandatory, universal bool) *Rule {
	t.Helper()
	officer := NewEntity("the officer")
	house := NewEntity("the house")
	procedure := MustProcedure(
		FactorGroup{mustFact(t, "{} conducted an unlawful search of {}", []Factor{officer, house})},
		FactorGroup{mustFact(t, "{} entered {} without a warrant", []Factor{officer, house})},
		nil,
	)
	return &Rule{
		Procedure:  procedure,
		Enactments: []*Enactment{NewEnactment("/us/const/amendment-IV", searchClause)},
		Mandatory:  mandatory,
		Universal:  universal,
	}
}

func TestRule_Implies_ModalityPartialOrder(t *testing.T) {
	strong := searchRule(t, true, true)
	weak := searchRule(t, false, false)

	if !strong.Implies(weak) {
		t.Error("Expected a mandatory universal rule to imply its permissive particular form")
	}
	if weak.Implies(strong) {
		t.Error("Expected the permissive particular rule not to imply the strong one")
	}
	if !strong.Implies(strong) {
		t.Error("Expected a rule to imply itself")
	}
}

func TestRule_Implies_EnactmentSubsetGate(t *testing.T) {
	lean := searchRule(t, true, true)
	loaded := searchRule(t, true, true)
	loaded.Enactments = append(loaded.Enactments,
		NewEnactment("/us/const/amendment-I", "Congress shall make no law"))

	if !lean.Implies(loaded) {
		t.Error("Expected the rule citing fewer enactments to imply the one citing more")
	}
	if loaded.Implies(lean) {
		t.Error("Expected the rule needing extra enactment support not to imply the leaner one")
	}
}

func TestRule_Implies_DespiteEnactmentsMustBeCovered(t *testing.T) {
	plain := searchRule(t, true, true)
	hardened := searchRule(t, true, true)
	hardened.EnactmentsDespite = []*Enactment{
		NewEnactment("/us/const/amendment-I", "the freedom of speech"),
	}

	if plain.Implies(hardened) {
		t.Error("Expected no implication when the implied rule's despite-enactments are uncovered")
	}
	if !hardened.Implies(plain) {
		t.Error("Expected the rule applying despite more enactments to imply the plain one")
	}
}

// copyrightRule concludes that a work was not copyrightable because it
// was not original. despiteContent, when set, adds a despite-Factor
// about the same work with the given truth.
func copyrightRule(t *testing.T, despiteContent string, despiteTruth Truth, mandatory, universal bool) *Rule {
	t.Helper()
	work := NewEntity("the Java API")
	original, err := NewPredicate("{} was an original work", TruthFalse, false)
	if err != nil {
		t.Fatalf("NewPredicate: %v", err)
	}
	copyrightable, err := NewPredicate("{} was copyrightable", TruthFalse, false)
	if err != nil {
		t.Fatalf("NewPredicate: %v", err)
	}
	var despite FactorGroup
	if despiteContent != "" {
		p, err := NewPredicate(despiteContent, despiteTruth, false)
		if err != nil {
			t.Fatalf("NewPredicate: %v", err)
		}
		despite = FactorGroup{MustFact(p, []Factor{work})}
	}
	return &Rule{
		Procedure: MustProcedure(
			FactorGroup{MustFact(copyrightable, []Factor{work})},
			FactorGroup{MustFact(original, []Factor{work})},
			despite,
		),
		Enactments: []*Enactment{NewEnactment("/us/usc/t17/s102/a",
			"Copyright protection subsists, in accordance with this title, in original works of authorship")},
		Mandatory: mandatory,
		Universal: universal,
	}
}

func TestRule_Implies_AddedDespiteFactorCoveredByInputs(t *testing.T) {
	base := copyrightRule(t, "", TruthFalse, true, false)
	redundant := copyrightRule(t, "{} was an original work", TruthFalse, true, false)

	if !base.Implies(redundant) {
		t.Error("Expected implication when the added despite factor restates an input")
	}
	if !redundant.Implies(base) {
		t.Error("Expected the rule with the extra despite factor to imply the plain one")
	}
}

func TestRule_Implies_AddedDespiteFactorUncovered(t *testing.T) {
	base := copyrightRule(t, "", TruthFalse, true, false)
	guarded := copyrightRule(t, "{} was commercially valuable", TruthTrue, true, false)

	if base.Implies(guarded) {
		t.Error("Expected no implication when the despite factor is not covered by the inputs")
	}
	if !guarded.Implies(base) {
		t.Error("Expected the rule with the extra despite factor to imply the plain one")
	}

	// A universal rule's input list is not exhaustive from the
	// perspective of a particular rule, so the uncovered despite
	// factor no longer blocks the implication.
	universal := copyrightRule(t, "", TruthFalse, true, true)
	if !universal.Implies(guarded) {
		t.Error("Expected the universal rule to imply the despite-augmented particular one")
	}

	// Unless the despite factor contradicts an input outright.
	contrary := copyrightRule(t, "{} was an original work", TruthTrue, true, false)
	if universal.Implies(contrary) {
		t.Error("Expected no implication when the despite factor contradicts an input")
	}
}

func TestRule_Contradicts_RequiresModality(t *testing.T) {
	p, err := NewPredicate("{} was copyrightable", TruthTrue, false)
	if err != nil {
		t.Fatal(err)
	}
	menu := NewEntity("the Lotus menu command hierarchy")
	api := NewEntity("the Java API")
	makeRule := func(out *Fact, in *Fact, mandatory, universal bool) *Rule {
		return &Rule{
			Procedure: MustProcedure(FactorGroup{out}, FactorGroup{in}, nil),
			Mandatory: mandatory,
			Universal: universal,
		}
	}
	holds := makeRule(MustFact(p, []Factor{menu}),
		mustFact(t, "{} was an original work", []Factor{menu}), true, true)
	denies := makeRule(MustFact(p.Negated(), []Factor{api}),
		mustFact(t, "{} was an original work", []Factor{api}), true, true)

	if !holds.Contradicts(denies) {
		t.Fatal("Expected contradiction between mandatory universal rules with opposite outputs")
	}

	bothParticular := makeRule(MustFact(p, []Factor{menu}),
		mustFact(t, "{} was an original work", []Factor{menu}), true, false)
	deniesParticular := makeRule(MustFact(p.Negated(), []Factor{api}),
		mustFact(t, "{} was an original work", []Factor{api}), true, false)
	if bothParticular.Contradicts(deniesParticular) {
		t.Error("Expected no contradiction when neither rule is universal")
	}

	neitherMandatory := makeRule(MustFact(p, []Factor{menu}),
		mustFact(t, "{} was an original work", []Factor{menu}), false, true)
	deniesOptional := makeRule(MustFact(p.Negated(), []Factor{api}),
		mustFact(t, "{} was an original work", []Factor{api}), false, true)
	if neitherMandatory.Contradicts(deniesOptional) {
		t.Error("Expected no contradiction when neither rule is mandatory")
	}
}

func TestRule_Add_ChainsProcedures(t *testing.T) {
	rex := NewEntity("Rex")
	fido := NewEntity("Fido")
	fourth := NewEnactment("/us/const/amendment-IV", searchClause)

	base := &Rule{
		Procedure: MustProcedure(
			FactorGroup{mustFact(t, "{} was a dog", []Factor{rex})},
			FactorGroup{mustFact(t, "{} barked", []Factor{rex})},
			nil,
		),
		Enactments: []*Enactment{fourth},
		Mandatory:  true,
		Universal:  true,
	}
	next := &Rule{
		Procedure: MustProcedure(
			FactorGroup{mustFact(t, "{} was an animal", []Factor{fido})},
			FactorGroup{mustFact(t, "{} was a dog", []Factor{fido})},
			nil,
		),
		Enactments: []*Enactment{fourth},
		Mandatory:  false,
		Universal:  true,
	}

	combined := base.Add(next)
	if combined == nil {
		t.Fatal("Expected the rules to chain")
	}
	if combined.Mandatory {
		t.Error("Expected the combined mandatory flag to be the AND of the operands")
	}
	if !combined.Universal {
		t.Error("Expected the combined universal flag to stay set when both are universal")
	}
	if len(combined.Procedure.Outputs()) != 2 {
		t.Errorf("Expected outputs of both procedures, got %v", combined.Procedure.Outputs())
	}
	if len(combined.Enactments) != 1 {
		t.Errorf("Expected duplicate enactments consolidated, got %d", len(combined.Enactments))
	}
}

func TestRule_Add_RequiresAUniversalOperand(t *testing.T) {
	left := searchRule(t, true, false)
	right := searchRule(t, true, false)
	if left.Add(right) != nil {
		t.Error("Expected no chain when neither rule is universal")
	}
}

func TestRule_Add_RequiresEnactmentSubset(t *testing.T) {
	base := searchRule(t, true, true)
	next := searchRule(t, true, true)
	next.Enactments = append(next.Enactments,
		NewEnactment("/us/const/amendment-I", "Congress shall make no law"))
	if base.Add(next) != nil {
		t.Error("Expected no chain when the second rule needs uncited enactment support")
	}
}

func TestRule_Contrapositives(t *testing.T) {
	rule := searchRule(t, true, true)
	flipped, err := rule.Contrapositives()
	if err != nil {
		t.Fatalf("Contrapositives: %v", err)
	}
	if len(flipped) != 1 {
		t.Fatalf("Expected one contrapositive per input, got %d", len(flipped))
	}
	contra := flipped[0]
	if contra.Mandatory || contra.Universal {
		t.Error("Expected the contrapositive modality flags to be negated")
	}
	if !contra.Procedure.Inputs()[0].IsAbsent() {
		t.Error("Expected the contrapositive input to be marked absent")
	}
	if !contra.Procedure.Outputs()[0].IsAbsent() {
		t.Error("Expected the contrapositive output to be marked absent")
	}

	twoOutputs := searchRule(t, true, true)
	twoOutputs.Procedure = MustProcedure(
		append(FactorGroup{}, append(rule.Procedure.Outputs(), rule.Procedure.Inputs()...)...),
		rule.Procedure.Inputs(),
		nil,
	)
	if _, err := twoOutputs.Contrapositives(); err == nil {
		t.Error("Expected error for an exclusive rule with two outputs")
	}
}

func TestRule_Means(t *testing.T) {
	a := searchRule(t, true, true)
	b := searchRule(t, true, true)
	if !a.Means(b) {
		t.Error("Expected identically built rules to have the same meaning")
	}
	b.Mandatory = false
	if a.Means(b) {
		t.Error("Expected rules with different modality flags not to have the same meaning")
	}
}
