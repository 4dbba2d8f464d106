package law

import "testing"

func TestContextRegister_Assign_RejectsConflicts(t *testing.T) {
	alice := NewEntity("Alice")
	bob := NewEntity("Bob")
	craig := NewEntity("Craig")

	reg, ok := NewContextRegister().Assign(alice, bob)
	if !ok {
		t.Fatal("Expected first assignment to succeed")
	}
	if _, ok := reg.Assign(alice, craig); ok {
		t.Error("Expected reassigning a key to a new value to fail")
	}
	if _, ok := reg.Assign(craig, bob); ok {
		t.Error("Expected assigning a taken value to a new key to fail")
	}
	if next, ok := reg.Assign(alice, bob); !ok || next.Len() != 1 {
		t.Error("Expected repeating an existing assignment to be a no-op")
	}
}

func TestContextRegister_Assign_CopyOnWrite(t *testing.T) {
	alice := NewEntity("Alice")
	bob := NewEntity("Bob")
	base := NewContextRegister()
	extended, _ := base.Assign(alice, bob)
	if base.Len() != 0 {
		t.Errorf("Expected base register unchanged, got %d pairs", base.Len())
	}
	if extended.Get(alice) == nil {
		t.Error("Expected extended register to hold the assignment")
	}
}

func TestContextRegister_MergedWith(t *testing.T) {
	alice := NewEntity("Alice")
	bob := NewEntity("Bob")
	craig := NewEntity("Craig")
	dan := NewEntity("Dan")

	left, _ := NewContextRegister().Assign(alice, bob)
	right, _ := NewContextRegister().Assign(craig, dan)
	merged := left.MergedWith(right)
	if merged == nil || merged.Len() != 2 {
		t.Fatalf("Expected merged register with 2 pairs, got %v", merged)
	}

	conflicting, _ := NewContextRegister().Assign(alice, dan)
	if left.MergedWith(conflicting) != nil {
		t.Error("Expected merge with conflicting assignment to return nil")
	}
}

func TestContextRegister_Reversed(t *testing.T) {
	alice := NewEntity("Alice")
	bob := NewEntity("Bob")
	reg, _ := NewContextRegister().Assign(alice, bob)
	rev := reg.Reversed()
	if got := rev.Get(bob); got == nil || got.Key() != alice.Key() {
		t.Errorf("Expected reversed register to map Bob to Alice, got %v", got)
	}
}

func TestContextRegister_ReplaceKeys(t *testing.T) {
	alice := NewEntity("Alice")
	bob := NewEntity("Bob")
	craig := NewEntity("Craig")
	dan := NewEntity("Dan")

	reg, _ := NewContextRegister().Assign(alice, craig)
	reg, _ = reg.Assign(bob, dan)

	swap, _ := NewContextRegister().Assign(alice, bob)
	swap, _ = swap.Assign(bob, alice)

	swapped := reg.ReplaceKeys(swap)
	if swapped == nil {
		t.Fatal("Expected key replacement to succeed")
	}
	if got := swapped.Get(bob); got == nil || got.Key() != craig.Key() {
		t.Errorf("Expected Bob mapped to Craig after swap, got %v", got)
	}
	if got := swapped.Get(alice); got == nil || got.Key() != dan.Key() {
		t.Errorf("Expected Alice mapped to Dan after swap, got %v", got)
	}
}

func TestContextRegister_Prose(t *testing.T) {
	alice := NewEntity("Alice")
	bob := NewEntity("Bob")
	officers := &Entity{EntityName: "the officers", Generic: true, Plural: true}
	agents := &Entity{EntityName: "the agents", Generic: true, Plural: true}

	reg, _ := NewContextRegister().Assign(alice, bob)
	reg, _ = reg.Assign(officers, agents)

	got := reg.Prose()
	want := "<Alice> is like <Bob>, and <the officers> are like <the agents>"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}
