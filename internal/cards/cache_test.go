package cards

import (
	"context"
	"errors"
	"testing"
)

func TestCachedLookup_ByName(t *testing.T) {
	inner := &fakeLookup{byName: map[string]*Card{
		"Lightning Bolt": {Name: "Lightning Bolt", SetCode: "m20"},
	}}
	cached, err := NewCachedLookup(inner, 8)
	if err != nil {
		t.Fatalf("NewCachedLookup() error = %v", err)
	}
	ctx := context.Background()

	first, err := cached.ByName(ctx, "Lightning Bolt")
	if err != nil {
		t.Fatalf("ByName() error = %v", err)
	}
	second, err := cached.ByName(ctx, "Lightning Bolt")
	if err != nil {
		t.Fatalf("ByName() error = %v", err)
	}

	if first != second {
		t.Error("cached hit returned a different card instance")
	}
	if inner.calls != 1 {
		t.Errorf("inner calls = %d, want 1", inner.calls)
	}
}

func TestCachedLookup_DoesNotCacheMisses(t *testing.T) {
	inner := &fakeLookup{byName: map[string]*Card{}}
	cached, err := NewCachedLookup(inner, 8)
	if err != nil {
		t.Fatalf("NewCachedLookup() error = %v", err)
	}
	ctx := context.Background()

	if _, err := cached.ByName(ctx, "Storm Crow"); !errors.Is(err, ErrCardNotFound) {
		t.Fatalf("ByName() error = %v, want ErrCardNotFound", err)
	}

	// The card shows up later; a cached negative would hide it.
	inner.byName["Storm Crow"] = &Card{Name: "Storm Crow"}
	card, err := cached.ByName(ctx, "Storm Crow")
	if err != nil {
		t.Fatalf("ByName() after appearance error = %v", err)
	}
	if card.Name != "Storm Crow" {
		t.Errorf("ByName() = %v, want Storm Crow", card.Name)
	}
}

func TestCachedLookup_KeysDoNotCollide(t *testing.T) {
	inner := &fakeLookup{byName: map[string]*Card{
		"Mountain": {Name: "Mountain", SetCode: "eoe", CollectorNumber: "270"},
	}}
	cached, err := NewCachedLookup(inner, 8)
	if err != nil {
		t.Fatalf("NewCachedLookup() error = %v", err)
	}
	ctx := context.Background()

	if _, err := cached.ByName(ctx, "Mountain"); err != nil {
		t.Fatalf("ByName() error = %v", err)
	}
	if _, err := cached.ByCollector(ctx, "eoe", "270"); err != nil {
		t.Fatalf("ByCollector() error = %v", err)
	}

	// Distinct key spaces mean the collector query still hit the inner
	// lookup once.
	if inner.calls != 2 {
		t.Errorf("inner calls = %d, want 2", inner.calls)
	}
}
