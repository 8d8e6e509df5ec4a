package cards

import (
	"context"
	"errors"
	"testing"
)

// fakeLookup resolves from fixed maps and counts inner calls, standing in
// for the Scryfall client.
type fakeLookup struct {
	byName map[string]*Card
	calls  int
}

func (f *fakeLookup) find(name string) (*Card, error) {
	f.calls++
	if c, ok := f.byName[name]; ok {
		return c, nil
	}
	return nil, &NotFoundError{Name: name}
}

func (f *fakeLookup) ByCollector(_ context.Context, setCode, collectorNumber string) (*Card, error) {
	f.calls++
	for _, c := range f.byName {
		if c.SetCode == setCode && c.CollectorNumber == collectorNumber {
			return c, nil
		}
	}
	return nil, &NotFoundError{SetCode: setCode, CollectorNumber: collectorNumber}
}

func (f *fakeLookup) ByName(_ context.Context, name string) (*Card, error) {
	return f.find(name)
}

func (f *fakeLookup) ByForeignName(_ context.Context, name string) (*Card, error) {
	return f.find(name)
}

func (f *fakeLookup) ByScryfallID(_ context.Context, id string) (*Card, error) {
	f.calls++
	for _, c := range f.byName {
		if c.ScryfallID == id {
			return c, nil
		}
	}
	return nil, &NotFoundError{Name: id}
}

func (f *fakeLookup) ByOracleID(_ context.Context, id string) (*Card, error) {
	f.calls++
	for _, c := range f.byName {
		if c.OracleID == id {
			return c, nil
		}
	}
	return nil, &NotFoundError{Name: id}
}

func (f *fakeLookup) ByArenaID(_ context.Context, id int) (*Card, error) {
	f.calls++
	for _, c := range f.byName {
		if c.ArenaID == id {
			return c, nil
		}
	}
	return nil, ErrCardNotFound
}

func (f *fakeLookup) ByMTGOID(_ context.Context, id int) (*Card, error) {
	f.calls++
	for _, c := range f.byName {
		if c.MTGOID == id {
			return c, nil
		}
	}
	return nil, ErrCardNotFound
}

func TestByNameInPool(t *testing.T) {
	pool := []*Card{
		{Name: "Lightning Bolt"},
		{Name: "Commit // Memory", FaceNames: []string{"Commit", "Memory"}},
		{Name: "Thoughtseize"},
	}

	tests := []struct {
		name     string
		query    string
		wantName string
		wantErr  bool
	}{
		{name: "exact match", query: "Lightning Bolt", wantName: "Lightning Bolt"},
		{name: "case-insensitive", query: "lightning bolt", wantName: "Lightning Bolt"},
		{name: "primary face name", query: "Commit", wantName: "Commit // Memory"},
		{name: "fuzzy match", query: "Thoughtsieze", wantName: "Thoughtseize"},
		{name: "no match", query: "Qqqq Zzzz", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ByNameInPool(tt.query, pool)
			if tt.wantErr {
				if !errors.Is(err, ErrCardNotFound) {
					t.Fatalf("ByNameInPool(%q) error = %v, want ErrCardNotFound", tt.query, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ByNameInPool(%q) error = %v", tt.query, err)
			}
			if got.Name != tt.wantName {
				t.Errorf("ByNameInPool(%q) = %v, want %v", tt.query, got.Name, tt.wantName)
			}
		})
	}
}

func TestNotFoundError(t *testing.T) {
	err := &NotFoundError{Name: "Storm Crow", SetCode: "9ed", CollectorNumber: "100"}
	if !errors.Is(err, ErrCardNotFound) {
		t.Error("NotFoundError does not wrap ErrCardNotFound")
	}
	want := `card not found: "Storm Crow" (9ED) 100`
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}
}
