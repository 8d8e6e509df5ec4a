package cards

import "testing"

func TestNewColorSet(t *testing.T) {
	tests := []struct {
		name    string
		symbols []string
		want    string
	}{
		{name: "orders into wubrg", symbols: []string{"G", "W", "U"}, want: "WUG"},
		{name: "drops duplicates", symbols: []string{"R", "r", "R"}, want: "R"},
		{name: "drops unknown symbols", symbols: []string{"W", "X", "snow"}, want: "W"},
		{name: "empty is colorless", symbols: nil, want: "C"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewColorSet(tt.symbols...).String(); got != tt.want {
				t.Errorf("NewColorSet(%v).String() = %v, want %v", tt.symbols, got, tt.want)
			}
		})
	}
}

func TestColorSet_SubsetOf(t *testing.T) {
	tests := []struct {
		name  string
		set   ColorSet
		other ColorSet
		want  bool
	}{
		{name: "empty is subset of anything", set: nil, other: NewColorSet("W"), want: true},
		{name: "equal sets", set: NewColorSet("W", "U"), other: NewColorSet("U", "W"), want: true},
		{name: "strict subset", set: NewColorSet("W"), other: NewColorSet("W", "U"), want: true},
		{name: "extra color fails", set: NewColorSet("W", "B"), other: NewColorSet("W", "U"), want: false},
		{name: "nothing is subset of empty but empty", set: NewColorSet("G"), other: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.set.SubsetOf(tt.other); got != tt.want {
				t.Errorf("SubsetOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestColorSet_Union(t *testing.T) {
	got := NewColorSet("G", "R").Union(NewColorSet("W", "R"))
	if got.String() != "WRG" {
		t.Errorf("Union() = %v, want WRG", got.String())
	}
}

func TestColorSet_DisplayName(t *testing.T) {
	tests := []struct {
		name    string
		symbols []string
		want    string
	}{
		{name: "colorless", symbols: nil, want: "Colorless"},
		{name: "mono red", symbols: []string{"R"}, want: "Mono Red"},
		{name: "guild", symbols: []string{"U", "W"}, want: "Azorius"},
		{name: "shard", symbols: []string{"B", "U", "W"}, want: "Esper"},
		{name: "wedge", symbols: []string{"G", "U", "R"}, want: "Temur"},
		{name: "four colors", symbols: []string{"W", "U", "B", "R"}, want: "4C"},
		{name: "five colors", symbols: []string{"W", "U", "B", "R", "G"}, want: "5C"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewColorSet(tt.symbols...).DisplayName(); got != tt.want {
				t.Errorf("DisplayName() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsColorWord(t *testing.T) {
	for _, word := range []string{"red", "Izzet", "MONO", "5c"} {
		if !IsColorWord(word) {
			t.Errorf("IsColorWord(%q) = false, want true", word)
		}
	}
	for _, word := range []string{"burn", "dragons", ""} {
		if IsColorWord(word) {
			t.Errorf("IsColorWord(%q) = true, want false", word)
		}
	}
}
