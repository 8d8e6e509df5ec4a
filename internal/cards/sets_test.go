package cards

import (
	"testing"
	"time"
)

func TestSetByCode(t *testing.T) {
	info, ok := SetByCode("EOE")
	if !ok {
		t.Fatal("SetByCode(EOE) not found")
	}
	if info.Name != "Edge of Eternities" {
		t.Errorf("SetByCode(EOE).Name = %v, want Edge of Eternities", info.Name)
	}
	if !info.IsExpansion() {
		t.Error("SetByCode(EOE).IsExpansion() = false, want true")
	}

	if _, ok := SetByCode("zzz"); ok {
		t.Error("SetByCode(zzz) found, want miss")
	}
}

func TestRegisterSet(t *testing.T) {
	RegisterSet(SetInfo{Code: "TST", Name: "Test Set", SetType: "expansion", ReleasedAt: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)})

	info, ok := SetByCode("tst")
	if !ok {
		t.Fatal("SetByCode(tst) not found after RegisterSet")
	}
	if info.Code != "tst" {
		t.Errorf("registered code = %v, want lowercased tst", info.Code)
	}
}

func TestLatestExpansion(t *testing.T) {
	tests := []struct {
		name     string
		codes    []string
		wantCode string
		wantOK   bool
	}{
		{
			name:     "latest of several",
			codes:    []string{"dmu", "one", "eoe", "khm"},
			wantCode: "eoe",
			wantOK:   true,
		},
		{
			name:     "non-expansion types ignored",
			codes:    []string{"akr", "fdn", "woe"},
			wantCode: "woe",
			wantOK:   true,
		},
		{
			name:   "no known expansions",
			codes:  []string{"akr", "m20", "unknown"},
			wantOK: false,
		},
		{
			name:   "empty",
			codes:  nil,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, ok := LatestExpansion(tt.codes)
			if ok != tt.wantOK {
				t.Fatalf("LatestExpansion() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && info.Code != tt.wantCode {
				t.Errorf("LatestExpansion() = %v, want %v", info.Code, tt.wantCode)
			}
		})
	}
}
