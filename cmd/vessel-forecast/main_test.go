package main

import "testing"

func TestOverrideFlagsSet(t *testing.T) {
	overrides := make(overrideFlags)

	if err := overrides.Set("sailing_days=210"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if err := overrides.Set("main_fuel_type=HVO, reporting_year=2035"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	if overrides["sailing_days"] != "210" {
		t.Errorf("expected sailing_days=210, got %v", overrides["sailing_days"])
	}
	if overrides["main_fuel_type"] != "HVO" {
		t.Errorf("expected main_fuel_type=HVO, got %v", overrides["main_fuel_type"])
	}
	if overrides["reporting_year"] != "2035" {
		t.Errorf("expected reporting_year=2035, got %v", overrides["reporting_year"])
	}
}

func TestOverrideFlagsSetRepeatedWins(t *testing.T) {
	overrides := make(overrideFlags)
	if err := overrides.Set("idle_days=100"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if err := overrides.Set("idle_days=120"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if overrides["idle_days"] != "120" {
		t.Errorf("expected last override to win, got %v", overrides["idle_days"])
	}
}

func TestOverrideFlagsSetInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"No equals sign", "sailing_days"},
		{"Empty key", "=42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			overrides := make(overrideFlags)
			if err := overrides.Set(tt.input); err == nil {
				t.Errorf("expected error for %q", tt.input)
			}
		})
	}
}

func TestOverrideFlagsString(t *testing.T) {
	overrides := overrideFlags{"b": "2", "a": "1"}
	if got := overrides.String(); got != "a=1,b=2" {
		t.Errorf("expected sorted pair string, got %q", got)
	}
}
