package compound

import (
	"testing"
)

func TestExpectancy(t *testing.T) {
	cases := []struct {
		name   string
		winPct float64
		rr     float64
		want   float64
	}{
		{"breakeven_coin_flip", 50, 1.0, 0.0},
		{"favorable_edge", 40, 2.0, 0.2},
		{"unfavorable_edge", 30, 1.0, -0.4},
		{"sure_winner", 100, 0.5, 0.5},
	}
	for _, tc := range cases {
		got := Expectancy(tc.winPct, tc.rr)
		if got != tc.want {
			t.Fatalf("%s: Expectancy(%v,%v)=%v want=%v", tc.name, tc.winPct, tc.rr, got, tc.want)
		}
	}
}

func TestKellyFraction(t *testing.T) {
	if got := KellyFraction(50, 1.0); got != 0.0 {
		t.Fatalf("KellyFraction(50,1)=%v want=0", got)
	}
	if got := KellyFraction(40, 2.0); got != 0.1 {
		t.Fatalf("KellyFraction(40,2)=%v want=0.1", got)
	}
	// Negative Kelly is meaningful internally and must not be clamped here.
	if got := KellyFraction(30, 1.0); got != -0.4 {
		t.Fatalf("KellyFraction(30,1)=%v want=-0.4", got)
	}
}

func TestComputeDerivedStats(t *testing.T) {
	stats, err := ComputeDerivedStats(40, 2.0, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.ExpectancyR != 0.2 {
		t.Fatalf("expectancy=%v want=0.2", stats.ExpectancyR)
	}
	if stats.PeriodReturnR != 2.0 {
		t.Fatalf("period_return_r=%v want=2.0", stats.PeriodReturnR)
	}
	if stats.KellyPct != 10.0 {
		t.Fatalf("kelly_pct=%v want=10", stats.KellyPct)
	}
	if stats.HalfKellyPct != 5.0 {
		t.Fatalf("half_kelly_pct=%v want=5", stats.HalfKellyPct)
	}
}

func TestComputeDerivedStats_ClampsNegativeKellyPct(t *testing.T) {
	stats, err := ComputeDerivedStats(30, 1.0, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.KellyFraction != -0.4 {
		t.Fatalf("kelly_fraction=%v want=-0.4", stats.KellyFraction)
	}
	if stats.KellyPct != 0 {
		t.Fatalf("kelly_pct=%v want=0", stats.KellyPct)
	}
}

func TestComputeDerivedStats_RejectsZeroRewardToRisk(t *testing.T) {
	if _, err := ComputeDerivedStats(50, 0, 10); err == nil {
		t.Fatalf("want error for reward_to_risk=0")
	}
}

func TestParseCadence(t *testing.T) {
	cases := map[string]Cadence{
		"":       CadenceNone,
		"none":   CadenceNone,
		"Period": CadencePeriod,
		"CYCLE":  CadenceCycle,
		" cycle": CadenceCycle,
	}
	for raw, want := range cases {
		got, err := ParseCadence(raw)
		if err != nil {
			t.Fatalf("ParseCadence(%q) error: %v", raw, err)
		}
		if got != want {
			t.Fatalf("ParseCadence(%q)=%q want=%q", raw, got, want)
		}
	}
	if _, err := ParseCadence("weekly"); err == nil {
		t.Fatalf("want error for unknown cadence")
	}
}

func TestCadenceGating(t *testing.T) {
	if !CadencePeriod.AppliesAt(3, 12) {
		t.Fatalf("period cadence should apply every period")
	}
	if CadenceCycle.AppliesAt(3, 12) {
		t.Fatalf("cycle cadence must not apply mid-cycle")
	}
	if !CadenceCycle.AppliesAt(12, 12) {
		t.Fatalf("cycle cadence should apply on the last period")
	}
	if CadenceNone.AppliesAt(12, 12) {
		t.Fatalf("none cadence must never apply")
	}
	if !CadenceCycle.RefreshAt(1) || CadenceCycle.RefreshAt(2) {
		t.Fatalf("cycle cadence should refresh risk only on period 1")
	}
	if !CadencePeriod.RefreshAt(7) {
		t.Fatalf("period cadence should refresh risk every period")
	}
	if CadenceNone.RefreshAt(1) {
		t.Fatalf("none cadence must never refresh risk")
	}
}
