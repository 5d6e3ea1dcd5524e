package compound

import (
	"testing"

	"github.com/shopspring/decimal"
)

func baseParams() StrategyParameters {
	return StrategyParameters{
		WinProbabilityPct:      40,
		RewardToRisk:           2.0,
		OpportunitiesPerPeriod: 10,
		PeriodsPerCycle:        12,
		NumberOfCycles:         30,
		StartingBalance:        decimal.NewFromInt(1000),
		TargetBalance:          decimal.NewFromInt(1000000),
		RiskPct:                2,
	}
}

func TestProject_FirstRecordAndHorizon(t *testing.T) {
	p := baseParams()
	proj, err := Project(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if proj.Outcome != OutcomeHorizonExhausted {
		t.Fatalf("outcome=%s want=%s", proj.Outcome, OutcomeHorizonExhausted)
	}
	if len(proj.Records) != 360 {
		t.Fatalf("records=%d want=360", len(proj.Records))
	}
	first := proj.Records[0]
	if first.Cycle != 1 || first.Period != 1 {
		t.Fatalf("first record at cycle=%d period=%d want=1/1", first.Cycle, first.Period)
	}
	if !first.StartingBalance.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("starting_balance=%s want=1000", first.StartingBalance)
	}
	if !first.RiskAmount.Equal(decimal.NewFromInt(20)) {
		t.Fatalf("risk=%s want=20", first.RiskAmount)
	}
	if !first.ReturnAmount.Equal(decimal.NewFromInt(40)) {
		t.Fatalf("return=%s want=40", first.ReturnAmount)
	}
	if !first.EndingBalance.Equal(decimal.NewFromInt(1040)) {
		t.Fatalf("ending_balance=%s want=1040", first.EndingBalance)
	}
	// Positive expectancy with no cash flows: balances never decrease.
	for i, rec := range proj.Records {
		if rec.EndingBalance.LessThan(rec.StartingBalance) {
			t.Fatalf("record %d decreased: %s -> %s", i, rec.StartingBalance, rec.EndingBalance)
		}
	}
}

func TestProject_BalanceChaining(t *testing.T) {
	p := baseParams()
	p.RiskAdjustCadence = CadencePeriod
	p.ContributionAmount = decimal.NewFromInt(50)
	p.ContributionCadence = CadenceCycle
	p.TaxRatePct = 15
	p.TaxCadence = CadencePeriod
	proj, err := Project(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 1; i < len(proj.Records); i++ {
		prev := proj.Records[i-1]
		cur := proj.Records[i]
		if !prev.EndingBalance.Equal(cur.StartingBalance) {
			t.Fatalf("chain broken at %d: ending=%s next starting=%s", i, prev.EndingBalance, cur.StartingBalance)
		}
	}
	if !proj.FinalBalance.Equal(proj.Records[len(proj.Records)-1].EndingBalance) {
		t.Fatalf("final_balance=%s want last ending=%s", proj.FinalBalance, proj.Records[len(proj.Records)-1].EndingBalance)
	}
}

func TestProject_InclusiveTargetStops(t *testing.T) {
	p := baseParams()
	p.TargetBalance = decimal.NewFromInt(1040)
	proj, err := Project(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if proj.Outcome != OutcomeTargetReached {
		t.Fatalf("outcome=%s want=%s", proj.Outcome, OutcomeTargetReached)
	}
	// First period ends exactly on target; no further records may follow.
	if len(proj.Records) != 1 {
		t.Fatalf("records=%d want=1", len(proj.Records))
	}
	if !proj.FinalBalance.Equal(decimal.NewFromInt(1040)) {
		t.Fatalf("final_balance=%s want=1040", proj.FinalBalance)
	}
}

func TestProject_RecordBound(t *testing.T) {
	p := baseParams()
	p.TargetBalance = decimal.NewFromInt(2000)
	proj, err := Project(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(proj.Records) > p.NumberOfCycles*p.PeriodsPerCycle {
		t.Fatalf("records=%d exceeds horizon=%d", len(proj.Records), p.NumberOfCycles*p.PeriodsPerCycle)
	}
	if proj.Outcome != OutcomeTargetReached {
		t.Fatalf("outcome=%s want=%s", proj.Outcome, OutcomeTargetReached)
	}
	last := proj.Records[len(proj.Records)-1]
	if last.EndingBalance.LessThan(p.TargetBalance) {
		t.Fatalf("last ending=%s below target", last.EndingBalance)
	}
}

func TestProject_RiskConstantPerCycle(t *testing.T) {
	p := baseParams()
	p.RiskAdjustCadence = CadenceCycle
	p.NumberOfCycles = 3
	proj, err := Project(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	byCycle := map[int]decimal.Decimal{}
	for _, rec := range proj.Records {
		if first, ok := byCycle[rec.Cycle]; ok {
			if !rec.RiskAmount.Equal(first) {
				t.Fatalf("cycle %d risk changed mid-cycle: %s vs %s", rec.Cycle, first, rec.RiskAmount)
			}
		} else {
			byCycle[rec.Cycle] = rec.RiskAmount
		}
	}
	// Risk is re-sized from the grown balance at the start of cycle 2.
	if !byCycle[2].GreaterThan(byCycle[1]) {
		t.Fatalf("cycle 2 risk %s not above cycle 1 risk %s", byCycle[2], byCycle[1])
	}
}

func TestProject_StaticRiskCarriesAcrossCycles(t *testing.T) {
	p := baseParams()
	p.RiskAdjustCadence = CadenceNone
	p.NumberOfCycles = 2
	proj, err := Project(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := decimal.NewFromInt(20)
	for i, rec := range proj.Records {
		if !rec.RiskAmount.Equal(want) {
			t.Fatalf("record %d risk=%s want=20", i, rec.RiskAmount)
		}
	}
}

func TestProject_CycleTaxWithheldOnLastPeriod(t *testing.T) {
	p := baseParams()
	p.PeriodsPerCycle = 3
	p.NumberOfCycles = 1
	p.TaxRatePct = 10
	p.TaxCadence = CadenceCycle
	proj, err := Project(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(proj.Records) != 3 {
		t.Fatalf("records=%d want=3", len(proj.Records))
	}
	for i := 0; i < 2; i++ {
		if !proj.Records[i].TaxWithheld.IsZero() {
			t.Fatalf("record %d taxed mid-cycle: %s", i, proj.Records[i].TaxWithheld)
		}
	}
	// Three periods of 40R return each; 10% of the 120 cycle sum.
	last := proj.Records[2]
	if !last.TaxWithheld.Equal(decimal.NewFromInt(12)) {
		t.Fatalf("cycle tax=%s want=12", last.TaxWithheld)
	}
	if !last.EndingBalance.Equal(decimal.NewFromInt(1108)) {
		t.Fatalf("ending_balance=%s want=1108", last.EndingBalance)
	}
}

func TestProject_PeriodTaxWithheldEveryPeriod(t *testing.T) {
	p := baseParams()
	p.PeriodsPerCycle = 2
	p.NumberOfCycles = 1
	p.TaxRatePct = 25
	p.TaxCadence = CadencePeriod
	proj, err := Project(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, rec := range proj.Records {
		if !rec.TaxWithheld.Equal(decimal.NewFromInt(10)) {
			t.Fatalf("record %d tax=%s want=10", i, rec.TaxWithheld)
		}
	}
	if !proj.Records[0].EndingBalance.Equal(decimal.NewFromInt(1030)) {
		t.Fatalf("ending_balance=%s want=1030", proj.Records[0].EndingBalance)
	}
}

func TestProject_CycleCashFlowsOnLastPeriodOnly(t *testing.T) {
	p := baseParams()
	p.PeriodsPerCycle = 3
	p.NumberOfCycles = 2
	p.ContributionAmount = decimal.NewFromInt(100)
	p.ContributionCadence = CadenceCycle
	p.WithdrawalAmount = decimal.NewFromInt(30)
	p.WithdrawalCadence = CadencePeriod
	proj, err := Project(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, rec := range proj.Records {
		wantContribution := decimal.Zero
		if rec.Period == p.PeriodsPerCycle {
			wantContribution = decimal.NewFromInt(100)
		}
		if !rec.Contribution.Equal(wantContribution) {
			t.Fatalf("cycle=%d period=%d contribution=%s want=%s", rec.Cycle, rec.Period, rec.Contribution, wantContribution)
		}
		if !rec.Withdrawal.Equal(decimal.NewFromInt(30)) {
			t.Fatalf("cycle=%d period=%d withdrawal=%s want=30", rec.Cycle, rec.Period, rec.Withdrawal)
		}
	}
}

func TestProject_NegativeExpectancyDepletes(t *testing.T) {
	p := baseParams()
	p.WinProbabilityPct = 30
	p.RewardToRisk = 1.0
	p.RiskPct = 10
	p.TargetBalance = decimal.NewFromInt(2000)
	proj, err := Project(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if proj.Outcome != OutcomeDepleted {
		t.Fatalf("outcome=%s want=%s", proj.Outcome, OutcomeDepleted)
	}
	if len(proj.Records) >= p.NumberOfCycles*p.PeriodsPerCycle {
		t.Fatalf("records=%d should stop before horizon", len(proj.Records))
	}
	for i := 1; i < len(proj.Records); i++ {
		if !proj.Records[i].EndingBalance.LessThan(proj.Records[i-1].EndingBalance) {
			t.Fatalf("balance recovered at record %d: %s -> %s", i, proj.Records[i-1].EndingBalance, proj.Records[i].EndingBalance)
		}
	}
	last := proj.Records[len(proj.Records)-1]
	if last.EndingBalance.IsPositive() {
		t.Fatalf("last ending=%s want <= 0", last.EndingBalance)
	}
}

func TestProject_ValidationErrors(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*StrategyParameters)
	}{
		{"zero_reward_to_risk", func(p *StrategyParameters) { p.RewardToRisk = 0 }},
		{"win_probability_out_of_range", func(p *StrategyParameters) { p.WinProbabilityPct = 101 }},
		{"target_below_start", func(p *StrategyParameters) { p.TargetBalance = decimal.NewFromInt(500) }},
		{"zero_risk", func(p *StrategyParameters) { p.RiskPct = 0 }},
		{"negative_contribution", func(p *StrategyParameters) { p.ContributionAmount = decimal.NewFromInt(-1) }},
		{"zero_cycles", func(p *StrategyParameters) { p.NumberOfCycles = 0 }},
	}
	for _, tc := range cases {
		p := baseParams()
		tc.mutate(&p)
		if _, err := Project(p); err == nil {
			t.Fatalf("%s: want validation error", tc.name)
		}
	}
}

func TestProject_RecordCapViaLimits(t *testing.T) {
	p := baseParams()
	lim := DefaultLimits()
	lim.MaxRecords = 100
	if _, err := ProjectWithLimits(p, lim); err == nil {
		t.Fatalf("want error when horizon exceeds record cap")
	}
}
