package compound

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Limits bounds a simulation request. The defaults mirror the input ranges of
// the interactive tool this engine was extracted from.
type Limits struct {
	MaxOpportunitiesPerPeriod int
	MaxPeriodsPerCycle        int
	MaxCycles                 int
	MaxRecords                int
}

func DefaultLimits() Limits {
	return Limits{
		MaxOpportunitiesPerPeriod: 100,
		MaxPeriodsPerCycle:        200,
		MaxCycles:                 50,
		MaxRecords:                10000,
	}
}

func (l Limits) normalized() Limits {
	def := DefaultLimits()
	if l.MaxOpportunitiesPerPeriod <= 0 {
		l.MaxOpportunitiesPerPeriod = def.MaxOpportunitiesPerPeriod
	}
	if l.MaxPeriodsPerCycle <= 0 {
		l.MaxPeriodsPerCycle = def.MaxPeriodsPerCycle
	}
	if l.MaxCycles <= 0 {
		l.MaxCycles = def.MaxCycles
	}
	if l.MaxRecords <= 0 {
		l.MaxRecords = def.MaxRecords
	}
	return l
}

// StrategyParameters is the immutable input of one projection.
type StrategyParameters struct {
	WinProbabilityPct      float64         `json:"win_probability_pct"`
	RewardToRisk           float64         `json:"reward_to_risk"`
	OpportunitiesPerPeriod int             `json:"opportunities_per_period"`
	PeriodsPerCycle        int             `json:"periods_per_cycle"`
	NumberOfCycles         int             `json:"number_of_cycles"`
	StartingBalance        decimal.Decimal `json:"starting_balance"`
	TargetBalance          decimal.Decimal `json:"target_balance"`
	ContributionAmount     decimal.Decimal `json:"contribution_amount"`
	ContributionCadence    Cadence         `json:"contribution_cadence"`
	WithdrawalAmount       decimal.Decimal `json:"withdrawal_amount"`
	WithdrawalCadence      Cadence         `json:"withdrawal_cadence"`
	TaxRatePct             float64         `json:"tax_rate_pct"`
	TaxCadence             Cadence         `json:"tax_cadence"`
	RiskPct                float64         `json:"risk_pct"`
	RiskAdjustCadence      Cadence         `json:"risk_adjust_cadence"`
}

// Validate rejects configuration errors before any simulation work starts.
func (p StrategyParameters) Validate(lim Limits) error {
	lim = lim.normalized()
	if p.WinProbabilityPct < 1 || p.WinProbabilityPct > 100 {
		return fmt.Errorf("win_probability_pct must be within [1,100], got %v", p.WinProbabilityPct)
	}
	if p.RewardToRisk <= 0 {
		return fmt.Errorf("reward_to_risk must be > 0, got %v", p.RewardToRisk)
	}
	if p.OpportunitiesPerPeriod < 1 || p.OpportunitiesPerPeriod > lim.MaxOpportunitiesPerPeriod {
		return fmt.Errorf("opportunities_per_period must be within [1,%d], got %d", lim.MaxOpportunitiesPerPeriod, p.OpportunitiesPerPeriod)
	}
	if p.PeriodsPerCycle < 1 || p.PeriodsPerCycle > lim.MaxPeriodsPerCycle {
		return fmt.Errorf("periods_per_cycle must be within [1,%d], got %d", lim.MaxPeriodsPerCycle, p.PeriodsPerCycle)
	}
	if p.NumberOfCycles < 1 || p.NumberOfCycles > lim.MaxCycles {
		return fmt.Errorf("number_of_cycles must be within [1,%d], got %d", lim.MaxCycles, p.NumberOfCycles)
	}
	if p.PeriodsPerCycle*p.NumberOfCycles > lim.MaxRecords {
		return fmt.Errorf("periods_per_cycle * number_of_cycles must not exceed %d", lim.MaxRecords)
	}
	if !p.StartingBalance.IsPositive() {
		return fmt.Errorf("starting_balance must be > 0, got %s", p.StartingBalance)
	}
	if !p.TargetBalance.GreaterThan(p.StartingBalance) {
		return fmt.Errorf("target_balance must be > starting_balance, got %s", p.TargetBalance)
	}
	if p.ContributionAmount.IsNegative() {
		return fmt.Errorf("contribution_amount must be >= 0, got %s", p.ContributionAmount)
	}
	if p.WithdrawalAmount.IsNegative() {
		return fmt.Errorf("withdrawal_amount must be >= 0, got %s", p.WithdrawalAmount)
	}
	if p.TaxRatePct < 0 || p.TaxRatePct > 100 {
		return fmt.Errorf("tax_rate_pct must be within [0,100], got %v", p.TaxRatePct)
	}
	if p.RiskPct <= 0 || p.RiskPct > 100 {
		return fmt.Errorf("risk_pct must be within (0,100], got %v", p.RiskPct)
	}
	return nil
}
