package compound

import (
	"github.com/shopspring/decimal"
)

// Outcome classifies how a projection ended.
type Outcome string

const (
	OutcomeTargetReached    Outcome = "target_reached"
	OutcomeDepleted         Outcome = "depleted"
	OutcomeHorizonExhausted Outcome = "horizon_exhausted"
)

// PeriodRecord is one simulated period, appended in cycle-major order.
type PeriodRecord struct {
	Cycle           int             `json:"cycle"`
	Period          int             `json:"period"`
	StartingBalance decimal.Decimal `json:"starting_balance"`
	RiskAmount      decimal.Decimal `json:"risk_amount"`
	ReturnAmount    decimal.Decimal `json:"return_amount"`
	Contribution    decimal.Decimal `json:"contribution"`
	Withdrawal      decimal.Decimal `json:"withdrawal"`
	TaxWithheld     decimal.Decimal `json:"tax_withheld"`
	EndingBalance   decimal.Decimal `json:"ending_balance"`
}

type Projection struct {
	Stats            DerivedStats    `json:"stats"`
	Records          []PeriodRecord  `json:"records"`
	Outcome          Outcome         `json:"outcome"`
	FinalBalance     decimal.Decimal `json:"final_balance"`
	PeriodsSimulated int             `json:"periods_simulated"`
}

var oneHundred = decimal.NewFromInt(100)

// Project runs the compounding loop with the default limits.
func Project(p StrategyParameters) (Projection, error) {
	return ProjectWithLimits(p, DefaultLimits())
}

// ProjectWithLimits validates the parameters and simulates period by period.
// Monetary values (risk, per-period tax, ending balance) are rounded to whole
// units at each step; replays of equal parameters are bit-identical.
func ProjectWithLimits(p StrategyParameters, lim Limits) (Projection, error) {
	if err := p.Validate(lim); err != nil {
		return Projection{}, err
	}
	stats, err := ComputeDerivedStats(p.WinProbabilityPct, p.RewardToRisk, p.OpportunitiesPerPeriod)
	if err != nil {
		return Projection{}, err
	}

	periodReturn := decimal.NewFromFloat(stats.PeriodReturnR)
	riskPct := decimal.NewFromFloat(p.RiskPct)
	taxRate := decimal.NewFromFloat(p.TaxRatePct)

	balance := p.StartingBalance
	risk := balance.Mul(riskPct).Div(oneHundred).Round(0)
	outcome := OutcomeHorizonExhausted
	records := make([]PeriodRecord, 0, p.NumberOfCycles*p.PeriodsPerCycle)

loop:
	for cycle := 1; cycle <= p.NumberOfCycles; cycle++ {
		cycleReturns := decimal.Zero

		for period := 1; period <= p.PeriodsPerCycle; period++ {
			// Inclusive target: hitting it exactly stops before this period runs.
			if balance.GreaterThanOrEqual(p.TargetBalance) {
				outcome = OutcomeTargetReached
				break loop
			}
			if balance.LessThanOrEqual(decimal.Zero) {
				outcome = OutcomeDepleted
				break loop
			}

			if p.RiskAdjustCadence.RefreshAt(period) {
				risk = balance.Mul(riskPct).Div(oneHundred).Round(0)
			}

			ret := periodReturn.Mul(risk)
			cycleReturns = cycleReturns.Add(ret)

			var tax decimal.Decimal
			if p.TaxCadence == CadencePeriod {
				tax = ret.Mul(taxRate).Div(oneHundred).Round(0)
			}
			var contribution, withdrawal decimal.Decimal
			if p.ContributionCadence.AppliesAt(period, p.PeriodsPerCycle) {
				contribution = p.ContributionAmount
			}
			if p.WithdrawalCadence.AppliesAt(period, p.PeriodsPerCycle) {
				withdrawal = p.WithdrawalAmount
			}
			// Cycle-cadence tax is withheld once, on the whole cycle's returns.
			if period == p.PeriodsPerCycle && p.TaxCadence == CadenceCycle {
				tax = cycleReturns.Mul(taxRate).Div(oneHundred)
			}

			ending := balance.Add(ret).Add(contribution).Sub(withdrawal).Sub(tax).Round(0)
			records = append(records, PeriodRecord{
				Cycle:           cycle,
				Period:          period,
				StartingBalance: balance,
				RiskAmount:      risk,
				ReturnAmount:    ret,
				Contribution:    contribution,
				Withdrawal:      withdrawal,
				TaxWithheld:     tax,
				EndingBalance:   ending,
			})
			balance = ending
		}
	}

	return Projection{
		Stats:            stats,
		Records:          records,
		Outcome:          outcome,
		FinalBalance:     balance,
		PeriodsSimulated: len(records),
	}, nil
}
