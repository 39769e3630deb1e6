package planner

import (
	"fmt"
	"math"

	"github.com/AleeDe/nafaverse/internal/common"
)

// PreviewInput drives the offline simulation calculator.
type PreviewInput struct {
	RoiRate       float64
	Years         int
	InitialAmount float64
	TargetAmount  float64
}

// PreviewResult is the offline calculator output. FinalAmount is the last
// point of ChartData.
type PreviewResult struct {
	MonthlyInvestment int64
	FinalAmount       int64
	ChartData         []ChartPoint
}

// RequiredMonthlyInvestment solves the annuity equation
//
//	target = initial*(1+r)^n + m*((1+r)^n-1)/r
//
// for m, with r = roi/100/12 and n = years*12. A zero rate degenerates to
// straight-line saving. It returns 0 when years is not positive.
func RequiredMonthlyInvestment(roi float64, years int, initial, target float64) float64 {
	n := float64(years * 12)
	if n <= 0 {
		return 0
	}
	r := roi / 100 / 12
	if r == 0 {
		return (target - initial) / n
	}
	growth := math.Pow(1+r, n)
	return (target - initial*growth) / ((growth - 1) / r)
}

// ProjectYearly returns years+1 points starting at initial, compounding
// roi once a year and adding twelve monthly contributions after each year.
func ProjectYearly(roi float64, years int, initial, monthly float64) []ChartPoint {
	if years < 0 {
		years = 0
	}
	out := make([]ChartPoint, 0, years+1)
	amount := initial
	for year := 0; year <= years; year++ {
		out = append(out, ChartPoint{Year: year, Amount: Round(amount)})
		amount = amount*(1+roi/100) + monthly*12
	}
	return out
}

// Preview validates in and runs both calculations.
func Preview(in PreviewInput) (PreviewResult, error) {
	switch {
	case in.Years <= 0:
		return PreviewResult{}, fmt.Errorf("%w: years must be positive", common.ErrValidation)
	case in.RoiRate < 0:
		return PreviewResult{}, fmt.Errorf("%w: roi must not be negative", common.ErrValidation)
	case in.InitialAmount < 0 || in.TargetAmount <= 0:
		return PreviewResult{}, fmt.Errorf("%w: amounts must be positive", common.ErrValidation)
	}

	monthly := RequiredMonthlyInvestment(in.RoiRate, in.Years, in.InitialAmount, in.TargetAmount)
	chart := ProjectYearly(in.RoiRate, in.Years, in.InitialAmount, monthly)
	return PreviewResult{
		MonthlyInvestment: Round(monthly),
		FinalAmount:       chart[len(chart)-1].Amount,
		ChartData:         chart,
	}, nil
}
