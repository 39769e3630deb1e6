package planner

import (
	"fmt"
	"math"
)

// Round rounds half up to a whole unit, so 0.5 goes to 1 and -0.5 to 0.
func Round(x float64) int64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return int64(math.Floor(x + 0.5))
}

// Unify dispatches on the concrete response type.
func Unify(r Result, fallbackMonthly float64) Unified {
	if r == nil {
		return Unified{ChartData: []ChartPoint{}, Defaulted: []string{"response"}}
	}
	return r.unify(fallbackMonthly)
}

// UnifyFromGoal maps a goal plan response. The final amount falls back to
// the estimated cost and then to the last graph point.
func UnifyFromGoal(g GoalPlanResponse) Unified {
	return g.unify(0)
}

// UnifyFromSimulation maps a simulation response, using fallbackMonthly when
// the backend omits the monthly contribution.
func UnifyFromSimulation(s SimulationResponse, fallbackMonthly float64) Unified {
	return s.unify(fallbackMonthly)
}

func (g GoalPlanResponse) unify(float64) Unified {
	var d defaults
	chart := d.chart(g.GraphData)

	u := Unified{
		MonthlyInvestment: Round(d.num("monthlySavingRequired", g.MonthlySavingRequired)),
		TotalInvestment:   Round(d.num("totalInvestment", g.TotalInvestment)),
		ChartData:         chart,
		From:              FromPlanner,
		Meta: Meta{
			GoalName:      g.GoalName,
			City:          g.City,
			TargetYear:    d.integer("targetYear", g.TargetYear),
			RoiRate:       d.num("roiRate", g.RoiRate),
			InflationRate: d.num("inflationRate", g.InflationRate),
		},
	}
	u.FinalAmount = d.final(chart, g.FinalAmount, g.EstimatedCost)
	u.Defaulted = d.names
	return u
}

func (s SimulationResponse) unify(fallbackMonthly float64) Unified {
	var d defaults
	chart := d.chart(s.GraphData)

	monthly := fallbackMonthly
	if s.MonthlyInvestment != nil {
		monthly = *s.MonthlyInvestment
	} else {
		d.add("monthlyInvestment")
	}

	u := Unified{
		MonthlyInvestment: Round(monthly),
		TotalInvestment:   Round(d.num("totalInvestment", s.TotalInvestment)),
		ChartData:         chart,
		From:              FromSimulation,
		Meta: Meta{
			City:              s.City,
			Duration:          d.integer("duration", s.Duration),
			OneTimeInvestment: Round(d.num("oneTimeInvestment", s.OneTimeInvestment)),
			RoiRate:           d.num("roiRate", s.RoiRate),
			InflationRate:     d.num("inflationRate", s.InflationRate),
		},
	}
	u.FinalAmount = d.final(chart, s.FinalAmount, s.TotalAmount)
	u.Defaulted = d.names
	return u
}

// defaults collects the names of fields that had to be substituted.
type defaults struct {
	names []string
}

func (d *defaults) add(name string) {
	d.names = append(d.names, name)
}

func (d *defaults) num(name string, v *float64) float64 {
	if v == nil {
		d.add(name)
		return 0
	}
	return *v
}

func (d *defaults) integer(name string, v *int) int {
	if v == nil {
		d.add(name)
		return 0
	}
	return *v
}

func (d *defaults) chart(points []GraphPoint) []ChartPoint {
	if len(points) == 0 {
		d.add("graphData")
		return []ChartPoint{}
	}
	out := make([]ChartPoint, 0, len(points))
	for i, p := range points {
		out = append(out, ChartPoint{
			Year:   p.Year,
			Amount: Round(d.num(fmt.Sprintf("graphData[%d].projectedValue", i), p.ProjectedValue)),
		})
	}
	return out
}

// final picks the first present candidate, then the last chart point.
func (d *defaults) final(chart []ChartPoint, candidates ...*float64) int64 {
	for _, c := range candidates {
		if c != nil {
			return Round(*c)
		}
	}
	if len(chart) > 0 {
		return chart[len(chart)-1].Amount
	}
	d.add("finalAmount")
	return 0
}
