// Package planner turns the two backend plan responses into one chart-ready
// shape and carries the closed-form preview math used when no backend call
// is made.
package planner

// Source names the endpoint a Unified result came from.
type Source string

const (
	FromPlanner    Source = "planner"
	FromSimulation Source = "simulation"
)

// GoalRequest is the body of POST goals/create.
type GoalRequest struct {
	GoalName   string `json:"goalName"`
	City       string `json:"city"`
	TargetYear int    `json:"targetYear"`
	Prompt     string `json:"prompt"`
}

// SimulationRequest is the body of POST simulations/create.
type SimulationRequest struct {
	City              string  `json:"city"`
	DurationYears     int     `json:"durationYears"`
	OneTimeInvestment float64 `json:"oneTimeInvestment"`
	MonthlyInvestment float64 `json:"monthlyInvestment"`
	RoiRate           float64 `json:"roiRate"`
	InflationRate     float64 `json:"inflationRate"`
	Prompt            string  `json:"prompt"`
}

// GraphPoint is one backend projection sample.
type GraphPoint struct {
	Year           int      `json:"year"`
	ProjectedValue *float64 `json:"projectedValue"`
}

// GoalPlanResponse is what goals/create returns. Every numeric field may be
// absent.
type GoalPlanResponse struct {
	GoalName              string       `json:"goalName"`
	City                  string       `json:"city"`
	TargetYear            *int         `json:"targetYear"`
	MonthlySavingRequired *float64     `json:"monthlySavingRequired"`
	EstimatedCost         *float64     `json:"estimatedCost"`
	FinalAmount           *float64     `json:"finalAmount"`
	TotalInvestment       *float64     `json:"totalInvestment"`
	RoiRate               *float64     `json:"roiRate"`
	InflationRate         *float64     `json:"inflationRate"`
	GraphData             []GraphPoint `json:"graphData"`
}

// SimulationResponse is what simulations/create returns.
type SimulationResponse struct {
	City              string       `json:"city"`
	OneTimeInvestment *float64     `json:"oneTimeInvestment"`
	MonthlyInvestment *float64     `json:"monthlyInvestment"`
	Duration          *int         `json:"duration"`
	InflationRate     *float64     `json:"inflationRate"`
	RoiRate           *float64     `json:"roiRate"`
	TotalInvestment   *float64     `json:"totalInvestment"`
	TotalAmount       *float64     `json:"totalAmount"`
	FinalAmount       *float64     `json:"finalAmount"`
	GraphData         []GraphPoint `json:"graphData"`
}

// ChartPoint is one rounded sample of a projection.
type ChartPoint struct {
	Year   int   `json:"year"`
	Amount int64 `json:"amount"`
}

// Meta carries the descriptive fields of whichever response was unified.
// Fields that do not apply to the source stay zero.
type Meta struct {
	GoalName          string  `json:"goalName,omitempty"`
	City              string  `json:"city,omitempty"`
	TargetYear        int     `json:"targetYear,omitempty"`
	Duration          int     `json:"duration,omitempty"`
	OneTimeInvestment int64   `json:"oneTimeInvestment,omitempty"`
	RoiRate           float64 `json:"roiRate"`
	InflationRate     float64 `json:"inflationRate"`
}

// Unified is the display model shared by both plan sources. Monetary values
// are whole currency units. Defaulted lists the response fields that were
// missing and replaced by zero or by a fallback.
type Unified struct {
	MonthlyInvestment int64        `json:"monthlyInvestment"`
	FinalAmount       int64        `json:"finalAmount"`
	TotalInvestment   int64        `json:"totalInvestment"`
	ChartData         []ChartPoint `json:"chartData"`
	From              Source       `json:"from"`
	Meta              Meta         `json:"meta"`
	Defaulted         []string     `json:"defaulted,omitempty"`
}

// Result is either a GoalPlanResponse or a SimulationResponse.
type Result interface {
	unify(fallbackMonthly float64) Unified
}
