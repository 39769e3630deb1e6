package cli

import (
	"context"
	"time"

	"github.com/AleeDe/nafaverse/internal/planner"
)

// Goal asks the backend for a saving plan towards a goal.
func (a *App) Goal(ctx context.Context) error {
	if err := a.enter(ctx, pagePlanner); err != nil {
		return err
	}

	var (
		req planner.GoalRequest
		err error
	)
	if req.GoalName, err = GetSimpleText(a.reader, "Goal (e.g. Hajj, house, wedding)", a.out); err != nil {
		return err
	}
	if req.City, err = GetSimpleText(a.reader, "City", a.out); err != nil {
		return err
	}
	if req.TargetYear, err = GetInt(a.reader, "Target year", time.Now().Year()+5, a.out); err != nil {
		return err
	}
	if req.Prompt, err = GetSimpleText(a.reader, "Anything else the planner should know? (optional)", a.out); err != nil {
		return err
	}

	u, err := a.planService.CreateGoalPlan(ctx, req)
	if err != nil {
		return err
	}
	printUnified(a.out, u)
	return nil
}

// Simulate asks the backend to project an investment.
func (a *App) Simulate(ctx context.Context) error {
	if err := a.enter(ctx, pagePlanner); err != nil {
		return err
	}

	var (
		req planner.SimulationRequest
		err error
	)
	if req.City, err = GetSimpleText(a.reader, "City", a.out); err != nil {
		return err
	}
	if req.DurationYears, err = GetInt(a.reader, "Duration in years", 10, a.out); err != nil {
		return err
	}
	if req.OneTimeInvestment, err = GetFloat(a.reader, "One-time investment (Rs)", 0, a.out); err != nil {
		return err
	}
	if req.MonthlyInvestment, err = GetFloat(a.reader, "Monthly investment (Rs)", 0, a.out); err != nil {
		return err
	}
	if req.RoiRate, err = GetFloat(a.reader, "Expected yearly return % [12]", 12, a.out); err != nil {
		return err
	}
	if req.InflationRate, err = GetFloat(a.reader, "Expected inflation % [10]", 10, a.out); err != nil {
		return err
	}
	if req.Prompt, err = GetSimpleText(a.reader, "Anything else the simulator should know? (optional)", a.out); err != nil {
		return err
	}

	u, err := a.planService.CreateSimulationPlan(ctx, req)
	if err != nil {
		return err
	}
	printUnified(a.out, u)
	return nil
}

// Preview computes the monthly saving for a target locally.
func (a *App) Preview(ctx context.Context) error {
	if err := a.enter(ctx, pagePlanner); err != nil {
		return err
	}

	var (
		in  planner.PreviewInput
		err error
	)
	if in.TargetAmount, err = GetFloat(a.reader, "Target amount (Rs)", 0, a.out); err != nil {
		return err
	}
	if in.InitialAmount, err = GetFloat(a.reader, "Already saved (Rs) [0]", 0, a.out); err != nil {
		return err
	}
	if in.Years, err = GetInt(a.reader, "Years [5]", 5, a.out); err != nil {
		return err
	}
	if in.RoiRate, err = GetFloat(a.reader, "Expected yearly return % [12]", 12, a.out); err != nil {
		return err
	}

	res, err := a.planService.Preview(in)
	if err != nil {
		return err
	}
	tw := newTable(a.out)
	_, _ = tw.Write([]byte("Monthly investment:\t" + rupees(res.MonthlyInvestment) + "\n"))
	_, _ = tw.Write([]byte("Final amount:\t" + rupees(res.FinalAmount) + "\n"))
	_ = tw.Flush()
	printChart(a.out, res.ChartData)
	return nil
}
