package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/AleeDe/nafaverse/internal/client/client"
	"github.com/AleeDe/nafaverse/internal/logging"
	"github.com/AleeDe/nafaverse/internal/planner"
)

// PlanService asks the backend for goal and simulation plans and returns
// them in the unified display shape.
type PlanService interface {
	CreateGoalPlan(ctx context.Context, req planner.GoalRequest) (planner.Unified, error)
	CreateSimulationPlan(ctx context.Context, req planner.SimulationRequest) (planner.Unified, error)
	Preview(in planner.PreviewInput) (planner.PreviewResult, error)
}

type planService struct {
	client client.Client
	log    logging.Logger
}

func NewPlanService(c client.Client, log logging.Logger) PlanService {
	return &planService{client: c, log: log.With("service", "plan")}
}

func (p *planService) CreateGoalPlan(ctx context.Context, req planner.GoalRequest) (planner.Unified, error) {
	if err := required("goal name", req.GoalName); err != nil {
		return planner.Unified{}, err
	}
	if err := required("city", req.City); err != nil {
		return planner.Unified{}, err
	}
	if req.TargetYear <= 0 {
		return planner.Unified{}, invalid("target year must be positive")
	}
	req.GoalName = strings.TrimSpace(req.GoalName)
	req.City = strings.TrimSpace(req.City)

	resp, err := p.client.CreateGoalPlan(ctx, req)
	if err != nil {
		return planner.Unified{}, fmt.Errorf("goal plan: %w", err)
	}
	u := planner.Unify(resp, 0)
	p.warnDefaulted(ctx, u)
	return u, nil
}

func (p *planService) CreateSimulationPlan(ctx context.Context, req planner.SimulationRequest) (planner.Unified, error) {
	if err := required("city", req.City); err != nil {
		return planner.Unified{}, err
	}
	switch {
	case req.DurationYears <= 0:
		return planner.Unified{}, invalid("duration must be positive")
	case req.OneTimeInvestment < 0 || req.MonthlyInvestment < 0:
		return planner.Unified{}, invalid("investments must not be negative")
	}
	req.City = strings.TrimSpace(req.City)

	resp, err := p.client.CreateSimulationPlan(ctx, req)
	if err != nil {
		return planner.Unified{}, fmt.Errorf("simulation: %w", err)
	}
	u := planner.Unify(resp, req.MonthlyInvestment)
	p.warnDefaulted(ctx, u)
	return u, nil
}

func (p *planService) Preview(in planner.PreviewInput) (planner.PreviewResult, error) {
	return planner.Preview(in)
}

func (p *planService) warnDefaulted(ctx context.Context, u planner.Unified) {
	if len(u.Defaulted) == 0 {
		return
	}
	p.log.Warn(ctx, "plan response missing fields", "from", string(u.From), "defaulted", strings.Join(u.Defaulted, ","))
}
