package client

import (
	"context"

	"github.com/AleeDe/nafaverse/internal/planner"
)

type Client interface {
	Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error)
	// Login persists the returned token and identity on success.
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	// Me fetches the current user and persists whatever identity it returns.
	Me(ctx context.Context) (*UserInfo, error)
	// GoogleLoginURL is where the user starts the OAuth flow. No I/O.
	GoogleLoginURL() string
	RequestPasswordReset(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, token, newPassword string) (string, error)
	CreateGoalPlan(ctx context.Context, req planner.GoalRequest) (planner.GoalPlanResponse, error)
	CreateSimulationPlan(ctx context.Context, req planner.SimulationRequest) (planner.SimulationResponse, error)
	SubmitContactFeedback(ctx context.Context, req ContactRequest) error
}
