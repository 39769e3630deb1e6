package services

import (
	"context"

	"github.com/AleeDe/nafaverse/internal/client/client"
	"github.com/AleeDe/nafaverse/internal/planner"
)

// fakeClient implements client.Client for service tests.
type fakeClient struct {
	calls int

	SignupRet *client.AuthResponse
	SignupErr error
	LastSignup client.SignupRequest

	LoginRet  *client.AuthResponse
	LoginErr  error
	LastLogin client.LoginRequest

	MeRet *client.UserInfo
	MeErr error

	ResetReqRet   string
	ResetReqErr   error
	LastResetMail string

	ResetRet      string
	ResetErr      error
	LastResetTok  string
	LastResetPass string

	GoalRet  planner.GoalPlanResponse
	GoalErr  error
	LastGoal planner.GoalRequest

	SimRet  planner.SimulationResponse
	SimErr  error
	LastSim planner.SimulationRequest

	ContactErr  error
	LastContact client.ContactRequest
}

var _ client.Client = (*fakeClient)(nil)

func (f *fakeClient) Signup(_ context.Context, req client.SignupRequest) (*client.AuthResponse, error) {
	f.calls++
	f.LastSignup = req
	return f.SignupRet, f.SignupErr
}

func (f *fakeClient) Login(_ context.Context, req client.LoginRequest) (*client.AuthResponse, error) {
	f.calls++
	f.LastLogin = req
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) Me(context.Context) (*client.UserInfo, error) {
	f.calls++
	return f.MeRet, f.MeErr
}

func (f *fakeClient) GoogleLoginURL() string { return "https://example.test/oauth2/authorization/google" }

func (f *fakeClient) RequestPasswordReset(_ context.Context, email string) (string, error) {
	f.calls++
	f.LastResetMail = email
	return f.ResetReqRet, f.ResetReqErr
}

func (f *fakeClient) ResetPassword(_ context.Context, token, newPassword string) (string, error) {
	f.calls++
	f.LastResetTok, f.LastResetPass = token, newPassword
	return f.ResetRet, f.ResetErr
}

func (f *fakeClient) CreateGoalPlan(_ context.Context, req planner.GoalRequest) (planner.GoalPlanResponse, error) {
	f.calls++
	f.LastGoal = req
	return f.GoalRet, f.GoalErr
}

func (f *fakeClient) CreateSimulationPlan(_ context.Context, req planner.SimulationRequest) (planner.SimulationResponse, error) {
	f.calls++
	f.LastSim = req
	return f.SimRet, f.SimErr
}

func (f *fakeClient) SubmitContactFeedback(_ context.Context, req client.ContactRequest) error {
	f.calls++
	f.LastContact = req
	return f.ContactErr
}
