package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/AleeDe/nafaverse/internal/client/models"
	"github.com/AleeDe/nafaverse/internal/client/repositories/credentials"
	"github.com/AleeDe/nafaverse/internal/common"
	"github.com/AleeDe/nafaverse/internal/events"
	"github.com/AleeDe/nafaverse/internal/logging"
	"github.com/AleeDe/nafaverse/internal/planner"
)

const (
	DefaultBaseURL = "https://nafaversebackend.onrender.com/api/"
	DefaultTimeout = 10 * time.Second

	googleAuthPath = "/oauth2/authorization/google"
	maxBodyBytes   = 1 << 20
)

// Options configures an HTTPClient. Zero values take the defaults.
type Options struct {
	BaseURL string
	Timeout time.Duration
	// GoogleLoginURL overrides the OAuth entry point derived from BaseURL.
	GoogleLoginURL string
	// Transport is the underlying round tripper; http.DefaultTransport when nil.
	Transport http.RoundTripper
}

type HTTPClient struct {
	baseURL   *url.URL
	googleURL string
	hc        *http.Client
	store     credentials.Repository
	log       logging.Logger
}

var _ Client = (*HTTPClient)(nil)

func NewHTTPClient(opts Options, store credentials.Repository, bus *events.Bus, log logging.Logger) (*HTTPClient, error) {
	raw := opts.BaseURL
	if raw == "" {
		raw = DefaultBaseURL
	}
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", raw)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	rt := opts.Transport
	if rt == nil {
		rt = http.DefaultTransport
	}

	google := opts.GoogleLoginURL
	if google == "" {
		google = (&url.URL{Scheme: base.Scheme, Host: base.Host, Path: googleAuthPath}).String()
	}

	log = log.With("component", "api")
	return &HTTPClient{
		baseURL:   base,
		googleURL: google,
		store:     store,
		log:       log,
		hc: &http.Client{
			Timeout:   timeout,
			Transport: &authTransport{base: rt, store: store, bus: bus, log: log},
		},
	}, nil
}

func (c *HTTPClient) Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "auth/signup", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "auth/login", nil, req, &resp); err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return &resp, nil
	}

	cred := models.Credential{
		Token:    resp.Token,
		UserID:   firstID(resp.ID, resp.UserID),
		Username: resp.Username,
		Email:    resp.Email,
	}
	if err := c.store.Save(ctx, cred); err != nil {
		return nil, fmt.Errorf("persist credentials: %w", err)
	}
	return &resp, nil
}

func (c *HTTPClient) Me(ctx context.Context) (*UserInfo, error) {
	var me UserInfo
	if err := c.do(ctx, http.MethodGet, "auth/me", nil, nil, &me); err != nil {
		return nil, err
	}

	cred := models.Credential{
		UserID:   firstID(me.ID, me.UserID),
		Username: me.Username,
		Email:    me.Email,
	}
	if err := c.store.Save(ctx, cred); err != nil {
		return nil, fmt.Errorf("persist identity: %w", err)
	}
	return &me, nil
}

func (c *HTTPClient) GoogleLoginURL() string {
	return c.googleURL
}

func (c *HTTPClient) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	var msg rawText
	err := c.do(ctx, http.MethodPost, "password/request", url.Values{"email": {email}}, nil, &msg)
	return string(msg), err
}

func (c *HTTPClient) ResetPassword(ctx context.Context, token, newPassword string) (string, error) {
	var msg rawText
	q := url.Values{"token": {token}, "newPassword": {newPassword}}
	err := c.do(ctx, http.MethodPost, "password/reset", q, nil, &msg)
	return string(msg), err
}

func (c *HTTPClient) CreateGoalPlan(ctx context.Context, req planner.GoalRequest) (planner.GoalPlanResponse, error) {
	var resp planner.GoalPlanResponse
	err := c.do(ctx, http.MethodPost, "goals/create", nil, req, &resp)
	return resp, err
}

func (c *HTTPClient) CreateSimulationPlan(ctx context.Context, req planner.SimulationRequest) (planner.SimulationResponse, error) {
	var resp planner.SimulationResponse
	err := c.do(ctx, http.MethodPost, "simulations/create", nil, req, &resp)
	return resp, err
}

func (c *HTTPClient) SubmitContactFeedback(ctx context.Context, req ContactRequest) error {
	return c.do(ctx, http.MethodPost, "contact-feedback/submit", nil, req, nil)
}

// rawText receives a response body that may or may not be JSON.
type rawText string

// do sends one request and decodes a 2xx JSON body into out. A nil body
// sends no payload; a nil out discards the response.
func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL.ResolveReference(&url.URL{Path: path})
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s: %w", path, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("build %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		c.log.Warn(ctx, "request failed", "method", method, "path", path, "error", err)
		if errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("%w: %s %s: %w", common.ErrUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: read %s: %w", common.ErrUnavailable, path, err)
	}
	c.log.Debug(ctx, "request done", "method", method, "path", path,
		"status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp.StatusCode, data)
	}

	switch v := out.(type) {
	case nil:
		return nil
	case *rawText:
		*v = rawText(strings.TrimSpace(extractMessageOrText(data)))
		return nil
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func extractMessageOrText(data []byte) string {
	if msg := extractMessage(data); msg != "" {
		return msg
	}
	var s string
	if json.Unmarshal(data, &s) == nil {
		return s
	}
	return ""
}
