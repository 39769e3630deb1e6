package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/AleeDe/nafaverse/internal/client/models"
	"github.com/AleeDe/nafaverse/internal/client/repositories/credentials"
	"github.com/AleeDe/nafaverse/internal/client/storage"
	"github.com/AleeDe/nafaverse/internal/common"
	"github.com/AleeDe/nafaverse/internal/events"
	"github.com/AleeDe/nafaverse/internal/logging"
	"github.com/AleeDe/nafaverse/internal/planner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	client *HTTPClient
	store  *credentials.SQLiteRepository
	bus    *events.Bus
}

func newFixture(t *testing.T, h http.Handler) *fixture {
	t.Helper()

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	db, err := storage.InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store := credentials.NewSQLiteRepository(db)
	bus := events.NewBus()
	c, err := NewHTTPClient(Options{BaseURL: srv.URL + "/api"}, store, bus, logging.Discard())
	require.NoError(t, err)

	return &fixture{client: c, store: store, bus: bus}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestLogin_PersistsCredentials(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "ali", req.Username)
		assert.Equal(t, "pw", req.Password)

		writeJSON(w, http.StatusOK, map[string]any{"token": "tok-1", "id": 42, "username": "ali", "email": "ali@x.pk"})
	})
	f := newFixture(t, mux)
	ctx := context.Background()

	resp, err := f.client.Login(ctx, LoginRequest{Username: "ali", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "tok-1", resp.Token)

	cred, err := f.store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.Credential{Token: "tok-1", UserID: "42", Username: "ali", Email: "ali@x.pk"}, cred)
	assert.True(t, cred.IsAuthenticated())
}

func TestLogin_NoTokenPersistsNothing(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"message": "check your email"})
	})
	f := newFixture(t, mux)
	ctx := context.Background()

	resp, err := f.client.Login(ctx, LoginRequest{Email: "a@x.pk", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "check your email", resp.Message)

	m, err := f.store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, m)
}

func TestAuthHeader_AttachedWhenTokenPresent(t *testing.T) {
	var got atomic.Value
	mux := http.NewServeMux()
	mux.HandleFunc("/api/contact-feedback/submit", func(w http.ResponseWriter, r *http.Request) {
		got.Store(r.Header.Get(common.AuthorizationHeader))
		w.WriteHeader(http.StatusOK)
	})
	f := newFixture(t, mux)
	ctx := context.Background()

	require.NoError(t, f.client.SubmitContactFeedback(ctx, ContactRequest{Name: "n", Email: "e@x.pk", Message: "m"}))
	assert.Equal(t, "", got.Load())

	require.NoError(t, f.store.Set(ctx, credentials.KeyToken, "abc"))
	require.NoError(t, f.client.SubmitContactFeedback(ctx, ContactRequest{Name: "n", Email: "e@x.pk", Message: "m"}))
	assert.Equal(t, "Bearer abc", got.Load())
}

func TestUnauthorized_ClearsStoreAndFiresOnce(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "token expired"})
	})
	f := newFixture(t, mux)
	ctx := context.Background()

	require.NoError(t, f.store.Save(ctx, models.Credential{Token: "t", UserID: "1", Username: "u", Email: "e"}))

	var fired atomic.Int32
	unsubscribe := f.bus.Subscribe(common.EventAuthUnauthorized, func(events.Event) { fired.Add(1) })
	defer unsubscribe()

	_, err := f.client.Me(ctx)
	require.ErrorIs(t, err, common.ErrUnauthorized)
	assert.Equal(t, common.KindUnauthorized, common.KindOf(err))

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "token expired", apiErr.Message)

	assert.Equal(t, int32(1), fired.Load())
	for _, k := range credentials.Keys {
		v, err := f.store.Get(ctx, k)
		require.NoError(t, err)
		assert.Empty(t, v, k)
	}

	_, err = f.client.Me(ctx)
	require.ErrorIs(t, err, common.ErrUnauthorized)
	assert.Equal(t, int32(2), fired.Load())
}

func TestOtherStatuses_DoNotTouchStore(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/goals/create", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusTooManyRequests, map[string]string{"message": "quota exceeded"})
	})
	mux.HandleFunc("/api/simulations/create", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	})
	f := newFixture(t, mux)
	ctx := context.Background()
	require.NoError(t, f.store.Set(ctx, credentials.KeyToken, "t"))

	var fired atomic.Int32
	defer f.bus.Subscribe(common.EventAuthUnauthorized, func(events.Event) { fired.Add(1) })()

	_, err := f.client.CreateGoalPlan(ctx, planner.GoalRequest{GoalName: "Hajj"})
	require.ErrorIs(t, err, common.ErrRateLimited)

	_, err = f.client.CreateSimulationPlan(ctx, planner.SimulationRequest{City: "Lahore"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "boom", apiErr.Message)
	assert.Equal(t, common.KindUnknown, common.KindOf(err))

	v, err := f.store.Get(ctx, credentials.KeyToken)
	require.NoError(t, err)
	assert.Equal(t, "t", v)
	assert.Zero(t, fired.Load())
}

func TestCreateGoalPlan_Decodes(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/goals/create", func(w http.ResponseWriter, r *http.Request) {
		var req planner.GoalRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 2030, req.TargetYear)
		writeJSON(w, http.StatusOK, map[string]any{
			"goalName":              req.GoalName,
			"monthlySavingRequired": 12000.5,
			"graphData":             []map[string]any{{"year": 2029, "projectedValue": 100.4}},
		})
	})
	f := newFixture(t, mux)

	resp, err := f.client.CreateGoalPlan(context.Background(), planner.GoalRequest{GoalName: "Ghar", City: "Lahore", TargetYear: 2030})
	require.NoError(t, err)
	assert.Equal(t, "Ghar", resp.GoalName)
	require.NotNil(t, resp.MonthlySavingRequired)
	assert.InDelta(t, 12000.5, *resp.MonthlySavingRequired, 1e-9)
	assert.Nil(t, resp.FinalAmount)
	require.Len(t, resp.GraphData, 1)
}

func TestPasswordEndpoints_UseQueryParams(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/password/request", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "a@x.pk", r.URL.Query().Get("email"))
		_, _ = w.Write([]byte("Reset link sent"))
	})
	mux.HandleFunc("/api/password/reset", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "rt", r.URL.Query().Get("token"))
		assert.Equal(t, "n3w", r.URL.Query().Get("newPassword"))
		assert.Equal(t, int64(0), r.ContentLength)
		writeJSON(w, http.StatusOK, map[string]string{"message": "Password updated"})
	})
	f := newFixture(t, mux)
	ctx := context.Background()

	msg, err := f.client.RequestPasswordReset(ctx, "a@x.pk")
	require.NoError(t, err)
	assert.Equal(t, "Reset link sent", msg)

	msg, err = f.client.ResetPassword(ctx, "rt", "n3w")
	require.NoError(t, err)
	assert.Equal(t, "Password updated", msg)
}

func TestMe_PersistsIdentity(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"userId": "u-7", "username": "sara"})
	})
	f := newFixture(t, mux)
	ctx := context.Background()
	require.NoError(t, f.store.Set(ctx, credentials.KeyToken, "t"))

	me, err := f.client.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "sara", me.Username)

	cred, err := f.store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.Credential{Token: "t", UserID: "u-7", Username: "sara"}, cred)
}

func TestTimeout_IsNetworkKind(t *testing.T) {
	release := make(chan struct{})
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	db, err := storage.InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	c, err := NewHTTPClient(Options{BaseURL: srv.URL + "/api/", Timeout: 50 * time.Millisecond},
		credentials.NewSQLiteRepository(db), events.NewBus(), logging.Discard())
	require.NoError(t, err)

	_, err = c.Me(context.Background())
	require.ErrorIs(t, err, common.ErrUnavailable)
	assert.Equal(t, common.KindNetwork, common.KindOf(err))
}

func TestGoogleLoginURL(t *testing.T) {
	c, err := NewHTTPClient(Options{}, nil, events.NewBus(), logging.Discard())
	require.NoError(t, err)
	assert.Equal(t, "https://nafaversebackend.onrender.com/oauth2/authorization/google", c.GoogleLoginURL())

	c, err = NewHTTPClient(Options{GoogleLoginURL: "http://localhost:8080/google"}, nil, events.NewBus(), logging.Discard())
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/google", c.GoogleLoginURL())
}

func TestNewHTTPClient_RejectsRelativeURL(t *testing.T) {
	_, err := NewHTTPClient(Options{BaseURL: "api/"}, nil, events.NewBus(), logging.Discard())
	require.Error(t, err)
}

func TestIDString(t *testing.T) {
	var v struct {
		A IDString `json:"a"`
		B IDString `json:"b"`
		C IDString `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"x","b":17,"c":null}`), &v))
	assert.Equal(t, IDString("x"), v.A)
	assert.Equal(t, IDString("17"), v.B)
	assert.Equal(t, IDString(""), v.C)
}
