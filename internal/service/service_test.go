package service

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/farebonus/internal/auth"
	"github.com/mmynk/farebonus/internal/calculator"
	"github.com/mmynk/farebonus/internal/metrics"
	"github.com/mmynk/farebonus/internal/middleware"
	"github.com/mmynk/farebonus/internal/storage/sqlite"
	"github.com/mmynk/farebonus/pkg/api"
)

const (
	testVersion       = "test"
	testAdminEmail    = "admin@example.com"
	testAdminPassword = "correct-horse"
)

type testServer struct {
	store    *sqlite.SQLiteStore
	policy   *calculator.PolicyHolder
	metrics  *metrics.Metrics
	fares    *api.FareServiceClient
	settings *api.SettingsServiceClient
	auth     *api.AuthServiceClient
}

func newTestStore(t *testing.T) *sqlite.SQLiteStore {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "farebonus-service-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()
	ctx := context.Background()

	store := newTestStore(t)
	policy, err := Bootstrap(ctx, store, testVersion)
	if err != nil {
		t.Fatalf("Bootstrap failed: %v", err)
	}

	authenticator := auth.NewPasswordAuthenticator(store)
	if _, err := auth.EnsureAdmin(ctx, authenticator, testAdminEmail, testAdminPassword); err != nil {
		t.Fatalf("EnsureAdmin failed: %v", err)
	}
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)

	m := metrics.New()
	interceptors := connect.WithInterceptors(
		middleware.LoggingInterceptor(),
		middleware.MetricsInterceptor(m),
	)

	mux := http.NewServeMux()
	farePath, fareHandler := api.NewFareServiceHandler(NewFareService(store, policy, m), interceptors)
	mux.Handle(farePath, fareHandler)
	settingsPath, settingsHandler := api.NewSettingsServiceHandler(
		NewSettingsService(store, policy, testVersion),
		middleware.RequireAuth(jwtManager),
		interceptors,
	)
	mux.Handle(settingsPath, settingsHandler)
	authPath, authHandler := api.NewAuthServiceHandler(NewAuthService(authenticator, jwtManager, slog.Default()), interceptors)
	mux.Handle(authPath, authHandler)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return &testServer{
		store:    store,
		policy:   policy,
		metrics:  m,
		fares:    api.NewFareServiceClient(server.Client(), server.URL),
		settings: api.NewSettingsServiceClient(server.Client(), server.URL),
		auth:     api.NewAuthServiceClient(server.Client(), server.URL),
	}
}

func (ts *testServer) login(t *testing.T) string {
	t.Helper()

	resp, err := ts.auth.Login(context.Background(), connect.NewRequest(&api.LoginRequest{
		Email:    testAdminEmail,
		Password: testAdminPassword,
	}))
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	return resp.Msg.Token
}

func withToken[T any](msg *T, token string) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set("Authorization", "Bearer "+token)
	return req
}

func strPtr(s string) *string {
	return &s
}

func assertCode(t *testing.T, err error, want connect.Code) {
	t.Helper()

	if err == nil {
		t.Fatalf("Expected %v error, got nil", want)
	}
	if got := connect.CodeOf(err); got != want {
		t.Errorf("Expected code %v, got %v (%v)", want, got, err)
	}
}

// scrapeMetrics returns the Prometheus exposition of the server's registry.
func (ts *testServer) scrapeMetrics(t *testing.T) string {
	t.Helper()

	rec := httptest.NewRecorder()
	ts.metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	return rec.Body.String()
}
