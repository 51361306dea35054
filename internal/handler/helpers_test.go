package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/robocafe/api/internal/auth"
	"github.com/robocafe/api/internal/catalog"
	"github.com/robocafe/api/internal/config"
	"github.com/robocafe/api/internal/logger"
	"github.com/robocafe/api/internal/robot"
	"github.com/robocafe/api/internal/router"
	"github.com/robocafe/api/internal/service"
	"github.com/robocafe/api/internal/store"
	"github.com/robocafe/api/internal/ws"
)

const testChefKey = "TEST-KEY"

// testEnv wires the full router with in-memory components, the way main
// does it minus NATS and the payment delay.
type testEnv struct {
	handler http.Handler
	svc     *service.OrderService
	store   *store.Memory
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{
		JWTSecret:      "test-secret",
		AllowedOrigins: []string{"http://localhost:5173"},
		Tables:         []string{"A", "B", "C", "D", "E", "F", "G", "H"},
		ChefKeys:       map[string]string{testChefKey: "Test Chef"},
	}

	log := logger.New("test")
	st := store.NewMemory()
	disp := robot.New(nil)
	svc := service.NewOrderService(st, nil, disp, cfg.Tables, log)

	keys, err := auth.NewChefKeyTable(cfg.ChefKeys)
	if err != nil {
		t.Fatalf("chef key table: %v", err)
	}

	// The hub's Run loop is not needed: Broadcast never blocks.
	h := router.New(cfg, svc, catalog.Default(), keys, nil, ws.NewHub(), log)
	return &testEnv{handler: h, svc: svc, store: st}
}

// do executes a request against the router. A non-nil body is JSON-encoded;
// a non-empty token is sent as a bearer credential.
func (e *testEnv) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

// chefToken logs in through the real endpoint and returns the session token.
func (e *testEnv) chefToken(t *testing.T) string {
	t.Helper()

	rec := e.do(t, http.MethodPost, "/api/auth/chef", map[string]string{"accessKey": testChefKey}, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("chef login: status %d, body %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	decodeBody(t, rec, &resp)
	return resp.Token
}

// submitOrder creates an order over HTTP and returns its ID.
func (e *testEnv) submitOrder(t *testing.T, table string, items, combos []map[string]any) string {
	t.Helper()

	body := map[string]any{"tableNumber": table, "items": items, "combos": combos}
	rec := e.do(t, http.MethodPost, "/api/order", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("submit order: status %d, body %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		OrderID string `json:"orderId"`
	}
	decodeBody(t, rec, &resp)
	return resp.OrderID
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

func qty(id string, n int) map[string]any {
	return map[string]any{"id": id, "quantity": n}
}
