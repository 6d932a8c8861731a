package integration_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/devhire/talenthub/internal/config"
	httpx "github.com/devhire/talenthub/internal/http"
	"github.com/devhire/talenthub/internal/http/middlewares"
	"github.com/devhire/talenthub/internal/observability"
	"github.com/devhire/talenthub/internal/security"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const adminPassword = "correct-horse-battery"

func newTestRouter(t *testing.T, rateLimit int) *gin.Engine {
	t.Helper()

	hash, err := security.HashPassword(adminPassword)

	if err != nil {
		t.Fatal(err)
	}

	cfg := config.Config{
		Env:               "dev",
		RateLimit:         rateLimit,
		RateWindow:        time.Minute,
		GlobalRPS:         10000,
		GlobalBurst:       10000,
		JWTSecret:         "integration-secret",
		TokenTTL:          15 * time.Minute,
		AdminEmail:        "admin@talenthub.local",
		AdminPasswordHash: hash,
		AllowedOrigins:    []string{"http://localhost:3000"},
	}

	registry := prometheus.NewRegistry()

	return httpx.NewRouter(httpx.Deps{
		Config:         cfg,
		Registry:       registry,
		Prom:           observability.NewProm(registry),
		RateLimitStore: middlewares.NewMemoryStore(cfg.RateWindow),
	})
}

func doJSON(r *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	var req *http.Request

	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func adminToken(t *testing.T, r *gin.Engine) string {
	t.Helper()

	w := doJSON(r, http.MethodPost, "/auth/token",
		`{"email":"admin@talenthub.local","password":"`+adminPassword+`"}`, "")

	if w.Code != http.StatusOK {
		t.Fatalf("token request failed: %d %s", w.Code, w.Body.String())
	}

	var resp struct {
		AccessToken string `json:"accessToken"`
	}

	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}

	return resp.AccessToken
}

func TestCandidateLifecycle(t *testing.T) {
	r := newTestRouter(t, 1000)

	createBody := `{
		"fullName": "Ada Lovelace",
		"email": "ada@example.com",
		"yearsExperience": 6,
		"skills": ["Go", "Postgres"]
	}`

	// create
	w := doJSON(r, http.MethodPost, "/candidates", createBody, "")

	if w.Code != http.StatusCreated {
		t.Fatalf("create failed: %d %s", w.Code, w.Body.String())
	}

	var created struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}

	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}

	if created.Status != "applied" {
		t.Fatalf("new candidate should start as applied, got %s", created.Status)
	}

	// created entity is retrievable
	if w := doJSON(r, http.MethodGet, "/candidates/"+created.ID, "", ""); w.Code != http.StatusOK {
		t.Fatalf("get after create failed: %d", w.Code)
	}

	// duplicate email rejected
	if w := doJSON(r, http.MethodPost, "/candidates", createBody, ""); w.Code != http.StatusConflict {
		t.Fatalf("duplicate create should be 409, got %d", w.Code)
	}

	// hire requires a token
	hireBody := `{"department": "Platform", "position": "Engineer"}`

	if w := doJSON(r, http.MethodPost, "/candidates/"+created.ID+"/hire", hireBody, ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated hire should be 401, got %d", w.Code)
	}

	token := adminToken(t, r)

	w = doJSON(r, http.MethodPost, "/candidates/"+created.ID+"/hire", hireBody, token)

	if w.Code != http.StatusCreated {
		t.Fatalf("hire failed: %d %s", w.Code, w.Body.String())
	}

	var hired struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}

	if err := json.Unmarshal(w.Body.Bytes(), &hired); err != nil {
		t.Fatal(err)
	}

	if hired.Email != "ada@example.com" {
		t.Fatalf("hire lost the candidate email: %+v", hired)
	}

	// the employee shows up in the employee collection
	w = doJSON(r, http.MethodGet, "/employees?department=Platform", "", "")

	if w.Code != http.StatusOK {
		t.Fatalf("employee list failed: %d", w.Code)
	}

	var list struct {
		Total int `json:"total"`
	}

	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatal(err)
	}

	if list.Total != 1 {
		t.Fatalf("want 1 platform employee, got %d", list.Total)
	}

	// hiring the same candidate again conflicts
	if w := doJSON(r, http.MethodPost, "/candidates/"+created.ID+"/hire", hireBody, token); w.Code != http.StatusConflict {
		t.Fatalf("second hire should be 409, got %d", w.Code)
	}

	// employee delete needs the admin role
	if w := doJSON(r, http.MethodDelete, "/employees/"+hired.ID, "", token); w.Code != http.StatusNoContent {
		t.Fatalf("employee delete failed: %d %s", w.Code, w.Body.String())
	}

	// deleted candidate returns 404 afterwards
	if w := doJSON(r, http.MethodDelete, "/candidates/"+created.ID, "", ""); w.Code != http.StatusNoContent {
		t.Fatalf("candidate delete failed: %d", w.Code)
	}

	if w := doJSON(r, http.MethodGet, "/candidates/"+created.ID, "", ""); w.Code != http.StatusNotFound {
		t.Fatalf("deleted candidate should be 404, got %d", w.Code)
	}
}

func TestRateLimitAcrossTheRouter(t *testing.T) {
	r := newTestRouter(t, 2)

	for i := 0; i < 2; i++ {
		if w := doJSON(r, http.MethodGet, "/candidates", "", ""); w.Code != http.StatusOK {
			t.Fatalf("request %d should pass, got %d", i+1, w.Code)
		}
	}

	w := doJSON(r, http.MethodGet, "/candidates", "", "")

	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("third request should be rate limited, got %d", w.Code)
	}

	if w.Header().Get("Retry-After") == "" {
		t.Fatal("429 must carry a Retry-After header")
	}
}

func TestContentTypeIsEnforced(t *testing.T) {
	r := newTestRouter(t, 1000)

	req := httptest.NewRequest(http.MethodPost, "/candidates", bytes.NewBufferString(`{"fullName":"Ada"}`))
	req.Header.Set("Content-Type", "text/plain")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("want 415 for non-json body, got %d", w.Code)
	}
}

func TestUnknownSortIs400(t *testing.T) {
	r := newTestRouter(t, 1000)

	w := doJSON(r, http.MethodGet, "/candidates?sort=salary", "", "")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("want 400 for unsupported sort, got %d body=%s", w.Code, w.Body.String())
	}
}
