package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/devhire/talenthub/internal/http/handlers"
	"github.com/devhire/talenthub/internal/http/middlewares"
	"github.com/gin-gonic/gin"
)

func TestRespondErrorCarriesRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(middlewares.RequestID())
	r.GET("/boom", func(ctx *gin.Context) {
		handlers.RespondNotFound(ctx, "nothing here")
	})

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	req.Header.Set("X-Request-Id", "req-123")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("got status %d, want 404", w.Code)
	}

	var resp struct {
		Error struct {
			Code      string `json:"code"`
			RequestID string `json:"requestId"`
		} `json:"error"`
	}

	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}

	// the id the middleware stashed must surface in the envelope
	if resp.Error.RequestID != "req-123" {
		t.Fatalf("envelope requestId = %q, want the inbound id", resp.Error.RequestID)
	}

	if resp.Error.Code != "not_found" {
		t.Fatalf("unexpected code: %s", resp.Error.Code)
	}
}
