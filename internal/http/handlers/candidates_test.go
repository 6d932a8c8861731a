package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/devhire/talenthub/internal/domain/candidate"
	"github.com/devhire/talenthub/internal/domain/employee"
	"github.com/devhire/talenthub/internal/http/handlers"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Make sure Gin does not spam the console during the test

func init() {
	gin.SetMode(gin.TestMode)
}

// Fake service implementation of the handlers.CandidatesManager interface

type fakeCandidatesSvc struct {
	createFn func(ctx context.Context, req candidate.CreateCandidateRequest) (candidate.Candidate, error)
	getFn    func(ctx context.Context, id string) (candidate.Candidate, error)
	listFn   func(ctx context.Context, f candidate.ListFilter) ([]candidate.Candidate, int, error)
	updateFn func(ctx context.Context, id string, req candidate.UpdateCandidateRequest) (candidate.Candidate, error)
	deleteFn func(ctx context.Context, id string) error
	hireFn   func(ctx context.Context, id string, req employee.HireRequest) (employee.Employee, error)
	statsFn  func(ctx context.Context) (candidate.Stats, error)
}

func (f *fakeCandidatesSvc) Create(ctx context.Context, req candidate.CreateCandidateRequest) (candidate.Candidate, error) {
	if f.createFn != nil {
		return f.createFn(ctx, req)
	}
	return candidate.Candidate{}, nil
}

func (f *fakeCandidatesSvc) Get(ctx context.Context, id string) (candidate.Candidate, error) {
	if f.getFn != nil {
		return f.getFn(ctx, id)
	}
	return candidate.Candidate{}, nil
}

func (f *fakeCandidatesSvc) List(ctx context.Context, filter candidate.ListFilter) ([]candidate.Candidate, int, error) {
	if f.listFn != nil {
		return f.listFn(ctx, filter)
	}
	return nil, 0, nil
}

func (f *fakeCandidatesSvc) Update(ctx context.Context, id string, req candidate.UpdateCandidateRequest) (candidate.Candidate, error) {
	if f.updateFn != nil {
		return f.updateFn(ctx, id, req)
	}
	return candidate.Candidate{}, nil
}

func (f *fakeCandidatesSvc) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakeCandidatesSvc) Hire(ctx context.Context, id string, req employee.HireRequest) (employee.Employee, error) {
	if f.hireFn != nil {
		return f.hireFn(ctx, id, req)
	}
	return employee.Employee{}, nil
}

func (f *fakeCandidatesSvc) Stats(ctx context.Context) (candidate.Stats, error) {
	if f.statsFn != nil {
		return f.statsFn(ctx)
	}
	return candidate.Stats{}, nil
}

// small helper function which returns the gin engine to mount one handler per test

func setupRouter(method, path string, h gin.HandlerFunc) *gin.Engine {
	r := gin.New()

	r.Handle(method, path, h)

	return r
}

func TestCreateCandidateHandler(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name           string
		body           string
		svcSetUp       func(*fakeCandidatesSvc)
		wantStatusCode int
	}{
		{
			name: "success",
			body: `{
				"fullName": "Ada Lovelace",
				"email": "ada@example.com",
				"yearsExperience": 5,
				"skills": ["Go", "SQL"]
			}`,
			svcSetUp: func(f *fakeCandidatesSvc) {
				f.createFn = func(ctx context.Context, req candidate.CreateCandidateRequest) (candidate.Candidate, error) {
					return candidate.Candidate{
						ID:        uuid.NewString(),
						FullName:  req.FullName,
						Email:     req.Email,
						Skills:    req.Skills,
						Status:    candidate.StatusApplied,
						CreatedAt: now,
						UpdatedAt: now,
					}, nil
				}
			},
			wantStatusCode: http.StatusCreated,
		},
		{
			name: "validation_error",
			body: `{"fullName": ""}`, // incomplete payload, service must not be called
			svcSetUp: func(f *fakeCandidatesSvc) {
				f.createFn = func(ctx context.Context, req candidate.CreateCandidateRequest) (candidate.Candidate, error) {
					t.Fatal("service called for an invalid payload")
					return candidate.Candidate{}, nil
				}
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "duplicate_email",
			body: `{"fullName": "Ada Lovelace", "email": "ada@example.com"}`,
			svcSetUp: func(f *fakeCandidatesSvc) {
				f.createFn = func(ctx context.Context, req candidate.CreateCandidateRequest) (candidate.Candidate, error) {
					return candidate.Candidate{}, candidate.ErrDuplicateEmail
				}
			},
			wantStatusCode: http.StatusConflict,
		},
		{
			name: "service_error",
			body: `{"fullName": "Ada Lovelace", "email": "ada@example.com"}`,
			svcSetUp: func(f *fakeCandidatesSvc) {
				f.createFn = func(ctx context.Context, req candidate.CreateCandidateRequest) (candidate.Candidate, error) {
					return candidate.Candidate{}, errors.New("boom")
				}
			},
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeCandidatesSvc{}

			if tt.svcSetUp != nil {
				tt.svcSetUp(fake)
			}

			h := handlers.NewCandidatesHandler(fake)

			r := setupRouter(http.MethodPost, "/candidates", h.CreateCandidate)

			req := httptest.NewRequest(http.MethodPost, "/candidates", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}
		})
	}
}

func TestGetCandidateByIdHandler(t *testing.T) {
	knownID := uuid.NewString()

	tests := []struct {
		name           string
		id             string
		svcSetUp       func(*fakeCandidatesSvc)
		wantStatusCode int
	}{
		{
			name: "found",
			id:   knownID,
			svcSetUp: func(f *fakeCandidatesSvc) {
				f.getFn = func(ctx context.Context, id string) (candidate.Candidate, error) {
					return candidate.Candidate{ID: id, FullName: "Ada", Email: "ada@example.com"}, nil
				}
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "not_found",
			id:   uuid.NewString(),
			svcSetUp: func(f *fakeCandidatesSvc) {
				f.getFn = func(ctx context.Context, id string) (candidate.Candidate, error) {
					return candidate.Candidate{}, candidate.ErrNotFound
				}
			},
			wantStatusCode: http.StatusNotFound,
		},
		{
			name:           "malformed_id",
			id:             "not-a-uuid",
			wantStatusCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeCandidatesSvc{}

			if tt.svcSetUp != nil {
				tt.svcSetUp(fake)
			}

			h := handlers.NewCandidatesHandler(fake)

			r := setupRouter(http.MethodGet, "/candidates/:id", h.GetCandidateById)

			req := httptest.NewRequest(http.MethodGet, "/candidates/"+tt.id, nil)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}
		})
	}
}

func TestListCandidatesHandler(t *testing.T) {
	t.Run("pagination_echoed_in_response", func(t *testing.T) {
		fake := &fakeCandidatesSvc{
			listFn: func(ctx context.Context, f candidate.ListFilter) ([]candidate.Candidate, int, error) {
				if f.Limit != 5 || f.Offset != 10 {
					t.Fatalf("bad window: limit=%d offset=%d", f.Limit, f.Offset)
				}
				return []candidate.Candidate{{ID: uuid.NewString()}}, 42, nil
			},
		}

		h := handlers.NewCandidatesHandler(fake)

		r := setupRouter(http.MethodGet, "/candidates", h.ListCandidates)

		req := httptest.NewRequest(http.MethodGet, "/candidates?page=3&pageSize=5", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("got status %d, body=%s", w.Code, w.Body.String())
		}

		var resp struct {
			Total    int `json:"total"`
			Page     int `json:"page"`
			PageSize int `json:"pageSize"`
		}

		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("bad response: %v", err)
		}

		if resp.Total != 42 || resp.Page != 3 || resp.PageSize != 5 {
			t.Fatalf("unexpected envelope: %+v", resp)
		}
	})

	t.Run("bad_page_is_400", func(t *testing.T) {
		h := handlers.NewCandidatesHandler(&fakeCandidatesSvc{})

		r := setupRouter(http.MethodGet, "/candidates", h.ListCandidates)

		req := httptest.NewRequest(http.MethodGet, "/candidates?page=zero", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("got status %d, want 400", w.Code)
		}
	})

	t.Run("bad_order_is_400", func(t *testing.T) {
		h := handlers.NewCandidatesHandler(&fakeCandidatesSvc{})

		r := setupRouter(http.MethodGet, "/candidates", h.ListCandidates)

		req := httptest.NewRequest(http.MethodGet, "/candidates?order=sideways", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("got status %d, want 400", w.Code)
		}
	})
}

func TestHireCandidateHandler(t *testing.T) {
	id := uuid.NewString()

	tests := []struct {
		name           string
		svcSetUp       func(*fakeCandidatesSvc)
		wantStatusCode int
	}{
		{
			name: "hired",
			svcSetUp: func(f *fakeCandidatesSvc) {
				f.hireFn = func(ctx context.Context, id string, req employee.HireRequest) (employee.Employee, error) {
					return employee.Employee{ID: uuid.NewString(), Department: req.Department}, nil
				}
			},
			wantStatusCode: http.StatusCreated,
		},
		{
			name: "already_hired",
			svcSetUp: func(f *fakeCandidatesSvc) {
				f.hireFn = func(ctx context.Context, id string, req employee.HireRequest) (employee.Employee, error) {
					return employee.Employee{}, candidate.ErrAlreadyHired
				}
			},
			wantStatusCode: http.StatusConflict,
		},
		{
			name: "unknown_candidate",
			svcSetUp: func(f *fakeCandidatesSvc) {
				f.hireFn = func(ctx context.Context, id string, req employee.HireRequest) (employee.Employee, error) {
					return employee.Employee{}, candidate.ErrNotFound
				}
			},
			wantStatusCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeCandidatesSvc{}
			tt.svcSetUp(fake)

			h := handlers.NewCandidatesHandler(fake)

			r := setupRouter(http.MethodPost, "/candidates/:id/hire", h.HireCandidate)

			body := `{"department": "Platform", "position": "Engineer"}`
			req := httptest.NewRequest(http.MethodPost, "/candidates/"+id+"/hire", bytes.NewBufferString(body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}
		})
	}
}

func TestDeleteCandidateHandler(t *testing.T) {
	id := uuid.NewString()

	fake := &fakeCandidatesSvc{
		deleteFn: func(ctx context.Context, got string) error {
			if got != id {
				t.Fatalf("wrong id passed to service: %s", got)
			}
			return nil
		},
	}

	h := handlers.NewCandidatesHandler(fake)

	r := setupRouter(http.MethodDelete, "/candidates/:id", h.DeleteCandidate)

	req := httptest.NewRequest(http.MethodDelete, "/candidates/"+id, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("got status %d, want 204", w.Code)
	}
}
