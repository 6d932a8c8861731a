package utils_test

import (
	"net/http/httptest"
	"testing"

	"github.com/devhire/talenthub/internal/utils"
	"github.com/gin-gonic/gin"
)

func ctxWithQuery(rawQuery string) *gin.Context {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+rawQuery, nil)

	return c
}

func TestParsePage(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		wantPage int
		wantSize int
		wantErr  bool
	}{
		{name: "defaults", query: "", wantPage: 1, wantSize: 20},
		{name: "explicit", query: "page=3&pageSize=5", wantPage: 3, wantSize: 5},
		{name: "size_capped", query: "pageSize=9999", wantPage: 1, wantSize: 100},
		{name: "zero_page", query: "page=0", wantErr: true},
		{name: "negative_page", query: "page=-2", wantErr: true},
		{name: "garbage_page", query: "page=abc", wantErr: true},
		{name: "garbage_size", query: "pageSize=abc", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			p, err := utils.ParsePage(ctxWithQuery(tt.query), 20, 100)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("want error, got %+v", p)
				}
				return
			}

			if err != nil {
				t.Fatal(err)
			}

			if p.Page != tt.wantPage || p.PageSize != tt.wantSize {
				t.Fatalf("got page=%d size=%d, want page=%d size=%d", p.Page, p.PageSize, tt.wantPage, tt.wantSize)
			}
		})
	}
}

func TestPageParamsOffset(t *testing.T) {
	p := utils.PageParams{Page: 3, PageSize: 20}

	if p.Offset() != 40 {
		t.Fatalf("want offset 40, got %d", p.Offset())
	}
}

func TestParseSort(t *testing.T) {
	t.Run("defaults_to_ascending", func(t *testing.T) {
		sortBy, desc, err := utils.ParseSort(ctxWithQuery("sort=email"))

		if err != nil || sortBy != "email" || desc {
			t.Fatalf("got sort=%q desc=%v err=%v", sortBy, desc, err)
		}
	})

	t.Run("desc", func(t *testing.T) {
		_, desc, err := utils.ParseSort(ctxWithQuery("sort=email&order=desc"))

		if err != nil || !desc {
			t.Fatalf("got desc=%v err=%v", desc, err)
		}
	})

	t.Run("bad_order", func(t *testing.T) {
		_, _, err := utils.ParseSort(ctxWithQuery("order=upwards"))

		if err == nil {
			t.Fatal("want error for invalid order")
		}
	})
}

func TestIsUUID(t *testing.T) {
	if !utils.IsUUID("7b1e3e0a-4c3b-4a1e-9b6e-2f8a6c1d9e42") {
		t.Fatal("valid uuid rejected")
	}

	if utils.IsUUID("candidates") {
		t.Fatal("non-uuid accepted")
	}
}
