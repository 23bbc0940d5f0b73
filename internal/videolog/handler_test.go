package videolog_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sigmacoders/guardian/internal/videolog"
	"github.com/sigmacoders/guardian/pkg/pagination"
)

type mockSystem struct {
	listFn func(ctx context.Context, page pagination.PageRequest, filters videolog.Filters) (*pagination.PageResult[videolog.Entry], error)
}

func (m *mockSystem) Handler() *videolog.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return videolog.NewHandler(m, logger, pagination.Config{DefaultPageSize: 20, MaxPageSize: 100})
}

func (m *mockSystem) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters videolog.Filters,
) (*pagination.PageResult[videolog.Entry], error) {
	return m.listFn(ctx, page, filters)
}

func (m *mockSystem) Append(ctx context.Context, cmd videolog.AppendCommand) (*videolog.Entry, error) {
	return nil, nil
}

func setupMux(h *videolog.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	group := h.Routes()
	for _, route := range group.Routes {
		pattern := route.Method + " " + group.Prefix + route.Pattern
		mux.HandleFunc(pattern, route.Handler)
	}
	return mux
}

func emptyResult(page pagination.PageRequest) *pagination.PageResult[videolog.Entry] {
	result := pagination.NewPageResult([]videolog.Entry{}, 0, page.Page, page.PageSize)
	return &result
}

func TestHandlerList(t *testing.T) {
	sys := &mockSystem{
		listFn: func(_ context.Context, page pagination.PageRequest, filters videolog.Filters) (*pagination.PageResult[videolog.Entry], error) {
			if filters.Safety == nil || *filters.Safety != "unsafe" {
				t.Errorf("Safety filter = %v, want unsafe", filters.Safety)
			}
			result := pagination.NewPageResult(
				[]videolog.Entry{{Title: "Some Flagged Video", Safety: "unsafe"}},
				1, page.Page, page.PageSize,
			)
			return &result, nil
		},
	}
	mux := setupMux(sys.Handler())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/videologs?safety=unsafe", nil)
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var result pagination.PageResult[videolog.Entry]
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(result.Data) != 1 || result.Data[0].Safety != "unsafe" {
		t.Errorf("unexpected result data: %+v", result.Data)
	}
}

func TestHandlerListForChild(t *testing.T) {
	sys := &mockSystem{
		listFn: func(_ context.Context, page pagination.PageRequest, filters videolog.Filters) (*pagination.PageResult[videolog.Entry], error) {
			if filters.ParentID == nil || *filters.ParentID != "p1" {
				t.Errorf("ParentID filter = %v, want p1", filters.ParentID)
			}
			if filters.ChildID == nil || *filters.ChildID != "c1" {
				t.Errorf("ChildID filter = %v, want c1", filters.ChildID)
			}
			return emptyResult(page), nil
		},
	}
	mux := setupMux(sys.Handler())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/videologs/p1/c1", nil)
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestHandlerSearch(t *testing.T) {
	var captured pagination.PageRequest
	sys := &mockSystem{
		listFn: func(_ context.Context, page pagination.PageRequest, filters videolog.Filters) (*pagination.PageResult[videolog.Entry], error) {
			captured = page
			if filters.Category == nil || *filters.Category != "gaming" {
				t.Errorf("Category filter = %v, want gaming", filters.Category)
			}
			return emptyResult(page), nil
		},
	}
	mux := setupMux(sys.Handler())

	body := []byte(`{"page": 2, "page_size": 10, "category": "gaming"}`)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/videologs/search", bytes.NewReader(body))
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if captured.Page != 2 || captured.PageSize != 10 {
		t.Errorf("page request = %+v, want page 2 size 10", captured)
	}
}

func TestHandlerSearchBadBody(t *testing.T) {
	mux := setupMux((&mockSystem{}).Handler())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/videologs/search", bytes.NewReader([]byte("[")))
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
