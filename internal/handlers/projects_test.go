package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"inmoportal/internal/storage"
	"inmoportal/internal/storage/mocks"
)

const testBaseURL = "https://www.inmoportal.cl"

func fptr(v float64) *float64 { return &v }

func TestProjectsHandler_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockProjectStore(ctrl)

	var captured storage.Filters
	store.EXPECT().
		List(gomock.Any(), gomock.Any(), 50).
		DoAndReturn(func(_ context.Context, f storage.Filters, _ int) ([]storage.Project, error) {
			captured = f
			return []storage.Project{
				{ID: "p1", Name: "Parque Ñuñoa", Comuna: "Ñuñoa", Slug: "parque-nunoa", UFMin: fptr(3000)},
			}, nil
		})

	handler := NewProjectsHandler(store, testBaseURL)

	req := httptest.NewRequest(http.MethodGet, "/api/projects?comuna=Ñuñoa&min_uf=2500&dormitorios=2,3", nil)
	w := httptest.NewRecorder()

	handler.List(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("List() status = %v, want %v", w.Code, http.StatusOK)
	}

	if captured.Comuna != "Ñuñoa" {
		t.Errorf("captured comuna = %q, want Ñuñoa", captured.Comuna)
	}
	if captured.MinPrice == nil || *captured.MinPrice != 2500 {
		t.Errorf("captured min price = %v, want 2500", captured.MinPrice)
	}
	if len(captured.Dormitorios) != 2 || captured.Dormitorios[0] != 2 || captured.Dormitorios[1] != 3 {
		t.Errorf("captured dormitorios = %v, want [2 3]", captured.Dormitorios)
	}

	var resp ListResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Count != 1 || len(resp.Projects) != 1 {
		t.Fatalf("response count = %d (%d projects), want 1", resp.Count, len(resp.Projects))
	}
	if resp.Projects[0].URL != testBaseURL+"/proyectos/parque-nunoa" {
		t.Errorf("project URL = %q, want canonical slug link", resp.Projects[0].URL)
	}
}

func TestProjectsHandler_List_EmptyCatalog(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockProjectStore(ctrl)
	store.EXPECT().
		List(gomock.Any(), gomock.Any(), 50).
		Return([]storage.Project{}, nil)

	handler := NewProjectsHandler(store, testBaseURL)

	req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	w := httptest.NewRecorder()

	handler.List(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("List() status = %v, want %v", w.Code, http.StatusOK)
	}

	var resp ListResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Projects == nil {
		t.Error("projects should encode as an empty array, not null")
	}
}

func TestProjectsHandler_List_LimitClamped(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockProjectStore(ctrl)
	store.EXPECT().
		List(gomock.Any(), gomock.Any(), maxListLimit).
		Return([]storage.Project{}, nil)

	handler := NewProjectsHandler(store, testBaseURL)

	req := httptest.NewRequest(http.MethodGet, "/api/projects?limit=5000", nil)
	w := httptest.NewRecorder()

	handler.List(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("List() status = %v, want %v", w.Code, http.StatusOK)
	}
}

func TestProjectsHandler_List_BadParams(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{name: "non-numeric min_uf", query: "min_uf=caro"},
		{name: "non-numeric max_uf", query: "max_uf=barato"},
		{name: "negative dormitorios", query: "dormitorios=-1"},
		{name: "non-numeric dormitorios", query: "dormitorios=dos"},
		{name: "zero limit", query: "limit=0"},
		{name: "non-numeric limit", query: "limit=muchos"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			handler := NewProjectsHandler(mocks.NewMockProjectStore(ctrl), testBaseURL)

			req := httptest.NewRequest(http.MethodGet, "/api/projects?"+tt.query, nil)
			w := httptest.NewRecorder()

			handler.List(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("List(%s) status = %v, want %v", tt.query, w.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestProjectsHandler_List_StoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockProjectStore(ctrl)
	store.EXPECT().
		List(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("disk I/O error"))

	handler := NewProjectsHandler(store, testBaseURL)

	req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	w := httptest.NewRecorder()

	handler.List(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("List() status = %v, want %v", w.Code, http.StatusInternalServerError)
	}
}

func detailRequest(slug string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/projects/"+slug, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("slug", slug)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestProjectsHandler_Detail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockProjectStore(ctrl)
	store.EXPECT().
		GetBySlug(gomock.Any(), "parque-nunoa").
		Return(&storage.Project{ID: "p1", Name: "Parque Ñuñoa", Slug: "parque-nunoa"}, nil)

	handler := NewProjectsHandler(store, testBaseURL)

	w := httptest.NewRecorder()
	handler.Detail(w, detailRequest("parque-nunoa"))

	if w.Code != http.StatusOK {
		t.Fatalf("Detail() status = %v, want %v", w.Code, http.StatusOK)
	}

	var resp ProjectResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Name != "Parque Ñuñoa" {
		t.Errorf("project name = %q, want Parque Ñuñoa", resp.Name)
	}
}

func TestProjectsHandler_Detail_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockProjectStore(ctrl)
	store.EXPECT().
		GetBySlug(gomock.Any(), "no-existe").
		Return(nil, storage.ErrNotFound)

	handler := NewProjectsHandler(store, testBaseURL)

	w := httptest.NewRecorder()
	handler.Detail(w, detailRequest("no-existe"))

	if w.Code != http.StatusNotFound {
		t.Errorf("Detail() status = %v, want %v", w.Code, http.StatusNotFound)
	}
}
