package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"inmoportal/internal/agent"
	"inmoportal/internal/contextutil"
	"inmoportal/internal/storage"
)

const (
	defaultListLimit = 50
	maxListLimit     = 100
)

// ProjectsHandler serves the public catalog API.
type ProjectsHandler struct {
	projects    storage.ProjectStore
	siteBaseURL string
}

// NewProjectsHandler creates a new ProjectsHandler.
func NewProjectsHandler(projects storage.ProjectStore, siteBaseURL string) *ProjectsHandler {
	return &ProjectsHandler{
		projects:    projects,
		siteBaseURL: siteBaseURL,
	}
}

// ProjectResponse is a catalog record plus its canonical URL.
type ProjectResponse struct {
	storage.Project
	URL string `json:"url"`
}

// ListResponse is the listing payload.
type ListResponse struct {
	Projects []ProjectResponse `json:"projects"`
	Count    int               `json:"count"`
}

// List handles GET /api/projects with the same filter vocabulary the agent
// uses: comuna, status, q (name), min_uf, max_uf, dormitorios, limit.
func (h *ProjectsHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	filters, err := filtersFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	limit := defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxListLimit)
	}

	records, err := h.projects.List(ctx, filters, limit)
	if err != nil {
		logger.ErrorContext(ctx, "failed to list projects", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to list projects")
		return
	}

	resp := ListResponse{Projects: []ProjectResponse{}, Count: len(records)}
	for _, p := range records {
		resp.Projects = append(resp.Projects, ProjectResponse{
			Project: p,
			URL:     agent.CanonicalLink(p, h.siteBaseURL),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

// Detail handles GET /api/projects/{slug}.
func (h *ProjectsHandler) Detail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	slug := chi.URLParam(r, "slug")
	p, err := h.projects.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Project not found")
			return
		}
		logger.ErrorContext(ctx, "failed to fetch project", "slug", slug, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch project")
		return
	}

	resp := ProjectResponse{Project: *p, URL: agent.CanonicalLink(*p, h.siteBaseURL)}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

// filtersFromQuery maps listing query params onto catalog filters.
func filtersFromQuery(r *http.Request) (storage.Filters, error) {
	q := r.URL.Query()
	f := storage.Filters{
		Comuna:      q.Get("comuna"),
		Status:      q.Get("status"),
		ProjectName: q.Get("q"),
	}

	if raw := q.Get("min_uf"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return f, errors.New("min_uf must be a number")
		}
		f.MinPrice = &v
	}
	if raw := q.Get("max_uf"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return f, errors.New("max_uf must be a number")
		}
		f.MaxPrice = &v
	}
	if raw := q.Get("dormitorios"); raw != "" {
		for _, tok := range strings.Split(raw, ",") {
			n, err := strconv.Atoi(strings.TrimSpace(tok))
			if err != nil || n < 0 {
				return f, errors.New("dormitorios must be a comma-separated list of non-negative integers")
			}
			f.Dormitorios = append(f.Dormitorios, n)
		}
	}

	return f, nil
}
