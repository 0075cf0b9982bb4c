package handlers

import (
	"encoding/json"
	"net/http"
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"inmoportal/internal/contextutil"
	mailer "inmoportal/internal/mail"
	"inmoportal/internal/ratelimit"
	"inmoportal/internal/storage"
)

// ContactHandler handles contact-form submissions.
type ContactHandler struct {
	leads   storage.LeadStore
	sender  mailer.Sender
	limiter *ratelimit.Limiter
}

// NewContactHandler creates a new ContactHandler. sender may be nil when SMTP
// is not configured; leads are still persisted.
func NewContactHandler(leads storage.LeadStore, sender mailer.Sender, limiter *ratelimit.Limiter) *ContactHandler {
	return &ContactHandler{
		leads:   leads,
		sender:  sender,
		limiter: limiter,
	}
}

// ContactRequest represents the HTTP request payload for the contact form.
type ContactRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone,omitempty"`
	Message     string `json:"message,omitempty"`
	ProjectSlug string `json:"project_slug,omitempty"`
}

// ContactResponse represents the HTTP response payload for the contact form.
type ContactResponse struct {
	Status string `json:"status"`
	ID     string `json:"id"`
}

// ServeHTTP handles one contact-form submission. The lead is persisted first;
// the email notification is best effort.
func (h *ContactHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	ip := clientIP(r)
	if !h.limiter.Allow(ip) {
		logger.WarnContext(ctx, "rate limit exceeded", "client_ip", ip)
		writeError(w, http.StatusTooManyRequests, "Demasiadas solicitudes. Intenta nuevamente en unos minutos.")
		return
	}

	var req ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		writeError(w, http.StatusBadRequest, "email is not a valid address")
		return
	}

	lead := storage.Lead{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Email:       req.Email,
		Phone:       strings.TrimSpace(req.Phone),
		Message:     strings.TrimSpace(req.Message),
		ProjectSlug: strings.TrimSpace(req.ProjectSlug),
		ClientIP:    ip,
	}

	if err := h.leads.Insert(ctx, lead); err != nil {
		logger.ErrorContext(ctx, "failed to persist lead", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to save contact request")
		return
	}

	if h.sender != nil {
		if err := h.sender.SendLeadNotification(lead); err != nil {
			logger.WarnContext(ctx, "failed to send lead notification", "lead_id", lead.ID, "error", err)
		}
	}

	logger.InfoContext(ctx, "lead received", "lead_id", lead.ID, "project_slug", lead.ProjectSlug)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	if err := json.NewEncoder(w).Encode(ContactResponse{Status: "received", ID: lead.ID}); err != nil {
		logger.ErrorContext(ctx, "failed to encode response", "error", err)
	}
}
