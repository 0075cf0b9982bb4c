package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"inmoportal/internal/agent"
	"inmoportal/internal/contextutil"
	"inmoportal/internal/llm"
	"inmoportal/internal/ratelimit"
)

// AgentHandler handles HTTP requests for the chat agent. Replies are streamed
// as newline-delimited JSON events.
type AgentHandler struct {
	engine  agent.Engine
	limiter *ratelimit.Limiter
}

// NewAgentHandler creates a new AgentHandler.
func NewAgentHandler(engine agent.Engine, limiter *ratelimit.Limiter) *AgentHandler {
	return &AgentHandler{
		engine:  engine,
		limiter: limiter,
	}
}

// AgentRequest represents the HTTP request payload for the agent.
type AgentRequest struct {
	Messages []llm.Message `json:"messages"`
}

// ServeHTTP handles one chat turn.
func (h *AgentHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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

	var req AgentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Messages) == 0 {
		writeError(w, http.StatusBadRequest, "messages must not be empty")
		return
	}

	events, err := h.engine.Respond(ctx, req.Messages, ip)
	if err != nil {
		h.handleEngineError(w, r, err)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		logger.ErrorContext(ctx, "streaming not supported by response writer")
		writeError(w, http.StatusInternalServerError, "Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)

	enc := json.NewEncoder(w)
	for ev := range events {
		if err := enc.Encode(ev); err != nil {
			logger.WarnContext(ctx, "client write failed, draining stream", "error", err)
			// Keep draining so the producer goroutine can finish.
			for range events {
			}
			return
		}
		flusher.Flush()
	}
}

// handleEngineError maps pre-stream engine errors to HTTP statuses.
func (h *AgentHandler) handleEngineError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var validationErr *agent.ValidationError
	switch {
	case errors.As(err, &validationErr):
		logger.WarnContext(ctx, "invalid turn", "error", err)
		writeError(w, http.StatusBadRequest, validationErr.Error())
	case errors.Is(err, agent.ErrModelNotConfigured):
		logger.ErrorContext(ctx, "model credentials missing")
		writeError(w, http.StatusServiceUnavailable, agent.HandoffReply)
	case errors.Is(err, agent.ErrCatalog):
		logger.ErrorContext(ctx, "catalog unavailable", "error", err)
		writeError(w, http.StatusInternalServerError, agent.NoDataReply)
	default:
		logger.ErrorContext(ctx, "agent request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to process chat request")
	}
}
