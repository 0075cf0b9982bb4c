package main

import (
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"inmoportal/internal/agent"
	"inmoportal/internal/config"
	"inmoportal/internal/http"
	"inmoportal/internal/llm"
	"inmoportal/internal/mail"
	"inmoportal/internal/ratelimit"
	"inmoportal/internal/storage"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	// Initialize database
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	// Create repository instances
	projectRepo := storage.NewProjectRepo(db)
	chatLogRepo := storage.NewChatLogRepo(db)
	leadRepo := storage.NewLeadRepo(db)

	// Create LLM client; without credentials the agent answers with the
	// fixed hand-off reply.
	var model agent.ModelClient
	if cfg.ModelConfigured() {
		model = llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModelName, cfg.LLMTimeout)
		slog.Info("Model client initialized", "base_url", cfg.LLMBaseURL, "model", cfg.LLMModelName)
	} else {
		slog.Warn("LLM_API_KEY not set, agent will hand off to WhatsApp")
	}

	// Create mail sender; without SMTP settings leads are persisted but
	// not emailed.
	var sender mail.Sender
	if cfg.MailConfigured() {
		sender = mail.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.ContactFrom, cfg.ContactTo)
		slog.Info("Mail sender initialized", "host", cfg.SMTPHost, "to", cfg.ContactTo)
	} else {
		slog.Warn("SMTP not configured, lead notifications disabled")
	}

	engine := agent.NewEngine(projectRepo, chatLogRepo, model, cfg.SiteBaseURL, cfg.WhatsAppURL)
	limiter := ratelimit.New(cfg.RateLimitWindow, cfg.RateLimitMax)

	// Create router with dependencies
	deps := &http.Deps{
		Engine:          engine,
		Projects:        projectRepo,
		Leads:           leadRepo,
		Mailer:          sender,
		Limiter:         limiter,
		DB:              db,
		SiteBaseURL:     cfg.SiteBaseURL,
		ModelConfigured: cfg.ModelConfigured(),
		MailConfigured:  cfg.MailConfigured(),
	}
	router := http.NewRouter(deps)

	// Start API server
	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}
