package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_lead_store.go -package=mocks inmoportal/internal/storage LeadStore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// LeadStore defines the interface for persisting contact-form leads.
type LeadStore interface {
	// Insert appends one lead.
	Insert(ctx context.Context, lead Lead) error
}

// LeadRepo provides append-only access to the leads table.
// It implements the LeadStore interface.
type LeadRepo struct {
	db *sql.DB
}

// NewLeadRepo creates a new LeadRepo.
func NewLeadRepo(db *sql.DB) *LeadRepo {
	return &LeadRepo{db: db}
}

// Insert appends one lead. A missing ID gets a fresh UUID.
func (r *LeadRepo) Insert(ctx context.Context, lead Lead) error {
	if lead.ID == "" {
		lead.ID = uuid.New().String()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO leads (id, name, email, phone, message, project_slug, client_ip)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		lead.ID, lead.Name, lead.Email, lead.Phone, lead.Message, lead.ProjectSlug, lead.ClientIP,
	)
	if err != nil {
		return fmt.Errorf("failed to insert lead: %w", err)
	}

	return nil
}
