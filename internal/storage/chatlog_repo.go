package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_chatlog_store.go -package=mocks inmoportal/internal/storage ChatLogStore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// ChatLogStore defines the interface for persisting agent turns.
type ChatLogStore interface {
	// Insert appends one chat log entry.
	Insert(ctx context.Context, entry ChatLog) error
}

// ChatLogRepo provides append-only access to the chat_logs table.
// It implements the ChatLogStore interface.
type ChatLogRepo struct {
	db *sql.DB
}

// NewChatLogRepo creates a new ChatLogRepo.
func NewChatLogRepo(db *sql.DB) *ChatLogRepo {
	return &ChatLogRepo{db: db}
}

// Insert appends one chat log entry. A missing ID gets a fresh UUID.
func (r *ChatLogRepo) Insert(ctx context.Context, entry ChatLog) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO chat_logs (id, user_message, assistant_reply, client_ip, source)
		 VALUES (?, ?, ?, ?, ?)`,
		entry.ID, entry.UserMessage, entry.AssistantReply, entry.ClientIP, entry.Source,
	)
	if err != nil {
		return fmt.Errorf("failed to insert chat log: %w", err)
	}

	return nil
}
