// Package audit keeps a trail of destructive and bulk mutations so a user
// can reconstruct what a partially-failed operation actually changed.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/calebmoss/promptvault/internal/session"
)

type Recorder struct {
	db *pgxpool.Pool
}

func NewRecorder(db *pgxpool.Pool) *Recorder {
	return &Recorder{db: db}
}

type Entry struct {
	Action    string                 `json:"action"`
	PromptIDs []uuid.UUID            `json:"prompt_ids"`
	Details   map[string]interface{} `json:"details,omitempty"`
}

type Record struct {
	ID        uuid.UUID       `json:"id"`
	UserID    uuid.UUID       `json:"user_id"`
	Action    string          `json:"action"`
	PromptIDs []uuid.UUID     `json:"prompt_ids"`
	Details   json.RawMessage `json:"details"`
	CreatedAt time.Time       `json:"created_at"`
}

// Record is best-effort: a failed audit insert is logged but never fails
// the mutation it describes.
func (r *Recorder) Record(ctx context.Context, entry Entry) {
	if r == nil {
		return
	}
	details, _ := json.Marshal(entry.Details)
	_, err := r.db.Exec(ctx,
		`INSERT INTO audit_log (user_id, action, prompt_ids, details)
		 VALUES ($1, $2, $3, $4)`,
		session.UserID(ctx), entry.Action, entry.PromptIDs, details,
	)
	if err != nil {
		slog.Warn("audit insert failed", "action", entry.Action, "error", err)
	}
}

func (r *Recorder) Recent(ctx context.Context, limit int) ([]Record, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, action, prompt_ids, details, created_at
		 FROM audit_log ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list audit log: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Action, &rec.PromptIDs, &rec.Details, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
