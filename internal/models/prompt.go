package models

import (
	"time"

	"github.com/google/uuid"
)

type Prompt struct {
	ID         uuid.UUID `json:"id" db:"id"`
	UserID     uuid.UUID `json:"user_id" db:"user_id"`
	Title      string    `json:"title" db:"title"`
	CategoryID uuid.UUID `json:"category_id" db:"category_id"`
	Category   *Category `json:"category,omitempty"`
	Tags       []string  `json:"tags" db:"tags"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`

	// IsFavorite is derived per request: true iff a favorites row exists
	// for (prompt, current user). Never stored on the prompt itself.
	IsFavorite bool `json:"is_favorite"`

	Versions []PromptVersion `json:"versions"`
}

type PromptVersion struct {
	ID            uuid.UUID `json:"id" db:"id"`
	PromptID      uuid.UUID `json:"prompt_id" db:"prompt_id"`
	Content       string    `json:"content" db:"content"`
	VersionNumber int       `json:"version_number" db:"version_number"`
	Label         string    `json:"label,omitempty" db:"label"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}
