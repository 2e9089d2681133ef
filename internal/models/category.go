package models

import (
	"time"

	"github.com/google/uuid"
)

type Category struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Favorite exists purely as a marker: the row's presence is the state.
type Favorite struct {
	PromptID uuid.UUID `json:"prompt_id" db:"prompt_id"`
	UserID   uuid.UUID `json:"user_id" db:"user_id"`
}
