// Package store defines the persistence collaborator for the prompt
// library. The core treats it as a remote, possibly-failing CRUD service
// with no transactions across tables; every cross-record guarantee
// (cascade on delete, prompt-plus-first-version creation) is the caller's
// job, not the store's.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/calebmoss/promptvault/internal/models"
)

var ErrNotFound = errors.New("not found")

// Store is a closed set of typed operations. Field updates are separate
// methods with validated payloads rather than a generic
// table-name/field-name dispatch.
type Store interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, name string) (*models.Category, error)

	// ListPrompts returns every prompt joined with its category, its
	// versions (unsorted, the core sorts them) and the favorite marker for
	// the given user.
	ListPrompts(ctx context.Context, userID uuid.UUID) ([]models.Prompt, error)
	GetPrompt(ctx context.Context, id, userID uuid.UUID) (*models.Prompt, error)

	CreatePrompt(ctx context.Context, title string, userID, categoryID uuid.UUID, tags []string) (*models.Prompt, error)
	InsertVersion(ctx context.Context, promptID uuid.UUID, content string, versionNumber int, label string) (*models.PromptVersion, error)

	UpdateTitle(ctx context.Context, promptID uuid.UUID, title string) error
	UpdateCategory(ctx context.Context, promptIDs []uuid.UUID, categoryID uuid.UUID) error
	UpdateTags(ctx context.Context, promptID uuid.UUID, tags []string) error
	UpdateVersionLabel(ctx context.Context, versionID uuid.UUID, label string) error
	UpdateVersionContent(ctx context.Context, versionID uuid.UUID, content string) error

	DeleteVersionsByPrompt(ctx context.Context, promptIDs []uuid.UUID) error
	DeleteFavoritesByPrompt(ctx context.Context, promptIDs []uuid.UUID) error
	DeletePrompts(ctx context.Context, promptIDs []uuid.UUID) error

	SetFavorite(ctx context.Context, promptID, userID uuid.UUID, present bool) error
}
