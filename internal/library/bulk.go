package library

import (
	"context"

	"github.com/google/uuid"

	"github.com/calebmoss/promptvault/internal/audit"
	"github.com/calebmoss/promptvault/internal/session"
)

// Bulk mutations apply one logical action to a caller-selected id set.
// MOVE and DELETE are batch store calls and therefore all-or-nothing from
// the caller's perspective; ADD_TAGS must run per prompt and can stop
// partway. On success the collection snapshot is invalidated and callers
// clear their selection.

func (s *Service) BulkMove(ctx context.Context, promptIDs []uuid.UUID, categoryID uuid.UUID) error {
	if len(promptIDs) == 0 {
		return &ValidationError{Field: "selection", Reason: "no prompts selected"}
	}
	if categoryID == uuid.Nil {
		return &ValidationError{Field: "category_id", Reason: "must reference a category"}
	}

	if err := s.store.UpdateCategory(ctx, promptIDs, categoryID); err != nil {
		return &StoreError{Op: "bulk move", Err: err}
	}

	s.audit.Record(ctx, audit.Entry{
		Action:    "bulk_move",
		PromptIDs: promptIDs,
		Details:   map[string]interface{}{"category_id": categoryID},
	})
	s.invalidate(ctx)
	return nil
}

// BulkAddTags merges the given tags into each selected prompt. The new tag
// set differs per prompt (existing tags first, then new ones not already
// present), so this is N independent updates awaited one at a time. A
// failure at update k leaves updates 1..k-1 committed; the error says so.
func (s *Service) BulkAddTags(ctx context.Context, promptIDs []uuid.UUID, tags []string) error {
	if len(promptIDs) == 0 {
		return &ValidationError{Field: "selection", Reason: "no prompts selected"}
	}
	added := NormalizeTags(tags)
	if len(added) == 0 {
		return &ValidationError{Field: "tags", Reason: "no tags to add"}
	}

	// Read existing tag sets from the store, not the cache snapshot, so
	// the union is computed against committed state.
	prompts, err := s.store.ListPrompts(ctx, session.UserID(ctx))
	if err != nil {
		return &StoreError{Op: "bulk add tags", Err: err}
	}
	existing := make(map[uuid.UUID][]string, len(prompts))
	for _, p := range prompts {
		existing[p.ID] = p.Tags
	}

	// Unknown ids are dropped up front so a partial error reports k of N
	// over real update calls, not over the raw selection.
	var eligible []uuid.UUID
	for _, id := range promptIDs {
		if _, ok := existing[id]; ok {
			eligible = append(eligible, id)
		}
	}

	applied := 0
	for _, id := range eligible {
		if err := s.store.UpdateTags(ctx, id, UnionTags(existing[id], added)); err != nil {
			if applied == 0 {
				return &StoreError{Op: "bulk add tags", Err: err}
			}
			return &PartialError{Op: "bulk add tags", Applied: applied, Attempted: len(eligible), Err: err}
		}
		applied++
	}

	s.audit.Record(ctx, audit.Entry{
		Action:    "bulk_add_tags",
		PromptIDs: promptIDs,
		Details:   map[string]interface{}{"tags": added},
	})
	s.invalidate(ctx)
	return nil
}

func (s *Service) BulkDelete(ctx context.Context, promptIDs []uuid.UUID) error {
	if len(promptIDs) == 0 {
		return &ValidationError{Field: "selection", Reason: "no prompts selected"}
	}
	if err := s.deleteCascade(ctx, promptIDs); err != nil {
		return err
	}
	s.audit.Record(ctx, audit.Entry{Action: "bulk_delete", PromptIDs: promptIDs})
	s.invalidate(ctx)
	return nil
}

// DeletePrompt removes a single prompt with the same cascade as a bulk
// delete.
func (s *Service) DeletePrompt(ctx context.Context, promptID uuid.UUID) error {
	if err := s.deleteCascade(ctx, []uuid.UUID{promptID}); err != nil {
		return err
	}
	s.audit.Record(ctx, audit.Entry{Action: "delete_prompt", PromptIDs: []uuid.UUID{promptID}})
	s.invalidate(ctx)
	return nil
}

// deleteCascade removes versions and favorites before the prompts
// themselves; the store enforces no foreign-key cascade. A failure after
// the first call has committed is reported as partial.
func (s *Service) deleteCascade(ctx context.Context, promptIDs []uuid.UUID) error {
	if err := s.store.DeleteVersionsByPrompt(ctx, promptIDs); err != nil {
		return &StoreError{Op: "delete versions", Err: err}
	}
	if err := s.store.DeleteFavoritesByPrompt(ctx, promptIDs); err != nil {
		return &PartialError{Op: "delete prompts", Applied: 1, Attempted: 3, Err: err}
	}
	if err := s.store.DeletePrompts(ctx, promptIDs); err != nil {
		return &PartialError{Op: "delete prompts", Applied: 2, Attempted: 3, Err: err}
	}
	return nil
}
