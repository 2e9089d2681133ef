// Package library implements the version engine and the derived view
// layer of the prompt library: how an edit becomes a version, how versions
// compare, and how the visible page of prompts is derived from the stored
// collection.
package library

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/calebmoss/promptvault/internal/audit"
	"github.com/calebmoss/promptvault/internal/cache"
	"github.com/calebmoss/promptvault/internal/diff"
	"github.com/calebmoss/promptvault/internal/models"
	"github.com/calebmoss/promptvault/internal/session"
	"github.com/calebmoss/promptvault/internal/store"
)

// Cache is the snapshot cache collaborator. The redis-backed
// implementation lives in internal/cache.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeletePattern(ctx context.Context, pattern string) error
}

// Service orchestrates the store collaborator. It holds no state of its
// own between calls; the cached collection snapshots are invalidated on
// every successful write.
type Service struct {
	store    store.Store
	cache    Cache
	audit    *audit.Recorder
	cacheTTL time.Duration
}

func NewService(st store.Store, c Cache, rec *audit.Recorder, cacheTTL time.Duration) *Service {
	return &Service{store: st, cache: c, audit: rec, cacheTTL: cacheTTL}
}

func collectionKey(userID uuid.UUID) string {
	return "library:" + userID.String()
}

// Collection returns the full prompt list for the session user, versions
// sorted newest-first. Reads go through a short-lived cache snapshot;
// writes delete it.
func (s *Service) Collection(ctx context.Context) ([]models.Prompt, error) {
	userID := session.UserID(ctx)
	key := collectionKey(userID)

	if s.cache != nil {
		var cached []models.Prompt
		err := s.cache.Get(ctx, key, &cached)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, cache.ErrMiss) {
			slog.Debug("collection cache read failed", "error", err)
		}
	}

	prompts, err := s.store.ListPrompts(ctx, userID)
	if err != nil {
		return nil, &StoreError{Op: "list prompts", Err: err}
	}
	for i := range prompts {
		prompts[i].Versions = SortVersions(prompts[i].Versions)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, prompts, s.cacheTTL); err != nil {
			slog.Debug("collection cache write failed", "error", err)
		}
	}
	return prompts, nil
}

// invalidate drops every user's snapshot, not just the writer's: prompts
// are globally visible, so a write by one user stales them all.
func (s *Service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePattern(ctx, "library:*"); err != nil {
		slog.Debug("collection cache invalidation failed", "error", err)
	}
}

// View derives the visible, ordered, paged subset under the given query.
func (s *Service) View(ctx context.Context, q Query) (Page, error) {
	all, err := s.Collection(ctx)
	if err != nil {
		return Page{}, err
	}
	return Derive(all, q), nil
}

// Prompt fetches one prompt with its versions sorted newest-first.
func (s *Service) Prompt(ctx context.Context, id uuid.UUID) (*models.Prompt, error) {
	p, err := s.store.GetPrompt(ctx, id, session.UserID(ctx))
	if errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, &StoreError{Op: "get prompt", Err: err}
	}
	p.Versions = SortVersions(p.Versions)
	return p, nil
}

type CreatePromptInput struct {
	Title      string    `json:"title"`
	CategoryID uuid.UUID `json:"category_id"`
	Tags       []string  `json:"tags"`
	Content    string    `json:"content"`
	Label      string    `json:"label"`
}

// CreatePrompt creates a prompt and its first version. The store offers no
// transaction across the two calls; if the version insert fails the orphan
// prompt is deleted again, and only when that compensation also fails is
// the result reported as partial.
func (s *Service) CreatePrompt(ctx context.Context, in CreatePromptInput) (*models.Prompt, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if in.Content == "" {
		return nil, &ValidationError{Field: "content", Reason: "must not be empty"}
	}
	if in.CategoryID == uuid.Nil {
		return nil, &ValidationError{Field: "category_id", Reason: "must reference a category"}
	}

	userID := session.UserID(ctx)
	p, err := s.store.CreatePrompt(ctx, in.Title, userID, in.CategoryID, NormalizeTags(in.Tags))
	if err != nil {
		return nil, &StoreError{Op: "create prompt", Err: err}
	}

	v, err := s.store.InsertVersion(ctx, p.ID, in.Content, 1, in.Label)
	if err != nil {
		if derr := s.store.DeletePrompts(ctx, []uuid.UUID{p.ID}); derr != nil {
			slog.Error("orphan prompt left behind", "prompt_id", p.ID, "error", derr)
			return nil, &PartialError{Op: "create prompt", Applied: 1, Attempted: 2, Err: err}
		}
		return nil, &StoreError{Op: "create version", Err: err}
	}

	p.Versions = []models.PromptVersion{*v}
	s.invalidate(ctx)
	return p, nil
}

// AppendVersion adds a new version on top of the history. Existing
// versions are never touched.
func (s *Service) AppendVersion(ctx context.Context, promptID uuid.UUID, content, label string) (*models.PromptVersion, error) {
	if content == "" {
		return nil, &ValidationError{Field: "content", Reason: "must not be empty"}
	}

	p, err := s.Prompt(ctx, promptID)
	if err != nil {
		return nil, err
	}
	next, err := NextVersionNumber(p.Versions)
	if err != nil {
		return nil, err
	}

	v, err := s.store.InsertVersion(ctx, promptID, content, next, label)
	if err != nil {
		return nil, &StoreError{Op: "insert version", Err: err}
	}
	s.invalidate(ctx)
	return v, nil
}

// EditVersionContent overwrites the content of an existing version in
// place. Number, id, label and timestamp are untouched and the version
// counter does not move.
func (s *Service) EditVersionContent(ctx context.Context, versionID uuid.UUID, content string) error {
	if content == "" {
		return &ValidationError{Field: "content", Reason: "must not be empty"}
	}
	if err := s.store.UpdateVersionContent(ctx, versionID, content); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return err
		}
		return &StoreError{Op: "update version content", Err: err}
	}
	s.invalidate(ctx)
	return nil
}

func (s *Service) UpdateVersionLabel(ctx context.Context, versionID uuid.UUID, label string) error {
	if err := s.store.UpdateVersionLabel(ctx, versionID, label); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return err
		}
		return &StoreError{Op: "update version label", Err: err}
	}
	s.invalidate(ctx)
	return nil
}

func (s *Service) UpdateTitle(ctx context.Context, promptID uuid.UUID, title string) error {
	if strings.TrimSpace(title) == "" {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if err := s.store.UpdateTitle(ctx, promptID, title); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return err
		}
		return &StoreError{Op: "update title", Err: err}
	}
	s.invalidate(ctx)
	return nil
}

func (s *Service) UpdateCategory(ctx context.Context, promptID, categoryID uuid.UUID) error {
	if categoryID == uuid.Nil {
		return &ValidationError{Field: "category_id", Reason: "must reference a category"}
	}
	if err := s.store.UpdateCategory(ctx, []uuid.UUID{promptID}, categoryID); err != nil {
		return &StoreError{Op: "update category", Err: err}
	}
	s.invalidate(ctx)
	return nil
}

func (s *Service) UpdateTags(ctx context.Context, promptID uuid.UUID, tags []string) error {
	if err := s.store.UpdateTags(ctx, promptID, NormalizeTags(tags)); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return err
		}
		return &StoreError{Op: "update tags", Err: err}
	}
	s.invalidate(ctx)
	return nil
}

func (s *Service) SetFavorite(ctx context.Context, promptID uuid.UUID, present bool) error {
	if err := s.store.SetFavorite(ctx, promptID, session.UserID(ctx), present); err != nil {
		return &StoreError{Op: "set favorite", Err: err}
	}
	s.invalidate(ctx)
	return nil
}

func (s *Service) Categories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, &StoreError{Op: "list categories", Err: err}
	}
	return categories, nil
}

// CreateCategory rejects duplicate names case-insensitively before any
// store call; the data layer itself stays permissive.
func (s *Service) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &ValidationError{Field: "name", Reason: "must not be empty"}
	}

	existing, err := s.Categories(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range existing {
		if strings.EqualFold(c.Name, name) {
			return nil, &ValidationError{Field: "name", Reason: "category already exists"}
		}
	}

	c, err := s.store.CreateCategory(ctx, name)
	if err != nil {
		return nil, &StoreError{Op: "create category", Err: err}
	}
	return c, nil
}

// TrendingTags returns the n most used tags across the collection.
func (s *Service) TrendingTags(ctx context.Context, n int) ([]TagCount, error) {
	all, err := s.Collection(ctx)
	if err != nil {
		return nil, err
	}
	return TopTags(AggregateTags(all), n), nil
}

// Share resolves a share reference to a prompt and its active version for
// read-only rendering.
func (s *Service) Share(ctx context.Context, shareID string) (*models.Prompt, *models.PromptVersion, error) {
	all, err := s.Collection(ctx)
	if err != nil {
		return nil, nil, err
	}
	p := ResolveShare(all, shareID)
	if p == nil {
		return nil, nil, store.ErrNotFound
	}
	v, err := ActiveVersion(p, nil)
	if err != nil {
		return nil, nil, err
	}
	return p, v, nil
}

// DiffVersion computes the word diff of the given version against its
// predecessor. number 0 means the latest version. Version 1 has no
// predecessor and yields ErrNoPreviousVersion without invoking the engine.
func (s *Service) DiffVersion(ctx context.Context, promptID uuid.UUID, number int) ([]diff.Segment, error) {
	p, err := s.Prompt(ctx, promptID)
	if err != nil {
		return nil, err
	}
	if len(p.Versions) == 0 {
		return nil, &IntegrityError{Msg: "prompt " + promptID.String() + " has no versions"}
	}
	if number == 0 {
		number = p.Versions[0].VersionNumber
	}

	var current, previous *models.PromptVersion
	for i := range p.Versions {
		switch p.Versions[i].VersionNumber {
		case number:
			current = &p.Versions[i]
		case number - 1:
			previous = &p.Versions[i]
		}
	}
	if current == nil {
		return nil, store.ErrNotFound
	}
	if previous == nil {
		return nil, ErrNoPreviousVersion
	}
	return diff.Words(previous.Content, current.Content), nil
}
