package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/calebmoss/promptvault/internal/models"
)

// Postgres implements Store over a pgx pool. Each method is a single
// statement; nothing here spans tables transactionally.
type Postgres struct {
	db *pgxpool.Pool
}

func NewPostgres(db *pgxpool.Pool) *Postgres {
	return &Postgres{db: db}
}

var _ Store = (*Postgres)(nil)

func (s *Postgres) ListCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, name, created_at FROM categories ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (s *Postgres) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	var c models.Category
	err := s.db.QueryRow(ctx,
		`INSERT INTO categories (name) VALUES ($1)
		 RETURNING id, name, created_at`,
		name,
	).Scan(&c.ID, &c.Name, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert category: %w", err)
	}
	return &c, nil
}

func (s *Postgres) ListPrompts(ctx context.Context, userID uuid.UUID) ([]models.Prompt, error) {
	rows, err := s.db.Query(ctx,
		`SELECT p.id, p.user_id, p.title, p.category_id, p.tags, p.created_at,
		        c.id, c.name, c.created_at,
		        (f.prompt_id IS NOT NULL)
		 FROM prompts p
		 JOIN categories c ON c.id = p.category_id
		 LEFT JOIN favorites f ON f.prompt_id = p.id AND f.user_id = $1
		 ORDER BY p.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list prompts: %w", err)
	}
	defer rows.Close()

	var prompts []models.Prompt
	index := make(map[uuid.UUID]int)
	var ids []uuid.UUID
	for rows.Next() {
		var p models.Prompt
		var c models.Category
		if err := rows.Scan(&p.ID, &p.UserID, &p.Title, &p.CategoryID, &p.Tags, &p.CreatedAt,
			&c.ID, &c.Name, &c.CreatedAt, &p.IsFavorite); err != nil {
			return nil, fmt.Errorf("scan prompt: %w", err)
		}
		p.Category = &c
		index[p.ID] = len(prompts)
		prompts = append(prompts, p)
		ids = append(ids, p.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list prompts: %w", err)
	}
	if len(prompts) == 0 {
		return prompts, nil
	}

	vrows, err := s.db.Query(ctx,
		`SELECT id, prompt_id, content, version_number, label, created_at
		 FROM prompt_versions WHERE prompt_id = ANY($1)`,
		ids,
	)
	if err != nil {
		return nil, fmt.Errorf("list versions: %w", err)
	}
	defer vrows.Close()

	for vrows.Next() {
		var v models.PromptVersion
		if err := vrows.Scan(&v.ID, &v.PromptID, &v.Content, &v.VersionNumber, &v.Label, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan version: %w", err)
		}
		if i, ok := index[v.PromptID]; ok {
			prompts[i].Versions = append(prompts[i].Versions, v)
		}
	}
	return prompts, vrows.Err()
}

func (s *Postgres) GetPrompt(ctx context.Context, id, userID uuid.UUID) (*models.Prompt, error) {
	var p models.Prompt
	var c models.Category
	err := s.db.QueryRow(ctx,
		`SELECT p.id, p.user_id, p.title, p.category_id, p.tags, p.created_at,
		        c.id, c.name, c.created_at,
		        (f.prompt_id IS NOT NULL)
		 FROM prompts p
		 JOIN categories c ON c.id = p.category_id
		 LEFT JOIN favorites f ON f.prompt_id = p.id AND f.user_id = $2
		 WHERE p.id = $1`,
		id, userID,
	).Scan(&p.ID, &p.UserID, &p.Title, &p.CategoryID, &p.Tags, &p.CreatedAt,
		&c.ID, &c.Name, &c.CreatedAt, &p.IsFavorite)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get prompt: %w", err)
	}
	p.Category = &c

	rows, err := s.db.Query(ctx,
		`SELECT id, prompt_id, content, version_number, label, created_at
		 FROM prompt_versions WHERE prompt_id = $1`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("get versions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var v models.PromptVersion
		if err := rows.Scan(&v.ID, &v.PromptID, &v.Content, &v.VersionNumber, &v.Label, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan version: %w", err)
		}
		p.Versions = append(p.Versions, v)
	}
	return &p, rows.Err()
}

func (s *Postgres) CreatePrompt(ctx context.Context, title string, userID, categoryID uuid.UUID, tags []string) (*models.Prompt, error) {
	if tags == nil {
		tags = []string{}
	}
	var p models.Prompt
	err := s.db.QueryRow(ctx,
		`INSERT INTO prompts (title, user_id, category_id, tags)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, user_id, title, category_id, tags, created_at`,
		title, userID, categoryID, tags,
	).Scan(&p.ID, &p.UserID, &p.Title, &p.CategoryID, &p.Tags, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert prompt: %w", err)
	}
	return &p, nil
}

func (s *Postgres) InsertVersion(ctx context.Context, promptID uuid.UUID, content string, versionNumber int, label string) (*models.PromptVersion, error) {
	var v models.PromptVersion
	err := s.db.QueryRow(ctx,
		`INSERT INTO prompt_versions (prompt_id, content, version_number, label)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, prompt_id, content, version_number, label, created_at`,
		promptID, content, versionNumber, label,
	).Scan(&v.ID, &v.PromptID, &v.Content, &v.VersionNumber, &v.Label, &v.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert version: %w", err)
	}
	return &v, nil
}

func (s *Postgres) UpdateTitle(ctx context.Context, promptID uuid.UUID, title string) error {
	return s.execOne(ctx, "update title",
		`UPDATE prompts SET title = $1 WHERE id = $2`, title, promptID)
}

func (s *Postgres) UpdateCategory(ctx context.Context, promptIDs []uuid.UUID, categoryID uuid.UUID) error {
	_, err := s.db.Exec(ctx,
		`UPDATE prompts SET category_id = $1 WHERE id = ANY($2)`, categoryID, promptIDs)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

func (s *Postgres) UpdateTags(ctx context.Context, promptID uuid.UUID, tags []string) error {
	if tags == nil {
		tags = []string{}
	}
	return s.execOne(ctx, "update tags",
		`UPDATE prompts SET tags = $1 WHERE id = $2`, tags, promptID)
}

func (s *Postgres) UpdateVersionLabel(ctx context.Context, versionID uuid.UUID, label string) error {
	return s.execOne(ctx, "update version label",
		`UPDATE prompt_versions SET label = $1 WHERE id = $2`, label, versionID)
}

func (s *Postgres) UpdateVersionContent(ctx context.Context, versionID uuid.UUID, content string) error {
	return s.execOne(ctx, "update version content",
		`UPDATE prompt_versions SET content = $1 WHERE id = $2`, content, versionID)
}

func (s *Postgres) DeleteVersionsByPrompt(ctx context.Context, promptIDs []uuid.UUID) error {
	_, err := s.db.Exec(ctx,
		`DELETE FROM prompt_versions WHERE prompt_id = ANY($1)`, promptIDs)
	if err != nil {
		return fmt.Errorf("delete versions: %w", err)
	}
	return nil
}

func (s *Postgres) DeleteFavoritesByPrompt(ctx context.Context, promptIDs []uuid.UUID) error {
	_, err := s.db.Exec(ctx,
		`DELETE FROM favorites WHERE prompt_id = ANY($1)`, promptIDs)
	if err != nil {
		return fmt.Errorf("delete favorites: %w", err)
	}
	return nil
}

func (s *Postgres) DeletePrompts(ctx context.Context, promptIDs []uuid.UUID) error {
	_, err := s.db.Exec(ctx,
		`DELETE FROM prompts WHERE id = ANY($1)`, promptIDs)
	if err != nil {
		return fmt.Errorf("delete prompts: %w", err)
	}
	return nil
}

func (s *Postgres) SetFavorite(ctx context.Context, promptID, userID uuid.UUID, present bool) error {
	var err error
	if present {
		_, err = s.db.Exec(ctx,
			`INSERT INTO favorites (prompt_id, user_id) VALUES ($1, $2)
			 ON CONFLICT DO NOTHING`,
			promptID, userID)
	} else {
		_, err = s.db.Exec(ctx,
			`DELETE FROM favorites WHERE prompt_id = $1 AND user_id = $2`,
			promptID, userID)
	}
	if err != nil {
		return fmt.Errorf("set favorite: %w", err)
	}
	return nil
}

func (s *Postgres) execOne(ctx context.Context, op, sql string, args ...any) error {
	tag, err := s.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
