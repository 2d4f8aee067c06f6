package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/connecthq/connect/internal/model"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

// TagRepository handles database operations for the curated tag catalog
type TagRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewTagRepository creates a new tag repository
func NewTagRepository(db *sqlx.DB, logger *zap.Logger) *TagRepository {
	return &TagRepository{
		db:     db,
		logger: logger,
	}
}

// Create adds a tag to the catalog
func (r *TagRepository) Create(ctx context.Context, label, slug, category string) (int, error) {
	query := `
		INSERT INTO catalog_tags (label, slug, category)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	var id int
	if err := r.db.GetContext(ctx, &id, query, label, slug, category); err != nil {
		r.logger.Error("failed to create catalog tag", zap.Error(err), zap.String("slug", slug))
		return 0, err
	}

	return id, nil
}

// GetBySlug retrieves a catalog tag by its slug
func (r *TagRepository) GetBySlug(ctx context.Context, slug string) (*model.CatalogTag, error) {
	query := `SELECT * FROM catalog_tags WHERE slug = $1`

	var tag model.CatalogTag
	if err := r.db.GetContext(ctx, &tag, query, slug); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &tag, nil
}

// List retrieves catalog tags filtered by search term and category,
// ordered by label
func (r *TagRepository) List(ctx context.Context, search, category string, limit int) ([]model.CatalogTag, error) {
	query := `
		SELECT * FROM catalog_tags
		WHERE ($1 = '' OR label ILIKE '%' || $1 || '%' OR slug ILIKE '%' || $1 || '%')
			AND ($2 = '' OR category = $2)
		ORDER BY label
		LIMIT $3
	`

	var tags []model.CatalogTag
	if err := r.db.SelectContext(ctx, &tags, query, search, category, limit); err != nil {
		r.logger.Error("failed to list catalog tags", zap.Error(err))
		return nil, err
	}

	return tags, nil
}

// ListPopular retrieves the most used catalog tags
func (r *TagRepository) ListPopular(ctx context.Context, limit int) ([]model.CatalogTag, error) {
	query := `
		SELECT * FROM catalog_tags
		ORDER BY usage_count DESC, label
		LIMIT $1
	`

	var tags []model.CatalogTag
	if err := r.db.SelectContext(ctx, &tags, query, limit); err != nil {
		r.logger.Error("failed to list popular tags", zap.Error(err))
		return nil, err
	}

	return tags, nil
}

// IncrementUsage bumps usage counts for the given slugs. Slugs not present
// in the catalog (custom tags) are ignored.
func (r *TagRepository) IncrementUsage(ctx context.Context, slugs []string) error {
	if len(slugs) == 0 {
		return nil
	}

	_, err := r.db.ExecContext(ctx,
		`UPDATE catalog_tags SET usage_count = usage_count + 1 WHERE slug = ANY($1)`,
		pq.Array(slugs))
	if err != nil {
		r.logger.Error("failed to increment tag usage", zap.Error(err))
		return err
	}

	return nil
}
