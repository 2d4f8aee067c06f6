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

// RequestRepository handles database operations for collaboration requests
type RequestRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewRequestRepository creates a new request repository
func NewRequestRepository(db *sqlx.DB, logger *zap.Logger) *RequestRepository {
	return &RequestRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new collaboration request and returns its ID
func (r *RequestRepository) Create(ctx context.Context, creatorID int, req *model.RequestCreate) (int, error) {
	query := `
		INSERT INTO requests (creator_id, title, description, visibility, tags, member_goal, member_count)
		VALUES ($1, $2, $3, $4, $5, $6, 0)
		RETURNING id
	`

	var id int
	err := r.db.GetContext(ctx, &id, query,
		creatorID, req.Title, req.Description, req.Visibility, req.Tags, req.MemberGoal)
	if err != nil {
		r.logger.Error("failed to create request", zap.Error(err))
		return 0, err
	}

	return id, nil
}

// GetByID retrieves a single request
func (r *RequestRepository) GetByID(ctx context.Context, id int) (*model.Request, error) {
	query := `SELECT * FROM requests WHERE id = $1`

	var request model.Request
	if err := r.db.GetContext(ctx, &request, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("failed to get request", zap.Error(err), zap.Int("id", id))
		return nil, err
	}

	return &request, nil
}

// ListPublic retrieves a page of public requests, newest first, with
// optional search and tag-slug filtering. Search matches title,
// description, or the creator's profile name.
func (r *RequestRepository) ListPublic(ctx context.Context, filter model.RequestFilter) ([]model.Request, int, error) {
	countQuery := `
		SELECT COUNT(*)
		FROM requests req
		JOIN profiles p ON p.user_id = req.creator_id
		WHERE req.visibility = 'public'
		  AND ($1::text = '' OR req.title ILIKE '%' || $1 || '%'
		       OR req.description ILIKE '%' || $1 || '%'
		       OR p.name ILIKE '%' || $1 || '%')
		  AND ($2::text[] IS NULL OR EXISTS (
		       SELECT 1 FROM jsonb_array_elements(req.tags) tag
		       WHERE lower(tag->>'slug') = ANY($2)))
	`

	var slugs interface{}
	if len(filter.TagSlugs) > 0 {
		slugs = pq.Array(filter.TagSlugs)
	}

	var totalCount int
	err := r.db.GetContext(ctx, &totalCount, countQuery, filter.Search, slugs)
	if err != nil {
		r.logger.Error("failed to count requests", zap.Error(err))
		return nil, 0, err
	}

	query := `
		SELECT req.*
		FROM requests req
		JOIN profiles p ON p.user_id = req.creator_id
		WHERE req.visibility = 'public'
		  AND ($1::text = '' OR req.title ILIKE '%' || $1 || '%'
		       OR req.description ILIKE '%' || $1 || '%'
		       OR p.name ILIKE '%' || $1 || '%')
		  AND ($2::text[] IS NULL OR EXISTS (
		       SELECT 1 FROM jsonb_array_elements(req.tags) tag
		       WHERE lower(tag->>'slug') = ANY($2)))
		ORDER BY req.created_at DESC
		LIMIT $3 OFFSET $4
	`

	var requests []model.Request
	offset := (filter.Page - 1) * filter.Limit
	err = r.db.SelectContext(ctx, &requests, query, filter.Search, slugs, filter.Limit, offset)
	if err != nil {
		r.logger.Error("failed to list requests", zap.Error(err))
		return nil, 0, err
	}

	return requests, totalCount, nil
}

// ListByCreator retrieves all of a user's requests, including private ones
func (r *RequestRepository) ListByCreator(ctx context.Context, creatorID int, publicOnly bool) ([]model.Request, error) {
	query := `
		SELECT * FROM requests
		WHERE creator_id = $1 AND ($2 = FALSE OR visibility = 'public')
		ORDER BY created_at DESC
	`

	var requests []model.Request
	if err := r.db.SelectContext(ctx, &requests, query, creatorID, publicOnly); err != nil {
		r.logger.Error("failed to list requests by creator", zap.Error(err), zap.Int("creator_id", creatorID))
		return nil, err
	}

	return requests, nil
}

// Update applies the non-nil fields of an update to a request owned by userID
func (r *RequestRepository) Update(ctx context.Context, id, userID int, update *model.RequestUpdate) (bool, error) {
	query := `
		UPDATE requests SET
			title = COALESCE($3, title),
			description = COALESCE($4, description),
			tags = COALESCE($5, tags),
			visibility = COALESCE($6, visibility),
			member_goal = COALESCE($7, member_goal),
			updated_at = NOW()
		WHERE id = $1 AND creator_id = $2
	`

	result, err := r.db.ExecContext(ctx, query, id, userID,
		update.Title, update.Description, update.Tags, update.Visibility, update.MemberGoal)
	if err != nil {
		r.logger.Error("failed to update request", zap.Error(err), zap.Int("id", id))
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows > 0, nil
}

// Delete removes a request owned by userID
func (r *RequestRepository) Delete(ctx context.Context, id, userID int) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM requests WHERE id = $1 AND creator_id = $2`, id, userID)
	if err != nil {
		r.logger.Error("failed to delete request", zap.Error(err), zap.Int("id", id))
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows > 0, nil
}

// IncrementMemberCount bumps the member count when a join is approved
func (r *RequestRepository) IncrementMemberCount(ctx context.Context, id int) error {
	query := `UPDATE requests SET member_count = member_count + 1, updated_at = NOW() WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		r.logger.Error("failed to increment member count", zap.Error(err), zap.Int("id", id))
	}
	return err
}
