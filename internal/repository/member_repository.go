package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/connecthq/connect/internal/model"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// MemberRepository handles database operations for collaboration memberships
type MemberRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewMemberRepository creates a new member repository
func NewMemberRepository(db *sqlx.DB, logger *zap.Logger) *MemberRepository {
	return &MemberRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a pending join request
func (r *MemberRepository) Create(ctx context.Context, requestID, userID int, message *string) (int, error) {
	query := `
		INSERT INTO request_members (request_id, user_id, status, message)
		VALUES ($1, $2, 'pending', $3)
		RETURNING id
	`

	var id int
	err := r.db.GetContext(ctx, &id, query, requestID, userID, message)
	if err != nil {
		r.logger.Error("failed to create join request", zap.Error(err),
			zap.Int("request_id", requestID), zap.Int("user_id", userID))
		return 0, err
	}

	return id, nil
}

// GetByID retrieves a membership row
func (r *MemberRepository) GetByID(ctx context.Context, id int) (*model.Member, error) {
	query := `SELECT * FROM request_members WHERE id = $1`

	var member model.Member
	if err := r.db.GetContext(ctx, &member, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("failed to get member", zap.Error(err), zap.Int("id", id))
		return nil, err
	}

	return &member, nil
}

// GetByRequestAndUser retrieves a user's membership on a request, if any
func (r *MemberRepository) GetByRequestAndUser(ctx context.Context, requestID, userID int) (*model.Member, error) {
	query := `SELECT * FROM request_members WHERE request_id = $1 AND user_id = $2`

	var member model.Member
	if err := r.db.GetContext(ctx, &member, query, requestID, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &member, nil
}

// ListByRequest retrieves memberships on a request, optionally by status
func (r *MemberRepository) ListByRequest(ctx context.Context, requestID int, status string) ([]model.Member, error) {
	query := `
		SELECT * FROM request_members
		WHERE request_id = $1 AND ($2 = '' OR status = $2)
		ORDER BY created_at
	`

	var members []model.Member
	if err := r.db.SelectContext(ctx, &members, query, requestID, status); err != nil {
		r.logger.Error("failed to list members", zap.Error(err), zap.Int("request_id", requestID))
		return nil, err
	}

	return members, nil
}

// UpdateStatus applies the creator's approve/reject decision
func (r *MemberRepository) UpdateStatus(ctx context.Context, id int, status string) (bool, error) {
	query := `
		UPDATE request_members SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
	`

	result, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		r.logger.Error("failed to update member status", zap.Error(err), zap.Int("id", id))
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows > 0, nil
}

// IsMember reports whether a user has an approved membership on any of the
// creator's requests. Profiles use it to decide whether contact details
// are visible.
func (r *MemberRepository) IsMember(ctx context.Context, creatorID, userID int) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM request_members m
			JOIN requests req ON req.id = m.request_id
			WHERE req.creator_id = $1 AND m.user_id = $2 AND m.status = 'approved'
		)
	`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, creatorID, userID); err != nil {
		return false, err
	}

	return exists, nil
}
