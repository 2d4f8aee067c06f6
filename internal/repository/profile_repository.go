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

// ProfileRepository handles database operations for user profiles
type ProfileRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *sqlx.DB, logger *zap.Logger) *ProfileRepository {
	return &ProfileRepository{
		db:     db,
		logger: logger,
	}
}

// GetByUserID retrieves a profile by its owner's user ID
func (r *ProfileRepository) GetByUserID(ctx context.Context, userID int) (*model.Profile, error) {
	query := `SELECT * FROM profiles WHERE user_id = $1`

	var profile model.Profile
	if err := r.db.GetContext(ctx, &profile, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("failed to get profile", zap.Error(err), zap.Int("user_id", userID))
		return nil, err
	}

	return &profile, nil
}

// Create inserts an empty profile row for a newly registered user
func (r *ProfileRepository) Create(ctx context.Context, userID int, name string) error {
	query := `
		INSERT INTO profiles (user_id, name, skills, interests, preferred_work_times)
		VALUES ($1, $2, '[]'::jsonb, '[]'::jsonb, '{}')
		ON CONFLICT (user_id) DO NOTHING
	`

	_, err := r.db.ExecContext(ctx, query, userID, name)
	if err != nil {
		r.logger.Error("failed to create profile", zap.Error(err), zap.Int("user_id", userID))
	}
	return err
}

// Update applies the non-nil fields of an update to a profile
func (r *ProfileRepository) Update(ctx context.Context, userID int, update *model.ProfileUpdate) (bool, error) {
	query := `
		UPDATE profiles SET
			name = COALESCE($2, name),
			pronouns = COALESCE($3, pronouns),
			grade = COALESCE($4, grade),
			school = COALESCE($5, school),
			timezone = COALESCE($6, timezone),
			bio = COALESCE($7, bio),
			skills = COALESCE($8, skills),
			interests = COALESCE($9, interests),
			experience = COALESCE($10, experience),
			preferred_work_times = COALESCE($11, preferred_work_times),
			allow_messages = COALESCE($12, allow_messages),
			contact = COALESCE($13, contact),
			newsletter = COALESCE($14, newsletter),
			updated_at = NOW()
		WHERE user_id = $1
	`

	var workTimes interface{}
	if update.PreferredWorkTimes != nil {
		workTimes = pq.StringArray(*update.PreferredWorkTimes)
	}

	result, err := r.db.ExecContext(
		ctx,
		query,
		userID,
		update.Name,
		update.Pronouns,
		update.Grade,
		update.School,
		update.Timezone,
		update.Bio,
		update.Skills,
		update.Interests,
		update.Experience,
		workTimes,
		update.AllowMessages,
		update.Contact,
		update.Newsletter,
	)
	if err != nil {
		r.logger.Error("failed to update profile", zap.Error(err), zap.Int("user_id", userID))
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows > 0, nil
}

// UpdatePhotoURL sets or clears the profile photo URL
func (r *ProfileRepository) UpdatePhotoURL(ctx context.Context, userID int, photoURL *string) error {
	query := `UPDATE profiles SET profile_photo_url = $2, updated_at = NOW() WHERE user_id = $1`

	_, err := r.db.ExecContext(ctx, query, userID, photoURL)
	if err != nil {
		r.logger.Error("failed to update profile photo", zap.Error(err), zap.Int("user_id", userID))
	}
	return err
}

// GetSummaries retrieves profile summaries for a set of user IDs
func (r *ProfileRepository) GetSummaries(ctx context.Context, userIDs []int) (map[int]model.ProfileSummary, error) {
	if len(userIDs) == 0 {
		return map[int]model.ProfileSummary{}, nil
	}

	query := `
		SELECT user_id, name, pronouns, profile_photo_url, grade, school
		FROM profiles
		WHERE user_id = ANY($1)
	`

	var summaries []model.ProfileSummary
	if err := r.db.SelectContext(ctx, &summaries, query, pq.Array(userIDs)); err != nil {
		r.logger.Error("failed to get profile summaries", zap.Error(err))
		return nil, err
	}

	byID := make(map[int]model.ProfileSummary, len(summaries))
	for _, s := range summaries {
		byID[s.UserID] = s
	}

	return byID, nil
}
