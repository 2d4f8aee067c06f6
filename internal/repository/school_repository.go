package repository

import (
	"context"

	"github.com/connecthq/connect/internal/model"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// SchoolRepository handles database operations for the school catalog
type SchoolRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewSchoolRepository creates a new school repository
func NewSchoolRepository(db *sqlx.DB, logger *zap.Logger) *SchoolRepository {
	return &SchoolRepository{
		db:     db,
		logger: logger,
	}
}

// Search retrieves schools whose name matches the search term
func (r *SchoolRepository) Search(ctx context.Context, search string, limit int) ([]model.School, error) {
	query := `
		SELECT * FROM schools
		WHERE $1 = '' OR name ILIKE '%' || $1 || '%'
		ORDER BY name
		LIMIT $2
	`

	var schools []model.School
	if err := r.db.SelectContext(ctx, &schools, query, search, limit); err != nil {
		r.logger.Error("failed to search schools", zap.Error(err))
		return nil, err
	}

	return schools, nil
}
