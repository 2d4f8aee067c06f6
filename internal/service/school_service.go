package service

import (
	"context"
	"strings"

	"github.com/connecthq/connect/internal/model"
	"github.com/connecthq/connect/internal/repository"

	"go.uber.org/zap"
)

// SchoolService handles the searchable school catalog
type SchoolService struct {
	schoolRepo *repository.SchoolRepository
	logger     *zap.Logger
}

// NewSchoolService creates a new school service
func NewSchoolService(schoolRepo *repository.SchoolRepository, logger *zap.Logger) *SchoolService {
	return &SchoolService{
		schoolRepo: schoolRepo,
		logger:     logger,
	}
}

// Search retrieves schools matching a name fragment
func (s *SchoolService) Search(ctx context.Context, search string, limit int) ([]model.School, error) {
	if limit < 1 || limit > 100 {
		limit = 25
	}
	return s.schoolRepo.Search(ctx, strings.TrimSpace(search), limit)
}
