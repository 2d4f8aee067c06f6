package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/connecthq/connect/internal/model"
	"github.com/connecthq/connect/internal/repository"
	"github.com/connecthq/connect/internal/validator"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const popularTagsCacheKey = "tags:popular"

// TagService handles the curated tag catalog
type TagService struct {
	tagRepo       *repository.TagRepository
	redisClient   *redis.Client
	cacheDuration time.Duration
	logger        *zap.Logger
}

// NewTagService creates a new tag service. The Redis client may be nil,
// which disables popular-tag caching.
func NewTagService(tagRepo *repository.TagRepository, redisClient *redis.Client, cacheDuration time.Duration, logger *zap.Logger) *TagService {
	return &TagService{
		tagRepo:       tagRepo,
		redisClient:   redisClient,
		cacheDuration: cacheDuration,
		logger:        logger,
	}
}

// List retrieves catalog tags matching a search term and category
func (s *TagService) List(ctx context.Context, search, category string, limit int) ([]model.CatalogTag, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}
	return s.tagRepo.List(ctx, strings.TrimSpace(search), category, limit)
}

// ListPopular retrieves the most used catalog tags, served from cache when
// available
func (s *TagService) ListPopular(ctx context.Context, limit int) ([]model.CatalogTag, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}

	if s.redisClient != nil {
		cached, err := s.redisClient.Get(ctx, popularTagsCacheKey).Bytes()
		if err == nil {
			var tags []model.CatalogTag
			if json.Unmarshal(cached, &tags) == nil && len(tags) >= limit {
				return tags[:limit], nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Warn("failed to read popular tags cache", zap.Error(err))
		}
	}

	tags, err := s.tagRepo.ListPopular(ctx, 100)
	if err != nil {
		return nil, err
	}

	if s.redisClient != nil {
		if payload, err := json.Marshal(tags); err == nil {
			if err := s.redisClient.Set(ctx, popularTagsCacheKey, payload, s.cacheDuration).Err(); err != nil {
				s.logger.Warn("failed to cache popular tags", zap.Error(err))
			}
		}
	}

	if len(tags) > limit {
		tags = tags[:limit]
	}
	return tags, nil
}

// Create adds a tag to the catalog, deriving the slug from the label
func (s *TagService) Create(ctx context.Context, create *model.CatalogTagCreate) (*model.CatalogTag, error) {
	label := strings.TrimSpace(create.Label)
	if label == "" {
		return nil, errors.New("tag label cannot be empty")
	}

	slug := validator.Slugify(label)
	if slug == "" {
		return nil, errors.New("tag label must contain letters or digits")
	}

	existing, err := s.tagRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.New("tag already exists")
	}

	if _, err := s.tagRepo.Create(ctx, label, slug, create.Category); err != nil {
		return nil, err
	}

	// New entries change what a popular listing can include
	if s.redisClient != nil {
		if err := s.redisClient.Del(ctx, popularTagsCacheKey).Err(); err != nil {
			s.logger.Warn("failed to invalidate popular tags cache", zap.Error(err))
		}
	}

	return s.tagRepo.GetBySlug(ctx, slug)
}
