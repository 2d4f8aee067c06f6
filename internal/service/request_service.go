package service

import (
	"context"
	"errors"

	"github.com/connecthq/connect/internal/match"
	"github.com/connecthq/connect/internal/model"
	"github.com/connecthq/connect/internal/repository"
	"github.com/connecthq/connect/internal/validator"

	"go.uber.org/zap"
)

// RequestService handles collaboration request operations, including the
// personalized browse ranking
type RequestService struct {
	requestRepo *repository.RequestRepository
	profileRepo *repository.ProfileRepository
	memberRepo  *repository.MemberRepository
	tagRepo     *repository.TagRepository
	logger      *zap.Logger
}

// NewRequestService creates a new request service
func NewRequestService(requestRepo *repository.RequestRepository, profileRepo *repository.ProfileRepository, memberRepo *repository.MemberRepository, tagRepo *repository.TagRepository, logger *zap.Logger) *RequestService {
	return &RequestService{
		requestRepo: requestRepo,
		profileRepo: profileRepo,
		memberRepo:  memberRepo,
		tagRepo:     tagRepo,
		logger:      logger,
	}
}

// Create posts a new collaboration request
func (s *RequestService) Create(ctx context.Context, creatorID int, create *model.RequestCreate) (*model.Request, error) {
	if err := validator.ValidateRequestTags(create.Tags); err != nil {
		return nil, err
	}

	id, err := s.requestRepo.Create(ctx, creatorID, create)
	if err != nil {
		return nil, err
	}

	// Usage counts feed the popular-tags listing; custom tags are skipped
	slugs := make([]string, 0, len(create.Tags))
	for _, tag := range create.Tags {
		slugs = append(slugs, match.NormalizeSlug(tag))
	}
	if err := s.tagRepo.IncrementUsage(ctx, slugs); err != nil {
		s.logger.Warn("failed to increment tag usage", zap.Error(err), zap.Int("requestID", id))
	}

	return s.requestRepo.GetByID(ctx, id)
}

// Get retrieves a single request. Private requests are visible only to
// their creator and to users with a membership row on them.
func (s *RequestService) Get(ctx context.Context, id, viewerID int) (*model.Request, error) {
	request, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, errors.New("request not found")
	}

	if request.Visibility == model.VisibilityPrivate && request.CreatorID != viewerID {
		member, err := s.memberRepo.GetByRequestAndUser(ctx, id, viewerID)
		if err != nil {
			return nil, err
		}
		if member == nil {
			return nil, errors.New("request not found")
		}
	}

	s.attachCreators(ctx, []*model.Request{request})
	return request, nil
}

// Browse lists public requests matching the filter, ranked for the viewer.
// The viewer's profile drives the match score; anonymous viewers and viewers
// whose profile cannot be loaded get the unranked listing in fetch order.
func (s *RequestService) Browse(ctx context.Context, viewerID int, filter model.RequestFilter) ([]model.Request, int, error) {
	requests, total, err := s.requestRepo.ListPublic(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	var matchProfile *match.Profile
	if viewerID > 0 {
		profile, err := s.profileRepo.GetByUserID(ctx, viewerID)
		if err != nil {
			s.logger.Warn("failed to load viewer profile, serving unranked results",
				zap.Error(err), zap.Int("viewerID", viewerID))
		} else if profile != nil {
			matchProfile = &match.Profile{
				Skills:    profile.Skills,
				Interests: profile.Interests,
			}
		}
	}

	ranked := match.Rank(matchProfile, requests)

	pointers := make([]*model.Request, len(ranked))
	for i := range ranked {
		pointers[i] = &ranked[i]
	}
	s.attachCreators(ctx, pointers)

	return ranked, total, nil
}

// ListMine retrieves all of the caller's requests, private ones included
func (s *RequestService) ListMine(ctx context.Context, userID int) ([]model.Request, error) {
	return s.requestRepo.ListByCreator(ctx, userID, false)
}

// ListByUser retrieves another user's public requests
func (s *RequestService) ListByUser(ctx context.Context, userID int) ([]model.Request, error) {
	return s.requestRepo.ListByCreator(ctx, userID, true)
}

// Update modifies a request owned by the caller
func (s *RequestService) Update(ctx context.Context, id, userID int, update *model.RequestUpdate) (*model.Request, error) {
	if update.Tags != nil {
		if err := validator.ValidateRequestTags(*update.Tags); err != nil {
			return nil, err
		}
	}
	if update.Visibility != nil &&
		*update.Visibility != model.VisibilityPublic && *update.Visibility != model.VisibilityPrivate {
		return nil, errors.New("invalid visibility")
	}

	updated, err := s.requestRepo.Update(ctx, id, userID, update)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, errors.New("request not found")
	}

	return s.requestRepo.GetByID(ctx, id)
}

// Delete removes a request owned by the caller
func (s *RequestService) Delete(ctx context.Context, id, userID int) error {
	deleted, err := s.requestRepo.Delete(ctx, id, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return errors.New("request not found")
	}
	return nil
}

// attachCreators fills in creator profile summaries. Listing still works
// when the lookup fails; the summaries are presentation only.
func (s *RequestService) attachCreators(ctx context.Context, requests []*model.Request) {
	if len(requests) == 0 {
		return
	}

	seen := make(map[int]struct{}, len(requests))
	ids := make([]int, 0, len(requests))
	for _, req := range requests {
		if _, ok := seen[req.CreatorID]; !ok {
			seen[req.CreatorID] = struct{}{}
			ids = append(ids, req.CreatorID)
		}
	}

	summaries, err := s.profileRepo.GetSummaries(ctx, ids)
	if err != nil {
		s.logger.Warn("failed to load creator summaries", zap.Error(err))
		return
	}

	for _, req := range requests {
		if summary, ok := summaries[req.CreatorID]; ok {
			creator := summary
			req.Creator = &creator
		}
	}
}
