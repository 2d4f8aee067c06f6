package service

import (
	"context"
	"errors"

	"github.com/connecthq/connect/internal/client"
	"github.com/connecthq/connect/internal/model"
	"github.com/connecthq/connect/internal/repository"
	"github.com/connecthq/connect/internal/validator"

	"go.uber.org/zap"
)

// ProfileService handles profile operations
type ProfileService struct {
	profileRepo *repository.ProfileRepository
	memberRepo  *repository.MemberRepository
	mediaClient *client.MediaClient
	logger      *zap.Logger
}

// NewProfileService creates a new profile service
func NewProfileService(profileRepo *repository.ProfileRepository, memberRepo *repository.MemberRepository, mediaClient *client.MediaClient, logger *zap.Logger) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		memberRepo:  memberRepo,
		mediaClient: mediaClient,
		logger:      logger,
	}
}

// GetOwn retrieves the caller's full profile
func (s *ProfileService) GetOwn(ctx context.Context, userID int) (*model.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, errors.New("profile not found")
	}
	return profile, nil
}

// Get retrieves another user's profile as seen by the viewer. Contact
// details are only included for the owner and for viewers with an approved
// membership on one of the owner's requests.
func (s *ProfileService) Get(ctx context.Context, userID, viewerID int) (*model.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, errors.New("profile not found")
	}

	if viewerID != userID {
		visible := false
		if viewerID > 0 {
			visible, err = s.memberRepo.IsMember(ctx, userID, viewerID)
			if err != nil {
				s.logger.Warn("failed to check membership for contact visibility",
					zap.Error(err), zap.Int("userID", userID), zap.Int("viewerID", viewerID))
				visible = false
			}
		}
		if !visible {
			profile.Contact = nil
		}
	}

	return profile, nil
}

// Update modifies the caller's profile
func (s *ProfileService) Update(ctx context.Context, userID int, update *model.ProfileUpdate) (*model.Profile, error) {
	if update.Skills != nil {
		if err := validator.ValidateProfileTags(*update.Skills); err != nil {
			return nil, err
		}
	}
	if update.Interests != nil {
		if err := validator.ValidateProfileTags(*update.Interests); err != nil {
			return nil, err
		}
	}

	updated, err := s.profileRepo.Update(ctx, userID, update)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, errors.New("profile not found")
	}

	return s.profileRepo.GetByUserID(ctx, userID)
}

// UploadPhoto stores a profile photo via the media service and records its URL
func (s *ProfileService) UploadPhoto(ctx context.Context, userID int, fileContent []byte, filename, contentType string) (*client.MediaFile, error) {
	media, err := s.mediaClient.UploadProfilePhoto(ctx, userID, fileContent, filename, contentType)
	if err != nil {
		return nil, err
	}

	if err := s.profileRepo.UpdatePhotoURL(ctx, userID, &media.URL); err != nil {
		s.logger.Error("failed to record photo URL", zap.Error(err), zap.Int("userID", userID))
		return nil, err
	}

	return media, nil
}

// DeletePhoto removes the profile photo
func (s *ProfileService) DeletePhoto(ctx context.Context, userID int) error {
	if err := s.mediaClient.DeleteProfilePhoto(ctx, userID); err != nil {
		s.logger.Warn("failed to delete photo from media service",
			zap.Error(err), zap.Int("userID", userID))
	}

	return s.profileRepo.UpdatePhotoURL(ctx, userID, nil)
}
