package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/connecthq/connect/internal/kafka"
	"github.com/connecthq/connect/internal/model"
	"github.com/connecthq/connect/internal/repository"

	"go.uber.org/zap"
)

// MemberService handles join requests and membership decisions
type MemberService struct {
	memberRepo   *repository.MemberRepository
	requestRepo  *repository.RequestRepository
	profileRepo  *repository.ProfileRepository
	notifService *NotificationService
	producer     *kafka.Producer
	eventTopic   string
	logger       *zap.Logger
}

// NewMemberService creates a new member service
func NewMemberService(memberRepo *repository.MemberRepository, requestRepo *repository.RequestRepository, profileRepo *repository.ProfileRepository, notifService *NotificationService, producer *kafka.Producer, eventTopic string, logger *zap.Logger) *MemberService {
	return &MemberService{
		memberRepo:   memberRepo,
		requestRepo:  requestRepo,
		profileRepo:  profileRepo,
		notifService: notifService,
		producer:     producer,
		eventTopic:   eventTopic,
		logger:       logger,
	}
}

// RequestJoin creates a pending join request and notifies the creator
func (s *MemberService) RequestJoin(ctx context.Context, requestID, userID int, join *model.JoinRequest) (*model.Member, error) {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, errors.New("request not found")
	}
	if request.CreatorID == userID {
		return nil, errors.New("cannot join your own request")
	}

	existing, err := s.memberRepo.GetByRequestAndUser(ctx, requestID, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		switch existing.Status {
		case model.MemberStatusPending:
			return nil, errors.New("join request already pending")
		case model.MemberStatusApproved:
			return nil, errors.New("already a member")
		default:
			return nil, errors.New("join request was rejected")
		}
	}

	var message *string
	if join != nil && join.Message != "" {
		message = &join.Message
	}

	id, err := s.memberRepo.Create(ctx, requestID, userID, message)
	if err != nil {
		return nil, err
	}

	s.notify(ctx, &model.NotificationCreate{
		UserID:  request.CreatorID,
		Type:    model.NotificationJoinRequest,
		Title:   "New join request",
		Message: fmt.Sprintf("Someone asked to join %q", request.Title),
		Link:    "/requests/" + strconv.Itoa(requestID),
	})

	s.publish(ctx, strconv.Itoa(requestID), kafka.JoinRequestEvent{
		RequestID: requestID,
		CreatorID: request.CreatorID,
		UserID:    userID,
		Timestamp: time.Now(),
	})

	return s.memberRepo.GetByID(ctx, id)
}

// Decide applies the creator's approve/reject decision to a pending join
// request. Approval bumps the request's member count.
func (s *MemberService) Decide(ctx context.Context, requestID, memberID, callerID int, decision *model.MemberDecision) (*model.Member, error) {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, errors.New("request not found")
	}
	if request.CreatorID != callerID {
		return nil, errors.New("only the creator can manage members")
	}

	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if member == nil || member.RequestID != requestID {
		return nil, errors.New("member not found")
	}

	updated, err := s.memberRepo.UpdateStatus(ctx, memberID, decision.Status)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, errors.New("join request already decided")
	}

	notifType := model.NotificationJoinRejected
	title := "Join request declined"
	if decision.Status == model.MemberStatusApproved {
		notifType = model.NotificationJoinApproved
		title = "Join request approved"
		if err := s.requestRepo.IncrementMemberCount(ctx, requestID); err != nil {
			s.logger.Error("failed to increment member count",
				zap.Error(err), zap.Int("requestID", requestID))
		}
	}

	s.notify(ctx, &model.NotificationCreate{
		UserID:  member.UserID,
		Type:    notifType,
		Title:   title,
		Message: fmt.Sprintf("Your request to join %q was %s", request.Title, decision.Status),
		Link:    "/requests/" + strconv.Itoa(requestID),
	})

	s.publish(ctx, strconv.Itoa(requestID), kafka.MemberDecisionEvent{
		RequestID: requestID,
		UserID:    member.UserID,
		Status:    decision.Status,
		Timestamp: time.Now(),
	})

	return s.memberRepo.GetByID(ctx, memberID)
}

// ListMembers retrieves a request's memberships with profile summaries.
// The creator sees every join request; other viewers see only approved
// members.
func (s *MemberService) ListMembers(ctx context.Context, requestID, callerID int) ([]model.Member, error) {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, errors.New("request not found")
	}

	status := model.MemberStatusApproved
	if request.CreatorID == callerID {
		status = ""
	}

	members, err := s.memberRepo.ListByRequest(ctx, requestID, status)
	if err != nil {
		return nil, err
	}

	ids := make([]int, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.UserID)
	}
	summaries, err := s.profileRepo.GetSummaries(ctx, ids)
	if err != nil {
		s.logger.Warn("failed to load member summaries", zap.Error(err), zap.Int("requestID", requestID))
		return members, nil
	}

	for i := range members {
		if summary, ok := summaries[members[i].UserID]; ok {
			user := summary
			members[i].User = &user
		}
	}

	return members, nil
}

// notify creates a notification, logging failures without failing the
// caller's operation
func (s *MemberService) notify(ctx context.Context, create *model.NotificationCreate) {
	if err := s.notifService.Create(ctx, create); err != nil {
		s.logger.Warn("failed to create notification",
			zap.Error(err), zap.Int("userID", create.UserID), zap.String("type", create.Type))
	}
}

// publish emits a domain event when Kafka is configured
func (s *MemberService) publish(ctx context.Context, key string, value interface{}) {
	if s.producer == nil {
		return
	}
	if err := s.producer.Publish(ctx, s.eventTopic, kafka.Event{Key: key, Value: value}); err != nil {
		s.logger.Warn("failed to publish event", zap.Error(err), zap.String("key", key))
	}
}
