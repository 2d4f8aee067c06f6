package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/connecthq/connect/internal/kafka"
	"github.com/connecthq/connect/internal/model"
	"github.com/connecthq/connect/internal/repository"

	"go.uber.org/zap"
)

// MessageService handles direct conversations between users
type MessageService struct {
	convRepo     *repository.ConversationRepository
	profileRepo  *repository.ProfileRepository
	notifService *NotificationService
	producer     *kafka.Producer
	eventTopic   string
	logger       *zap.Logger
}

// NewMessageService creates a new message service
func NewMessageService(convRepo *repository.ConversationRepository, profileRepo *repository.ProfileRepository, notifService *NotificationService, producer *kafka.Producer, eventTopic string, logger *zap.Logger) *MessageService {
	return &MessageService{
		convRepo:     convRepo,
		profileRepo:  profileRepo,
		notifService: notifService,
		producer:     producer,
		eventTopic:   eventTopic,
		logger:       logger,
	}
}

// StartConversation opens (or returns) the conversation between the caller
// and another user. Users who have messaging disabled cannot be contacted.
func (s *MessageService) StartConversation(ctx context.Context, userID, otherID int) (*model.Conversation, error) {
	if userID == otherID {
		return nil, errors.New("cannot start a conversation with yourself")
	}

	other, err := s.profileRepo.GetByUserID(ctx, otherID)
	if err != nil {
		return nil, err
	}
	if other == nil {
		return nil, errors.New("user not found")
	}
	if !other.AllowMessages {
		return nil, errors.New("user does not accept messages")
	}

	return s.convRepo.GetOrCreate(ctx, userID, otherID)
}

// ListConversations retrieves the caller's inbox with the other
// participant's profile summary attached
func (s *MessageService) ListConversations(ctx context.Context, userID int) ([]model.ConversationSummary, error) {
	summaries, otherIDs, err := s.convRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]int, 0, len(otherIDs))
	for _, id := range otherIDs {
		ids = append(ids, id)
	}
	profiles, err := s.profileRepo.GetSummaries(ctx, ids)
	if err != nil {
		s.logger.Warn("failed to load conversation participants", zap.Error(err), zap.Int("userID", userID))
		return summaries, nil
	}

	for i := range summaries {
		if profile, ok := profiles[otherIDs[summaries[i].ID]]; ok {
			summaries[i].OtherUser = profile
		}
	}

	return summaries, nil
}

// SendMessage appends a message to a conversation the caller participates in
func (s *MessageService) SendMessage(ctx context.Context, userID int, create *model.MessageCreate) (*model.Message, error) {
	conv, err := s.convRepo.GetByID(ctx, create.ConversationID)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, errors.New("conversation not found")
	}

	receiverID, err := otherParticipant(conv, userID)
	if err != nil {
		return nil, err
	}

	msg, err := s.convRepo.CreateMessage(ctx, conv.ID, userID, receiverID, create.Content)
	if err != nil {
		return nil, err
	}

	if err := s.notifService.Create(ctx, &model.NotificationCreate{
		UserID:  receiverID,
		Type:    model.NotificationNewMessage,
		Title:   "New message",
		Message: "You have a new message",
		Link:    "/messages/" + strconv.Itoa(conv.ID),
	}); err != nil {
		s.logger.Warn("failed to create message notification",
			zap.Error(err), zap.Int("receiverID", receiverID))
	}

	if s.producer != nil {
		event := kafka.Event{
			Key: strconv.Itoa(conv.ID),
			Value: kafka.MessageSentEvent{
				ConversationID: conv.ID,
				SenderID:       userID,
				ReceiverID:     receiverID,
				Timestamp:      time.Now(),
			},
		}
		if err := s.producer.Publish(ctx, s.eventTopic, event); err != nil {
			s.logger.Warn("failed to publish message event", zap.Error(err), zap.Int("conversationID", conv.ID))
		}
	}

	return msg, nil
}

// ListMessages retrieves a page of messages from a conversation the caller
// participates in, oldest first
func (s *MessageService) ListMessages(ctx context.Context, conversationID, userID, page, limit int) ([]model.Message, int, error) {
	conv, err := s.convRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, 0, err
	}
	if conv == nil {
		return nil, 0, errors.New("conversation not found")
	}
	if _, err := otherParticipant(conv, userID); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	messages, err := s.convRepo.ListMessages(ctx, conversationID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.convRepo.CountMessages(ctx, conversationID)
	if err != nil {
		return nil, 0, err
	}

	return messages, total, nil
}

// MarkRead marks the caller's incoming messages in a conversation as read
func (s *MessageService) MarkRead(ctx context.Context, conversationID, userID int) (int, error) {
	conv, err := s.convRepo.GetByID(ctx, conversationID)
	if err != nil {
		return 0, err
	}
	if conv == nil {
		return 0, errors.New("conversation not found")
	}
	if _, err := otherParticipant(conv, userID); err != nil {
		return 0, err
	}

	return s.convRepo.MarkRead(ctx, conversationID, userID)
}

// otherParticipant returns the other user in a conversation, or an error
// when the given user is not a participant
func otherParticipant(conv *model.Conversation, userID int) (int, error) {
	switch userID {
	case conv.User1ID:
		return conv.User2ID, nil
	case conv.User2ID:
		return conv.User1ID, nil
	default:
		return 0, errors.New("conversation not found")
	}
}
