package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/connecthq/connect/internal/model"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// ConversationRepository handles database operations for direct conversations
type ConversationRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewConversationRepository creates a new conversation repository
func NewConversationRepository(db *sqlx.DB, logger *zap.Logger) *ConversationRepository {
	return &ConversationRepository{
		db:     db,
		logger: logger,
	}
}

// GetOrCreate returns the conversation between two users, creating it when
// none exists. Participants are stored lowest user ID first so the pair is
// unique regardless of who started the conversation.
func (r *ConversationRepository) GetOrCreate(ctx context.Context, userA, userB int) (*model.Conversation, error) {
	first, second := userA, userB
	if second < first {
		first, second = second, first
	}

	query := `
		INSERT INTO conversations (user1_id, user2_id)
		VALUES ($1, $2)
		ON CONFLICT (user1_id, user2_id) DO UPDATE SET user1_id = EXCLUDED.user1_id
		RETURNING *
	`

	var conv model.Conversation
	if err := r.db.GetContext(ctx, &conv, query, first, second); err != nil {
		r.logger.Error("failed to get or create conversation", zap.Error(err),
			zap.Int("user1", first), zap.Int("user2", second))
		return nil, err
	}

	return &conv, nil
}

// GetByID retrieves a conversation
func (r *ConversationRepository) GetByID(ctx context.Context, id int) (*model.Conversation, error) {
	query := `SELECT * FROM conversations WHERE id = $1`

	var conv model.Conversation
	if err := r.db.GetContext(ctx, &conv, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &conv, nil
}

// conversationRow backs the inbox listing query
type conversationRow struct {
	ID          int        `db:"id"`
	User1ID     int        `db:"user1_id"`
	User2ID     int        `db:"user2_id"`
	UpdatedAt   *time.Time `db:"updated_at"`
	LastID      *int       `db:"last_id"`
	LastSender  *int       `db:"last_sender"`
	LastContent *string    `db:"last_content"`
	LastSentAt  *time.Time `db:"last_sent_at"`
	UnreadCount int        `db:"unread_count"`
}

// ListByUser retrieves a user's conversations, most recent activity first,
// with the latest message and unread count attached. The other participant's
// profile summary is filled in by the service layer.
func (r *ConversationRepository) ListByUser(ctx context.Context, userID int) ([]model.ConversationSummary, map[int]int, error) {
	query := `
		SELECT c.id, c.user1_id, c.user2_id, c.updated_at,
			lm.id AS last_id,
			lm.sender_id AS last_sender,
			lm.content AS last_content,
			lm.created_at AS last_sent_at,
			(SELECT COUNT(*) FROM messages m
				WHERE m.conversation_id = c.id AND m.receiver_id = $1 AND m.read = false) AS unread_count
		FROM conversations c
		LEFT JOIN LATERAL (
			SELECT id, sender_id, content, created_at FROM messages
			WHERE conversation_id = c.id
			ORDER BY created_at DESC
			LIMIT 1
		) lm ON true
		WHERE c.user1_id = $1 OR c.user2_id = $1
		ORDER BY COALESCE(lm.created_at, c.created_at) DESC
	`

	var rows []conversationRow
	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		r.logger.Error("failed to list conversations", zap.Error(err), zap.Int("user_id", userID))
		return nil, nil, err
	}

	summaries := make([]model.ConversationSummary, 0, len(rows))
	otherIDs := make(map[int]int, len(rows))
	for _, row := range rows {
		otherID := row.User1ID
		if otherID == userID {
			otherID = row.User2ID
		}
		otherIDs[row.ID] = otherID

		summary := model.ConversationSummary{
			ID:          row.ID,
			UnreadCount: row.UnreadCount,
			UpdatedAt:   row.UpdatedAt,
		}
		if row.LastID != nil && row.LastSender != nil && row.LastContent != nil && row.LastSentAt != nil {
			summary.LastMessage = &model.Message{
				ID:             *row.LastID,
				ConversationID: row.ID,
				SenderID:       *row.LastSender,
				Content:        *row.LastContent,
				CreatedAt:      *row.LastSentAt,
			}
		}
		summaries = append(summaries, summary)
	}

	return summaries, otherIDs, nil
}

// CreateMessage appends a message to a conversation and bumps its
// last-message pointer
func (r *ConversationRepository) CreateMessage(ctx context.Context, conversationID, senderID, receiverID int, content string) (*model.Message, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO messages (conversation_id, sender_id, receiver_id, content)
		VALUES ($1, $2, $3, $4)
		RETURNING *
	`

	var msg model.Message
	if err := tx.GetContext(ctx, &msg, query, conversationID, senderID, receiverID, content); err != nil {
		r.logger.Error("failed to create message", zap.Error(err),
			zap.Int("conversation_id", conversationID))
		return nil, err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE conversations SET last_message_id = $2, updated_at = NOW() WHERE id = $1`,
		conversationID, msg.ID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &msg, nil
}

// ListMessages retrieves a page of messages, oldest first
func (r *ConversationRepository) ListMessages(ctx context.Context, conversationID, limit, offset int) ([]model.Message, error) {
	query := `
		SELECT * FROM messages
		WHERE conversation_id = $1
		ORDER BY created_at
		LIMIT $2 OFFSET $3
	`

	var messages []model.Message
	if err := r.db.SelectContext(ctx, &messages, query, conversationID, limit, offset); err != nil {
		r.logger.Error("failed to list messages", zap.Error(err),
			zap.Int("conversation_id", conversationID))
		return nil, err
	}

	return messages, nil
}

// CountMessages returns the total message count in a conversation
func (r *ConversationRepository) CountMessages(ctx context.Context, conversationID int) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM messages WHERE conversation_id = $1`, conversationID)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// MarkRead marks the reader's incoming messages as read and returns how
// many were updated
func (r *ConversationRepository) MarkRead(ctx context.Context, conversationID, readerID int) (int, error) {
	query := `
		UPDATE messages SET read = true
		WHERE conversation_id = $1 AND receiver_id = $2 AND read = false
	`

	result, err := r.db.ExecContext(ctx, query, conversationID, readerID)
	if err != nil {
		r.logger.Error("failed to mark messages read", zap.Error(err),
			zap.Int("conversation_id", conversationID))
		return 0, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}

	return int(rows), nil
}
