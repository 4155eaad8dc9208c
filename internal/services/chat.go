package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/homespace-app/homespace-backend/internal/models"
)

// ChatService persists owner-student conversations. Delivery to connected
// clients happens in the websocket hub; this layer is the source of truth.
type ChatService struct {
	db *gorm.DB
}

func NewChatService(db *gorm.DB) *ChatService {
	return &ChatService{db: db}
}

// StartConversation finds or creates the conversation between two users.
// Participants are ordered smaller ID first so the same pair always maps to
// one row.
func (s *ChatService) StartConversation(userID, otherUserID uint) (*models.Conversation, error) {
	if userID == otherUserID {
		return nil, Validation("Cannot start a conversation with yourself")
	}

	var other models.User
	if err := s.db.First(&other, otherUserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("User not found")
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	p1, p2 := userID, otherUserID
	if p2 < p1 {
		p1, p2 = p2, p1
	}

	var conversation models.Conversation
	err := s.db.Where("participant1_id = ? AND participant2_id = ?", p1, p2).
		First(&conversation).Error
	if err == nil {
		return &conversation, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up conversation: %w", err)
	}

	conversation = models.Conversation{
		Participant1ID: p1,
		Participant2ID: p2,
	}
	if err := s.db.Create(&conversation).Error; err != nil {
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}
	return &conversation, nil
}

// FindConversations returns the user's conversations, most recently active
// first, with participant identities and the last message for preview.
func (s *ChatService) FindConversations(userID uint) ([]models.Conversation, error) {
	participantSelect := func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "first_name", "last_name", "profile_image")
	}

	var conversations []models.Conversation
	err := s.db.Where("participant1_id = ? OR participant2_id = ?", userID, userID).
		Preload("Participant1", participantSelect).
		Preload("Participant2", participantSelect).
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("messages.created_at DESC").Limit(1)
		}).
		Order("last_message_at DESC").
		Find(&conversations).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch conversations: %w", err)
	}
	return conversations, nil
}

// FindMessages returns a conversation's messages oldest first. Only a
// participant may read them.
func (s *ChatService) FindMessages(conversationID string, userID uint) ([]models.Message, error) {
	conversation, err := s.loadConversation(conversationID)
	if err != nil {
		return nil, err
	}
	if conversation.Participant1ID != userID && conversation.Participant2ID != userID {
		return nil, Forbidden("You are not part of this conversation")
	}

	var messages []models.Message
	err = s.db.Where("conversation_id = ?", conversationID).
		Preload("Sender", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "first_name", "last_name")
		}).
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}
	return messages, nil
}

// SaveMessage persists a message and bumps the conversation's activity
// timestamp. Returns the stored message with sender identity attached.
func (s *ChatService) SaveMessage(conversationID string, senderID uint, content, attachmentURL string) (*models.Message, error) {
	if content == "" && attachmentURL == "" {
		return nil, Validation("Message must have content or an attachment")
	}

	conversation, err := s.loadConversation(conversationID)
	if err != nil {
		return nil, err
	}
	if conversation.Participant1ID != senderID && conversation.Participant2ID != senderID {
		return nil, Forbidden("You are not part of this conversation")
	}

	message := models.Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		Content:        content,
		AttachmentURL:  attachmentURL,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&message).Error; err != nil {
			return fmt.Errorf("failed to save message: %w", err)
		}
		return tx.Model(&models.Conversation{}).
			Where("id = ?", conversationID).
			Update("last_message_at", time.Now()).Error
	})
	if err != nil {
		return nil, err
	}

	err = s.db.Preload("Sender", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "first_name", "last_name", "profile_image")
	}).First(&message, message.ID).Error
	if err != nil {
		return nil, fmt.Errorf("failed to reload message: %w", err)
	}
	return &message, nil
}

// OtherParticipant resolves the peer of a user inside a conversation,
// used by the hub to route delivery.
func (s *ChatService) OtherParticipant(conversationID string, userID uint) (uint, error) {
	conversation, err := s.loadConversation(conversationID)
	if err != nil {
		return 0, err
	}
	if conversation.Participant1ID == userID {
		return conversation.Participant2ID, nil
	}
	if conversation.Participant2ID == userID {
		return conversation.Participant1ID, nil
	}
	return 0, Forbidden("You are not part of this conversation")
}

func (s *ChatService) loadConversation(conversationID string) (*models.Conversation, error) {
	var conversation models.Conversation
	if err := s.db.First(&conversation, "id = ?", conversationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("Conversation not found")
		}
		return nil, fmt.Errorf("failed to load conversation: %w", err)
	}
	return &conversation, nil
}
