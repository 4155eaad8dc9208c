package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Conversation links two users. Participants are stored smaller ID first so
// the unique index catches a second conversation for the same pair.
type Conversation struct {
	ID             string    `json:"id" gorm:"primaryKey;size:36"`
	Participant1ID uint      `json:"participant1Id" gorm:"not null;uniqueIndex:idx_conversation_pair"`
	Participant2ID uint      `json:"participant2Id" gorm:"not null;uniqueIndex:idx_conversation_pair"`
	Participant1   User      `json:"participant1,omitempty" gorm:"foreignKey:Participant1ID"`
	Participant2   User      `json:"participant2,omitempty" gorm:"foreignKey:Participant2ID"`
	LastMessageAt  time.Time `json:"lastMessageAt"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
	Messages       []Message `json:"messages,omitempty"`
}

func (Conversation) TableName() string {
	return "conversations"
}

func (c *Conversation) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.LastMessageAt.IsZero() {
		c.LastMessageAt = time.Now()
	}
	return nil
}

type Message struct {
	gorm.Model
	ConversationID string `json:"conversationId" gorm:"size:36;not null;index"`
	SenderID       uint   `json:"senderId" gorm:"not null"`
	Sender         User   `json:"sender,omitempty" gorm:"foreignKey:SenderID"`
	Content        string `json:"content" gorm:"type:text"`
	AttachmentURL  string `json:"attachmentUrl"`
	IsRead         bool   `json:"isRead" gorm:"default:false"`
}

func (Message) TableName() string {
	return "messages"
}
