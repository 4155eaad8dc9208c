package handlers

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/homespace-app/homespace-backend/internal/services"
)

// StartConversation finds or creates the conversation with another user
func StartConversation(svc *services.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var input struct {
			UserID uint `json:"userId" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		conversation, err := svc.StartConversation(userId, input.UserID)
		if err != nil {
			respondServiceError(c, err)
			return
		}

		c.JSON(200, gin.H{"conversation": conversation})
	}
}

// GetMyConversations lists the caller's conversations with previews
func GetMyConversations(svc *services.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		conversations, err := svc.FindConversations(c.GetUint("userId"))
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(200, gin.H{"conversations": conversations})
	}
}

// GetMessages returns the messages in one conversation
func GetMessages(svc *services.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		messages, err := svc.FindMessages(c.Param("id"), c.GetUint("userId"))
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(200, gin.H{"messages": messages})
	}
}

// SendMessage persists a message and pushes it to the peer over websocket
func SendMessage(svc *services.ChatService, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var input struct {
			ConversationID string `json:"conversationId" binding:"required"`
			Content        string `json:"content"`
			AttachmentURL  string `json:"attachmentUrl"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		message, err := svc.SaveMessage(input.ConversationID, userId, input.Content, input.AttachmentURL)
		if err != nil {
			respondServiceError(c, err)
			return
		}

		// Live delivery is best effort; the message is already stored.
		if recipientID, err := svc.OtherParticipant(input.ConversationID, userId); err == nil {
			hub.SendChatMessage(recipientID, message)
		} else {
			log.Printf("Failed to resolve chat recipient: %v", err)
		}

		c.JSON(201, gin.H{"message": message})
	}
}

// UploadChatAttachment stores a chat file and returns its URL
func UploadChatAttachment() gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := c.FormFile("file")
		if err != nil {
			c.JSON(400, gin.H{"error": "file is required"})
			return
		}

		url, err := services.UploadImage(file, "chat")
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to upload file"})
			return
		}

		c.JSON(201, gin.H{"url": url})
	}
}
