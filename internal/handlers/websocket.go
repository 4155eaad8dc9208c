package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/homespace-app/homespace-backend/internal/services"
)

// WebSocketHandler handles WebSocket connections
func WebSocketHandler(hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")
		userRole := c.GetString("userRole")

		services.HandleWebSocket(hub, c.Writer, c.Request, userID, userRole)
	}
}
