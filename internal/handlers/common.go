package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/homespace-app/homespace-backend/internal/services"
)

// respondServiceError maps the service error taxonomy onto HTTP statuses.
// Anything unclassified is a 500 with a generic message.
func respondServiceError(c *gin.Context, err error) {
	switch services.KindOf(err) {
	case services.KindNotFound:
		c.JSON(404, gin.H{"error": err.Error()})
	case services.KindForbidden:
		c.JSON(403, gin.H{"error": err.Error()})
	case services.KindConflict:
		c.JSON(409, gin.H{"error": err.Error()})
	case services.KindValidation:
		c.JSON(400, gin.H{"error": err.Error()})
	default:
		c.JSON(500, gin.H{"error": "Internal server error"})
	}
}
