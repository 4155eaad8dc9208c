package handlers

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/homespace-app/homespace-backend/internal/models"
	"github.com/homespace-app/homespace-backend/internal/services"
)

// GetDashboardStats returns role-specific stats, cached briefly in Redis
func GetDashboardStats(svc *services.DashboardService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")
		userRole := models.UserRole(c.GetString("userRole"))

		if cached, err := services.GetCachedDashboardStats(c.Request.Context(), userId); err == nil && cached != nil {
			c.Data(200, "application/json", cached)
			return
		}

		var stats interface{}
		var err error
		switch userRole {
		case models.RoleStudent:
			stats, err = svc.StudentStats(userId)
		case models.RoleOwner:
			stats, err = svc.OwnerStats(userId)
		case models.RoleAdmin:
			stats, err = svc.AdminStats()
		default:
			c.JSON(403, gin.H{"error": "Unknown role"})
			return
		}
		if err != nil {
			respondServiceError(c, err)
			return
		}

		if err := services.CacheDashboardStats(c.Request.Context(), userId, stats); err != nil {
			log.Printf("Failed to cache dashboard stats for user %d: %v", userId, err)
		}

		c.JSON(200, stats)
	}
}
