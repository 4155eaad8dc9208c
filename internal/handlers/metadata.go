package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/homespace-app/homespace-backend/internal/models"
)

// GetAmenities lists the amenity catalog (public)
func GetAmenities(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var amenities []models.Amenity
		if err := db.Order("name").Find(&amenities).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch amenities"})
			return
		}
		c.JSON(200, gin.H{"amenities": amenities})
	}
}

// GetServices lists the service catalog (public)
func GetServices(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var svcs []models.Service
		if err := db.Order("name").Find(&svcs).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch services"})
			return
		}
		c.JSON(200, gin.H{"services": svcs})
	}
}
