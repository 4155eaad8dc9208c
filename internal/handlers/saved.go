package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/homespace-app/homespace-backend/internal/models"
)

// SaveHostel bookmarks a hostel for the student
func SaveHostel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		hostelId, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid hostel id"})
			return
		}

		var hostel models.Hostel
		if err := db.First(&hostel, uint(hostelId)).Error; err != nil {
			c.JSON(404, gin.H{"error": "Hostel not found"})
			return
		}

		saved := models.SavedHostel{UserID: userId, HostelID: uint(hostelId)}
		if err := db.Create(&saved).Error; err != nil {
			c.JSON(409, gin.H{"error": "Hostel already saved"})
			return
		}

		c.JSON(201, gin.H{"message": "Hostel saved"})
	}
}

// UnsaveHostel removes a bookmark
func UnsaveHostel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		hostelId, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid hostel id"})
			return
		}

		result := db.Where("user_id = ? AND hostel_id = ?", userId, uint(hostelId)).
			Delete(&models.SavedHostel{})
		if result.Error != nil {
			c.JSON(500, gin.H{"error": "Failed to unsave hostel"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(404, gin.H{"error": "Hostel was not saved"})
			return
		}

		c.JSON(200, gin.H{"message": "Hostel unsaved"})
	}
}

// GetSavedHostels lists the student's bookmarked hostels
func GetSavedHostels(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var saved []models.SavedHostel
		err := db.Where("user_id = ?", userId).
			Preload("Hostel").
			Order("created_at DESC").
			Find(&saved).Error
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch saved hostels"})
			return
		}

		c.JSON(200, gin.H{"saved": saved})
	}
}
