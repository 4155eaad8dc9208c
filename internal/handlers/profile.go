package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/homespace-app/homespace-backend/internal/models"
	"github.com/homespace-app/homespace-backend/internal/services"
)

// GetProfile returns the authenticated user's profile
func GetProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var user models.User
		if err := db.First(&user, userId).Error; err != nil {
			c.JSON(404, gin.H{"error": "User not found"})
			return
		}

		c.JSON(200, gin.H{"user": user})
	}
}

// UpdateProfile edits names, phone and profile image
func UpdateProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var input struct {
			FirstName string `json:"firstName" binding:"omitempty,min=2,max=50"`
			LastName  string `json:"lastName" binding:"omitempty,min=2,max=50"`
			Phone     string `json:"phone"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var user models.User
		if err := db.First(&user, userId).Error; err != nil {
			c.JSON(404, gin.H{"error": "User not found"})
			return
		}

		if input.FirstName != "" {
			user.FirstName = input.FirstName
		}
		if input.LastName != "" {
			user.LastName = input.LastName
		}
		if input.Phone != "" {
			user.Phone = input.Phone
		}

		if err := db.Save(&user).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to update profile"})
			return
		}

		c.JSON(200, gin.H{"message": "Profile updated successfully", "user": user})
	}
}

// UploadProfileImage stores a new avatar and saves its URL
func UploadProfileImage(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		file, err := c.FormFile("image")
		if err != nil {
			c.JSON(400, gin.H{"error": "image is required"})
			return
		}

		url, err := services.UploadImage(file, "profiles")
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to upload image"})
			return
		}

		if err := db.Model(&models.User{}).Where("id = ?", userId).Update("profile_image", url).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to save profile image"})
			return
		}

		c.JSON(200, gin.H{"message": "Profile image updated", "url": url})
	}
}
