package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/homespace-app/homespace-backend/internal/models"
	"github.com/homespace-app/homespace-backend/internal/services"
)

// UploadHostelImage stores an image for a hostel the caller owns
func UploadHostelImage(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")
		userRole := models.UserRole(c.GetString("userRole"))

		hostelId, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid hostel id"})
			return
		}

		if code, msg := hostelOwnedBy(db, uint(hostelId), userId, userRole); code != 0 {
			c.JSON(code, gin.H{"error": msg})
			return
		}

		file, err := c.FormFile("image")
		if err != nil {
			c.JSON(400, gin.H{"error": "image is required"})
			return
		}

		url, err := services.UploadImage(file, "hostels")
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to upload image"})
			return
		}

		isCover := c.PostForm("isCover") == "true"
		image := models.Image{
			ImageURL:   url,
			EntityType: models.ImageEntityHostel,
			EntityID:   uint(hostelId),
			IsCover:    isCover,
		}
		if err := db.Create(&image).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to save image"})
			return
		}

		c.JSON(201, gin.H{"message": "Image uploaded successfully", "image": image})
	}
}

// UploadRoomImage stores an image for a room in a hostel the caller owns
func UploadRoomImage(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")
		userRole := models.UserRole(c.GetString("userRole"))

		roomId, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid room id"})
			return
		}

		var room models.Room
		if err := db.First(&room, uint(roomId)).Error; err != nil {
			c.JSON(404, gin.H{"error": "Room not found"})
			return
		}
		if code, msg := hostelOwnedBy(db, room.HostelID, userId, userRole); code != 0 {
			c.JSON(code, gin.H{"error": msg})
			return
		}

		file, err := c.FormFile("image")
		if err != nil {
			c.JSON(400, gin.H{"error": "image is required"})
			return
		}

		url, err := services.UploadImage(file, "rooms")
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to upload image"})
			return
		}

		image := models.Image{
			ImageURL:   url,
			EntityType: models.ImageEntityRoom,
			EntityID:   uint(roomId),
		}
		if err := db.Create(&image).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to save image"})
			return
		}

		c.JSON(201, gin.H{"message": "Image uploaded successfully", "image": image})
	}
}

// GetHostelImages lists a hostel's images (public)
func GetHostelImages(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		hostelId, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid hostel id"})
			return
		}

		var images []models.Image
		err = db.Where("entity_type = ? AND entity_id = ?", models.ImageEntityHostel, uint(hostelId)).
			Order("is_cover DESC, created_at ASC").
			Find(&images).Error
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch images"})
			return
		}

		c.JSON(200, gin.H{"images": images})
	}
}

// DeleteImage removes an image record for a hostel the caller owns
func DeleteImage(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")
		userRole := models.UserRole(c.GetString("userRole"))

		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid image id"})
			return
		}

		var image models.Image
		if err := db.First(&image, uint(id)).Error; err != nil {
			c.JSON(404, gin.H{"error": "Image not found"})
			return
		}

		if image.EntityType == models.ImageEntityHostel {
			if code, msg := hostelOwnedBy(db, image.EntityID, userId, userRole); code != 0 {
				c.JSON(code, gin.H{"error": msg})
				return
			}
		} else {
			var room models.Room
			if err := db.First(&room, image.EntityID).Error; err != nil {
				c.JSON(404, gin.H{"error": "Room not found"})
				return
			}
			if code, msg := hostelOwnedBy(db, room.HostelID, userId, userRole); code != 0 {
				c.JSON(code, gin.H{"error": msg})
				return
			}
		}

		if err := db.Delete(&image).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to delete image"})
			return
		}

		c.JSON(200, gin.H{"message": "Image deleted successfully"})
	}
}
