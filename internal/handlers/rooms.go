package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/homespace-app/homespace-backend/internal/models"
)

type roomInput struct {
	HostelID  uint    `json:"hostelId" binding:"required"`
	RoomType  string  `json:"roomType" binding:"required,oneof=SINGLE DOUBLE TRIPLE DORM"`
	Price     float64 `json:"price" binding:"required,gt=0"`
	TotalBeds int     `json:"totalBeds" binding:"required,min=1"`
}

// hostelOwnedBy checks the caller controls the hostel a room belongs to.
func hostelOwnedBy(db *gorm.DB, hostelID, userID uint, role models.UserRole) (int, string) {
	var hostel models.Hostel
	if err := db.First(&hostel, hostelID).Error; err != nil {
		return 404, "Hostel not found"
	}
	if role != models.RoleAdmin && hostel.UserID != userID {
		return 403, "Unauthorized"
	}
	return 0, ""
}

// CreateRoom adds a room to a hostel owned by the caller
func CreateRoom(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")
		userRole := models.UserRole(c.GetString("userRole"))

		var input roomInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		if code, msg := hostelOwnedBy(db, input.HostelID, userId, userRole); code != 0 {
			c.JSON(code, gin.H{"error": msg})
			return
		}

		room := models.Room{
			HostelID:      input.HostelID,
			RoomType:      models.RoomType(input.RoomType),
			Price:         input.Price,
			TotalBeds:     input.TotalBeds,
			AvailableBeds: input.TotalBeds, // new rooms start empty
			Status:        models.RoomStatusAvailable,
		}
		room.SyncStatus()

		if err := db.Create(&room).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to create room"})
			return
		}

		c.JSON(201, gin.H{"message": "Room created successfully", "room": room})
	}
}

// UpdateRoom edits price, type and capacity of a room
func UpdateRoom(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")
		userRole := models.UserRole(c.GetString("userRole"))

		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid room id"})
			return
		}

		var room models.Room
		if err := db.First(&room, uint(id)).Error; err != nil {
			c.JSON(404, gin.H{"error": "Room not found"})
			return
		}

		if code, msg := hostelOwnedBy(db, room.HostelID, userId, userRole); code != 0 {
			c.JSON(code, gin.H{"error": msg})
			return
		}

		var input struct {
			RoomType  string  `json:"roomType" binding:"omitempty,oneof=SINGLE DOUBLE TRIPLE DORM"`
			Price     float64 `json:"price" binding:"omitempty,gt=0"`
			TotalBeds int     `json:"totalBeds" binding:"omitempty,min=1"`
			Status    string  `json:"status" binding:"omitempty,oneof=AVAILABLE FULL INACTIVE"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		if input.RoomType != "" {
			room.RoomType = models.RoomType(input.RoomType)
		}
		if input.Price > 0 {
			room.Price = input.Price
		}
		if input.TotalBeds > 0 {
			// Growing or shrinking capacity moves the free-bed count by the
			// same delta, floored at zero.
			delta := input.TotalBeds - room.TotalBeds
			room.TotalBeds = input.TotalBeds
			room.AvailableBeds += delta
			if room.AvailableBeds < 0 {
				room.AvailableBeds = 0
			}
		}
		if input.Status != "" {
			room.Status = models.RoomStatus(input.Status)
		}
		room.SyncStatus()

		if err := db.Save(&room).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to update room"})
			return
		}

		c.JSON(200, gin.H{"message": "Room updated successfully", "room": room})
	}
}

// DeleteRoom removes a room
func DeleteRoom(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")
		userRole := models.UserRole(c.GetString("userRole"))

		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid room id"})
			return
		}

		var room models.Room
		if err := db.First(&room, uint(id)).Error; err != nil {
			c.JSON(404, gin.H{"error": "Room not found"})
			return
		}

		if code, msg := hostelOwnedBy(db, room.HostelID, userId, userRole); code != 0 {
			c.JSON(code, gin.H{"error": msg})
			return
		}

		if err := db.Delete(&room).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to delete room"})
			return
		}

		c.JSON(200, gin.H{"message": "Room deleted successfully"})
	}
}

// GetRooms lists all rooms with their hostel names
func GetRooms(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var rooms []models.Room
		query := db.Preload("Hostel", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "user_id", "name")
		})
		if hostelID := c.Query("hostelId"); hostelID != "" {
			query = query.Where("hostel_id = ?", hostelID)
		}
		if err := query.Find(&rooms).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch rooms"})
			return
		}

		c.JSON(200, gin.H{"rooms": rooms})
	}
}

// GetRoomByID returns a single room
func GetRoomByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid room id"})
			return
		}

		var room models.Room
		err = db.Preload("Hostel", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "user_id", "name")
		}).First(&room, uint(id)).Error
		if err != nil {
			c.JSON(404, gin.H{"error": "Room not found"})
			return
		}

		c.JSON(200, gin.H{"room": room})
	}
}
