package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/homespace-app/homespace-backend/internal/models"
	"github.com/homespace-app/homespace-backend/internal/services"
)

type hostelInput struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Description string  `json:"description"`
	City        string  `json:"city" binding:"required,max=50"`
	Area        string  `json:"area"`
	Address     string  `json:"address" binding:"required,max=255"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	AmenityIDs  []uint  `json:"amenityIds"`
	ServiceIDs  []uint  `json:"serviceIds"`
}

func (in hostelInput) toService() services.HostelInput {
	return services.HostelInput{
		Name:        in.Name,
		Description: in.Description,
		City:        in.City,
		Area:        in.Area,
		Address:     in.Address,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
		AmenityIDs:  in.AmenityIDs,
		ServiceIDs:  in.ServiceIDs,
	}
}

// CreateHostel registers a new hostel, pending admin approval
func CreateHostel(svc *services.HostelService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")
		var input hostelInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		hostel, err := svc.Create(userId, input.toService())
		if err != nil {
			respondServiceError(c, err)
			return
		}

		c.JSON(201, gin.H{"message": "Hostel created successfully", "hostel": hostel})
	}
}

// GetHostels is the public listing with search, city and price filters
func GetHostels(svc *services.HostelService) gin.HandlerFunc {
	return func(c *gin.Context) {
		minPrice, _ := strconv.ParseFloat(c.Query("minPrice"), 64)
		maxPrice, _ := strconv.ParseFloat(c.Query("maxPrice"), 64)

		hostels, err := svc.FindAll(services.HostelFilter{
			Search:   c.Query("search"),
			City:     c.Query("city"),
			MinPrice: minPrice,
			MaxPrice: maxPrice,
		})
		if err != nil {
			respondServiceError(c, err)
			return
		}

		c.JSON(200, gin.H{"hostels": hostels})
	}
}

// GetHostelByID returns a single hostel with rooms, amenities and owner
func GetHostelByID(svc *services.HostelService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid hostel id"})
			return
		}

		hostel, err := svc.FindByID(uint(id))
		if err != nil {
			respondServiceError(c, err)
			return
		}

		c.JSON(200, gin.H{"hostel": hostel})
	}
}

// GetMyHostels lists the authenticated owner's hostels
func GetMyHostels(svc *services.HostelService) gin.HandlerFunc {
	return func(c *gin.Context) {
		hostels, err := svc.FindByOwner(c.GetUint("userId"))
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(200, gin.H{"hostels": hostels})
	}
}

// UpdateHostel edits a hostel owned by the caller (or any, for admins)
func UpdateHostel(svc *services.HostelService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")
		userRole := models.UserRole(c.GetString("userRole"))

		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid hostel id"})
			return
		}

		var input hostelInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		hostel, err := svc.Update(uint(id), userId, userRole, input.toService())
		if err != nil {
			respondServiceError(c, err)
			return
		}

		c.JSON(200, gin.H{"message": "Hostel updated successfully", "hostel": hostel})
	}
}

// DeleteHostel removes a hostel owned by the caller (or any, for admins)
func DeleteHostel(svc *services.HostelService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")
		userRole := models.UserRole(c.GetString("userRole"))

		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid hostel id"})
			return
		}

		if err := svc.Delete(uint(id), userId, userRole); err != nil {
			respondServiceError(c, err)
			return
		}

		c.JSON(200, gin.H{"message": "Hostel deleted successfully"})
	}
}

// ModerateHostel is the admin approval endpoint for new hostels
func ModerateHostel(svc *services.HostelService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid hostel id"})
			return
		}

		var input struct {
			Status string `json:"status" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		hostel, err := svc.Moderate(uint(id), models.HostelStatus(input.Status))
		if err != nil {
			respondServiceError(c, err)
			return
		}

		c.JSON(200, gin.H{"message": "Hostel " + string(hostel.Status), "hostel": hostel})
	}
}
