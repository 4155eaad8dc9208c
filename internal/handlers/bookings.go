package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/homespace-app/homespace-backend/internal/models"
	"github.com/homespace-app/homespace-backend/internal/services"
)

// CreateBooking handles a student's booking request for a room
func CreateBooking(svc *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")
		var input struct {
			RoomID    uint   `json:"roomId" binding:"required"`
			StartDate string `json:"startDate" binding:"required"`
			Months    int    `json:"months" binding:"required,min=1"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		startDate, err := time.Parse("2006-01-02", input.StartDate)
		if err != nil {
			c.JSON(400, gin.H{"error": "startDate must be YYYY-MM-DD"})
			return
		}

		booking, err := svc.Create(userId, services.CreateBookingInput{
			RoomID:    input.RoomID,
			StartDate: startDate,
			Months:    input.Months,
		})
		if err != nil {
			respondServiceError(c, err)
			return
		}

		c.JSON(201, gin.H{
			"message": "Booking request sent successfully",
			"booking": booking,
		})
	}
}

// UpdateBookingStatus lets the hostel owner or an admin approve or reject
func UpdateBookingStatus(svc *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")
		userRole := models.UserRole(c.GetString("userRole"))

		bookingId, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid booking id"})
			return
		}

		var input struct {
			Status string `json:"status" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		booking, err := svc.UpdateStatus(uint(bookingId), models.BookingStatus(input.Status), userId, userRole)
		if err != nil {
			respondServiceError(c, err)
			return
		}

		c.JSON(200, gin.H{
			"message": "Booking " + string(booking.Status) + " successfully",
			"booking": booking,
		})
	}
}

// GetBookings lists bookings scoped to the caller's role
func GetBookings(svc *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")
		userRole := models.UserRole(c.GetString("userRole"))

		bookings, err := svc.FindAll(userId, userRole)
		if err != nil {
			respondServiceError(c, err)
			return
		}

		c.JSON(200, gin.H{"bookings": bookings})
	}
}
