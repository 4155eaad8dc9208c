package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/homespace-app/homespace-backend/internal/models"
	"github.com/homespace-app/homespace-backend/internal/services"
)

// ScheduleVisit creates a visit request for a hostel
func ScheduleVisit(svc *services.VisitService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")
		var input struct {
			HostelID  uint   `json:"hostelId" binding:"required"`
			VisitDate string `json:"visitDate" binding:"required"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		visitDate, err := time.Parse("2006-01-02", input.VisitDate)
		if err != nil {
			c.JSON(400, gin.H{"error": "visitDate must be YYYY-MM-DD"})
			return
		}

		visit, err := svc.Schedule(userId, input.HostelID, visitDate)
		if err != nil {
			respondServiceError(c, err)
			return
		}

		c.JSON(201, gin.H{
			"message": "Visit scheduled successfully",
			"visit":   visit,
		})
	}
}

// UpdateVisitStatus lets the hostel owner approve or reject a visit
func UpdateVisitStatus(svc *services.VisitService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		visitId, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid visit id"})
			return
		}

		var input struct {
			Status string `json:"status" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		visit, err := svc.UpdateStatus(uint(visitId), models.VisitStatus(input.Status), userId)
		if err != nil {
			respondServiceError(c, err)
			return
		}

		c.JSON(200, gin.H{
			"message": "Visit " + string(visit.Status) + " successfully",
			"visit":   visit,
		})
	}
}

// GetVisits lists visits scoped to the caller's role
func GetVisits(svc *services.VisitService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")
		userRole := models.UserRole(c.GetString("userRole"))

		visits, err := svc.FindAll(userId, userRole)
		if err != nil {
			respondServiceError(c, err)
			return
		}

		c.JSON(200, gin.H{"visits": visits})
	}
}
