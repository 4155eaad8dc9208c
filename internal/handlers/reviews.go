package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/homespace-app/homespace-backend/internal/models"
	"github.com/homespace-app/homespace-backend/internal/services"
)

// CreateReview posts a review on a hostel the student has stayed at
func CreateReview(svc *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		hostelId, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid hostel id"})
			return
		}

		var input struct {
			Rating   int    `json:"rating" binding:"required,min=1,max=5"`
			Comments string `json:"comments"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		review, err := svc.Create(userId, services.CreateReviewInput{
			HostelID: uint(hostelId),
			Rating:   input.Rating,
			Comments: input.Comments,
		})
		if err != nil {
			respondServiceError(c, err)
			return
		}

		c.JSON(201, gin.H{"message": "Review posted successfully", "review": review})
	}
}

// GetHostelReviews lists a hostel's reviews (public)
func GetHostelReviews(svc *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		hostelId, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid hostel id"})
			return
		}

		reviews, err := svc.FindByHostel(uint(hostelId))
		if err != nil {
			respondServiceError(c, err)
			return
		}

		c.JSON(200, gin.H{"reviews": reviews})
	}
}

// UpdateReview edits the caller's own review
func UpdateReview(svc *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid review id"})
			return
		}

		var input struct {
			Rating   int    `json:"rating" binding:"required,min=1,max=5"`
			Comments string `json:"comments"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		review, err := svc.Update(uint(id), userId, input.Rating, input.Comments)
		if err != nil {
			respondServiceError(c, err)
			return
		}

		c.JSON(200, gin.H{"message": "Review updated successfully", "review": review})
	}
}

// DeleteReview removes a review (author or admin)
func DeleteReview(svc *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")
		userRole := models.UserRole(c.GetString("userRole"))

		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid review id"})
			return
		}

		if err := svc.Delete(uint(id), userId, userRole); err != nil {
			respondServiceError(c, err)
			return
		}

		c.JSON(200, gin.H{"message": "Review deleted successfully"})
	}
}

// ReplyToReview records the hostel owner's response
func ReplyToReview(svc *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid review id"})
			return
		}

		var input struct {
			Reply string `json:"reply" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		review, err := svc.Reply(uint(id), userId, input.Reply)
		if err != nil {
			respondServiceError(c, err)
			return
		}

		c.JSON(200, gin.H{"message": "Reply posted successfully", "review": review})
	}
}
