package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/homespace-app/homespace-backend/internal/models"
)

// ReviewService gates reviews on a verified stay and lets owners reply.
type ReviewService struct {
	db *gorm.DB
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

type CreateReviewInput struct {
	HostelID uint
	Rating   int
	Comments string
}

// Create adds a review for a hostel. The student must have a verified stay
// there: an APPROVED or COMPLETED booking whose start date has passed.
func (s *ReviewService) Create(studentID uint, in CreateReviewInput) (*models.Review, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, Validation("Rating must be between 1 and 5")
	}

	var validStays int64
	err := s.db.Model(&models.Booking{}).
		Joins("JOIN rooms ON rooms.id = bookings.room_id").
		Where("bookings.user_id = ? AND rooms.hostel_id = ?", studentID, in.HostelID).
		Where("bookings.status IN ?", []models.BookingStatus{
			models.BookingStatusApproved,
			models.BookingStatusCompleted,
		}).
		Where("bookings.start_date <= ?", time.Now()).
		Count(&validStays).Error
	if err != nil {
		return nil, fmt.Errorf("failed to verify stay: %w", err)
	}
	if validStays == 0 {
		return nil, Forbidden("You can only review hostels where you have a verified stay")
	}

	var existing int64
	err = s.db.Model(&models.Review{}).
		Where("user_id = ? AND hostel_id = ?", studentID, in.HostelID).
		Count(&existing).Error
	if err != nil {
		return nil, fmt.Errorf("failed to check existing review: %w", err)
	}
	if existing > 0 {
		return nil, Conflict("You have already reviewed this hostel. You can edit your existing review")
	}

	review := models.Review{
		UserID:   studentID,
		HostelID: in.HostelID,
		Rating:   in.Rating,
		Comments: in.Comments,
	}
	if err := s.db.Create(&review).Error; err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	return &review, nil
}

// FindByHostel returns a hostel's reviews, newest first, with reviewer names.
func (s *ReviewService) FindByHostel(hostelID uint) ([]models.Review, error) {
	var reviews []models.Review
	err := s.db.Where("hostel_id = ?", hostelID).
		Preload("Reviewer", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "first_name", "last_name", "profile_image")
		}).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reviews: %w", err)
	}
	return reviews, nil
}

// Update lets the author change rating and comments.
func (s *ReviewService) Update(reviewID, studentID uint, rating int, comments string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, Validation("Rating must be between 1 and 5")
	}

	var review models.Review
	if err := s.db.First(&review, reviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("Review not found")
		}
		return nil, fmt.Errorf("failed to load review: %w", err)
	}

	if review.UserID != studentID {
		return nil, Forbidden("Unauthorized")
	}

	review.Rating = rating
	review.Comments = comments
	if err := s.db.Save(&review).Error; err != nil {
		return nil, fmt.Errorf("failed to update review: %w", err)
	}
	return &review, nil
}

// Delete removes a review. The author or an admin may delete.
func (s *ReviewService) Delete(reviewID, actorID uint, actorRole models.UserRole) error {
	var review models.Review
	if err := s.db.First(&review, reviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotFound("Review not found")
		}
		return fmt.Errorf("failed to load review: %w", err)
	}

	if actorRole != models.RoleAdmin && review.UserID != actorID {
		return Forbidden("Unauthorized")
	}

	if err := s.db.Delete(&review).Error; err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	return nil
}

// Reply records the hostel owner's response on a review.
func (s *ReviewService) Reply(reviewID, ownerID uint, replyText string) (*models.Review, error) {
	var review models.Review
	if err := s.db.Preload("Hostel").First(&review, reviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("Review not found")
		}
		return nil, fmt.Errorf("failed to load review: %w", err)
	}

	if review.Hostel.UserID != ownerID {
		return nil, Forbidden("You are not the owner of this hostel")
	}

	now := time.Now()
	review.Reply = replyText
	review.ReplyDate = &now
	if err := s.db.Save(&review).Error; err != nil {
		return nil, fmt.Errorf("failed to save reply: %w", err)
	}
	return &review, nil
}
