package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/homespace-app/homespace-backend/internal/models"
	"github.com/homespace-app/homespace-backend/pkg/utils"
)

// VisitService handles visit scheduling and owner approval. It mirrors the
// booking state machine without the capacity dimension.
type VisitService struct {
	db *gorm.DB
}

func NewVisitService(db *gorm.DB) *VisitService {
	return &VisitService{db: db}
}

// Schedule creates a REQUESTED visit for a student. A student can hold at
// most one pending visit per hostel.
func (s *VisitService) Schedule(studentID, hostelID uint, visitDate time.Time) (*models.Visit, error) {
	var hostel models.Hostel
	if err := s.db.First(&hostel, hostelID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("Hostel not found")
		}
		return nil, fmt.Errorf("failed to load hostel: %w", err)
	}

	var pending int64
	err := s.db.Model(&models.Visit{}).
		Where("user_id = ? AND hostel_id = ? AND status = ?",
			studentID, hostelID, models.VisitStatusRequested).
		Count(&pending).Error
	if err != nil {
		return nil, fmt.Errorf("failed to check pending visits: %w", err)
	}
	if pending > 0 {
		return nil, Conflict("You already have a pending visit request for this hostel")
	}

	var student models.User
	if err := s.db.First(&student, studentID).Error; err != nil {
		return nil, fmt.Errorf("failed to load student: %w", err)
	}

	visit := models.Visit{
		UserID:    studentID,
		HostelID:  hostelID,
		VisitDate: utils.DateOnly(visitDate),
		Status:    models.VisitStatusRequested,
	}
	if err := s.db.Create(&visit).Error; err != nil {
		return nil, fmt.Errorf("failed to create visit: %w", err)
	}

	var owner models.User
	if err := s.db.First(&owner, hostel.UserID).Error; err != nil {
		log.Printf("Failed to resolve owner for hostel %d: %v", hostel.ID, err)
		return &visit, nil
	}
	studentName := student.FirstName + " " + student.LastName
	if err := utils.SendVisitRequestedEmail(owner.Email, hostel.Name, studentName, visit.VisitDate); err != nil {
		log.Printf("Failed to send visit request email to owner %d: %v", owner.ID, err)
	}

	return &visit, nil
}

// UpdateStatus moves a visit to APPROVED or REJECTED. Only the hostel owner
// may act; there is no admin bypass here, unlike bookings.
func (s *VisitService) UpdateStatus(visitID uint, status models.VisitStatus, actorID uint) (*models.Visit, error) {
	if status != models.VisitStatusApproved && status != models.VisitStatusRejected {
		return nil, Validation("Invalid status")
	}

	var visit models.Visit
	if err := s.db.Preload("Hostel").Preload("Student").First(&visit, visitID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("Visit not found")
		}
		return nil, fmt.Errorf("failed to load visit: %w", err)
	}

	if visit.Hostel.UserID != actorID {
		return nil, Forbidden("Unauthorized")
	}

	if visit.Status != models.VisitStatusRequested {
		return nil, Conflict(fmt.Sprintf("Visit already %s", visit.Status))
	}

	visit.Status = status
	if err := s.db.Save(&visit).Error; err != nil {
		return nil, fmt.Errorf("failed to update visit: %w", err)
	}

	if err := utils.SendVisitDecisionEmail(visit.Student.Email, visit.Hostel.Name, visit.VisitDate, string(status)); err != nil {
		log.Printf("Failed to send visit decision email to student %d: %v", visit.UserID, err)
	}

	return &visit, nil
}

// FindAll lists visits visible to the actor: students see their own, owners
// see visits to their hostels.
func (s *VisitService) FindAll(actorID uint, actorRole models.UserRole) ([]models.Visit, error) {
	query := s.db.Model(&models.Visit{}).
		Preload("Hostel").
		Preload("Student", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "first_name", "last_name", "email")
		}).
		Order("visits.created_at DESC")

	switch actorRole {
	case models.RoleStudent:
		query = query.Where("visits.user_id = ?", actorID)
	case models.RoleOwner:
		query = query.
			Joins("JOIN hostels ON hostels.id = visits.hostel_id").
			Where("hostels.user_id = ?", actorID)
	}

	var visits []models.Visit
	if err := query.Find(&visits).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch visits: %w", err)
	}
	return visits, nil
}
