package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/homespace-app/homespace-backend/internal/models"
	"github.com/homespace-app/homespace-backend/pkg/utils"
)

// BookingService owns the booking state machine and the room capacity rules.
// All state-changing paths run inside a transaction that locks the room row,
// so a capacity check and the write it guards cannot interleave with another
// request on the same room.
type BookingService struct {
	db *gorm.DB
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{db: db}
}

type CreateBookingInput struct {
	RoomID    uint
	StartDate time.Time
	Months    int
}

// activeStatuses are the booking states that hold a bed. A REQUESTED booking
// reserves capacity before the owner has acted on it.
var activeStatuses = []models.BookingStatus{
	models.BookingStatusRequested,
	models.BookingStatusApproved,
}

// lockRoom loads the room under a row-level lock. SQLite has no
// SELECT ... FOR UPDATE; its single-writer lock serializes writers instead,
// so the clause is skipped there.
func lockRoom(tx *gorm.DB, roomID uint, room *models.Room) error {
	q := tx
	if tx.Dialector.Name() != "sqlite" {
		q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return q.First(room, roomID).Error
}

// overlapScope filters bookings whose [start_date, end_date] intersects the
// closed interval [start, end]. Boundaries touching count as overlap.
func overlapScope(start, end time.Time) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("bookings.start_date <= ? AND bookings.end_date >= ?", end, start)
	}
}

// CountActiveBookings returns how many REQUESTED or APPROVED bookings on the
// room overlap the given range.
func (s *BookingService) CountActiveBookings(roomID uint, start, end time.Time) (int64, error) {
	return countActiveBookings(s.db, roomID, start, end)
}

func countActiveBookings(tx *gorm.DB, roomID uint, start, end time.Time) (int64, error) {
	var count int64
	err := tx.Model(&models.Booking{}).
		Where("bookings.room_id = ? AND bookings.status IN ?", roomID, activeStatuses).
		Scopes(overlapScope(start, end)).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count active bookings: %w", err)
	}
	return count, nil
}

// Create validates and inserts a booking request for a student.
//
// The room row is locked for the duration of the transaction so two
// concurrent requests for the last bed cannot both pass the capacity count
// before either inserts.
func (s *BookingService) Create(studentID uint, in CreateBookingInput) (*models.Booking, error) {
	if in.Months < 1 {
		return nil, Validation("Minimum booking is 1 month")
	}

	startDate := utils.DateOnly(in.StartDate)
	endDate := utils.AddMonths(startDate, in.Months)

	var booking models.Booking
	var owner models.User
	var hostel models.Hostel

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := lockRoom(tx, in.RoomID, &room); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFound("Room not found")
			}
			return fmt.Errorf("failed to load room: %w", err)
		}

		if err := tx.First(&hostel, room.HostelID).Error; err != nil {
			return fmt.Errorf("failed to load hostel: %w", err)
		}
		if err := tx.First(&owner, hostel.UserID).Error; err != nil {
			return fmt.Errorf("failed to load hostel owner: %w", err)
		}

		// One pending request per hostel per student, across all rooms.
		var pendingInHostel int64
		err := tx.Model(&models.Booking{}).
			Joins("JOIN rooms ON rooms.id = bookings.room_id").
			Where("bookings.user_id = ? AND bookings.status = ? AND rooms.hostel_id = ?",
				studentID, models.BookingStatusRequested, room.HostelID).
			Count(&pendingInHostel).Error
		if err != nil {
			return fmt.Errorf("failed to check pending bookings: %w", err)
		}
		if pendingInHostel > 0 {
			return Conflict("You already have a pending booking request in this hostel")
		}

		// Same student, same room, overlapping range.
		var duplicate int64
		err = tx.Model(&models.Booking{}).
			Where("bookings.user_id = ? AND bookings.room_id = ? AND bookings.status IN ?",
				studentID, in.RoomID, activeStatuses).
			Scopes(overlapScope(startDate, endDate)).
			Count(&duplicate).Error
		if err != nil {
			return fmt.Errorf("failed to check duplicate booking: %w", err)
		}
		if duplicate > 0 {
			return Conflict("You already have a booking request for this room")
		}

		active, err := countActiveBookings(tx, in.RoomID, startDate, endDate)
		if err != nil {
			return err
		}
		if active >= int64(room.TotalBeds) {
			return Conflict("Room is fully booked for the selected duration")
		}

		booking = models.Booking{
			UserID:    studentID,
			RoomID:    in.RoomID,
			StartDate: startDate,
			EndDate:   endDate,
			Months:    in.Months,
			Status:    models.BookingStatusRequested,
		}
		if err := tx.Create(&booking).Error; err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Notification is best effort: the booking stands whether or not the
	// email goes out.
	if err := utils.SendBookingRequestedEmail(owner.Email, hostel.Name, booking.RoomID, studentID, booking.StartDate, booking.EndDate); err != nil {
		log.Printf("Failed to send booking request email to owner %d: %v", owner.ID, err)
	}

	return &booking, nil
}

// UpdateStatus moves a REQUESTED booking to APPROVED or REJECTED. The room
// row lock covers the status write and the bed counter update, so two
// approvals cannot both take the last bed. CANCELLED and COMPLETED exist in
// the schema but are not reachable through this call.
func (s *BookingService) UpdateStatus(bookingID uint, status models.BookingStatus, actorID uint, actorRole models.UserRole) (*models.Booking, error) {
	if status != models.BookingStatusApproved && status != models.BookingStatusRejected {
		return nil, Validation("Invalid status")
	}

	var booking models.Booking
	var hostel models.Hostel
	var student models.User

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFound("Booking not found")
			}
			return fmt.Errorf("failed to load booking: %w", err)
		}

		var room models.Room
		if err := lockRoom(tx, booking.RoomID, &room); err != nil {
			return fmt.Errorf("failed to load room: %w", err)
		}
		if err := tx.First(&hostel, room.HostelID).Error; err != nil {
			return fmt.Errorf("failed to load hostel: %w", err)
		}

		if actorRole != models.RoleAdmin && hostel.UserID != actorID {
			return Forbidden("Unauthorized")
		}

		if booking.Status != models.BookingStatusRequested {
			return Conflict(fmt.Sprintf("Booking already %s", booking.Status))
		}

		if status == models.BookingStatusApproved {
			if room.AvailableBeds <= 0 {
				return Conflict("No available beds")
			}
			room.AvailableBeds--
			room.SyncStatus()
			if err := tx.Save(&room).Error; err != nil {
				return fmt.Errorf("failed to update room: %w", err)
			}
		}

		booking.Status = status
		if err := tx.Save(&booking).Error; err != nil {
			return fmt.Errorf("failed to update booking: %w", err)
		}

		if err := tx.First(&student, booking.UserID).Error; err != nil {
			return fmt.Errorf("failed to load student: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := utils.SendBookingDecisionEmail(student.Email, hostel.Name, booking.RoomID, string(status)); err != nil {
		log.Printf("Failed to send booking decision email to student %d: %v", student.ID, err)
	}

	return &booking, nil
}

// FindAll lists bookings visible to the actor: students see their own, owners
// see bookings on rooms in their hostels, admins see everything. Results are
// newest first with room, hostel and requester identity attached.
func (s *BookingService) FindAll(actorID uint, actorRole models.UserRole) ([]models.Booking, error) {
	query := s.db.Model(&models.Booking{}).
		Preload("Room").
		Preload("Room.Hostel").
		Preload("Student", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "first_name", "last_name", "email")
		}).
		Order("bookings.created_at DESC")

	switch actorRole {
	case models.RoleStudent:
		query = query.Where("bookings.user_id = ?", actorID)
	case models.RoleOwner:
		query = query.
			Joins("JOIN rooms ON rooms.id = bookings.room_id").
			Joins("JOIN hostels ON hostels.id = rooms.hostel_id").
			Where("hostels.user_id = ?", actorID)
	case models.RoleAdmin:
		// Admins see all bookings.
	}

	var bookings []models.Booking
	if err := query.Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch bookings: %w", err)
	}
	return bookings, nil
}
