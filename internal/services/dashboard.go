package services

import (
	"fmt"
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/homespace-app/homespace-backend/internal/models"
)

// DashboardService computes per-role stat summaries. Earnings and spend stay
// at zero: there is no payment pipeline behind them yet.
type DashboardService struct {
	db *gorm.DB
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

type StudentStats struct {
	ActiveBookings  int64          `json:"active_bookings"`
	PendingRequests int64          `json:"pending_requests"`
	UpcomingVisit   *UpcomingVisit `json:"upcoming_visit"`
	TotalSpend      float64        `json:"total_spend"`
	SavedHostels    int64          `json:"saved_hostels"`
}

type UpcomingVisit struct {
	Date   time.Time `json:"date"`
	Hostel string    `json:"hostel"`
}

type OwnerStats struct {
	TotalHostels   int64   `json:"total_hostels"`
	ActiveStudents int64   `json:"active_students"`
	OccupancyRate  int     `json:"occupancy_rate"`
	TotalEarnings  float64 `json:"total_earnings"`
	PendingActions int64   `json:"pending_actions"`
}

type AdminStats struct {
	TotalStudents  int64 `json:"total_students"`
	TotalOwners    int64 `json:"total_owners"`
	TotalHostels   int64 `json:"total_hostels"`
	PendingHostels int64 `json:"pending_hostels"`
	TotalBookings  int64 `json:"total_bookings"`
	TotalVisits    int64 `json:"total_visits"`
}

func (s *DashboardService) StudentStats(userID uint) (*StudentStats, error) {
	now := time.Now()
	stats := &StudentStats{}

	err := s.db.Model(&models.Booking{}).
		Where("user_id = ? AND status = ? AND end_date >= ?", userID, models.BookingStatusApproved, now).
		Count(&stats.ActiveBookings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count active bookings: %w", err)
	}

	var pendingBookings, pendingVisits int64
	if err := s.db.Model(&models.Booking{}).
		Where("user_id = ? AND status = ?", userID, models.BookingStatusRequested).
		Count(&pendingBookings).Error; err != nil {
		return nil, fmt.Errorf("failed to count pending bookings: %w", err)
	}
	if err := s.db.Model(&models.Visit{}).
		Where("user_id = ? AND status = ?", userID, models.VisitStatusRequested).
		Count(&pendingVisits).Error; err != nil {
		return nil, fmt.Errorf("failed to count pending visits: %w", err)
	}
	stats.PendingRequests = pendingBookings + pendingVisits

	var visit models.Visit
	err = s.db.Preload("Hostel").
		Where("user_id = ? AND status = ? AND visit_date >= ?", userID, models.VisitStatusApproved, now).
		Order("visit_date ASC").
		First(&visit).Error
	if err == nil {
		stats.UpcomingVisit = &UpcomingVisit{Date: visit.VisitDate, Hostel: visit.Hostel.Name}
	} else if err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("failed to load upcoming visit: %w", err)
	}

	if err := s.db.Model(&models.SavedHostel{}).
		Where("user_id = ?", userID).
		Count(&stats.SavedHostels).Error; err != nil {
		return nil, fmt.Errorf("failed to count saved hostels: %w", err)
	}

	return stats, nil
}

func (s *DashboardService) OwnerStats(ownerID uint) (*OwnerStats, error) {
	now := time.Now()
	stats := &OwnerStats{}

	if err := s.db.Model(&models.Hostel{}).
		Where("user_id = ?", ownerID).
		Count(&stats.TotalHostels).Error; err != nil {
		return nil, fmt.Errorf("failed to count hostels: %w", err)
	}
	if stats.TotalHostels == 0 {
		return stats, nil
	}

	hostelIDs := s.db.Model(&models.Hostel{}).Select("id").Where("user_id = ?", ownerID)

	err := s.db.Model(&models.Booking{}).
		Joins("JOIN rooms ON rooms.id = bookings.room_id").
		Where("rooms.hostel_id IN (?)", hostelIDs).
		Where("bookings.status = ? AND bookings.end_date >= ?", models.BookingStatusApproved, now).
		Count(&stats.ActiveStudents).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count active students: %w", err)
	}

	var totalBeds int64
	err = s.db.Model(&models.Room{}).
		Where("hostel_id IN (?)", hostelIDs).
		Select("COALESCE(SUM(total_beds), 0)").
		Scan(&totalBeds).Error
	if err != nil {
		return nil, fmt.Errorf("failed to sum beds: %w", err)
	}
	if totalBeds > 0 {
		// One approved booking occupies one bed.
		stats.OccupancyRate = int(math.Round(float64(stats.ActiveStudents) / float64(totalBeds) * 100))
	}

	var pendingBookings, pendingVisits int64
	err = s.db.Model(&models.Booking{}).
		Joins("JOIN rooms ON rooms.id = bookings.room_id").
		Where("rooms.hostel_id IN (?)", hostelIDs).
		Where("bookings.status = ?", models.BookingStatusRequested).
		Count(&pendingBookings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count pending bookings: %w", err)
	}
	err = s.db.Model(&models.Visit{}).
		Where("hostel_id IN (?) AND status = ?", hostelIDs, models.VisitStatusRequested).
		Count(&pendingVisits).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count pending visits: %w", err)
	}
	stats.PendingActions = pendingBookings + pendingVisits

	return stats, nil
}

func (s *DashboardService) AdminStats() (*AdminStats, error) {
	stats := &AdminStats{}

	counts := []struct {
		dest  *int64
		query *gorm.DB
	}{
		{&stats.TotalStudents, s.db.Model(&models.User{}).Where("role = ?", models.RoleStudent)},
		{&stats.TotalOwners, s.db.Model(&models.User{}).Where("role = ?", models.RoleOwner)},
		{&stats.TotalHostels, s.db.Model(&models.Hostel{})},
		{&stats.PendingHostels, s.db.Model(&models.Hostel{}).Where("status = ?", models.HostelStatusPending)},
		{&stats.TotalBookings, s.db.Model(&models.Booking{})},
		{&stats.TotalVisits, s.db.Model(&models.Visit{})},
	}
	for _, c := range counts {
		if err := c.query.Count(c.dest).Error; err != nil {
			return nil, fmt.Errorf("failed to compute admin stats: %w", err)
		}
	}
	return stats, nil
}
