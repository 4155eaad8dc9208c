package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/homespace-app/homespace-backend/internal/models"
)

// HostelService covers hostel CRUD and admin moderation. New hostels start
// PENDING and only APPROVED ones are visible to the public listing.
type HostelService struct {
	db *gorm.DB
}

func NewHostelService(db *gorm.DB) *HostelService {
	return &HostelService{db: db}
}

type HostelInput struct {
	Name        string
	Description string
	City        string
	Area        string
	Address     string
	Latitude    float64
	Longitude   float64
	AmenityIDs  []uint
	ServiceIDs  []uint
}

type HostelFilter struct {
	Search   string
	City     string
	MinPrice float64
	MaxPrice float64
}

func (s *HostelService) Create(ownerID uint, in HostelInput) (*models.Hostel, error) {
	hostel := models.Hostel{
		UserID:      ownerID,
		Name:        in.Name,
		Description: in.Description,
		City:        in.City,
		Area:        in.Area,
		Address:     in.Address,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
		Status:      models.HostelStatusPending,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&hostel).Error; err != nil {
			return fmt.Errorf("failed to create hostel: %w", err)
		}
		if len(in.AmenityIDs) > 0 {
			var amenities []models.Amenity
			if err := tx.Find(&amenities, in.AmenityIDs).Error; err != nil {
				return fmt.Errorf("failed to load amenities: %w", err)
			}
			if err := tx.Model(&hostel).Association("Amenities").Append(amenities); err != nil {
				return fmt.Errorf("failed to link amenities: %w", err)
			}
		}
		if len(in.ServiceIDs) > 0 {
			var services []models.Service
			if err := tx.Find(&services, in.ServiceIDs).Error; err != nil {
				return fmt.Errorf("failed to load services: %w", err)
			}
			if err := tx.Model(&hostel).Association("Services").Append(services); err != nil {
				return fmt.Errorf("failed to link services: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.FindByID(hostel.ID)
}

// FindAll returns APPROVED hostels for the public listing, optionally
// filtered by text search, city and room price range.
func (s *HostelService) FindAll(filter HostelFilter) ([]models.Hostel, error) {
	query := s.db.Model(&models.Hostel{}).
		Where("hostels.status = ?", models.HostelStatusApproved).
		Preload("Owner", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "first_name", "last_name", "email")
		}).
		Preload("Rooms").
		Preload("Amenities").
		Order("hostels.created_at DESC")

	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(
			"LOWER(hostels.name) LIKE ? OR LOWER(hostels.city) LIKE ? OR LOWER(hostels.area) LIKE ?",
			pattern, pattern, pattern)
	}
	if filter.City != "" {
		query = query.Where("LOWER(hostels.city) LIKE ?", "%"+strings.ToLower(filter.City)+"%")
	}

	// Price filtering keeps hostels with at least one available room in range.
	if filter.MinPrice > 0 || filter.MaxPrice > 0 {
		priceQuery := s.db.Model(&models.Room{}).
			Select("hostel_id").
			Where("status = ?", models.RoomStatusAvailable)
		if filter.MinPrice > 0 {
			priceQuery = priceQuery.Where("price >= ?", filter.MinPrice)
		}
		if filter.MaxPrice > 0 {
			priceQuery = priceQuery.Where("price <= ?", filter.MaxPrice)
		}
		query = query.Where("hostels.id IN (?)", priceQuery)
	}

	var hostels []models.Hostel
	if err := query.Find(&hostels).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch hostels: %w", err)
	}
	return hostels, nil
}

func (s *HostelService) FindByID(hostelID uint) (*models.Hostel, error) {
	var hostel models.Hostel
	err := s.db.
		Preload("Owner", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "first_name", "last_name", "email")
		}).
		Preload("Rooms").
		Preload("Amenities").
		Preload("Services").
		First(&hostel, hostelID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("Hostel not found")
		}
		return nil, fmt.Errorf("failed to load hostel: %w", err)
	}
	return &hostel, nil
}

func (s *HostelService) Update(hostelID, actorID uint, actorRole models.UserRole, in HostelInput) (*models.Hostel, error) {
	hostel, err := s.authorizedHostel(hostelID, actorID, actorRole)
	if err != nil {
		return nil, err
	}

	hostel.Name = in.Name
	hostel.Description = in.Description
	hostel.City = in.City
	hostel.Area = in.Area
	hostel.Address = in.Address
	hostel.Latitude = in.Latitude
	hostel.Longitude = in.Longitude

	if err := s.db.Save(hostel).Error; err != nil {
		return nil, fmt.Errorf("failed to update hostel: %w", err)
	}
	return s.FindByID(hostel.ID)
}

func (s *HostelService) Delete(hostelID, actorID uint, actorRole models.UserRole) error {
	hostel, err := s.authorizedHostel(hostelID, actorID, actorRole)
	if err != nil {
		return err
	}
	if err := s.db.Delete(hostel).Error; err != nil {
		return fmt.Errorf("failed to delete hostel: %w", err)
	}
	return nil
}

// Moderate is the admin path flipping a PENDING hostel to APPROVED or
// REJECTED.
func (s *HostelService) Moderate(hostelID uint, status models.HostelStatus) (*models.Hostel, error) {
	if status != models.HostelStatusApproved && status != models.HostelStatusRejected {
		return nil, Validation("Invalid status")
	}

	var hostel models.Hostel
	if err := s.db.First(&hostel, hostelID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("Hostel not found")
		}
		return nil, fmt.Errorf("failed to load hostel: %w", err)
	}

	hostel.Status = status
	if err := s.db.Save(&hostel).Error; err != nil {
		return nil, fmt.Errorf("failed to update hostel status: %w", err)
	}
	return &hostel, nil
}

// FindByOwner lists an owner's hostels regardless of moderation status.
func (s *HostelService) FindByOwner(ownerID uint) ([]models.Hostel, error) {
	var hostels []models.Hostel
	err := s.db.Where("user_id = ?", ownerID).
		Preload("Rooms").
		Order("created_at DESC").
		Find(&hostels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch hostels: %w", err)
	}
	return hostels, nil
}

func (s *HostelService) authorizedHostel(hostelID, actorID uint, actorRole models.UserRole) (*models.Hostel, error) {
	var hostel models.Hostel
	if err := s.db.First(&hostel, hostelID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("Hostel not found")
		}
		return nil, fmt.Errorf("failed to load hostel: %w", err)
	}
	if actorRole != models.RoleAdmin && hostel.UserID != actorID {
		return nil, Forbidden("Unauthorized")
	}
	return &hostel, nil
}
