package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/homespace-app/homespace-backend/internal/database"
	"github.com/homespace-app/homespace-backend/internal/models"
)

// setupTestDB opens an in-memory SQLite database with the full schema.
// A single connection keeps the in-memory database alive for the test.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(db))
	return db
}

func createUser(t *testing.T, db *gorm.DB, email string, role models.UserRole) *models.User {
	t.Helper()

	user := models.User{
		FirstName:    "Test",
		LastName:     "User",
		Email:        email,
		PasswordHash: "not-a-real-hash",
		Role:         role,
		Status:       models.UserStatusActive,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createHostel(t *testing.T, db *gorm.DB, ownerID uint, status models.HostelStatus) *models.Hostel {
	t.Helper()

	hostel := models.Hostel{
		UserID:  ownerID,
		Name:    "Sunrise Hostel",
		City:    "Lahore",
		Address: "12 Mall Road",
		Status:  status,
	}
	require.NoError(t, db.Create(&hostel).Error)
	return &hostel
}

func createRoom(t *testing.T, db *gorm.DB, hostelID uint, totalBeds int) *models.Room {
	t.Helper()

	room := models.Room{
		HostelID:      hostelID,
		RoomType:      models.RoomTypeDouble,
		Price:         15000,
		TotalBeds:     totalBeds,
		AvailableBeds: totalBeds,
		Status:        models.RoomStatusAvailable,
	}
	require.NoError(t, db.Create(&room).Error)
	return &room
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
