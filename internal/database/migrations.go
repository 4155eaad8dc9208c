package database

import (
	"gorm.io/gorm"

	"github.com/homespace-app/homespace-backend/internal/models"
)

// RunMigrations applies schema changes AutoMigrate cannot express:
// check constraints guarding the booking and room invariants.
func RunMigrations(db *gorm.DB) error {
	if err := AutoMigrate(db); err != nil {
		return err
	}

	// Enum-style constraints on status columns.
	if db.Migrator().HasTable(&models.User{}) {
		db.Exec(`ALTER TABLE users DROP CONSTRAINT IF EXISTS users_role_check`)
		if err := db.Exec(`ALTER TABLE users ADD CONSTRAINT users_role_check CHECK (role IN ('student', 'owner', 'admin'))`).Error; err != nil {
			return err
		}
	}

	if db.Migrator().HasTable(&models.Booking{}) {
		db.Exec(`ALTER TABLE bookings DROP CONSTRAINT IF EXISTS bookings_status_check`)
		if err := db.Exec(`ALTER TABLE bookings ADD CONSTRAINT bookings_status_check CHECK (status IN ('REQUESTED', 'APPROVED', 'REJECTED', 'CANCELLED', 'COMPLETED'))`).Error; err != nil {
			return err
		}
		db.Exec(`ALTER TABLE bookings DROP CONSTRAINT IF EXISTS bookings_months_check`)
		if err := db.Exec(`ALTER TABLE bookings ADD CONSTRAINT bookings_months_check CHECK (months >= 1)`).Error; err != nil {
			return err
		}
	}

	if db.Migrator().HasTable(&models.Room{}) {
		// 0 <= available_beds <= total_beds, and a room has at least one bed.
		db.Exec(`ALTER TABLE rooms DROP CONSTRAINT IF EXISTS rooms_beds_check`)
		if err := db.Exec(`ALTER TABLE rooms ADD CONSTRAINT rooms_beds_check CHECK (available_beds >= 0 AND available_beds <= total_beds AND total_beds >= 1)`).Error; err != nil {
			return err
		}
	}

	if db.Migrator().HasTable(&models.Visit{}) {
		db.Exec(`ALTER TABLE visits DROP CONSTRAINT IF EXISTS visits_status_check`)
		if err := db.Exec(`ALTER TABLE visits ADD CONSTRAINT visits_status_check CHECK (status IN ('REQUESTED', 'APPROVED', 'REJECTED'))`).Error; err != nil {
			return err
		}
	}

	return nil
}
