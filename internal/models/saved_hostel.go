package models

import "gorm.io/gorm"

type SavedHostel struct {
	gorm.Model
	UserID   uint   `json:"userId" gorm:"not null;uniqueIndex:idx_saved_user_hostel"`
	HostelID uint   `json:"hostelId" gorm:"not null;uniqueIndex:idx_saved_user_hostel"`
	Hostel   Hostel `json:"hostel,omitempty"`
}

func (SavedHostel) TableName() string {
	return "saved_hostels"
}
