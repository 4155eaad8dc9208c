package models

import (
	"gorm.io/gorm"
)

type RoomType string

const (
	RoomTypeSingle RoomType = "SINGLE"
	RoomTypeDouble RoomType = "DOUBLE"
	RoomTypeTriple RoomType = "TRIPLE"
	RoomTypeDorm   RoomType = "DORM"
)

type RoomStatus string

const (
	RoomStatusAvailable RoomStatus = "AVAILABLE"
	RoomStatusFull      RoomStatus = "FULL"
	RoomStatusInactive  RoomStatus = "INACTIVE"
)

type Room struct {
	gorm.Model
	HostelID      uint       `json:"hostelId" gorm:"not null;index"`
	Hostel        Hostel     `json:"hostel,omitempty"`
	RoomType      RoomType   `json:"roomType" gorm:"not null"`
	Price         float64    `json:"price" gorm:"not null"`
	TotalBeds     int        `json:"totalBeds" gorm:"not null"`
	AvailableBeds int        `json:"availableBeds" gorm:"not null"`
	Status        RoomStatus `json:"status" gorm:"not null;default:'AVAILABLE'"`
}

func (Room) TableName() string {
	return "rooms"
}

// SyncStatus keeps the cached status flag in line with the bed counter.
func (r *Room) SyncStatus() {
	if r.Status == RoomStatusInactive {
		return
	}
	if r.AvailableBeds <= 0 {
		r.Status = RoomStatusFull
	} else {
		r.Status = RoomStatusAvailable
	}
}
