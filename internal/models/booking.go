package models

import (
	"time"

	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingStatusRequested BookingStatus = "REQUESTED"
	BookingStatusApproved  BookingStatus = "APPROVED"
	BookingStatusRejected  BookingStatus = "REJECTED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
	BookingStatusCompleted BookingStatus = "COMPLETED"
)

// CountsAgainstCapacity reports whether a booking in this status holds a bed.
// A REQUESTED booking reserves capacity before the owner has acted on it.
func (s BookingStatus) CountsAgainstCapacity() bool {
	return s == BookingStatusRequested || s == BookingStatusApproved
}

type Booking struct {
	gorm.Model
	UserID    uint          `json:"userId" gorm:"not null;index"`
	Student   User          `json:"student,omitempty" gorm:"foreignKey:UserID"`
	RoomID    uint          `json:"roomId" gorm:"not null;index"`
	Room      Room          `json:"room,omitempty"`
	StartDate time.Time     `json:"startDate" gorm:"type:date;not null"`
	EndDate   time.Time     `json:"endDate" gorm:"type:date;not null"`
	Months    int           `json:"months" gorm:"not null"`
	Status    BookingStatus `json:"status" gorm:"not null;default:'REQUESTED';index"`
}

func (Booking) TableName() string {
	return "bookings"
}
