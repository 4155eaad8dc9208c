package models

import (
	"gorm.io/gorm"
)

type HostelStatus string

const (
	HostelStatusPending  HostelStatus = "PENDING"
	HostelStatusApproved HostelStatus = "APPROVED"
	HostelStatusRejected HostelStatus = "REJECTED"
)

type Hostel struct {
	gorm.Model
	UserID      uint         `json:"userId" gorm:"not null;index"`
	Owner       User         `json:"owner" gorm:"foreignKey:UserID"`
	Name        string       `json:"name" gorm:"size:100;not null"`
	Description string       `json:"description" gorm:"type:text"`
	City        string       `json:"city" gorm:"size:50;not null"`
	Area        string       `json:"area" gorm:"size:50"`
	Address     string       `json:"address" gorm:"size:255;not null"`
	Latitude    float64      `json:"latitude"`
	Longitude   float64      `json:"longitude"`
	Status      HostelStatus `json:"status" gorm:"not null;default:'PENDING';index"`
	Rooms       []Room       `json:"rooms,omitempty"`
	Amenities   []Amenity    `json:"amenities,omitempty" gorm:"many2many:hostel_amenities;"`
	Services    []Service    `json:"services,omitempty" gorm:"many2many:hostel_services;"`
}

func (Hostel) TableName() string {
	return "hostels"
}
