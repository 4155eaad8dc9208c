package models

import (
	"time"

	"gorm.io/gorm"
)

type VisitStatus string

const (
	VisitStatusRequested VisitStatus = "REQUESTED"
	VisitStatusApproved  VisitStatus = "APPROVED"
	VisitStatusRejected  VisitStatus = "REJECTED"
)

type Visit struct {
	gorm.Model
	UserID    uint        `json:"userId" gorm:"not null;index"`
	Student   User        `json:"student,omitempty" gorm:"foreignKey:UserID"`
	HostelID  uint        `json:"hostelId" gorm:"not null;index"`
	Hostel    Hostel      `json:"hostel,omitempty"`
	VisitDate time.Time   `json:"visitDate" gorm:"type:date;not null"`
	Status    VisitStatus `json:"status" gorm:"not null;default:'REQUESTED';index"`
}

func (Visit) TableName() string {
	return "visits"
}
