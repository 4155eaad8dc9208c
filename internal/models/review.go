package models

import (
	"time"

	"gorm.io/gorm"
)

type Review struct {
	gorm.Model
	UserID    uint       `json:"userId" gorm:"not null;uniqueIndex:idx_reviews_user_hostel"`
	Reviewer  User       `json:"reviewer,omitempty" gorm:"foreignKey:UserID"`
	HostelID  uint       `json:"hostelId" gorm:"not null;uniqueIndex:idx_reviews_user_hostel"`
	Hostel    Hostel     `json:"hostel,omitempty"`
	Rating    int        `json:"rating" gorm:"not null"`
	Comments  string     `json:"comments" gorm:"type:text"`
	Reply     string     `json:"reply" gorm:"type:text"`
	ReplyDate *time.Time `json:"replyDate"`
}

func (Review) TableName() string {
	return "reviews"
}
