package models

import "gorm.io/gorm"

type ImageEntityType string

const (
	ImageEntityHostel ImageEntityType = "HOSTEL"
	ImageEntityRoom   ImageEntityType = "ROOM"
)

type Image struct {
	gorm.Model
	ImageURL   string          `json:"imageUrl" gorm:"not null"`
	EntityType ImageEntityType `json:"entityType" gorm:"not null;index:idx_images_entity"`
	EntityID   uint            `json:"entityId" gorm:"not null;index:idx_images_entity"`
	IsCover    bool            `json:"isCover" gorm:"default:false"`
}

func (Image) TableName() string {
	return "images"
}
