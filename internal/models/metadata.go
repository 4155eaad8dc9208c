package models

// Amenity and Service are reference data attached to hostels through
// join tables. They carry no timestamps.

type Amenity struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:100;unique;not null"`
	Icon string `json:"icon"`
}

func (Amenity) TableName() string {
	return "amenities"
}

type Service struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"size:100;unique;not null"`
	Description string `json:"description"`
}

func (Service) TableName() string {
	return "services"
}
