package models

import (
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleOwner   UserRole = "owner"
	RoleAdmin   UserRole = "admin"
)

type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
	UserStatusDeleted   UserStatus = "deleted"
)

type User struct {
	gorm.Model
	FirstName    string     `json:"firstName" gorm:"column:first_name;size:50;not null"`
	LastName     string     `json:"lastName" gorm:"column:last_name;size:50;not null"`
	Email        string     `json:"email" gorm:"column:email;size:100;unique;not null"`
	Password     string     `json:"-" gorm:"-:all"` // Temporary field for password handling
	PasswordHash string     `json:"-" gorm:"column:password_hash;not null"`
	Phone        string     `json:"phone" gorm:"column:phone;size:20"`
	Role         UserRole   `json:"role" gorm:"column:role;not null;default:'student'"`
	Status       UserStatus `json:"status" gorm:"column:status;not null;default:'active'"`
	ProfileImage string     `json:"profileImage" gorm:"column:profile_image"`
	RefreshToken string     `json:"-" gorm:"column:refresh_token;type:text"`
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}

func (u *User) HashPassword() error {
	if u.Password == "" {
		return nil
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}
