package handlers

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/homespace-app/homespace-backend/internal/models"
	"github.com/homespace-app/homespace-backend/internal/services"
	"github.com/homespace-app/homespace-backend/pkg/utils"
)

type RegisterInput struct {
	FirstName string `json:"firstName" binding:"required,min=2,max=50"`
	LastName  string `json:"lastName" binding:"required,min=2,max=50"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	Phone     string `json:"phone"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func register(db *gorm.DB, role models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input RegisterInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		user := models.User{
			FirstName: input.FirstName,
			LastName:  input.LastName,
			Email:     input.Email,
			Password:  input.Password,
			Phone:     input.Phone,
			Role:      role,
			Status:    models.UserStatusActive,
		}
		if err := user.HashPassword(); err != nil {
			c.JSON(500, gin.H{"error": "Failed to hash password"})
			return
		}

		if result := db.Create(&user); result.Error != nil {
			c.JSON(409, gin.H{"error": "Email already registered"})
			return
		}

		c.JSON(201, gin.H{
			"message": "Account created successfully",
			"user": gin.H{
				"id":        user.ID,
				"email":     user.Email,
				"firstName": user.FirstName,
				"lastName":  user.LastName,
				"role":      user.Role,
			},
		})
	}
}

// RegisterStudent creates a student account
func RegisterStudent(db *gorm.DB) gin.HandlerFunc {
	return register(db, models.RoleStudent)
}

// RegisterOwner creates a hostel owner account
func RegisterOwner(db *gorm.DB) gin.HandlerFunc {
	return register(db, models.RoleOwner)
}

func Login(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var user models.User
		if result := db.Where("email = ?", input.Email).First(&user); result.Error != nil {
			c.JSON(401, gin.H{"error": "Invalid credentials"})
			return
		}

		if err := user.CheckPassword(input.Password); err != nil {
			c.JSON(401, gin.H{"error": "Invalid credentials"})
			return
		}

		if user.Status != models.UserStatusActive {
			c.JSON(403, gin.H{"error": "Account is " + string(user.Status)})
			return
		}

		accessToken, err := utils.GenerateToken(&user)
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to generate token"})
			return
		}
		refreshToken, err := utils.GenerateRefreshToken(&user)
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to generate refresh token"})
			return
		}

		if err := db.Model(&user).Update("refresh_token", refreshToken).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to persist session"})
			return
		}

		c.JSON(200, gin.H{
			"accessToken":  accessToken,
			"refreshToken": refreshToken,
			"user": gin.H{
				"id":        user.ID,
				"email":     user.Email,
				"firstName": user.FirstName,
				"lastName":  user.LastName,
				"role":      user.Role,
			},
		})
	}
}

// Refresh exchanges a valid refresh token for a new access token
func Refresh(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			RefreshToken string `json:"refreshToken" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		token, err := utils.ValidateRefreshToken(input.RefreshToken)
		if err != nil || !token.Valid {
			c.JSON(401, gin.H{"error": "Invalid refresh token"})
			return
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(401, gin.H{"error": "Invalid token claims"})
			return
		}

		var user models.User
		if result := db.First(&user, uint(claims["id"].(float64))); result.Error != nil {
			c.JSON(401, gin.H{"error": "Invalid refresh token"})
			return
		}
		// Token must match the one issued at login; logout clears it.
		if user.RefreshToken != input.RefreshToken {
			c.JSON(401, gin.H{"error": "Invalid refresh token"})
			return
		}

		accessToken, err := utils.GenerateToken(&user)
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to generate token"})
			return
		}

		c.JSON(200, gin.H{"accessToken": accessToken})
	}
}

// Logout invalidates the stored refresh token
func Logout(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")
		if err := db.Model(&models.User{}).Where("id = ?", userId).Update("refresh_token", "").Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to log out"})
			return
		}
		c.JSON(200, gin.H{"message": "Logged out successfully"})
	}
}

// ForgotPassword emails a reset link. Response is identical whether or not
// the account exists.
func ForgotPassword(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Email string `json:"email" binding:"required,email"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var user models.User
		if result := db.Where("email = ?", input.Email).First(&user); result.Error == nil {
			token, err := utils.GenerateResetToken()
			if err == nil {
				if err := services.SetPasswordResetToken(context.Background(), user.Email, token); err != nil {
					log.Printf("Failed to store reset token for %s: %v", user.Email, err)
				} else if err := utils.SendPasswordResetEmail(user.Email, token); err != nil {
					log.Printf("Failed to send reset email to %s: %v", user.Email, err)
				}
			}
		}

		c.JSON(200, gin.H{"message": "If that email exists, a reset link has been sent"})
	}
}

// ResetPassword consumes a reset token and sets a new password
func ResetPassword(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Email    string `json:"email" binding:"required,email"`
			Token    string `json:"token" binding:"required"`
			Password string `json:"password" binding:"required,min=6"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		stored, err := services.GetPasswordResetToken(context.Background(), input.Email)
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to verify reset token"})
			return
		}
		if stored == "" || stored != input.Token {
			c.JSON(400, gin.H{"error": "Invalid or expired reset token"})
			return
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to hash password"})
			return
		}

		result := db.Model(&models.User{}).
			Where("email = ?", input.Email).
			Updates(map[string]interface{}{"password_hash": string(hashed), "refresh_token": ""})
		if result.Error != nil || result.RowsAffected == 0 {
			c.JSON(400, gin.H{"error": "Failed to reset password"})
			return
		}

		if err := services.DeletePasswordResetToken(context.Background(), input.Email); err != nil {
			log.Printf("Failed to delete reset token for %s: %v", input.Email, err)
		}

		c.JSON(200, gin.H{"message": "Password reset successfully"})
	}
}
