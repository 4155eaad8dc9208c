package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/homespace-app/homespace-backend/internal/database"
	"github.com/homespace-app/homespace-backend/internal/handlers"
	"github.com/homespace-app/homespace-backend/internal/middleware"
	"github.com/homespace-app/homespace-backend/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	db, err := database.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}

	// Configure connection pool
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := services.InitRedis(); err != nil {
		log.Fatalf("Failed to initialize Redis: %v", err)
	}

	if err := services.InitStorage(); err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	// WebSocket hub for realtime chat delivery
	hub := services.NewHub()
	go hub.Run()

	bookingService := services.NewBookingService(db)
	visitService := services.NewVisitService(db)
	hostelService := services.NewHostelService(db)
	reviewService := services.NewReviewService(db)
	chatService := services.NewChatService(db)
	dashboardService := services.NewDashboardService(db)

	r := gin.Default()

	config := cors.DefaultConfig()
	config.AllowOrigins = []string{"*"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	r.Use(cors.New(config))

	// Serve locally stored uploads
	r.Static("/uploads", "/app/uploads")

	api := r.Group("/api")
	{
		// Public routes
		auth := api.Group("/auth")
		{
			auth.POST("/register/student", handlers.RegisterStudent(db))
			auth.POST("/register/owner", handlers.RegisterOwner(db))
			auth.POST("/login", handlers.Login(db))
			auth.POST("/refresh", handlers.Refresh(db))
			auth.POST("/forgot-password", handlers.ForgotPassword(db))
			auth.POST("/reset-password", handlers.ResetPassword(db))
		}

		// Public catalog
		api.GET("/hostels", handlers.GetHostels(hostelService))
		api.GET("/hostels/:id", handlers.GetHostelByID(hostelService))
		api.GET("/hostels/:id/images", handlers.GetHostelImages(db))
		api.GET("/hostels/:id/reviews", handlers.GetHostelReviews(reviewService))
		api.GET("/rooms", handlers.GetRooms(db))
		api.GET("/rooms/:id", handlers.GetRoomByID(db))
		api.GET("/amenities", handlers.GetAmenities(db))
		api.GET("/services", handlers.GetServices(db))

		// WebSocket connection
		api.GET("/ws", middleware.AuthMiddleware(), handlers.WebSocketHandler(hub))

		// Protected routes
		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.POST("/auth/logout", handlers.Logout(db))

			profile := protected.Group("/profile")
			{
				profile.GET("", handlers.GetProfile(db))
				profile.PUT("", handlers.UpdateProfile(db))
				profile.POST("/image", handlers.UploadProfileImage(db))
			}

			// Hostel management
			protected.POST("/hostels", middleware.RequireRoles("owner", "admin"), handlers.CreateHostel(hostelService))
			protected.GET("/hostels/mine", middleware.RequireRoles("owner"), handlers.GetMyHostels(hostelService))
			protected.PUT("/hostels/:id", middleware.RequireRoles("owner", "admin"), handlers.UpdateHostel(hostelService))
			protected.DELETE("/hostels/:id", middleware.RequireRoles("owner", "admin"), handlers.DeleteHostel(hostelService))
			protected.PATCH("/hostels/:id/status", middleware.RequireRoles("admin"), handlers.ModerateHostel(hostelService))
			protected.POST("/hostels/:id/images", middleware.RequireRoles("owner", "admin"), handlers.UploadHostelImage(db))
			protected.DELETE("/images/:id", middleware.RequireRoles("owner", "admin"), handlers.DeleteImage(db))

			// Room management
			protected.POST("/rooms", middleware.RequireRoles("owner", "admin"), handlers.CreateRoom(db))
			protected.PUT("/rooms/:id", middleware.RequireRoles("owner", "admin"), handlers.UpdateRoom(db))
			protected.DELETE("/rooms/:id", middleware.RequireRoles("owner", "admin"), handlers.DeleteRoom(db))
			protected.POST("/rooms/:id/images", middleware.RequireRoles("owner", "admin"), handlers.UploadRoomImage(db))

			// Bookings
			bookings := protected.Group("/bookings")
			{
				bookings.POST("", middleware.RequireRoles("student"), handlers.CreateBooking(bookingService))
				bookings.GET("", handlers.GetBookings(bookingService))
				bookings.PUT("/:id/status", middleware.RequireRoles("owner", "admin"), handlers.UpdateBookingStatus(bookingService))
			}

			// Visits
			visits := protected.Group("/visits")
			{
				visits.POST("", middleware.RequireRoles("student"), handlers.ScheduleVisit(visitService))
				visits.GET("", handlers.GetVisits(visitService))
				visits.PATCH("/:id/status", middleware.RequireRoles("owner"), handlers.UpdateVisitStatus(visitService))
			}

			// Reviews
			protected.POST("/hostels/:id/reviews", middleware.RequireRoles("student"), handlers.CreateReview(reviewService))
			protected.PUT("/reviews/:id", middleware.RequireRoles("student"), handlers.UpdateReview(reviewService))
			protected.DELETE("/reviews/:id", handlers.DeleteReview(reviewService))
			protected.PATCH("/reviews/:id/reply", middleware.RequireRoles("owner"), handlers.ReplyToReview(reviewService))

			// Saved hostels
			protected.POST("/hostels/:id/save", middleware.RequireRoles("student"), handlers.SaveHostel(db))
			protected.DELETE("/hostels/:id/save", middleware.RequireRoles("student"), handlers.UnsaveHostel(db))
			protected.GET("/saved-hostels", middleware.RequireRoles("student"), handlers.GetSavedHostels(db))

			// Chat
			chat := protected.Group("/chat")
			{
				chat.POST("/conversations", handlers.StartConversation(chatService))
				chat.GET("/conversations", handlers.GetMyConversations(chatService))
				chat.GET("/conversations/:id/messages", handlers.GetMessages(chatService))
				chat.POST("/messages", handlers.SendMessage(chatService, hub))
				chat.POST("/upload", handlers.UploadChatAttachment())
			}

			// Dashboard
			protected.GET("/dashboard", handlers.GetDashboardStats(dashboardService))
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
