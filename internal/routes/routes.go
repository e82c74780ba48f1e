package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/clinicbase/server/internal/config"
	"github.com/clinicbase/server/internal/handlers"
	"github.com/clinicbase/server/internal/metrics"
	"github.com/clinicbase/server/internal/middleware"
	"github.com/clinicbase/server/internal/models"
	"github.com/clinicbase/server/internal/notify"
	"github.com/clinicbase/server/internal/scheduling"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config, log *zap.Logger) {
	scheduler := scheduling.NewService(db, cfg.Schedule, log)
	notifier := notify.New(log)

	authHandler := handlers.NewAuthHandler(db, cfg)
	userHandler := handlers.NewUserHandler(db)
	appointmentHandler := handlers.NewAppointmentHandler(db, scheduler, notifier, log)
	medicalRecordHandler := handlers.NewMedicalRecordHandler(db)

	// Public routes (no authentication required)
	public := router.Group("/api")
	{
		authRoutes := public.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/refresh-token", authHandler.RefreshToken)
		}
	}

	// Authenticated routes
	private := router.Group("/api")
	private.Use(middleware.AuthMiddleware(cfg))
	{
		authRoutesPrivate := private.Group("/auth")
		{
			authRoutesPrivate.POST("/logout", authHandler.Logout)
			authRoutesPrivate.GET("/profile", authHandler.GetProfile)
			authRoutesPrivate.PUT("/profile", authHandler.UpdateProfile)
		}

		// User management routes (admin-only)
		userRoutes := private.Group("/users")
		userRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
		{
			userRoutes.POST("", userHandler.CreateUser)
			userRoutes.GET("", userHandler.GetUsers)
			userRoutes.GET("/:id", userHandler.GetUserByID)
			userRoutes.PUT("/:id", userHandler.UpdateUser)
			userRoutes.PUT("/:id/deactivate", userHandler.DeactivateUser)
			userRoutes.GET("/appointments", appointmentHandler.GetAppointmentsForUser)
		}

		// Patient routes
		patientRoutes := private.Group("/patients")
		patientRoutes.Use(middleware.RoleAuthMiddleware(models.RolePatient))
		{
			patientRoutes.GET("/doctors", userHandler.GetDoctors)
			patientRoutes.GET("/doctors/:id/availability", appointmentHandler.GetDoctorAvailability)

			patientRoutes.POST("/appointments", appointmentHandler.BookAppointment)
			patientRoutes.GET("/appointments", appointmentHandler.GetAppointmentsForUser)
			patientRoutes.GET("/appointments/:id", appointmentHandler.GetAppointmentByID)
			patientRoutes.PUT("/appointments/:id/cancel", appointmentHandler.CancelAppointment)

			patientRoutes.GET("/medical-records", medicalRecordHandler.GetMedicalRecordsForPatient)
			patientRoutes.GET("/medical-records/:id", medicalRecordHandler.GetMedicalRecordByID)
		}

		// Doctor routes
		doctorRoutes := private.Group("/doctors")
		doctorRoutes.Use(middleware.RoleAuthMiddleware(models.RoleDoctor))
		{
			doctorRoutes.GET("/appointments", appointmentHandler.GetAppointmentsForUser)
			doctorRoutes.GET("/appointments/:id", appointmentHandler.GetAppointmentByID)
			doctorRoutes.PUT("/appointments/:id/status", appointmentHandler.UpdateAppointmentStatus)

			doctorRoutes.GET("/patients", userHandler.GetDoctorPatients)
			doctorRoutes.POST("/medical-records", medicalRecordHandler.CreateMedicalRecord)
			doctorRoutes.GET("/medical-records/:id", medicalRecordHandler.GetMedicalRecordByID)
			doctorRoutes.GET("/patients/:patientId/medical-records", medicalRecordHandler.GetMedicalRecordsForPatient)
		}
	}

	// Operational endpoints
	router.GET("/metrics", metrics.Handler())
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
