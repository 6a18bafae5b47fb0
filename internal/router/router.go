package router

import (
	"os"
	"strings"
	"time"

	"github.com/chachabrian/umrah-travel-backend/internal/handlers"
	"github.com/chachabrian/umrah-travel-backend/internal/middleware"
	"github.com/chachabrian/umrah-travel-backend/internal/models"
	"github.com/chachabrian/umrah-travel-backend/internal/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func corsConfig() cors.Config {
	config := cors.DefaultConfig()
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	config.ExposeHeaders = []string{"Content-Disposition"}
	config.MaxAge = 12 * time.Hour

	origins := os.Getenv("CORS_ORIGINS")
	if origins == "" || origins == "*" {
		config.AllowAllOrigins = true
		return config
	}
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			config.AllowOrigins = append(config.AllowOrigins, o)
		}
	}
	return config
}

// Setup builds the HTTP routes. /api/admin is the admin panel; every
// other /api route serves the public site.
func Setup(db *gorm.DB, hub *services.Hub, notifier *services.Notifier) *gin.Engine {
	r := gin.Default()
	r.Use(cors.New(corsConfig()))
	r.MaxMultipartMemory = services.MaxUploadSize

	if !services.IsUsingS3() && services.UploadDir() != "" {
		r.Static("/uploads", services.UploadDir())
	}

	r.GET("/health", handlers.HealthCheck())

	api := r.Group("/api")
	{
		// Public site
		api.GET("/trips", handlers.ListPublicTrips(db))
		api.GET("/trips/:id", handlers.GetPublicTrip(db))
		api.GET("/services", handlers.ListServices(db))
		api.GET("/testimonials", handlers.ListTestimonials(db))
		api.GET("/gallery", handlers.ListGallery(db))
		api.POST("/bookings", handlers.CreatePublicBooking(db, notifier))
		api.POST("/contact", handlers.SubmitContactMessage(db, notifier))
	}

	admin := api.Group("/admin")
	{
		authRoutes := admin.Group("/auth")
		{
			authRoutes.POST("/login", handlers.Login(db))
			authRoutes.POST("/forgot-password", handlers.ForgotPassword(db))
			authRoutes.POST("/reset-password", handlers.ResetPassword(db))
		}

		// Browsers cannot set headers on websocket upgrades, so the
		// middleware also reads ?token=
		admin.GET("/ws", middleware.AdminAuth(db), handlers.WebSocketHandler(hub))

		protected := admin.Group("/")
		protected.Use(middleware.AdminAuth(db))
		{
			protected.GET("/auth/session", handlers.GetSession())
			protected.POST("/auth/logout", handlers.Logout())
			protected.PUT("/auth/password", handlers.UpdatePassword(db))

			protected.GET("/preferences", handlers.GetPreferences(db))
			protected.PUT("/preferences", handlers.UpdatePreferences(db))
			protected.POST("/notifications/register-token", handlers.RegisterDeviceToken())
			protected.POST("/notifications/unregister-token", handlers.UnregisterDeviceToken())

			editor := protected.Group("/")
			editor.Use(middleware.RequireRole(models.RoleEditor))
			{
				editor.GET("/dashboard", handlers.Dashboard(db, hub))

				trips := editor.Group("/trips")
				{
					trips.GET("", handlers.ListTrips(db))
					trips.GET("/:id", handlers.GetTrip(db))
					trips.POST("", handlers.CreateTrip(db))
					trips.PUT("/:id", handlers.UpdateTrip(db))
					trips.DELETE("/:id", handlers.DeleteTrip(db))
				}

				gallery := editor.Group("/gallery")
				{
					gallery.GET("", handlers.ListGallery(db))
					gallery.GET("/:id", handlers.GetGalleryItem(db))
					gallery.POST("", handlers.CreateGalleryItem(db))
					gallery.PUT("/:id", handlers.UpdateGalleryItem(db))
					gallery.DELETE("/:id", handlers.DeleteGalleryItem(db))
				}

				testimonials := editor.Group("/testimonials")
				{
					testimonials.GET("", handlers.ListTestimonials(db))
					testimonials.GET("/:id", handlers.GetTestimonial(db))
					testimonials.POST("", handlers.CreateTestimonial(db))
					testimonials.PUT("/:id", handlers.UpdateTestimonial(db))
					testimonials.DELETE("/:id", handlers.DeleteTestimonial(db))
				}

				svc := editor.Group("/services")
				{
					svc.GET("", handlers.ListServices(db))
					svc.GET("/:id", handlers.GetService(db))
					svc.POST("", handlers.CreateService(db))
					svc.PUT("/:id", handlers.UpdateService(db))
					svc.DELETE("/:id", handlers.DeleteService(db))
				}

				bookings := editor.Group("/bookings")
				{
					bookings.GET("", handlers.ListBookings(db))
					bookings.GET("/export", handlers.ExportBookings(db))
					bookings.GET("/:id", handlers.GetBooking(db))
					bookings.PATCH("/:id/status", handlers.UpdateBookingStatus(db, notifier))
					bookings.DELETE("/:id", middleware.RequireRole(models.RoleAdmin), handlers.DeleteBooking(db))
				}

				messages := editor.Group("/messages")
				{
					messages.GET("", handlers.ListContactMessages(db))
					messages.PATCH("/:id/read", handlers.MarkContactMessageRead(db))
					messages.DELETE("/:id", handlers.DeleteContactMessage(db))
				}

				editor.POST("/uploads", handlers.UploadImage())
				editor.DELETE("/uploads", handlers.DeleteUpload())
			}

			users := protected.Group("/users")
			users.Use(middleware.RequireRole(models.RoleAdmin))
			{
				users.GET("", handlers.ListAdminUsers(db))
				users.POST("", handlers.CreateAdminUser(db))
				users.PUT("/:id", handlers.UpdateAdminUser(db))
				users.DELETE("/:id", handlers.DeleteAdminUser(db))
			}
		}
	}

	return r
}
