package routes

import (
	"net/http"
	"time"

	"visionhealth/handlers"
	"visionhealth/middleware"
	"visionhealth/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterHealthRoute registers the liveness endpoints.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "vision health server is running...")
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "dependencies": utils.GetHealthStatus()})
	})
}

// RegisterCatalogRoutes registers availability and service catalog endpoints.
func RegisterCatalogRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/appointmentServices", hb.Catalog.GetAppointmentServices)
	r.GET("/appointmentSpecialty", hb.Catalog.GetSpecialties)

	admin := r.Group("/appointmentServices", middleware.JWTAuth(hb.Tokens), middleware.RequireAdmin(hb.Admins))
	{
		admin.POST("", hb.Catalog.CreateService)
		admin.DELETE("/:id", hb.Catalog.DeleteService)
	}
}

// RegisterBookingRoutes registers booking endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/bookings", middleware.JWTAuth(hb.Tokens), hb.Bookings.GetBookings)
	r.GET("/bookings/:id", hb.Bookings.GetBookingByID)
	r.POST("/bookings", hb.Bookings.CreateBooking)
}

// RegisterUserRoutes registers identity and user endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/jwt", hb.Users.IssueToken)
	r.GET("/users", hb.Users.GetAllUsers)
	r.POST("/users", hb.Users.CreateUser)
	r.GET("/users/admin/:email", hb.Users.CheckAdmin)
	r.PUT("/users/admin/:id", middleware.JWTAuth(hb.Tokens), middleware.RequireAdmin(hb.Admins), hb.Users.PromoteUser)
}

// RegisterDoctorRoutes registers doctor catalog endpoints; all are admin-only.
func RegisterDoctorRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	doctors := r.Group("/doctors", middleware.JWTAuth(hb.Tokens), middleware.RequireAdmin(hb.Admins))
	{
		doctors.GET("", hb.Doctors.GetDoctors)
		doctors.POST("", hb.Doctors.CreateDoctor)
		doctors.DELETE("/:id", hb.Doctors.DeleteDoctor)
	}
}

// RegisterPaymentRoutes registers payment endpoints.
func RegisterPaymentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	payments := r.Group("", middleware.JWTAuth(hb.Tokens))
	{
		payments.POST("/create-payment-intent", hb.Payments.CreatePaymentIntent)
		payments.POST("/payments", hb.Payments.CreatePayment)
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterCatalogRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterUserRoutes(r, hb)
	RegisterDoctorRoutes(r, hb)
	RegisterPaymentRoutes(r, hb)
}
