package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/LokeshAnde180/docspot/authentication"
	"github.com/LokeshAnde180/docspot/configuration"
	"github.com/LokeshAnde180/docspot/controllers"
)

// Setup wires every route group onto a fresh engine.
func Setup(h *controllers.Handler, cfg *configuration.Config) *gin.Engine {
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	}))

	secret := []byte(cfg.JWTSecret)

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "API is running...")
	})

	auth := r.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.GET("/user", authentication.Authenticate(secret), h.CurrentUser)
	}

	admin := r.Group("/admin")
	admin.Use(authentication.Authenticate(secret), authentication.RequireAdmin())
	{
		admin.GET("/users", h.ListUsers)
		admin.PUT("/doctors/:id/approve", h.ApproveDoctor)
		admin.DELETE("/users/:id", h.DeleteUser)
	}

	customer := r.Group("/customer")
	customer.Use(authentication.Authenticate(secret), authentication.RequireCustomer())
	{
		customer.GET("/doctors", h.ListDoctors)
		customer.POST("/appointments", h.BookAppointment)
		customer.GET("/appointments/me", h.MyAppointments)
		customer.PUT("/appointments/:id/cancel", h.CancelAppointment)
		customer.POST("/appointments/:id/pay", h.PayAppointment)
	}

	doctor := r.Group("/doctor")
	doctor.Use(authentication.Authenticate(secret), authentication.RequireDoctor())
	{
		doctor.POST("/profile", h.UpsertProfile)
		doctor.GET("/profile/me", h.MyProfile)
		doctor.GET("/appointments", h.Appointments)
		doctor.PUT("/appointments/:id/status", h.UpdateAppointment)
	}

	return r
}
