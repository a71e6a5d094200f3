package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"booking-be/internal/controllers"
	"booking-be/internal/jwt"
	"booking-be/internal/middleware"
	"booking-be/internal/models"
)

// Controllers groups the HTTP handlers the router mounts
type Controllers struct {
	Auth     *controllers.AuthController
	Hospital *controllers.HospitalController
	Booking  *controllers.BookingController
	QRCode   *controllers.QRCodeController
}

// Options carries the cross-cutting pieces of the router
type Options struct {
	JWT          *jwt.JWTService
	Roles        middleware.RoleChecker
	GeneralLimit *middleware.RateLimiter
	AuthLimit    *middleware.RateLimiter // stricter budget for login/register
	ClientURL    string
	Logger       *zap.Logger
}

// NewRouter mounts every endpoint. Session routes run the auth middleware;
// catalog writes additionally run the admin gate.
func NewRouter(ctl Controllers, opts Options) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestLogger(opts.Logger),
		middleware.CORS(opts.ClientURL),
	)

	// Health check endpoint (no rate limiting)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, models.Response{Message: "Route not found"})
	})

	session := middleware.AuthMiddleware(opts.JWT)
	adminOnly := middleware.AdminMiddleware(opts.Roles)

	api := router.Group("")
	api.Use(opts.GeneralLimit.LimitMiddleware())
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", opts.AuthLimit.LimitMiddleware(), ctl.Auth.Register)
			auth.POST("/login", opts.AuthLimit.LimitMiddleware(), ctl.Auth.Login)
			auth.GET("/logout", ctl.Auth.Logout)
			auth.GET("/me", session, ctl.Auth.Me)
		}

		hospitals := api.Group("/hospitals")
		{
			hospitals.GET("", ctl.Hospital.List)
			hospitals.GET("/:id/services", ctl.Hospital.ListServices)
			hospitals.POST("", session, adminOnly, ctl.Hospital.Create)
			hospitals.PUT("/:id", session, adminOnly, ctl.Hospital.Update)
			hospitals.DELETE("/:id", session, adminOnly, ctl.Hospital.Delete)
		}

		bookings := api.Group("/bookings")
		bookings.Use(session)
		{
			bookings.POST("", ctl.Booking.Create)
			bookings.GET("/me", ctl.Booking.ListMine)
			bookings.PUT("/:id", ctl.Booking.Update)
			bookings.PATCH("/:id/status", ctl.Booking.UpdateStatus)
			bookings.DELETE("/:id", ctl.Booking.Delete)
			bookings.GET("/:id/qrcode", ctl.QRCode.GenerateQRCode)
		}
	}

	return router
}
