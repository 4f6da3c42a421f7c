package handler

import (
	"net/http"

	"studio-booking/internal/domain/user"
	"studio-booking/internal/handler/api"
	"studio-booking/internal/handler/middleware"
	"studio-booking/internal/pkg/config"
	"studio-booking/internal/usecase"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Handlers struct {
	Availability  *api.AvailabilityHandler
	Booking       *api.BookingHandler
	BlockedWindow *api.BlockedWindowHandler
	Studio        *api.StudioHandler
}

// NewRouter builds the route table. Availability and booking creation are
// open endpoints with optional auth; mutation of existing bookings and
// blocked window management require staff or admin tokens.
func NewRouter(cfg config.Config, h Handlers, validator usecase.TokenValidator) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.NewCORS(cfg.CORS))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/studios", h.Studio.List)
		apiGroup.GET("/availability", middleware.OptionalAuth(validator), h.Availability.Get)
		apiGroup.POST("/bookings", middleware.OptionalAuth(validator), h.Booking.Create)

		staff := apiGroup.Group("")
		staff.Use(middleware.RequireAuth(validator), middleware.RequireRole(user.RoleStaff, user.RoleAdmin))
		{
			staff.GET("/bookings", h.Booking.List)
			staff.GET("/bookings/:id", h.Booking.GetByID)
			staff.PUT("/bookings/:id", h.Booking.Update)
			staff.POST("/bookings/:id/cancel", h.Booking.Cancel)
			staff.GET("/blocked-windows", h.BlockedWindow.List)
		}

		admin := apiGroup.Group("")
		admin.Use(middleware.RequireAuth(validator), middleware.RequireRole(user.RoleAdmin))
		{
			admin.POST("/blocked-windows", h.BlockedWindow.Create)
			admin.DELETE("/blocked-windows/:id", h.BlockedWindow.Delete)
		}
	}

	return r
}
