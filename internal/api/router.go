package api

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sanosuguru/go-facility-reservation/internal/api/handler"
	"github.com/sanosuguru/go-facility-reservation/internal/api/middleware"
)

// Handlers はルーティングに必要なハンドラー群
type Handlers struct {
	Booking  *handler.BookingHandler
	Facility *handler.FacilityHandler
	Account  *handler.AccountHandler
	Health   *handler.HealthHandler
}

// RegisterRoutes はAPIルートを登録する
func RegisterRoutes(e *echo.Echo, h Handlers) {
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()), middleware.MetricsBasicAuth())

	v1 := e.Group("/api/v1")
	v1.GET("/health", h.Health.Check)

	v1.POST("/bookings", h.Booking.Create)
	v1.GET("/bookings", h.Booking.GetMyBookings)
	v1.GET("/bookings/pending", h.Booking.GetPending)
	v1.GET("/bookings/:id", h.Booking.GetByID)
	v1.POST("/bookings/:id/confirm", h.Booking.Confirm)
	v1.POST("/bookings/:id/decline", h.Booking.Decline)
	v1.POST("/bookings/:id/cancel", h.Booking.Cancel)

	v1.POST("/facilities", h.Facility.Create)
	v1.GET("/facilities", h.Facility.List)
	v1.GET("/facilities/:id", h.Facility.GetByID)
	v1.GET("/facilities/:id/availability", h.Booking.Availability)

	v1.POST("/accounts", h.Account.Create)
	v1.GET("/accounts/:id", h.Account.GetByID)
	v1.POST("/accounts/:id/topup", h.Account.TopUp)
	v1.GET("/accounts/:id/ledger", h.Account.GetLedger)
}
