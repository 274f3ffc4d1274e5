package handler

import (
	"context"

	"github.com/sanosuguru/go-facility-reservation/internal/application"
	"github.com/sanosuguru/go-facility-reservation/internal/domain/account"
	"github.com/sanosuguru/go-facility-reservation/internal/domain/booking"
	"github.com/sanosuguru/go-facility-reservation/internal/domain/facility"
)

// BookingServiceInterface は予約サービスのインターフェース
type BookingServiceInterface interface {
	CreateBooking(ctx context.Context, input application.CreateBookingInput) (*booking.Booking, error)
	GetBooking(ctx context.Context, id string) (*booking.Booking, error)
	GetAccountBookings(ctx context.Context, accountID string, limit, offset int) ([]*booking.Booking, error)
	GetPendingBookings(ctx context.Context, approverID string) ([]*booking.Booking, error)
	ConfirmBooking(ctx context.Context, bookingID, approverID string) (*booking.Booking, error)
	DeclineBooking(ctx context.Context, bookingID, approverID string) (*booking.Booking, error)
	CancelBooking(ctx context.Context, bookingID, actorID string) (*booking.Booking, error)
	ListAvailability(ctx context.Context, facilityID, date string) ([]application.AvailabilitySlot, error)
}

// FacilityServiceInterface は施設サービスのインターフェース
type FacilityServiceInterface interface {
	CreateFacility(ctx context.Context, input application.CreateFacilityInput, approverID string) (*facility.Facility, error)
	GetFacility(ctx context.Context, id string) (*facility.Facility, error)
	ListFacilities(ctx context.Context) ([]*facility.Facility, error)
}

// AccountServiceInterface はアカウントサービスのインターフェース
type AccountServiceInterface interface {
	CreateAccount(ctx context.Context, input application.CreateAccountInput) (*account.Account, error)
	GetAccount(ctx context.Context, id string) (*account.Account, error)
	TopUp(ctx context.Context, accountID string, amount int, approverID string) (*account.Account, error)
	GetLedgerEntries(ctx context.Context, accountID string, limit, offset int) ([]*account.LedgerEntry, error)
}
