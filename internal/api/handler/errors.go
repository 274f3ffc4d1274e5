package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-facility-reservation/internal/domain/account"
	"github.com/sanosuguru/go-facility-reservation/internal/domain/booking"
	"github.com/sanosuguru/go-facility-reservation/internal/domain/facility"
)

// toHTTPError はドメインエラーをHTTPステータスに変換する
func toHTTPError(err error) error {
	switch {
	case errors.Is(err, booking.ErrBookingNotFound),
		errors.Is(err, facility.ErrFacilityNotFound),
		errors.Is(err, account.ErrAccountNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())

	case errors.Is(err, account.ErrApproverRequired),
		errors.Is(err, booking.ErrNotBookingOwner):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())

	case errors.Is(err, account.ErrInsufficientBalance):
		return echo.NewHTTPError(http.StatusPaymentRequired, err.Error())

	case errors.Is(err, booking.ErrSlotConflict),
		errors.Is(err, booking.ErrBookingNotPending),
		errors.Is(err, booking.ErrBookingAlreadyRejected),
		errors.Is(err, booking.ErrBookingCancelled),
		errors.Is(err, booking.ErrSettlementNotRequired),
		errors.Is(err, booking.ErrCancelDeadlinePassed),
		errors.Is(err, account.ErrAlreadySettled),
		errors.Is(err, facility.ErrFacilityExists),
		errors.Is(err, facility.ErrFacilityInactive):
		return echo.NewHTTPError(http.StatusConflict, err.Error())

	case errors.Is(err, booking.ErrInvalidClock),
		errors.Is(err, booking.ErrInvalidDate),
		errors.Is(err, booking.ErrInvalidWindow),
		errors.Is(err, booking.ErrAfterLastStart),
		errors.Is(err, booking.ErrRentalPlanRequired),
		errors.Is(err, booking.ErrUnknownBikeType),
		errors.Is(err, booking.ErrUnknownRentalPlan),
		errors.Is(err, booking.ErrAccountIDRequired),
		errors.Is(err, booking.ErrFacilityIDRequired),
		errors.Is(err, facility.ErrUnknownCategory),
		errors.Is(err, facility.ErrFacilityIDRequired),
		errors.Is(err, facility.ErrFacilityNameRequired),
		errors.Is(err, account.ErrInvalidAmount),
		errors.Is(err, account.ErrUsernameRequired),
		errors.Is(err, account.ErrInvalidRole),
		errors.Is(err, account.ErrNegativeBalance):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())

	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

// accountID は X-Account-ID ヘッダーから操作主体を取り出す
func accountID(c echo.Context) (string, error) {
	id := c.Request().Header.Get("X-Account-ID")
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "アカウントIDが必要です")
	}
	return id, nil
}
