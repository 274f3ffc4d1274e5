package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-facility-reservation/internal/application"
	"github.com/sanosuguru/go-facility-reservation/internal/domain/booking"
)

type BookingHandler struct {
	service BookingServiceInterface
}

func NewBookingHandler(s BookingServiceInterface) *BookingHandler {
	return &BookingHandler{service: s}
}

type CreateBookingRequest struct {
	FacilityID string `json:"facility_id" validate:"required" example:"terrain-1"`
	Date       string `json:"date" validate:"required" example:"2026-07-15"`
	StartTime  string `json:"start_time" validate:"required" example:"18:00"`
	BikeType   string `json:"bike_type,omitempty" example:"normal"`
	RentalPlan string `json:"rental_plan,omitempty" example:"daily"`
}

type BookingResponse struct {
	ID                 string     `json:"id"`
	AccountID          string     `json:"account_id"`
	FacilityID         string     `json:"facility_id"`
	Date               string     `json:"date"`
	StartTime          string     `json:"start_time"`
	EndTime            string     `json:"end_time"`
	Price              int        `json:"price"`
	Status             string     `json:"status"`
	BikeType           string     `json:"bike_type,omitempty"`
	RentalPlan         string     `json:"rental_plan,omitempty"`
	RequiresSettlement bool       `json:"requires_settlement"`
	SettledAt          *time.Time `json:"settled_at,omitempty"`
	DeclinedAt         *time.Time `json:"declined_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

func toBookingResponse(b *booking.Booking) BookingResponse {
	resp := BookingResponse{
		ID: b.ID, AccountID: b.AccountID, FacilityID: b.FacilityID,
		Date: b.Date, StartTime: b.Window.Start.String(), EndTime: b.Window.End.String(),
		Price: b.Price, Status: string(b.Status),
		RequiresSettlement: b.RequiresSettlement,
		SettledAt:          b.SettledAt, DeclinedAt: b.DeclinedAt, CreatedAt: b.CreatedAt,
	}
	if b.Rental != nil {
		resp.BikeType = string(b.Rental.BikeType)
		resp.RentalPlan = string(b.Rental.RentalPlan)
	}
	return resp
}

// Create godoc
// @Summary 予約を作成
// @Description 時間帯を検証し料金を確定して予約を作成します
// @Tags bookings
// @Accept json
// @Produce json
// @Param X-Account-ID header string true "アカウントID"
// @Param request body CreateBookingRequest true "予約情報"
// @Success 201 {object} BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 409 {object} map[string]string "時間帯が既に予約済み"
// @Router /bookings [post]
func (h *BookingHandler) Create(c echo.Context) error {
	actorID, err := accountID(c)
	if err != nil {
		return err
	}
	var req CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	b, err := h.service.CreateBooking(c.Request().Context(), application.CreateBookingInput{
		AccountID: actorID, FacilityID: req.FacilityID,
		Date: req.Date, StartTime: req.StartTime,
		BikeType: req.BikeType, RentalPlan: req.RentalPlan,
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, toBookingResponse(b))
}

// GetByID godoc
// @Summary 予約を取得
// @Description 指定IDの予約を取得します
// @Tags bookings
// @Produce json
// @Param id path string true "予約ID"
// @Success 200 {object} BookingResponse
// @Failure 404 {object} map[string]string
// @Router /bookings/{id} [get]
func (h *BookingHandler) GetByID(c echo.Context) error {
	b, err := h.service.GetBooking(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toBookingResponse(b))
}

// GetMyBookings godoc
// @Summary 自分の予約一覧を取得
// @Tags bookings
// @Produce json
// @Param X-Account-ID header string true "アカウントID"
// @Param limit query int false "取得件数" default(20)
// @Param offset query int false "オフセット" default(0)
// @Success 200 {array} BookingResponse
// @Failure 401 {object} map[string]string
// @Router /bookings [get]
func (h *BookingHandler) GetMyBookings(c echo.Context) error {
	actorID, err := accountID(c)
	if err != nil {
		return err
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	bookings, err := h.service.GetAccountBookings(c.Request().Context(), actorID, limit, offset)
	if err != nil {
		return toHTTPError(err)
	}
	resp := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		resp[i] = toBookingResponse(b)
	}
	return c.JSON(http.StatusOK, resp)
}

// GetPending godoc
// @Summary 承認待ちの予約一覧を取得
// @Description 決済承認を待っている予約の一覧を返します（承認者のみ）
// @Tags bookings
// @Produce json
// @Param X-Account-ID header string true "承認者のアカウントID"
// @Success 200 {array} BookingResponse
// @Failure 403 {object} map[string]string
// @Router /bookings/pending [get]
func (h *BookingHandler) GetPending(c echo.Context) error {
	actorID, err := accountID(c)
	if err != nil {
		return err
	}
	bookings, err := h.service.GetPendingBookings(c.Request().Context(), actorID)
	if err != nil {
		return toHTTPError(err)
	}
	resp := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		resp[i] = toBookingResponse(b)
	}
	return c.JSON(http.StatusOK, resp)
}

// Confirm godoc
// @Summary 予約を確定
// @Description 残高を引き落として承認待ちの予約を確定します（承認者のみ）
// @Tags bookings
// @Produce json
// @Param id path string true "予約ID"
// @Param X-Account-ID header string true "承認者のアカウントID"
// @Success 200 {object} BookingResponse
// @Failure 402 {object} map[string]string "残高不足"
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings/{id}/confirm [post]
func (h *BookingHandler) Confirm(c echo.Context) error {
	actorID, err := accountID(c)
	if err != nil {
		return err
	}
	b, err := h.service.ConfirmBooking(c.Request().Context(), c.Param("id"), actorID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toBookingResponse(b))
}

// Decline godoc
// @Summary 予約を却下
// @Description 承認待ちの予約を引き落としなしで却下します（承認者のみ）
// @Tags bookings
// @Produce json
// @Param id path string true "予約ID"
// @Param X-Account-ID header string true "承認者のアカウントID"
// @Success 200 {object} BookingResponse
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings/{id}/decline [post]
func (h *BookingHandler) Decline(c echo.Context) error {
	actorID, err := accountID(c)
	if err != nil {
		return err
	}
	b, err := h.service.DeclineBooking(c.Request().Context(), c.Param("id"), actorID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toBookingResponse(b))
}

// Cancel godoc
// @Summary 予約をキャンセル
// @Description 予約者本人は開始2時間前まで、承認者はいつでもキャンセルできます
// @Tags bookings
// @Produce json
// @Param id path string true "予約ID"
// @Param X-Account-ID header string true "アカウントID"
// @Success 200 {object} BookingResponse
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string "キャンセル期限超過"
// @Router /bookings/{id}/cancel [post]
func (h *BookingHandler) Cancel(c echo.Context) error {
	actorID, err := accountID(c)
	if err != nil {
		return err
	}
	b, err := h.service.CancelBooking(c.Request().Context(), c.Param("id"), actorID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toBookingResponse(b))
}

// Availability godoc
// @Summary 施設の空き状況を取得
// @Description 指定日の占有時間帯を開始時刻順に返します
// @Tags facilities
// @Produce json
// @Param id path string true "施設ID"
// @Param date query string true "日付（YYYY-MM-DD）"
// @Success 200 {array} application.AvailabilitySlot
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /facilities/{id}/availability [get]
func (h *BookingHandler) Availability(c echo.Context) error {
	slots, err := h.service.ListAvailability(c.Request().Context(), c.Param("id"), c.QueryParam("date"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, slots)
}
