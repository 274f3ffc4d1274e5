package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-facility-reservation/internal/application"
	"github.com/sanosuguru/go-facility-reservation/internal/domain/facility"
)

type FacilityHandler struct {
	service FacilityServiceInterface
}

func NewFacilityHandler(s FacilityServiceInterface) *FacilityHandler {
	return &FacilityHandler{service: s}
}

type CreateFacilityRequest struct {
	ID       string `json:"id" validate:"required" example:"terrain-1"`
	Name     string `json:"name" validate:"required" example:"フットサルコートA"`
	Category string `json:"category" validate:"required" example:"futsal"`
	Location string `json:"location" example:"北ゾーン"`
}

type FacilityResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Location  string    `json:"location,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

func toFacilityResponse(f *facility.Facility) FacilityResponse {
	return FacilityResponse{
		ID: f.ID, Name: f.Name, Category: string(f.Category),
		Location: f.Location, Active: f.Active, CreatedAt: f.CreatedAt,
	}
}

// Create godoc
// @Summary 施設を登録
// @Description 施設をカタログに登録します（承認者のみ）
// @Tags facilities
// @Accept json
// @Produce json
// @Param X-Account-ID header string true "承認者のアカウントID"
// @Param request body CreateFacilityRequest true "施設情報"
// @Success 201 {object} FacilityResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string "同じIDの施設が存在"
// @Router /facilities [post]
func (h *FacilityHandler) Create(c echo.Context) error {
	actorID, err := accountID(c)
	if err != nil {
		return err
	}
	var req CreateFacilityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	f, err := h.service.CreateFacility(c.Request().Context(), application.CreateFacilityInput{
		ID: req.ID, Name: req.Name, Category: req.Category, Location: req.Location,
	}, actorID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, toFacilityResponse(f))
}

// GetByID godoc
// @Summary 施設を取得
// @Tags facilities
// @Produce json
// @Param id path string true "施設ID"
// @Success 200 {object} FacilityResponse
// @Failure 404 {object} map[string]string
// @Router /facilities/{id} [get]
func (h *FacilityHandler) GetByID(c echo.Context) error {
	f, err := h.service.GetFacility(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toFacilityResponse(f))
}

// List godoc
// @Summary 施設一覧を取得
// @Tags facilities
// @Produce json
// @Success 200 {array} FacilityResponse
// @Router /facilities [get]
func (h *FacilityHandler) List(c echo.Context) error {
	facilities, err := h.service.ListFacilities(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}
	resp := make([]FacilityResponse, len(facilities))
	for i, f := range facilities {
		resp[i] = toFacilityResponse(f)
	}
	return c.JSON(http.StatusOK, resp)
}
