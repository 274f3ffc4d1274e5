package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-facility-reservation/internal/application"
	"github.com/sanosuguru/go-facility-reservation/internal/domain/account"
)

type AccountHandler struct {
	service AccountServiceInterface
}

func NewAccountHandler(s AccountServiceInterface) *AccountHandler {
	return &AccountHandler{service: s}
}

type CreateAccountRequest struct {
	Username string `json:"username" validate:"required" example:"yto"`
	Email    string `json:"email" validate:"omitempty,email" example:"yto@example.com"`
	Role     string `json:"role" validate:"required,oneof=member approver" example:"member"`
	Balance  int    `json:"balance" validate:"gte=0" example:"500"`
}

type TopUpRequest struct {
	Amount int `json:"amount" validate:"required,gt=0" example:"100"`
}

type AccountResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	Role      string    `json:"role"`
	Balance   int       `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
}

type LedgerEntryResponse struct {
	ID        string    `json:"id"`
	AccountID string    `json:"account_id"`
	BookingID string    `json:"booking_id"`
	Amount    int       `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

func toAccountResponse(a *account.Account) AccountResponse {
	return AccountResponse{
		ID: a.ID, Username: a.Username, Email: a.Email,
		Role: string(a.Role), Balance: a.Balance, CreatedAt: a.CreatedAt,
	}
}

// Create godoc
// @Summary アカウントを作成
// @Tags accounts
// @Accept json
// @Produce json
// @Param request body CreateAccountRequest true "アカウント情報"
// @Success 201 {object} AccountResponse
// @Failure 400 {object} map[string]string
// @Router /accounts [post]
func (h *AccountHandler) Create(c echo.Context) error {
	var req CreateAccountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	a, err := h.service.CreateAccount(c.Request().Context(), application.CreateAccountInput{
		Username: req.Username, Email: req.Email, Role: req.Role, Balance: req.Balance,
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, toAccountResponse(a))
}

// GetByID godoc
// @Summary アカウントを取得
// @Tags accounts
// @Produce json
// @Param id path string true "アカウントID"
// @Success 200 {object} AccountResponse
// @Failure 404 {object} map[string]string
// @Router /accounts/{id} [get]
func (h *AccountHandler) GetByID(c echo.Context) error {
	a, err := h.service.GetAccount(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toAccountResponse(a))
}

// TopUp godoc
// @Summary 残高をチャージ
// @Description 指定アカウントの残高を加算します（承認者のみ）
// @Tags accounts
// @Accept json
// @Produce json
// @Param id path string true "アカウントID"
// @Param X-Account-ID header string true "承認者のアカウントID"
// @Param request body TopUpRequest true "チャージ額"
// @Success 200 {object} AccountResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /accounts/{id}/topup [post]
func (h *AccountHandler) TopUp(c echo.Context) error {
	actorID, err := accountID(c)
	if err != nil {
		return err
	}
	var req TopUpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	a, err := h.service.TopUp(c.Request().Context(), c.Param("id"), req.Amount, actorID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toAccountResponse(a))
}

// GetLedger godoc
// @Summary 引き落とし履歴を取得
// @Description 予約の確定に対応する引き落とし記録の一覧を返します
// @Tags accounts
// @Produce json
// @Param id path string true "アカウントID"
// @Param limit query int false "取得件数" default(20)
// @Param offset query int false "オフセット" default(0)
// @Success 200 {array} LedgerEntryResponse
// @Failure 404 {object} map[string]string
// @Router /accounts/{id}/ledger [get]
func (h *AccountHandler) GetLedger(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	entries, err := h.service.GetLedgerEntries(c.Request().Context(), c.Param("id"), limit, offset)
	if err != nil {
		return toHTTPError(err)
	}
	resp := make([]LedgerEntryResponse, len(entries))
	for i, e := range entries {
		resp[i] = LedgerEntryResponse{
			ID: e.ID, AccountID: e.AccountID, BookingID: e.BookingID,
			Amount: e.Amount, CreatedAt: e.CreatedAt,
		}
	}
	return c.JSON(http.StatusOK, resp)
}
