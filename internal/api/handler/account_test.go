package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sanosuguru/go-facility-reservation/internal/api/handler"
	"github.com/sanosuguru/go-facility-reservation/internal/application"
	"github.com/sanosuguru/go-facility-reservation/internal/domain/account"
)

// MockAccountService implements handler.AccountServiceInterface
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) CreateAccount(ctx context.Context, input application.CreateAccountInput) (*account.Account, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

func (m *MockAccountService) GetAccount(ctx context.Context, id string) (*account.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

func (m *MockAccountService) TopUp(ctx context.Context, accountID string, amount int, approverID string) (*account.Account, error) {
	args := m.Called(ctx, accountID, amount, approverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

func (m *MockAccountService) GetLedgerEntries(ctx context.Context, accountID string, limit, offset int) ([]*account.LedgerEntry, error) {
	args := m.Called(ctx, accountID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*account.LedgerEntry), args.Error(1)
}

func sampleAccount(balance int) *account.Account {
	return &account.Account{
		ID: "acc-1", Username: "nabil", Email: "nabil@example.com",
		Role: account.RoleMember, Balance: balance,
	}
}

func TestAccountHandler_Create(t *testing.T) {
	t.Run("正常作成", func(t *testing.T) {
		e := NewTestEcho()
		mockService := new(MockAccountService)
		h := handler.NewAccountHandler(mockService)

		mockService.On("CreateAccount", mock.Anything, application.CreateAccountInput{
			Username: "nabil", Email: "nabil@example.com", Role: "member", Balance: 200,
		}).Return(sampleAccount(200), nil)

		body := `{"username":"nabil","email":"nabil@example.com","role":"member","balance":200}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		require.NoError(t, h.Create(c))
		assert.Equal(t, http.StatusCreated, rec.Code)

		var resp handler.AccountResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "nabil", resp.Username)
		assert.Equal(t, 200, resp.Balance)
	})

	t.Run("不明な役割は400", func(t *testing.T) {
		e := NewTestEcho()
		h := handler.NewAccountHandler(new(MockAccountService))

		body := `{"username":"nabil","role":"superadmin"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := h.Create(c)
		assert.Equal(t, http.StatusBadRequest, httpStatus(t, err))
	})
}

func TestAccountHandler_TopUp(t *testing.T) {
	newTopUpContext := func(e *echo.Echo, body, actorID string) (echo.Context, *httptest.ResponseRecorder) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts/acc-1/topup", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		if actorID != "" {
			req.Header.Set("X-Account-ID", actorID)
		}
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("acc-1")
		return c, rec
	}

	t.Run("承認者によるチャージ", func(t *testing.T) {
		e := NewTestEcho()
		mockService := new(MockAccountService)
		h := handler.NewAccountHandler(mockService)

		mockService.On("TopUp", mock.Anything, "acc-1", 100, "approver-1").
			Return(sampleAccount(300), nil)

		c, rec := newTopUpContext(e, `{"amount":100}`, "approver-1")
		require.NoError(t, h.TopUp(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp handler.AccountResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 300, resp.Balance)
	})

	t.Run("承認者権限なしは403", func(t *testing.T) {
		e := NewTestEcho()
		mockService := new(MockAccountService)
		h := handler.NewAccountHandler(mockService)

		mockService.On("TopUp", mock.Anything, "acc-1", 100, "acc-2").
			Return(nil, account.ErrApproverRequired)

		c, _ := newTopUpContext(e, `{"amount":100}`, "acc-2")
		err := h.TopUp(c)
		assert.Equal(t, http.StatusForbidden, httpStatus(t, err))
	})

	t.Run("0以下の金額は400", func(t *testing.T) {
		e := NewTestEcho()
		h := handler.NewAccountHandler(new(MockAccountService))

		c, _ := newTopUpContext(e, `{"amount":-10}`, "approver-1")
		err := h.TopUp(c)
		assert.Equal(t, http.StatusBadRequest, httpStatus(t, err))
	})

	t.Run("ヘッダーなしは401", func(t *testing.T) {
		e := NewTestEcho()
		h := handler.NewAccountHandler(new(MockAccountService))

		c, _ := newTopUpContext(e, `{"amount":100}`, "")
		err := h.TopUp(c)
		assert.Equal(t, http.StatusUnauthorized, httpStatus(t, err))
	})
}

func TestAccountHandler_GetLedger(t *testing.T) {
	e := NewTestEcho()
	mockService := new(MockAccountService)
	h := handler.NewAccountHandler(mockService)

	entries := []*account.LedgerEntry{
		{ID: "led-1", AccountID: "acc-1", BookingID: "book-1", Amount: 30},
	}
	mockService.On("GetLedgerEntries", mock.Anything, "acc-1", 0, 0).Return(entries, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts/acc-1/ledger", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("acc-1")

	require.NoError(t, h.GetLedger(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp []handler.LedgerEntryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, 30, resp[0].Amount)
}

func TestAccountHandler_GetByID_NotFound(t *testing.T) {
	e := NewTestEcho()
	mockService := new(MockAccountService)
	h := handler.NewAccountHandler(mockService)

	mockService.On("GetAccount", mock.Anything, "ghost").Return(nil, account.ErrAccountNotFound)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts/ghost", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("ghost")

	err := h.GetByID(c)
	assert.Equal(t, http.StatusNotFound, httpStatus(t, err))
}
