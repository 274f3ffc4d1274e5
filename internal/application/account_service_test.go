package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sanosuguru/go-facility-reservation/internal/domain/account"
)

func TestAccountService_CreateAccount(t *testing.T) {
	t.Run("正常作成", func(t *testing.T) {
		accountRepo := new(MockAccountRepository)
		service := NewAccountService(accountRepo)
		ctx := context.Background()

		accountRepo.On("Create", ctx, mock.AnythingOfType("*account.Account")).Return(nil)

		result, err := service.CreateAccount(ctx, CreateAccountInput{
			Username: "nabil", Email: "nabil@example.com", Role: "member", Balance: 200,
		})

		require.NoError(t, err)
		assert.Equal(t, "nabil", result.Username)
		assert.Equal(t, account.RoleMember, result.Role)
		assert.Equal(t, 200, result.Balance)
		accountRepo.AssertExpectations(t)
	})

	t.Run("不明な役割は弾かれる", func(t *testing.T) {
		accountRepo := new(MockAccountRepository)
		service := NewAccountService(accountRepo)

		result, err := service.CreateAccount(context.Background(), CreateAccountInput{
			Username: "nabil", Role: "superadmin",
		})

		require.Error(t, err)
		assert.Nil(t, result)
		assert.ErrorIs(t, err, account.ErrInvalidRole)
		accountRepo.AssertNotCalled(t, "Create")
	})

	t.Run("負の初期残高は弾かれる", func(t *testing.T) {
		accountRepo := new(MockAccountRepository)
		service := NewAccountService(accountRepo)

		result, err := service.CreateAccount(context.Background(), CreateAccountInput{
			Username: "nabil", Role: "member", Balance: -1,
		})

		require.Error(t, err)
		assert.Nil(t, result)
		assert.ErrorIs(t, err, account.ErrNegativeBalance)
	})
}

func TestAccountService_TopUp(t *testing.T) {
	t.Run("承認者はチャージできる", func(t *testing.T) {
		accountRepo := new(MockAccountRepository)
		service := NewAccountService(accountRepo)
		ctx := context.Background()

		accountRepo.On("GetByID", ctx, "approver-1").Return(testApprover("approver-1"), nil).Once()
		accountRepo.On("Credit", ctx, "acc-1", 100).Return(nil)
		accountRepo.On("GetByID", ctx, "acc-1").Return(testMember("acc-1", 300), nil).Once()

		result, err := service.TopUp(ctx, "acc-1", 100, "approver-1")

		require.NoError(t, err)
		assert.Equal(t, 300, result.Balance)
		accountRepo.AssertExpectations(t)
	})

	t.Run("一般メンバーはチャージできない", func(t *testing.T) {
		accountRepo := new(MockAccountRepository)
		service := NewAccountService(accountRepo)
		ctx := context.Background()

		accountRepo.On("GetByID", ctx, "acc-2").Return(testMember("acc-2", 100), nil)

		result, err := service.TopUp(ctx, "acc-1", 100, "acc-2")

		require.Error(t, err)
		assert.Nil(t, result)
		assert.ErrorIs(t, err, account.ErrApproverRequired)
		accountRepo.AssertNotCalled(t, "Credit")
	})

	t.Run("対象アカウントが存在しない", func(t *testing.T) {
		accountRepo := new(MockAccountRepository)
		service := NewAccountService(accountRepo)
		ctx := context.Background()

		accountRepo.On("GetByID", ctx, "approver-1").Return(testApprover("approver-1"), nil)
		accountRepo.On("Credit", ctx, "ghost", 100).Return(account.ErrAccountNotFound)

		result, err := service.TopUp(ctx, "ghost", 100, "approver-1")

		require.Error(t, err)
		assert.Nil(t, result)
		assert.ErrorIs(t, err, account.ErrAccountNotFound)
	})
}

func TestAccountService_GetLedgerEntries(t *testing.T) {
	accountRepo := new(MockAccountRepository)
	service := NewAccountService(accountRepo)
	ctx := context.Background()

	entries := []*account.LedgerEntry{
		{ID: "led-1", AccountID: "acc-1", BookingID: "book-1", Amount: 30},
	}
	// 不正なページング値はデフォルトに丸められる
	accountRepo.On("GetLedgerEntries", ctx, "acc-1", 20, 0).Return(entries, nil)

	result, err := service.GetLedgerEntries(ctx, "acc-1", -1, -1)

	require.NoError(t, err)
	assert.Len(t, result, 1)
	accountRepo.AssertExpectations(t)
}
