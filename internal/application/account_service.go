package application

import (
	"context"
	"fmt"

	"github.com/sanosuguru/go-facility-reservation/internal/domain/account"
)

// AccountService はアカウントと残高照会のユースケースを司る
// 残高の加算は外部のチャージ業務の代行であり、減算は決済レジャー
// （BookingService の確定フロー）だけが行う
type AccountService struct {
	accountRepo account.Repository
}

// NewAccountService は新しいAccountServiceを作成する
func NewAccountService(ar account.Repository) *AccountService {
	return &AccountService{accountRepo: ar}
}

// CreateAccountInput はアカウント作成の入力
type CreateAccountInput struct {
	Username string
	Email    string
	Role     string
	Balance  int
}

// CreateAccount は新しいアカウントを作成する
func (s *AccountService) CreateAccount(ctx context.Context, input CreateAccountInput) (*account.Account, error) {
	a := account.NewAccount(input.Username, input.Email, account.Role(input.Role), input.Balance)
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if err := s.accountRepo.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("アカウント作成に失敗しました: %w", err)
	}
	return a, nil
}

// GetAccount はアカウントを取得する
func (s *AccountService) GetAccount(ctx context.Context, id string) (*account.Account, error) {
	return s.accountRepo.GetByID(ctx, id)
}

// TopUp は残高をチャージする（承認者のみ）
func (s *AccountService) TopUp(ctx context.Context, accountID string, amount int, approverID string) (*account.Account, error) {
	approver, err := s.accountRepo.GetByID(ctx, approverID)
	if err != nil {
		return nil, err
	}
	if !approver.IsApprover() {
		return nil, account.ErrApproverRequired
	}
	if err := s.accountRepo.Credit(ctx, accountID, amount); err != nil {
		return nil, err
	}
	return s.accountRepo.GetByID(ctx, accountID)
}

// GetLedgerEntries はアカウントの引き落とし履歴を取得する
func (s *AccountService) GetLedgerEntries(ctx context.Context, accountID string, limit, offset int) ([]*account.LedgerEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.accountRepo.GetLedgerEntries(ctx, accountID, limit, offset)
}
