package account

import "time"

// Role はアカウントの役割を表す
type Role string

const (
	RoleMember   Role = "member"
	RoleApprover Role = "approver"
)

// Account は予約と前払い残高を保持する主体を表す
// 残高の減算は決済レジャーだけが行い、負の値には決してならない
type Account struct {
	ID        string
	Username  string
	Email     string
	Role      Role
	Balance   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewAccount は新しいアカウントを作成する
func NewAccount(username, email string, role Role, balance int) *Account {
	now := time.Now()
	return &Account{
		Username:  username,
		Email:     email,
		Role:      role,
		Balance:   balance,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsApprover は承認者権限を持つかを返す
func (a *Account) IsApprover() bool {
	return a.Role == RoleApprover
}

// CanAfford は指定額を引き落とせる残高があるかを返す
func (a *Account) CanAfford(amount int) bool {
	return a.Balance >= amount
}

// Validate はアカウントの検証を行う
func (a *Account) Validate() error {
	if a.Username == "" {
		return ErrUsernameRequired
	}
	if a.Role != RoleMember && a.Role != RoleApprover {
		return ErrInvalidRole
	}
	if a.Balance < 0 {
		return ErrNegativeBalance
	}
	return nil
}

// LedgerEntry は予約の確定に対応する引き落とし記録を表す
// 1つの予約に対して高々1件しか存在しない
type LedgerEntry struct {
	ID        string
	AccountID string
	BookingID string
	Amount    int
	CreatedAt time.Time
}
