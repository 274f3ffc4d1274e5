package account

import (
	"context"

	"github.com/sanosuguru/go-facility-reservation/internal/domain/transaction"
)

// Repository はアカウントと決済レジャーのリポジトリインターフェース
type Repository interface {
	// Create は新しいアカウントを作成する
	Create(ctx context.Context, account *Account) error

	// GetByID はIDからアカウントを取得する
	GetByID(ctx context.Context, id string) (*Account, error)

	// Debit は残高の確認と減算をアトミックに行い、予約に紐づく
	// レジャー記録を追加する（トランザクション必須）
	// 残高不足なら ErrInsufficientBalance、同じ予約への二重引き落としなら
	// ErrAlreadySettled を返し、どちらの場合も残高は変化しない
	Debit(ctx context.Context, tx transaction.Tx, accountID, bookingID string, amount int) error

	// Credit は外部のチャージ操作として残高を加算する
	Credit(ctx context.Context, accountID string, amount int) error

	// GetLedgerEntries はアカウントの引き落とし履歴を取得する
	GetLedgerEntries(ctx context.Context, accountID string, limit, offset int) ([]*LedgerEntry, error)
}
