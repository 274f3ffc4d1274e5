package booking

import (
	"context"

	"github.com/sanosuguru/go-facility-reservation/internal/domain/transaction"
)

// Repository は予約リポジトリのインターフェース
// 予約は物理削除されず、状態の変更だけが永続化される
type Repository interface {
	// Create は新しい予約を作成する（トランザクション必須）
	Create(ctx context.Context, tx transaction.Tx, booking *Booking) error

	// GetByID はIDから予約を取得する
	GetByID(ctx context.Context, id string) (*Booking, error)

	// GetByAccountID はアカウントの予約一覧を取得する
	GetByAccountID(ctx context.Context, accountID string, limit, offset int) ([]*Booking, error)

	// GetActiveByFacilityDate は同一（施設・日付）のアクティブな予約を
	// 開始時刻の昇順で取得する
	GetActiveByFacilityDate(ctx context.Context, facilityID, date string) ([]*Booking, error)

	// GetPending は承認待ちの予約一覧を取得する
	GetPending(ctx context.Context) ([]*Booking, error)

	// Update は予約の状態を更新する（トランザクション必須）
	Update(ctx context.Context, tx transaction.Tx, booking *Booking) error
}
