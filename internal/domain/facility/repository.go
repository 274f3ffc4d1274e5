package facility

import "context"

// Repository は施設カタログのリポジトリインターフェース
// エンジンから見てカタログは読み取り専用であり、登録は運用者の操作に限られる
type Repository interface {
	// Create は新しい施設を登録する
	Create(ctx context.Context, facility *Facility) error

	// GetByID はIDから施設を取得する
	GetByID(ctx context.Context, id string) (*Facility, error)

	// List は施設一覧を取得する
	List(ctx context.Context) ([]*Facility, error)
}
