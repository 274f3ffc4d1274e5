package facility

import "errors"

// Facility ドメインのエラー定義
var (
	ErrFacilityNotFound     = errors.New("施設が見つかりません")
	ErrFacilityInactive     = errors.New("施設は現在予約を受け付けていません")
	ErrUnknownCategory      = errors.New("不明な施設カテゴリです")
	ErrFacilityIDRequired   = errors.New("施設IDは必須です")
	ErrFacilityNameRequired = errors.New("施設名は必須です")
	ErrFacilityExists       = errors.New("同じIDの施設が既に存在します")
)
