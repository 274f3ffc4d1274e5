package booking

import "errors"

// Booking ドメインのエラー定義
var (
	ErrBookingNotFound        = errors.New("予約が見つかりません")
	ErrBookingNotPending      = errors.New("予約は承認待ちではありません")
	ErrBookingAlreadyRejected = errors.New("却下済みの予約は操作できません")
	ErrBookingCancelled       = errors.New("予約は既にキャンセルされています")
	ErrSettlementNotRequired  = errors.New("この予約は決済承認を必要としません")
	ErrCancelDeadlinePassed   = errors.New("開始2時間前を過ぎた予約はキャンセルできません")
	ErrNotBookingOwner        = errors.New("この予約を操作する権限がありません")
	ErrSlotConflict           = errors.New("指定の時間帯は既に予約されています")
	ErrAfterLastStart         = errors.New("最終受付時刻を過ぎた開始時刻です")
	ErrInvalidClock           = errors.New("時刻は HH:MM 形式で指定してください")
	ErrInvalidDate            = errors.New("日付は YYYY-MM-DD 形式で指定してください")
	ErrInvalidWindow          = errors.New("不正な時間帯です")
	ErrAccountIDRequired      = errors.New("アカウントIDは必須です")
	ErrFacilityIDRequired     = errors.New("施設IDは必須です")
	ErrRentalPlanRequired     = errors.New("自転車の予約には車種とレンタルプランが必須です")
	ErrUnknownBikeType        = errors.New("不明な車種です")
	ErrUnknownRentalPlan      = errors.New("不明なレンタルプランです")
)
