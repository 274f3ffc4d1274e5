package booking

import "time"

// Status は予約の状態を表す
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

// IsActive は時間帯を占有する状態（承認待ちまたは確定）かを返す
func (s Status) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed
}

// CancelDeadline は予約者本人がキャンセルできる開始前の猶予時間
// 残り時間がこの値以下になるとキャンセルは承認者にしか許されない
const CancelDeadline = 2 * time.Hour

// RentalOptions は機材レンタル（自転車）カテゴリ固有の予約オプションを表す
type RentalOptions struct {
	BikeType   BikeType
	RentalPlan RentalPlan
}

// Booking は予約エンティティを表す
// 料金は作成時に確定され、以後のどの遷移でも再計算されない
type Booking struct {
	ID                 string
	AccountID          string
	FacilityID         string
	Date               string // 施設ローカルの暦日（YYYY-MM-DD）
	Window             Window
	Price              int
	Rental             *RentalOptions
	RequiresSettlement bool
	Status             Status
	SettledAt          *time.Time
	DeclinedAt         *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NewBooking は新しい予約を作成する
// 決済承認が必要なら承認待ち、不要ならそのまま確定で生成される
func NewBooking(accountID, facilityID, date string, window Window, price int, rental *RentalOptions, requiresSettlement bool) *Booking {
	now := time.Now()
	status := StatusConfirmed
	if requiresSettlement {
		status = StatusPending
	}
	return &Booking{
		AccountID:          accountID,
		FacilityID:         facilityID,
		Date:               date,
		Window:             window,
		Price:              price,
		Rental:             rental,
		RequiresSettlement: requiresSettlement,
		Status:             status,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// Validate は予約の検証を行う
func (b *Booking) Validate() error {
	if b.AccountID == "" {
		return ErrAccountIDRequired
	}
	if b.FacilityID == "" {
		return ErrFacilityIDRequired
	}
	if _, err := ParseDate(b.Date); err != nil {
		return err
	}
	if b.Window.End <= b.Window.Start {
		return ErrInvalidWindow
	}
	return nil
}

// StartsAt は予約開始の絶対時刻を返す
func (b *Booking) StartsAt(loc *time.Location) time.Time {
	day, _ := time.ParseInLocation(DateLayout, b.Date, loc)
	return day.Add(time.Duration(b.Window.Start) * time.Minute)
}

// Confirm は承認待ちの予約を確定する
// 残高の引き落としが成功した後に呼ぶこと
func (b *Booking) Confirm(now time.Time) error {
	if b.Status != StatusPending {
		return ErrBookingNotPending
	}
	b.Status = StatusConfirmed
	b.SettledAt = &now
	b.UpdatedAt = now
	return nil
}

// Decline は承認待ちの予約を却下する
// 決済承認を必要としない予約は却下の対象にならない
func (b *Booking) Decline(now time.Time) error {
	if b.Status != StatusPending {
		return ErrBookingNotPending
	}
	if !b.RequiresSettlement {
		return ErrSettlementNotRequired
	}
	b.Status = StatusRejected
	b.DeclinedAt = &now
	b.UpdatedAt = now
	return nil
}

// Cancel は予約をキャンセルする
// 承認者はいつでもキャンセルできる。予約者本人は開始までの残り時間が
// CancelDeadline を超えている場合のみキャンセルできる
func (b *Booking) Cancel(now time.Time, loc *time.Location, byApprover bool) error {
	switch b.Status {
	case StatusCancelled:
		return ErrBookingCancelled
	case StatusRejected:
		return ErrBookingAlreadyRejected
	}
	if !byApprover {
		if b.StartsAt(loc).Sub(now) <= CancelDeadline {
			return ErrCancelDeadlinePassed
		}
	}
	b.Status = StatusCancelled
	b.UpdatedAt = now
	return nil
}
