package application

import (
	"context"
	"time"
)

// EventType は予約イベントの種別を表す
type EventType string

const (
	EventBookingCreated   EventType = "booking.created"
	EventBookingConfirmed EventType = "booking.confirmed"
	EventBookingDeclined  EventType = "booking.declined"
	EventBookingCancelled EventType = "booking.cancelled"
)

// BookingEvent は状態遷移のコミット後に発行される通知イベント
// 下流の通知系が主ストアを参照せずに文面を組み立てられる情報を持つ
type BookingEvent struct {
	Type       EventType `json:"type"`
	BookingID  string    `json:"booking_id"`
	AccountID  string    `json:"account_id"`
	FacilityID string    `json:"facility_id"`
	Date       string    `json:"date"`
	StartTime  string    `json:"start_time"`
	EndTime    string    `json:"end_time"`
	Price      int       `json:"price"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Notifier は通知イベントの発行先インターフェース
// 発行はベストエフォートであり、失敗が予約の状態を巻き戻すことはない
type Notifier interface {
	Publish(ctx context.Context, event BookingEvent) error
}
