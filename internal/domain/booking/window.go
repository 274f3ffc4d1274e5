package booking

import (
	"fmt"
	"time"
)

// Minute は深夜0時からの分数で壁時計時刻を表す
type Minute int

// ParseClock は "HH:MM" 形式の文字列を Minute に変換する
func ParseClock(s string) (Minute, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%02d:%02d", &h, &m); err != nil {
		return 0, ErrInvalidClock
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, ErrInvalidClock
	}
	return Minute(h*60 + m), nil
}

// String は "HH:MM" 形式の文字列を返す
func (m Minute) String() string {
	return fmt.Sprintf("%02d:%02d", int(m)/60, int(m)%60)
}

// Window は半開区間 [Start, End) の時間帯を表す
type Window struct {
	Start Minute
	End   Minute
}

// NewWindow は開始時刻とスロット長から時間帯を作成する
// 24:00 を超える時間帯は作成できない
func NewWindow(start Minute, slotMinutes int) (Window, error) {
	if slotMinutes <= 0 {
		return Window{}, ErrInvalidWindow
	}
	end := start + Minute(slotMinutes)
	if start < 0 || end > 24*60 {
		return Window{}, ErrInvalidWindow
	}
	return Window{Start: start, End: end}, nil
}

// Overlaps は半開区間同士が交差するかを返す
func (w Window) Overlaps(other Window) bool {
	return w.Start < other.End && w.End > other.Start
}

// Duration は時間帯の長さを返す
func (w Window) Duration() time.Duration {
	return time.Duration(w.End-w.Start) * time.Minute
}

// String は "HH:MM-HH:MM" 形式の文字列を返す
func (w Window) String() string {
	return w.Start.String() + "-" + w.End.String()
}

// DateLayout は予約日の書式（施設ローカルの暦日）
const DateLayout = "2006-01-02"

// ParseDate は "YYYY-MM-DD" 形式の予約日を検証する
func ParseDate(s string) (string, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil || t.Format(DateLayout) != s {
		return "", ErrInvalidDate
	}
	return s, nil
}
