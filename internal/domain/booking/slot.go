package booking

import (
	"github.com/sanosuguru/go-facility-reservation/internal/domain/facility"
)

// BuildSlot はカテゴリ規則に従って予約リクエストの占有時間帯を組み立てる
// 終了時刻は利用者が指定するのではなく、常に開始時刻＋スロット長で決まる
func BuildSlot(rule facility.Rule, start Minute, rental *RentalOptions) (Window, error) {
	if rule.RequiresRentalPlan && rental == nil {
		return Window{}, ErrRentalPlanRequired
	}
	if rule.LastStartMin != facility.NoCutoff && int(start) > rule.LastStartMin {
		return Window{}, ErrAfterLastStart
	}
	return NewWindow(start, rule.SlotMinutes)
}

// FindConflict は既存のアクティブな予約の中から時間帯が交差するものを返す
// 交差がなければ nil を返す。呼び出し側は同一（施設・日付）の予約だけを渡すこと
func FindConflict(existing []*Booking, window Window) *Booking {
	for _, b := range existing {
		if !b.Status.IsActive() {
			continue
		}
		if b.Window.Overlaps(window) {
			return b
		}
	}
	return nil
}
