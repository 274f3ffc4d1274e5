package booking

import (
	"github.com/sanosuguru/go-facility-reservation/internal/domain/facility"
)

// BikeType はレンタル自転車の車種を表す
type BikeType string

const (
	BikeNormal BikeType = "normal"
	BikePro    BikeType = "pro"
)

// RentalPlan はレンタル期間プランを表す
type RentalPlan string

const (
	PlanTwoHours RentalPlan = "2h"
	PlanDaily    RentalPlan = "daily"
	PlanThreeDay RentalPlan = "3d"
	PlanWeekly   RentalPlan = "weekly"
)

// rentalPriceTable は（車種 × プラン）の固定料金表
var rentalPriceTable = map[BikeType]map[RentalPlan]int{
	BikeNormal: {PlanTwoHours: 20, PlanDaily: 50, PlanThreeDay: 130, PlanWeekly: 200},
	BikePro:    {PlanTwoHours: 40, PlanDaily: 80, PlanThreeDay: 170, PlanWeekly: 400},
}

// Quote はカテゴリ規則・時間帯・レンタルオプションから料金を算出する
// 決定的な純関数であり、結果は予約作成時に一度だけ使われて固定される
func Quote(rule facility.Rule, window Window, rental *RentalOptions) (int, error) {
	if rule.RequiresRentalPlan {
		if rental == nil {
			return 0, ErrRentalPlanRequired
		}
		plans, ok := rentalPriceTable[rental.BikeType]
		if !ok {
			return 0, ErrUnknownBikeType
		}
		price, ok := plans[rental.RentalPlan]
		if !ok {
			return 0, ErrUnknownRentalPlan
		}
		return price, nil
	}

	// フィールド・コート系は基本無料。時間帯の一部でも照明時間帯に
	// かかる場合のみ照明料金が発生する（半開区間なので End で判定）
	if rule.LightingFromMin != facility.NoCutoff && int(window.End) > rule.LightingFromMin {
		return rule.LightingFee, nil
	}
	return 0, nil
}
