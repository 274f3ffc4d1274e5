package facility

// Category は施設のカテゴリを表す
// カテゴリごとにスロット規則と料金規則が決まる
type Category string

const (
	CategoryFutsal     Category = "futsal"
	CategoryHalfField  Category = "half_field"
	CategoryTennis     Category = "tennis"
	CategoryBasketball Category = "basketball"
	CategoryPadel      Category = "padel"
	CategoryBicycles   Category = "bicycles"
)

// NoCutoff は最終開始時刻の制限がないことを表す
const NoCutoff = -1

// Rule はカテゴリごとの予約規則を表す
// 時刻はすべて深夜0時からの分数で保持する
type Rule struct {
	SlotMinutes        int  // 1予約が占有するスロット長（分）
	LastStartMin       int  // 最終開始時刻（分）。NoCutoff なら制限なし
	LightingFromMin    int  // 照明料金が発生する時刻（分）。NoCutoff なら発生しない
	LightingFee        int  // 照明料金（通貨単位）
	RequiresRentalPlan bool // レンタルプランの指定が必須かどうか
}

// ruleTable はカテゴリごとの固定規則表
// 金額・時刻は運用ルールそのもの（futsal 30 / half_field 40、照明 18:00、
// フィールド系の最終開始 20:00、自転車の最終開始 17:00）
var ruleTable = map[Category]Rule{
	CategoryFutsal:     {SlotMinutes: 60, LastStartMin: 20 * 60, LightingFromMin: 18 * 60, LightingFee: 30},
	CategoryHalfField:  {SlotMinutes: 60, LastStartMin: 20 * 60, LightingFromMin: 18 * 60, LightingFee: 40},
	CategoryTennis:     {SlotMinutes: 60, LastStartMin: NoCutoff, LightingFromMin: 18 * 60, LightingFee: 30},
	CategoryBasketball: {SlotMinutes: 60, LastStartMin: NoCutoff, LightingFromMin: 18 * 60, LightingFee: 30},
	CategoryPadel:      {SlotMinutes: 60, LastStartMin: NoCutoff, LightingFromMin: 18 * 60, LightingFee: 30},
	CategoryBicycles:   {SlotMinutes: 60, LastStartMin: 17 * 60, LightingFromMin: NoCutoff, RequiresRentalPlan: true},
}

// Rule はカテゴリの予約規則を返す
func (c Category) Rule() (Rule, error) {
	rule, ok := ruleTable[c]
	if !ok {
		return Rule{}, ErrUnknownCategory
	}
	return rule, nil
}

// Valid はカテゴリが規則表に存在するかを返す
func (c Category) Valid() bool {
	_, ok := ruleTable[c]
	return ok
}
