package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanosuguru/go-facility-reservation/internal/domain/facility"
)

func TestBuildSlot(t *testing.T) {
	tests := []struct {
		name     string
		category facility.Category
		start    Minute
		rental   *RentalOptions
		wantErr  error
	}{
		{"通常のフットサル予約", facility.CategoryFutsal, 18 * 60, nil, nil},
		{"最終受付ちょうどは許可", facility.CategoryFutsal, 20 * 60, nil, nil},
		{"最終受付を過ぎた開始", facility.CategoryFutsal, 20*60 + 1, nil, ErrAfterLastStart},
		{"ハーフフィールドも20:00が最終受付", facility.CategoryHalfField, 21 * 60, nil, ErrAfterLastStart},
		{"テニスは最終受付なし", facility.CategoryTennis, 23 * 60, nil, nil},
		{"自転車の最終受付は17:00", facility.CategoryBicycles, 17*60 + 30, &RentalOptions{BikeType: BikeNormal, RentalPlan: PlanDaily}, ErrAfterLastStart},
		{"自転車の17:00ちょうどは許可", facility.CategoryBicycles, 17 * 60, &RentalOptions{BikeType: BikeNormal, RentalPlan: PlanDaily}, nil},
		{"自転車でレンタルオプションなし", facility.CategoryBicycles, 10 * 60, nil, ErrRentalPlanRequired},
		{"テニスでも24:00は超えられない", facility.CategoryTennis, 23*60 + 30, nil, ErrInvalidWindow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := mustRule(t, tt.category)
			window, err := BuildSlot(rule, tt.start, tt.rental)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.start, window.Start)
			assert.Equal(t, tt.start+Minute(rule.SlotMinutes), window.End)
		})
	}
}

func TestFindConflict(t *testing.T) {
	existing := []*Booking{
		{ID: "b-1", Window: Window{Start: 600, End: 660}, Status: StatusConfirmed},
		{ID: "b-2", Window: Window{Start: 660, End: 720}, Status: StatusPending},
		{ID: "b-3", Window: Window{Start: 720, End: 780}, Status: StatusCancelled},
		{ID: "b-4", Window: Window{Start: 780, End: 840}, Status: StatusRejected},
	}

	t.Run("確定済みの予約と衝突", func(t *testing.T) {
		conflict := FindConflict(existing, Window{Start: 630, End: 690})
		require.NotNil(t, conflict)
		assert.Equal(t, "b-1", conflict.ID)
	})

	t.Run("承認待ちの予約も時間帯を占有する", func(t *testing.T) {
		conflict := FindConflict(existing, Window{Start: 660, End: 720})
		require.NotNil(t, conflict)
		assert.Equal(t, "b-2", conflict.ID)
	})

	t.Run("キャンセル済みの時間帯は再予約できる", func(t *testing.T) {
		assert.Nil(t, FindConflict(existing, Window{Start: 720, End: 780}))
	})

	t.Run("却下済みの時間帯も再予約できる", func(t *testing.T) {
		assert.Nil(t, FindConflict(existing, Window{Start: 780, End: 840}))
	})

	t.Run("空いている時間帯", func(t *testing.T) {
		assert.Nil(t, FindConflict(existing, Window{Start: 900, End: 960}))
	})

	t.Run("既存予約なし", func(t *testing.T) {
		assert.Nil(t, FindConflict(nil, Window{Start: 600, End: 660}))
	})
}
