package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Minute
		wantErr bool
	}{
		{"朝の時刻", "07:30", 450, false},
		{"深夜0時", "00:00", 0, false},
		{"照明境界の時刻", "18:00", 1080, false},
		{"1日の最終時刻", "23:59", 1439, false},
		{"時が範囲外", "24:00", 0, true},
		{"分が範囲外", "18:60", 0, true},
		{"形式不正", "abc", 0, true},
		{"空文字", "", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseClock(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidClock)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMinute_String(t *testing.T) {
	assert.Equal(t, "07:30", Minute(450).String())
	assert.Equal(t, "00:00", Minute(0).String())
	assert.Equal(t, "18:00", Minute(1080).String())
}

func TestNewWindow(t *testing.T) {
	tests := []struct {
		name    string
		start   Minute
		slot    int
		want    Window
		wantErr bool
	}{
		{"通常の1時間スロット", 18 * 60, 60, Window{Start: 1080, End: 1140}, false},
		{"日付の末尾で終わるスロット", 23 * 60, 60, Window{Start: 1380, End: 1440}, false},
		{"24:00を超えるスロット", 23*60 + 30, 60, Window{}, true},
		{"スロット長が0", 10 * 60, 0, Window{}, true},
		{"負の開始時刻", -1, 60, Window{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewWindow(tt.start, tt.slot)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidWindow)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWindow_Overlaps(t *testing.T) {
	base := Window{Start: 600, End: 660} // 10:00-11:00
	tests := []struct {
		name  string
		other Window
		want  bool
	}{
		{"完全一致", Window{Start: 600, End: 660}, true},
		{"前半が重なる", Window{Start: 570, End: 630}, true},
		{"後半が重なる", Window{Start: 630, End: 690}, true},
		{"内包する", Window{Start: 570, End: 690}, true},
		{"直前に隣接（境界は重ならない）", Window{Start: 540, End: 600}, false},
		{"直後に隣接（境界は重ならない）", Window{Start: 660, End: 720}, false},
		{"離れている", Window{Start: 720, End: 780}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Overlaps(tt.other))
			assert.Equal(t, tt.want, tt.other.Overlaps(base))
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"正しい日付", "2026-07-15", false},
		{"ゼロ埋めなし", "2026-7-15", true},
		{"存在しない日付", "2026-02-30", true},
		{"形式不正", "15/07/2026", true},
		{"空文字", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDate)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, got)
		})
	}
}
