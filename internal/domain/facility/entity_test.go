package facility

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFacility(t *testing.T) {
	f := NewFacility("tennis-1", "Tennis Court 1", CategoryTennis, "Tennis Court 1")
	require.NoError(t, f.Validate())
	assert.True(t, f.Active)
	assert.True(t, f.IsBookable())
}

func TestFacility_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Facility)
		wantErr error
	}{
		{"ID未指定", func(f *Facility) { f.ID = "" }, ErrFacilityIDRequired},
		{"名称未指定", func(f *Facility) { f.Name = "" }, ErrFacilityNameRequired},
		{"不明なカテゴリ", func(f *Facility) { f.Category = "swimming" }, ErrUnknownCategory},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFacility("tennis-1", "Tennis Court 1", CategoryTennis, "")
			tt.mutate(f)
			assert.ErrorIs(t, f.Validate(), tt.wantErr)
		})
	}
}

func TestFacility_Deactivate(t *testing.T) {
	f := NewFacility("futsal", "Futsal Court", CategoryFutsal, "")
	f.Deactivate()
	assert.False(t, f.IsBookable())
}
