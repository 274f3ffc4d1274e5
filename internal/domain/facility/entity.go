package facility

import "time"

// Facility は予約可能な施設エンティティを表す
type Facility struct {
	ID        string
	Name      string
	Category  Category
	Location  string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewFacility は新しい施設を作成する
func NewFacility(id, name string, category Category, location string) *Facility {
	now := time.Now()
	return &Facility{
		ID:        id,
		Name:      name,
		Category:  category,
		Location:  location,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsBookable は施設が予約を受け付けるかを返す
func (f *Facility) IsBookable() bool {
	return f.Active
}

// Deactivate は施設を予約受付停止にする
func (f *Facility) Deactivate() {
	f.Active = false
	f.UpdatedAt = time.Now()
}

// Validate は施設の検証を行う
func (f *Facility) Validate() error {
	if f.ID == "" {
		return ErrFacilityIDRequired
	}
	if f.Name == "" {
		return ErrFacilityNameRequired
	}
	if _, err := f.Category.Rule(); err != nil {
		return err
	}
	return nil
}
