package application

import (
	"context"
	"fmt"

	"github.com/sanosuguru/go-facility-reservation/internal/domain/account"
	"github.com/sanosuguru/go-facility-reservation/internal/domain/facility"
)

// FacilityService は施設カタログのユースケースを司る
type FacilityService struct {
	facilityRepo facility.Repository
	accountRepo  account.Repository
}

// NewFacilityService は新しいFacilityServiceを作成する
func NewFacilityService(fr facility.Repository, ar account.Repository) *FacilityService {
	return &FacilityService{facilityRepo: fr, accountRepo: ar}
}

// CreateFacilityInput は施設登録の入力
type CreateFacilityInput struct {
	ID       string
	Name     string
	Category string
	Location string
}

// CreateFacility は施設をカタログに登録する（承認者のみ）
func (s *FacilityService) CreateFacility(ctx context.Context, input CreateFacilityInput, approverID string) (*facility.Facility, error) {
	approver, err := s.accountRepo.GetByID(ctx, approverID)
	if err != nil {
		return nil, err
	}
	if !approver.IsApprover() {
		return nil, account.ErrApproverRequired
	}

	f := facility.NewFacility(input.ID, input.Name, facility.Category(input.Category), input.Location)
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if err := s.facilityRepo.Create(ctx, f); err != nil {
		return nil, fmt.Errorf("施設登録に失敗しました: %w", err)
	}
	return f, nil
}

// GetFacility は施設を取得する
func (s *FacilityService) GetFacility(ctx context.Context, id string) (*facility.Facility, error) {
	return s.facilityRepo.GetByID(ctx, id)
}

// ListFacilities は施設一覧を取得する
func (s *FacilityService) ListFacilities(ctx context.Context) ([]*facility.Facility, error) {
	return s.facilityRepo.List(ctx)
}
