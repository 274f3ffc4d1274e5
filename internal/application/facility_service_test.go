package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sanosuguru/go-facility-reservation/internal/domain/account"
	"github.com/sanosuguru/go-facility-reservation/internal/domain/facility"
)

func TestFacilityService_CreateFacility(t *testing.T) {
	t.Run("承認者は施設を登録できる", func(t *testing.T) {
		facilityRepo := new(MockFacilityRepository)
		accountRepo := new(MockAccountRepository)
		service := NewFacilityService(facilityRepo, accountRepo)
		ctx := context.Background()

		accountRepo.On("GetByID", ctx, "approver-1").Return(testApprover("approver-1"), nil)
		facilityRepo.On("Create", ctx, mock.AnythingOfType("*facility.Facility")).Return(nil)

		result, err := service.CreateFacility(ctx, CreateFacilityInput{
			ID: "padel", Name: "Padel Court", Category: "padel", Location: "Padel Court",
		}, "approver-1")

		require.NoError(t, err)
		assert.Equal(t, "padel", result.ID)
		assert.Equal(t, facility.CategoryPadel, result.Category)
		assert.True(t, result.Active)
		facilityRepo.AssertExpectations(t)
	})

	t.Run("一般メンバーは登録できない", func(t *testing.T) {
		facilityRepo := new(MockFacilityRepository)
		accountRepo := new(MockAccountRepository)
		service := NewFacilityService(facilityRepo, accountRepo)
		ctx := context.Background()

		accountRepo.On("GetByID", ctx, "acc-1").Return(testMember("acc-1", 100), nil)

		result, err := service.CreateFacility(ctx, CreateFacilityInput{
			ID: "padel", Name: "Padel Court", Category: "padel",
		}, "acc-1")

		require.Error(t, err)
		assert.Nil(t, result)
		assert.ErrorIs(t, err, account.ErrApproverRequired)
		facilityRepo.AssertNotCalled(t, "Create")
	})

	t.Run("不明なカテゴリは弾かれる", func(t *testing.T) {
		facilityRepo := new(MockFacilityRepository)
		accountRepo := new(MockAccountRepository)
		service := NewFacilityService(facilityRepo, accountRepo)
		ctx := context.Background()

		accountRepo.On("GetByID", ctx, "approver-1").Return(testApprover("approver-1"), nil)

		result, err := service.CreateFacility(ctx, CreateFacilityInput{
			ID: "pool", Name: "Swimming Pool", Category: "swimming",
		}, "approver-1")

		require.Error(t, err)
		assert.Nil(t, result)
		assert.ErrorIs(t, err, facility.ErrUnknownCategory)
	})

	t.Run("ID重複は登録エラーになる", func(t *testing.T) {
		facilityRepo := new(MockFacilityRepository)
		accountRepo := new(MockAccountRepository)
		service := NewFacilityService(facilityRepo, accountRepo)
		ctx := context.Background()

		accountRepo.On("GetByID", ctx, "approver-1").Return(testApprover("approver-1"), nil)
		facilityRepo.On("Create", ctx, mock.AnythingOfType("*facility.Facility")).Return(facility.ErrFacilityExists)

		result, err := service.CreateFacility(ctx, CreateFacilityInput{
			ID: "futsal", Name: "Futsal Court", Category: "futsal",
		}, "approver-1")

		require.Error(t, err)
		assert.Nil(t, result)
		assert.ErrorIs(t, err, facility.ErrFacilityExists)
	})
}

func TestFacilityService_GetFacility(t *testing.T) {
	facilityRepo := new(MockFacilityRepository)
	accountRepo := new(MockAccountRepository)
	service := NewFacilityService(facilityRepo, accountRepo)
	ctx := context.Background()

	facilityRepo.On("GetByID", ctx, "futsal").Return(testFacility("futsal", facility.CategoryFutsal), nil)

	result, err := service.GetFacility(ctx, "futsal")

	require.NoError(t, err)
	assert.Equal(t, "futsal", result.ID)
}

func TestFacilityService_ListFacilities(t *testing.T) {
	facilityRepo := new(MockFacilityRepository)
	accountRepo := new(MockAccountRepository)
	service := NewFacilityService(facilityRepo, accountRepo)
	ctx := context.Background()

	expected := []*facility.Facility{
		testFacility("futsal", facility.CategoryFutsal),
		testFacility("tennis-1", facility.CategoryTennis),
	}
	facilityRepo.On("List", ctx).Return(expected, nil)

	result, err := service.ListFacilities(ctx)

	require.NoError(t, err)
	assert.Len(t, result, 2)
}
