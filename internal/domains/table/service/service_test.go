package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"tavolo/config"
	"tavolo/infras/otel/mocks"
	restaurantMocks "tavolo/internal/domains/restaurant/mocks"
	restaurantModel "tavolo/internal/domains/restaurant/model"
	tableMocks "tavolo/internal/domains/table/mocks"
	"tavolo/internal/domains/table/model"
	"tavolo/internal/domains/table/model/dto"
	"tavolo/internal/domains/table/service"
	"tavolo/shared/cache"
	cacheMocks "tavolo/shared/cache/mocks"
	"tavolo/shared/constant"
	"tavolo/shared/failure"
)

const (
	testRestaurantID = "restaurant-1"
	testTableID      = "table-1"
	testOwnerID      = "owner-1"
)

type tableMockSet struct {
	repo           *tableMocks.MockTable
	restaurantRepo *restaurantMocks.MockRestaurant
	cache          *cacheMocks.MockRedisCache
}

func newTableService(ctrl *gomock.Controller) (service.Table, tableMockSet) {
	m := tableMockSet{
		repo:           tableMocks.NewMockTable(ctrl),
		restaurantRepo: restaurantMocks.NewMockRestaurant(ctrl),
		cache:          cacheMocks.NewMockRedisCache(ctrl),
	}

	// Cache writes and invalidations run on detached goroutines.
	m.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	svc := service.New(m.repo, m.restaurantRepo, cfg, m.cache, mocks.NewOtel())

	return svc, m
}

func ownerCtx() context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, testOwnerID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleOwner)
}

func ownedRestaurant() restaurantModel.Restaurant {
	return restaurantModel.Restaurant{
		ID:      testRestaurantID,
		OwnerID: testOwnerID,
		Status:  restaurantModel.StatusApproved,
		Active:  true,
	}
}

func existingTable() model.Table {
	return model.Table{
		ID:           testTableID,
		RestaurantID: testRestaurantID,
		Number:       "T1",
		Capacity:     4,
		Type:         model.TypeIndoor,
		Active:       true,
	}
}

func TestTableService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	req := dto.CreateTableRequest{
		RestaurantID: testRestaurantID,
		Number:       "T1",
		Capacity:     4,
	}

	t.Run("successful create", func(t *testing.T) {
		svc, m := newTableService(ctrl)

		m.restaurantRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(ownedRestaurant(), nil)
		m.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		m.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, table model.Table) error {
				assert.Equal(t, "T1", table.Number)
				assert.Equal(t, model.TypeIndoor, table.Type)
				assert.True(t, table.Active)

				return nil
			})

		err := svc.Create(ownerCtx(), req)

		assert.NoError(t, err)
	})

	t.Run("duplicate table number", func(t *testing.T) {
		svc, m := newTableService(ctrl)

		m.restaurantRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(ownedRestaurant(), nil)
		m.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		err := svc.Create(ownerCtx(), req)

		assert.Error(t, err)
	})

	t.Run("restaurant does not exist", func(t *testing.T) {
		svc, m := newTableService(ctrl)

		m.restaurantRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(restaurantModel.Restaurant{}, nil)

		err := svc.Create(ownerCtx(), req)

		assert.Error(t, err)
	})

	t.Run("stranger cannot add tables", func(t *testing.T) {
		svc, m := newTableService(ctrl)

		m.restaurantRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(ownedRestaurant(), nil)

		ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "someone-else")
		ctx = context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleOwner)

		err := svc.Create(ctx, req)

		assert.ErrorIs(t, err, failure.ResourceRestrictedError)
	})
}

func TestTableService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("found", func(t *testing.T) {
		svc, m := newTableService(ctrl)

		m.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
		m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existingTable(), nil)

		res, err := svc.Get(context.Background(), testTableID)

		assert.NoError(t, err)
		assert.Equal(t, testTableID, res.ID)
		assert.Equal(t, 4, res.Capacity)
	})

	t.Run("not found", func(t *testing.T) {
		svc, m := newTableService(ctrl)

		m.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
		m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Table{}, nil)

		_, err := svc.Get(context.Background(), "missing")

		assert.Error(t, err)
	})
}

func TestTableService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	capacity := 6

	t.Run("owner updates table", func(t *testing.T) {
		svc, m := newTableService(ctrl)

		m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existingTable(), nil)
		m.restaurantRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(ownedRestaurant(), nil)
		m.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		err := svc.Update(ownerCtx(), dto.UpdateTableRequest{Capacity: &capacity}, testTableID)

		assert.NoError(t, err)
	})

	t.Run("empty update rejected", func(t *testing.T) {
		svc, _ := newTableService(ctrl)

		err := svc.Update(ownerCtx(), dto.UpdateTableRequest{}, testTableID)

		assert.Error(t, err)
	})

	t.Run("stranger cannot update", func(t *testing.T) {
		svc, m := newTableService(ctrl)

		m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existingTable(), nil)
		m.restaurantRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(ownedRestaurant(), nil)

		ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "someone-else")
		ctx = context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleOwner)

		err := svc.Update(ctx, dto.UpdateTableRequest{Capacity: &capacity}, testTableID)

		assert.ErrorIs(t, err, failure.ResourceRestrictedError)
	})
}

func TestTableService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("owner deletes table", func(t *testing.T) {
		svc, m := newTableService(ctrl)

		m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existingTable(), nil)
		m.restaurantRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(ownedRestaurant(), nil)
		m.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		err := svc.Delete(ownerCtx(), testTableID)

		assert.NoError(t, err)
	})

	t.Run("not found", func(t *testing.T) {
		svc, m := newTableService(ctrl)

		m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Table{}, nil)

		err := svc.Delete(ownerCtx(), "missing")

		assert.Error(t, err)
	})
}
