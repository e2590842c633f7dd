package api_test

import (
	"context"
	"testing"

	"github.com/goliatone/go-router"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	parks "github.com/goliatone/go-parks"
	"github.com/goliatone/go-parks/api"
)

func newParksController(repo *stubRepo) *api.ParksController {
	return api.NewParksController(repo, parks.DefaultLogger())
}

func TestParksList(t *testing.T) {
	repo := newStubRepo()
	repo.parks.records[1] = &parks.NationalPark{ID: 1, Name: "Yellowstone", State: "WY"}
	repo.parks.records[2] = &parks.NationalPark{ID: 2, Name: "Grand Canyon", State: "AZ"}

	ctrl := newParksController(repo)

	ctx := router.NewMockContext()
	ctx.On("Context").Return(context.Background())

	var payload []*parks.NationalPark
	ctx.On("JSON", router.StatusOK, mock.Anything).Run(func(args mock.Arguments) {
		payload = args.Get(1).([]*parks.NationalPark)
	}).Return(nil)

	err := ctrl.List(ctx)
	require.NoError(t, err)
	require.Len(t, payload, 2)
}

func TestParksShow(t *testing.T) {
	repo := newStubRepo()
	repo.parks.records[7] = &parks.NationalPark{ID: 7, Name: "Yosemite", State: "CA"}

	ctrl := newParksController(repo)

	ctx := router.NewMockContext()
	ctx.ParamsM["id"] = "7"
	ctx.On("Context").Return(context.Background())

	var payload *parks.NationalPark
	ctx.On("JSON", router.StatusOK, mock.Anything).Run(func(args mock.Arguments) {
		payload = args.Get(1).(*parks.NationalPark)
	}).Return(nil)

	err := ctrl.Show(ctx)
	require.NoError(t, err)
	require.Equal(t, "Yosemite", payload.Name)
}

func TestParksShowNotFound(t *testing.T) {
	repo := newStubRepo()
	ctrl := newParksController(repo)

	ctx := router.NewMockContext()
	ctx.ParamsM["id"] = "42"
	ctx.On("Context").Return(context.Background())
	ctx.On("JSON", router.StatusNotFound, mock.Anything).Return(nil)

	err := ctrl.Show(ctx)
	require.NoError(t, err)
	ctx.AssertExpectations(t)
}

func TestParksShowBadID(t *testing.T) {
	repo := newStubRepo()
	ctrl := newParksController(repo)

	ctx := router.NewMockContext()
	ctx.ParamsM["id"] = "not-a-number"
	ctx.On("JSON", router.StatusBadRequest, mock.Anything).Return(nil)

	err := ctrl.Show(ctx)
	require.NoError(t, err)
	ctx.AssertExpectations(t)
}

func TestParksCreate(t *testing.T) {
	repo := newStubRepo()
	ctrl := newParksController(repo)

	ctx := router.NewMockContext()
	ctx.On("Context").Return(context.Background())
	ctx.On("Bind", mock.Anything).Run(func(args mock.Arguments) {
		payload := args.Get(0).(*api.ParkRequest)
		payload.Name = "Yellowstone"
		payload.State = "WY"
	}).Return(nil)

	ctx.On("SetHeader", "Location", "/api/v1/nationalparks/1").Return(ctx)

	var created *parks.NationalPark
	ctx.On("JSON", router.StatusCreated, mock.Anything).Run(func(args mock.Arguments) {
		created = args.Get(1).(*parks.NationalPark)
	}).Return(nil)

	err := ctrl.Create(ctx)
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.Equal(t, "Yellowstone", created.Name)
	require.Len(t, repo.parks.records, 1)
	ctx.AssertExpectations(t)
}

func TestParksCreateDuplicateName(t *testing.T) {
	repo := newStubRepo()
	repo.parks.records[1] = &parks.NationalPark{ID: 1, Name: "Yellowstone", State: "WY"}
	ctrl := newParksController(repo)

	ctx := router.NewMockContext()
	ctx.On("Context").Return(context.Background())
	ctx.On("Bind", mock.Anything).Run(func(args mock.Arguments) {
		payload := args.Get(0).(*api.ParkRequest)
		payload.Name = "Yellowstone"
		payload.State = "WY"
	}).Return(nil)
	ctx.On("JSON", router.StatusConflict, mock.Anything).Return(nil)

	err := ctrl.Create(ctx)
	require.NoError(t, err)
	require.Len(t, repo.parks.records, 1)
	ctx.AssertExpectations(t)
}

func TestParksCreateInvalidPayload(t *testing.T) {
	repo := newStubRepo()
	ctrl := newParksController(repo)

	ctx := router.NewMockContext()
	ctx.On("Bind", mock.Anything).Return(nil)
	ctx.On("JSON", router.StatusBadRequest, mock.Anything).Return(nil)

	err := ctrl.Create(ctx)
	require.NoError(t, err)
	require.Empty(t, repo.parks.records)
	ctx.AssertExpectations(t)
}

func TestParksUpdate(t *testing.T) {
	repo := newStubRepo()
	repo.parks.records[3] = &parks.NationalPark{ID: 3, Name: "Yosemite", State: "CA"}
	ctrl := newParksController(repo)

	ctx := router.NewMockContext()
	ctx.ParamsM["id"] = "3"
	ctx.On("Context").Return(context.Background())
	ctx.On("Bind", mock.Anything).Run(func(args mock.Arguments) {
		payload := args.Get(0).(*api.ParkRequest)
		payload.ID = 3
		payload.Name = "Yosemite Valley"
		payload.State = "CA"
	}).Return(nil)
	ctx.On("NoContent", router.StatusNoContent).Return(nil)

	err := ctrl.Update(ctx)
	require.NoError(t, err)
	require.Equal(t, "Yosemite Valley", repo.parks.records[3].Name)
}

func TestParksUpdateIDMismatch(t *testing.T) {
	repo := newStubRepo()
	repo.parks.records[3] = &parks.NationalPark{ID: 3, Name: "Yosemite", State: "CA"}
	ctrl := newParksController(repo)

	ctx := router.NewMockContext()
	ctx.ParamsM["id"] = "3"
	ctx.On("Bind", mock.Anything).Run(func(args mock.Arguments) {
		payload := args.Get(0).(*api.ParkRequest)
		payload.ID = 9
		payload.Name = "Yosemite"
		payload.State = "CA"
	}).Return(nil)
	ctx.On("JSON", router.StatusBadRequest, mock.Anything).Return(nil)

	err := ctrl.Update(ctx)
	require.NoError(t, err)
	require.Zero(t, repo.parks.updateCalls, "store should not be touched on id mismatch")
	require.Equal(t, "Yosemite", repo.parks.records[3].Name)
}

func TestParksDelete(t *testing.T) {
	repo := newStubRepo()
	repo.parks.records[5] = &parks.NationalPark{ID: 5, Name: "Zion", State: "UT"}
	ctrl := newParksController(repo)

	ctx := router.NewMockContext()
	ctx.ParamsM["id"] = "5"
	ctx.On("Context").Return(context.Background())
	ctx.On("NoContent", router.StatusNoContent).Return(nil)

	err := ctrl.Delete(ctx)
	require.NoError(t, err)
	require.Empty(t, repo.parks.records)
}

func TestParksDeleteMissing(t *testing.T) {
	repo := newStubRepo()
	ctrl := newParksController(repo)

	ctx := router.NewMockContext()
	ctx.ParamsM["id"] = "5"
	ctx.On("Context").Return(context.Background())
	ctx.On("JSON", router.StatusNotFound, mock.Anything).Return(nil)

	err := ctrl.Delete(ctx)
	require.NoError(t, err)
	require.Zero(t, repo.parks.deleteCalls)
	ctx.AssertExpectations(t)
}
