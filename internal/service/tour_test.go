package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"north-trips/internal/cache"
	"north-trips/internal/database"
	"north-trips/internal/model"
	"north-trips/internal/store"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func validTourInput() TourInput {
	return TourInput{
		Name: "Khaplu", Description: "d", Price: 40000, Region: "Baltistan", Duration: "6 days",
		Difficulty: "Moderate", TourType: model.TourTypeGroup, AvailableSeats: 10, GroupStartDate: "2025-07-05",
	}
}

func TestListToursCacheAside(t *testing.T) {
	t.Cleanup(restoreGlobals)
	ctx := context.Background()
	c := cache.NewMemoryCache()
	calls := 0
	listTours = func(context.Context, database.Querier) ([]model.Tour, error) {
		calls++
		return []model.Tour{{ID: 1, Name: "Skardu", HasImage: true, GroupStartDate: datePtr("2025-06-20")}}, nil
	}

	first, err := ListTours(ctx, &database.FakeDB{}, c)
	require.NoError(t, err)
	second, err := ListTours(ctx, &database.FakeDB{}, c)
	require.NoError(t, err)
	require.Equal(t, 1, calls)
	require.Equal(t, first[0].Name, second[0].Name)
	require.True(t, second[0].HasImage)
	require.Equal(t, "2025-06-20", second[0].StartDate())

	invalidateTours(ctx, c)
	_, err = ListTours(ctx, &database.FakeDB{}, c)
	require.NoError(t, err)
	require.Equal(t, 2, calls)
}

func TestListToursCacheFailures(t *testing.T) {
	t.Cleanup(restoreGlobals)
	ctx := context.Background()
	listFeaturedTours = func(_ context.Context, _ database.Querier, limit int) ([]model.Tour, error) {
		require.Equal(t, FeaturedLimit, limit)
		return []model.Tour{{ID: 2}}, nil
	}
	broken := &cache.FakeCache{
		GetFn: func(context.Context, string) *redis.StringCmd { return redis.NewStringResult("", errors.New("conn")) },
		SetFn: func(context.Context, string, any, time.Duration) *redis.StatusCmd {
			return redis.NewStatusResult("", errors.New("conn"))
		},
	}
	tours, err := ListFeaturedTours(ctx, &database.FakeDB{}, broken)
	require.NoError(t, err)
	require.Len(t, tours, 1)

	// 快取內容壞掉時回到資料庫
	c := cache.NewMemoryCache()
	require.NoError(t, c.Set(ctx, toursFeaturedKey, "not json", 0).Err())
	tours, err = ListFeaturedTours(ctx, &database.FakeDB{}, c)
	require.NoError(t, err)
	require.Len(t, tours, 1)

	listFeaturedTours = func(context.Context, database.Querier, int) ([]model.Tour, error) {
		return nil, errors.New("db")
	}
	_, err = ListFeaturedTours(ctx, &database.FakeDB{}, cache.NewMemoryCache())
	require.Error(t, err)
}

func TestGetTourAndImage(t *testing.T) {
	t.Cleanup(restoreGlobals)
	ctx := context.Background()
	getTour = func(_ context.Context, _ database.Querier, id int) (*model.Tour, error) {
		if id == 1 {
			return &model.Tour{ID: 1}, nil
		}
		return nil, store.ErrNotFound
	}
	getTourImage = func(_ context.Context, _ database.Querier, id int) ([]byte, error) {
		if id == 1 {
			return []byte{1}, nil
		}
		return nil, store.ErrNotFound
	}

	_, err := GetTour(ctx, &database.FakeDB{}, 1)
	require.NoError(t, err)
	_, err = GetTour(ctx, &database.FakeDB{}, 2)
	require.ErrorIs(t, err, ErrTourNotFound)

	img, err := GetTourImage(ctx, &database.FakeDB{}, 1)
	require.NoError(t, err)
	require.Equal(t, []byte{1}, img)
	_, err = GetTourImage(ctx, &database.FakeDB{}, 2)
	require.ErrorIs(t, err, ErrImageNotFound)
}

func TestBuildTour(t *testing.T) {
	t.Cleanup(restoreGlobals)

	tour, err := buildTour(validTourInput())
	require.NoError(t, err)
	require.Equal(t, "2025-07-05", tour.StartDate())
	require.Nil(t, tour.Image)

	in := validTourInput()
	in.TourType = model.TourTypePrivate
	tour, err = buildTour(in)
	require.NoError(t, err)
	require.Nil(t, tour.GroupStartDate)

	cases := map[string]func(*TourInput){
		"missing name":     func(in *TourInput) { in.Name = " " },
		"negative price":   func(in *TourInput) { in.Price = -1 },
		"negative seats":   func(in *TourInput) { in.AvailableSeats = -1 },
		"bad type":         func(in *TourInput) { in.TourType = "cruise" },
		"group needs date": func(in *TourInput) { in.GroupStartDate = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := validTourInput()
			mutate(&in)
			_, err := buildTour(in)
			require.ErrorIs(t, err, ErrInvalidTour)
			require.True(t, IsValidation(err))
		})
	}

	normalizeImage = func([]byte) ([]byte, error) { return nil, ErrInvalidImage }
	in = validTourInput()
	in.Image = []byte("x")
	_, err = buildTour(in)
	require.ErrorIs(t, err, ErrInvalidImage)

	normalizeImage = func([]byte) ([]byte, error) { return []byte("jpeg"), nil }
	tour, err = buildTour(in)
	require.NoError(t, err)
	require.Equal(t, []byte("jpeg"), tour.Image)
}

func TestAdminTourWrites(t *testing.T) {
	t.Cleanup(restoreGlobals)
	ctx := context.Background()
	db := &database.FakeDB{}
	c := cache.NewMemoryCache()
	seed := func() { require.NoError(t, c.Set(ctx, toursAllKey, "[]", 0).Err()) }
	cached := func() bool { return c.Get(ctx, toursAllKey).Err() == nil }

	createTour = func(_ context.Context, _ database.Querier, tour *model.Tour) (*model.Tour, error) {
		tour.ID = 6
		return tour, nil
	}
	updateTour = func(_ context.Context, _ database.Querier, tour *model.Tour) error {
		if tour.ID != 6 {
			return store.ErrNotFound
		}
		require.Nil(t, tour.Image)
		return nil
	}
	getTour = func(_ context.Context, _ database.Querier, id int) (*model.Tour, error) {
		return &model.Tour{ID: id, Name: "Khaplu"}, nil
	}
	deleteTour = func(_ context.Context, _ database.Querier, id int) error {
		if id != 6 {
			return store.ErrNotFound
		}
		return nil
	}

	_, err := CreateTour(ctx, db, c, alice, validTourInput())
	require.ErrorIs(t, err, ErrUnauthorized)

	seed()
	created, err := CreateTour(ctx, db, c, admin, validTourInput())
	require.NoError(t, err)
	require.Equal(t, 6, created.ID)
	require.False(t, cached())

	seed()
	_, err = UpdateTour(ctx, db, c, admin, 6, validTourInput())
	require.NoError(t, err)
	require.False(t, cached())
	_, err = UpdateTour(ctx, db, c, admin, 7, validTourInput())
	require.ErrorIs(t, err, ErrTourNotFound)

	bad := validTourInput()
	bad.Name = ""
	_, err = UpdateTour(ctx, db, c, admin, 6, bad)
	require.ErrorIs(t, err, ErrInvalidTour)

	seed()
	require.NoError(t, DeleteTour(ctx, db, c, admin, 6))
	require.False(t, cached())
	require.ErrorIs(t, DeleteTour(ctx, db, c, admin, 7), ErrTourNotFound)
	require.ErrorIs(t, DeleteTour(ctx, db, c, bob, 6), ErrUnauthorized)
}

func TestFormatCurrency(t *testing.T) {
	require.Equal(t, "PKR 38,000", FormatCurrency(38000))
	require.Equal(t, "PKR 0", FormatCurrency(0))
	require.Equal(t, "1,234,568", FormatAmount(1234567.6))
}
