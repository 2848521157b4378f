package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"north-trips/internal/database"
	"north-trips/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func bookingVals(b model.Booking) []any {
	return []any{b.ID, b.UserID, b.TourID, b.TourName, b.TourDate, b.Participants,
		b.TotalPrice, b.Status, b.AdminConfirmed, b.SeatsHeld, b.CreatedAt}
}

func detailVals(d model.BookingDetail) []any {
	return append(bookingVals(d.Booking), d.UserName, d.UserEmail, d.UserPhone, d.UserAddress)
}

func TestBookingStore(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)
	sample := model.Booking{ID: 1, UserID: 2, TourID: 3, TourName: "Kalam", TourDate: day, Participants: 4,
		TotalPrice: 152000, Status: model.BookingPending, SeatsHeld: 4, CreatedAt: time.Now().UTC()}
	detail := model.BookingDetail{Booking: sample, UserName: "Ali", UserEmail: "ali@example.com"}

	t.Run("create", func(t *testing.T) {
		db := &database.FakeDB{QueryRowFn: func(_ context.Context, _ string, args ...any) pgx.Row {
			require.Len(t, args, 9)
			require.Equal(t, 4, args[8])
			return &fakeRow{vals: []any{11, time.Now()}}
		}}
		b := sample
		got, err := CreateBooking(ctx, db, &b)
		require.NoError(t, err)
		require.Equal(t, 11, got.ID)
	})

	t.Run("create error", func(t *testing.T) {
		db := &database.FakeDB{QueryRowFn: func(context.Context, string, ...any) pgx.Row {
			return &fakeRow{scanErr: errors.New("insert")}
		}}
		b := sample
		_, err := CreateBooking(ctx, db, &b)
		require.ErrorContains(t, err, "CreateBooking")
	})

	t.Run("get and lock", func(t *testing.T) {
		db := &database.FakeDB{QueryRowFn: func(_ context.Context, sql string, _ ...any) pgx.Row {
			require.Contains(t, sql, "FOR UPDATE")
			return &fakeRow{vals: bookingVals(sample)}
		}}
		got, err := GetBookingForUpdate(ctx, db, 1)
		require.NoError(t, err)
		require.Equal(t, sample, *got)

		db.QueryRowFn = func(context.Context, string, ...any) pgx.Row { return &fakeRow{scanErr: pgx.ErrNoRows} }
		_, err = GetBooking(ctx, db, 1)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("detail", func(t *testing.T) {
		db := &database.FakeDB{QueryRowFn: func(_ context.Context, sql string, _ ...any) pgx.Row {
			require.Contains(t, sql, "LEFT JOIN users")
			return &fakeRow{vals: detailVals(detail)}
		}}
		got, err := GetBookingDetail(ctx, db, 1)
		require.NoError(t, err)
		require.Equal(t, detail, *got)
	})

	t.Run("list by user", func(t *testing.T) {
		db := &database.FakeDB{QueryFn: func(_ context.Context, _ string, args ...any) (pgx.Rows, error) {
			require.Equal(t, []any{2}, args)
			return &fakeRows{data: [][]any{bookingVals(sample)}}, nil
		}}
		got, err := ListBookingsByUser(ctx, db, 2)
		require.NoError(t, err)
		require.Len(t, got, 1)
	})

	t.Run("list details limit", func(t *testing.T) {
		db := &database.FakeDB{QueryFn: func(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
			require.Contains(t, sql, "LIMIT $1")
			require.Equal(t, []any{5}, args)
			return &fakeRows{data: [][]any{detailVals(detail)}}, nil
		}}
		got, err := ListBookingDetails(ctx, db, 5)
		require.NoError(t, err)
		require.Equal(t, []model.BookingDetail{detail}, got)

		db.QueryFn = func(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
			require.NotContains(t, sql, "LIMIT")
			require.Empty(t, args)
			return &fakeRows{}, nil
		}
		got, err = ListBookingDetails(ctx, db, 0)
		require.NoError(t, err)
		require.Empty(t, got)
	})

	t.Run("update state", func(t *testing.T) {
		db := &database.FakeDB{ExecFn: func(_ context.Context, _ string, args ...any) (pgconn.CommandTag, error) {
			require.Equal(t, []any{model.BookingCancelled, false, 0, 1}, args)
			return tag("UPDATE 1"), nil
		}}
		b := sample
		b.Status, b.SeatsHeld = model.BookingCancelled, 0
		require.NoError(t, UpdateBookingState(ctx, db, &b))

		db.ExecFn = func(context.Context, string, ...any) (pgconn.CommandTag, error) { return tag("UPDATE 0"), nil }
		require.ErrorIs(t, UpdateBookingState(ctx, db, &b), ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		db := &database.FakeDB{ExecFn: func(context.Context, string, ...any) (pgconn.CommandTag, error) {
			return tag("DELETE 1"), nil
		}}
		require.NoError(t, DeleteBooking(ctx, db, 1))
		db.ExecFn = func(context.Context, string, ...any) (pgconn.CommandTag, error) { return tag("DELETE 0"), nil }
		require.ErrorIs(t, DeleteBooking(ctx, db, 1), ErrNotFound)
	})

	t.Run("count", func(t *testing.T) {
		db := &database.FakeDB{QueryRowFn: func(_ context.Context, _ string, args ...any) pgx.Row {
			require.Equal(t, []any{model.BookingPending}, args)
			return &fakeRow{vals: []any{2}}
		}}
		n, err := CountBookings(ctx, db, model.BookingPending)
		require.NoError(t, err)
		require.Equal(t, 2, n)
	})
}
