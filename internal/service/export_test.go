package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"north-trips/internal/database"
	"north-trips/internal/model"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestBookingsWorkbook(t *testing.T) {
	d := sampleDetail()
	second := sampleDetail()
	second.ID = 43
	second.Status = model.BookingConfirmed
	second.CreatedAt = time.Date(2025, 5, 2, 9, 0, 0, 0, time.UTC)

	data, err := BookingsWorkbook([]model.BookingDetail{d, second})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Bookings")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, "Booking ID", rows[0][0])
	require.Equal(t, "Booked At", rows[0][9])
	require.Equal(t, "42", rows[1][0])
	require.Equal(t, "Alice <Admin>", rows[1][1])
	require.Equal(t, "Kalam Valley Expedition", rows[1][3])
	require.Equal(t, "2025-06-20", rows[1][4])
	require.Equal(t, "4", rows[1][5])
	require.Equal(t, "pending", rows[1][7])
	require.Equal(t, "confirmed", rows[2][7])
	require.Equal(t, "2025-05-02 09:00:00", rows[2][9])
}

func TestBookingsWorkbookEmpty(t *testing.T) {
	data, err := BookingsWorkbook(nil)
	require.NoError(t, err)
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Bookings")
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestExportBookings(t *testing.T) {
	t.Cleanup(restoreGlobals)
	listBookingDetails = func(_ context.Context, _ database.Querier, limit int) ([]model.BookingDetail, error) {
		require.Equal(t, 0, limit)
		return []model.BookingDetail{sampleDetail()}, nil
	}
	data, err := ExportBookings(context.Background(), &database.FakeDB{}, admin)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	_, err = ExportBookings(context.Background(), &database.FakeDB{}, alice)
	require.ErrorIs(t, err, ErrUnauthorized)
}
