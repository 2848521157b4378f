package service

import (
	"context"
	"fmt"

	"north-trips/internal/database"
	"north-trips/internal/model"

	"github.com/xuri/excelize/v2"
)

const (
	// ExportFilename 後台匯出檔名
	ExportFilename = "bookings.xlsx"
	exportSheet    = "Bookings"
)

var exportHeader = []any{
	"Booking ID", "Customer", "Email", "Tour", "Tour Date", "Participants",
	"Total (PKR)", "Status", "Admin Confirmed", "Booked At",
}

// BookingsWorkbook 每筆訂單一列，第一列為標題
func BookingsWorkbook(bookings []model.BookingDetail) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, fmt.Errorf("BookingsWorkbook: %w", err)
	}
	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return nil, fmt.Errorf("BookingsWorkbook: %w", err)
	}
	for i, b := range bookings {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("BookingsWorkbook: %w", err)
		}
		row := []any{
			b.ID,
			b.UserName,
			b.UserEmail,
			b.TourName,
			b.TourDate.Format(model.DateLayout),
			b.Participants,
			b.TotalPrice,
			string(b.Status),
			b.AdminConfirmed,
			b.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("BookingsWorkbook: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("BookingsWorkbook: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportBookings 匯出全部訂單為 XLSX
func ExportBookings(ctx context.Context, db database.DB, actor *CustomClaims) ([]byte, error) {
	bookings, err := ListAllBookings(ctx, db, actor)
	if err != nil {
		return nil, err
	}
	return BookingsWorkbook(bookings)
}
