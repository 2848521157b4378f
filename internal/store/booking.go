package store

import (
	"context"
	"fmt"

	"north-trips/internal/database"
	"north-trips/internal/model"

	"github.com/jackc/pgx/v5"
)

const bookingColumns = `b.id, b.user_id, b.tour_id, b.tour_name, b.tour_date, b.participants,
	b.total_price::float8, b.status, b.admin_confirmed, b.seats_held, b.created_at`

// 使用者可能已被刪除，LEFT JOIN 讓訂單仍然可見
const bookingDetailColumns = bookingColumns + `,
	COALESCE(u.name, ''), COALESCE(u.email, ''), u.phone, u.address`

func bookingDest(b *model.Booking) []any {
	return []any{
		&b.ID,
		&b.UserID,
		&b.TourID,
		&b.TourName,
		&b.TourDate,
		&b.Participants,
		&b.TotalPrice,
		&b.Status,
		&b.AdminConfirmed,
		&b.SeatsHeld,
		&b.CreatedAt,
	}
}

func scanBooking(row pgx.Row) (*model.Booking, error) {
	b := &model.Booking{}
	if err := row.Scan(bookingDest(b)...); err != nil {
		return nil, err
	}
	return b, nil
}

func scanBookingDetail(row pgx.Row) (*model.BookingDetail, error) {
	d := &model.BookingDetail{}
	dest := append(bookingDest(&d.Booking), &d.UserName, &d.UserEmail, &d.UserPhone, &d.UserAddress)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return d, nil
}

// CreateBooking 寫入新訂單並回填 id 與 created_at
func CreateBooking(ctx context.Context, db database.Querier, b *model.Booking) (*model.Booking, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO bookings (user_id, tour_id, tour_name, tour_date, participants, total_price,
		                       status, admin_confirmed, seats_held)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, created_at`,
		b.UserID,
		b.TourID,
		b.TourName,
		b.TourDate,
		b.Participants,
		b.TotalPrice,
		b.Status,
		b.AdminConfirmed,
		b.SeatsHeld,
	)
	if err := row.Scan(&b.ID, &b.CreatedAt); err != nil {
		return nil, fmt.Errorf("CreateBooking: %w", err)
	}
	return b, nil
}

func GetBooking(ctx context.Context, db database.Querier, id int) (*model.Booking, error) {
	b, err := scanBooking(db.QueryRow(ctx,
		`SELECT `+bookingColumns+` FROM bookings b WHERE b.id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("GetBooking: %w", err)
	}
	return b, nil
}

func GetBookingForUpdate(ctx context.Context, db database.Querier, id int) (*model.Booking, error) {
	b, err := scanBooking(db.QueryRow(ctx,
		`SELECT `+bookingColumns+` FROM bookings b WHERE b.id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, fmt.Errorf("GetBookingForUpdate: %w", err)
	}
	return b, nil
}

func GetBookingDetail(ctx context.Context, db database.Querier, id int) (*model.BookingDetail, error) {
	d, err := scanBookingDetail(db.QueryRow(ctx,
		`SELECT `+bookingDetailColumns+`
		 FROM bookings b LEFT JOIN users u ON u.id = b.user_id
		 WHERE b.id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("GetBookingDetail: %w", err)
	}
	return d, nil
}

func ListBookingsByUser(ctx context.Context, db database.Querier, userID int) ([]model.Booking, error) {
	rows, err := db.Query(ctx,
		`SELECT `+bookingColumns+` FROM bookings b
		 WHERE b.user_id = $1 ORDER BY b.created_at DESC, b.id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("ListBookingsByUser: %w", err)
	}
	defer rows.Close()

	bookings := []model.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("ListBookingsByUser scan: %w", err)
		}
		bookings = append(bookings, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListBookingsByUser rows: %w", err)
	}
	return bookings, nil
}

// ListBookingDetails 依建立時間新到舊；limit <= 0 代表全部
func ListBookingDetails(ctx context.Context, db database.Querier, limit int) ([]model.BookingDetail, error) {
	sql := `SELECT ` + bookingDetailColumns + `
		 FROM bookings b LEFT JOIN users u ON u.id = b.user_id
		 ORDER BY b.created_at DESC, b.id DESC`
	args := []any{}
	if limit > 0 {
		sql += ` LIMIT $1`
		args = append(args, limit)
	}
	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("ListBookingDetails: %w", err)
	}
	defer rows.Close()

	details := []model.BookingDetail{}
	for rows.Next() {
		d, err := scanBookingDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("ListBookingDetails scan: %w", err)
		}
		details = append(details, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListBookingDetails rows: %w", err)
	}
	return details, nil
}

// UpdateBookingState 寫回狀態、管理員確認旗標與持有座位數
func UpdateBookingState(ctx context.Context, db database.Querier, b *model.Booking) error {
	tag, err := db.Exec(ctx,
		`UPDATE bookings SET status = $1, admin_confirmed = $2, seats_held = $3
		 WHERE id = $4`,
		b.Status,
		b.AdminConfirmed,
		b.SeatsHeld,
		b.ID,
	)
	if err != nil {
		return fmt.Errorf("UpdateBookingState: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("UpdateBookingState: %w", ErrNotFound)
	}
	return nil
}

func DeleteBooking(ctx context.Context, db database.Querier, id int) error {
	tag, err := db.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("DeleteBooking: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("DeleteBooking: %w", ErrNotFound)
	}
	return nil
}

func CountBookings(ctx context.Context, db database.Querier, status model.BookingStatus) (int, error) {
	var n int
	if err := db.QueryRow(ctx,
		`SELECT COUNT(*) FROM bookings WHERE status = $1`, status).Scan(&n); err != nil {
		return 0, fmt.Errorf("CountBookings: %w", err)
	}
	return n, nil
}
