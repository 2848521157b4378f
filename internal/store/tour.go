package store

import (
	"context"
	"fmt"

	"north-trips/internal/database"
	"north-trips/internal/model"

	"github.com/jackc/pgx/v5"
)

// 列表查詢不取 image 內容，只回報是否存在
const tourColumns = `id, name, description, price::float8, image IS NOT NULL, region, duration,
	difficulty, featured, tour_type, available_seats, group_start_date, created_at`

func scanTour(row pgx.Row) (*model.Tour, error) {
	t := &model.Tour{}
	if err := row.Scan(
		&t.ID,
		&t.Name,
		&t.Description,
		&t.Price,
		&t.HasImage,
		&t.Region,
		&t.Duration,
		&t.Difficulty,
		&t.Featured,
		&t.TourType,
		&t.AvailableSeats,
		&t.GroupStartDate,
		&t.CreatedAt,
	); err != nil {
		return nil, err
	}
	return t, nil
}

func queryTours(ctx context.Context, db database.Querier, name, sql string, args ...any) ([]model.Tour, error) {
	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	defer rows.Close()

	tours := []model.Tour{}
	for rows.Next() {
		t, err := scanTour(rows)
		if err != nil {
			return nil, fmt.Errorf("%s scan: %w", name, err)
		}
		tours = append(tours, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s rows: %w", name, err)
	}
	return tours, nil
}

func ListTours(ctx context.Context, db database.Querier) ([]model.Tour, error) {
	return queryTours(ctx, db, "ListTours",
		`SELECT `+tourColumns+` FROM tours ORDER BY created_at DESC, id DESC`)
}

func ListFeaturedTours(ctx context.Context, db database.Querier, limit int) ([]model.Tour, error) {
	return queryTours(ctx, db, "ListFeaturedTours",
		`SELECT `+tourColumns+` FROM tours WHERE featured
		 ORDER BY created_at DESC, id DESC LIMIT $1`, limit)
}

func GetTour(ctx context.Context, db database.Querier, id int) (*model.Tour, error) {
	t, err := scanTour(db.QueryRow(ctx,
		`SELECT `+tourColumns+` FROM tours WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("GetTour: %w", err)
	}
	return t, nil
}

// GetTourForUpdate 鎖定行程列直到交易結束，同一行程的座位異動因此序列化
func GetTourForUpdate(ctx context.Context, db database.Querier, id int) (*model.Tour, error) {
	t, err := scanTour(db.QueryRow(ctx,
		`SELECT `+tourColumns+` FROM tours WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, fmt.Errorf("GetTourForUpdate: %w", err)
	}
	return t, nil
}

// GetTourImage 行程不存在或沒有圖片都回傳 ErrNotFound
func GetTourImage(ctx context.Context, db database.Querier, id int) ([]byte, error) {
	var img []byte
	if err := db.QueryRow(ctx,
		`SELECT image FROM tours WHERE id = $1`, id).Scan(&img); err != nil {
		return nil, fmt.Errorf("GetTourImage: %w", err)
	}
	if len(img) == 0 {
		return nil, fmt.Errorf("GetTourImage: %w", ErrNotFound)
	}
	return img, nil
}

func CreateTour(ctx context.Context, db database.Querier, t *model.Tour) (*model.Tour, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO tours (name, description, price, image, region, duration, difficulty,
		                    featured, tour_type, available_seats, group_start_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING id, created_at`,
		t.Name,
		t.Description,
		t.Price,
		t.Image,
		t.Region,
		t.Duration,
		t.Difficulty,
		t.Featured,
		t.TourType,
		t.AvailableSeats,
		t.GroupStartDate,
	)
	if err := row.Scan(&t.ID, &t.CreatedAt); err != nil {
		return nil, fmt.Errorf("CreateTour: %w", err)
	}
	t.HasImage = len(t.Image) > 0
	return t, nil
}

// UpdateTour t.Image 為 nil 時保留原本的圖片
func UpdateTour(ctx context.Context, db database.Querier, t *model.Tour) error {
	tag, err := db.Exec(ctx,
		`UPDATE tours SET name = $1, description = $2, price = $3,
		        image = COALESCE($4, image), region = $5, duration = $6, difficulty = $7,
		        featured = $8, tour_type = $9, available_seats = $10, group_start_date = $11
		 WHERE id = $12`,
		t.Name,
		t.Description,
		t.Price,
		t.Image,
		t.Region,
		t.Duration,
		t.Difficulty,
		t.Featured,
		t.TourType,
		t.AvailableSeats,
		t.GroupStartDate,
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("UpdateTour: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("UpdateTour: %w", ErrNotFound)
	}
	return nil
}

// DeleteTour 不會連動刪除既有訂單
func DeleteTour(ctx context.Context, db database.Querier, id int) error {
	tag, err := db.Exec(ctx, `DELETE FROM tours WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("DeleteTour: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("DeleteTour: %w", ErrNotFound)
	}
	return nil
}

// ReserveSeats 條件式扣除座位，剩餘不足時回傳 false 且不做任何修改
func ReserveSeats(ctx context.Context, db database.Querier, tourID, n int) (bool, error) {
	tag, err := db.Exec(ctx,
		`UPDATE tours SET available_seats = available_seats - $1
		 WHERE id = $2 AND available_seats >= $1`,
		n,
		tourID,
	)
	if err != nil {
		return false, fmt.Errorf("ReserveSeats: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// ReleaseSeats 行程已被刪除時影響 0 筆，視為成功
func ReleaseSeats(ctx context.Context, db database.Querier, tourID, n int) error {
	if _, err := db.Exec(ctx,
		`UPDATE tours SET available_seats = available_seats + $1 WHERE id = $2`,
		n,
		tourID,
	); err != nil {
		return fmt.Errorf("ReleaseSeats: %w", err)
	}
	return nil
}

func CountTours(ctx context.Context, db database.Querier) (int, error) {
	var n int
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM tours`).Scan(&n); err != nil {
		return 0, fmt.Errorf("CountTours: %w", err)
	}
	return n, nil
}
