package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"north-trips/internal/cache"
	"north-trips/internal/database"
	"north-trips/internal/metrics"
	"north-trips/internal/model"
	"north-trips/internal/store"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	toursAllKey      = "tours:all"
	toursFeaturedKey = "tours:featured"
	tourCacheTTL     = 5 * time.Minute
	// FeaturedLimit 首頁精選行程數量
	FeaturedLimit = 6
)

var (
	jsonMarshal       = json.Marshal
	jsonUnmarshal     = json.Unmarshal
	listTours         = store.ListTours
	listFeaturedTours = store.ListFeaturedTours
	getTour           = store.GetTour
	getTourImage      = store.GetTourImage
	createTour        = store.CreateTour
	updateTour        = store.UpdateTour
	deleteTour        = store.DeleteTour
	normalizeImage    = NormalizeImage
)

// TourInput 後台新增/編輯行程表單；Image 為 nil 表示不更換圖片
type TourInput struct {
	Name           string
	Description    string
	Price          float64
	Region         string
	Duration       string
	Difficulty     string
	Featured       bool
	TourType       model.TourType
	AvailableSeats int
	GroupStartDate string
	Image          []byte
}

// cachedTours cache-aside：先查 Redis，miss 時查 DB 再回填；Redis 故障不影響讀取
func cachedTours(ctx context.Context, c cache.Cache, key string, load func() ([]model.Tour, error)) ([]model.Tour, error) {
	if c != nil {
		raw, err := c.Get(ctx, key).Bytes()
		switch {
		case err == nil:
			var tours []model.Tour
			if err := jsonUnmarshal(raw, &tours); err == nil {
				metrics.TourCache.WithLabelValues("hit").Inc()
				return tours, nil
			}
		case !errors.Is(err, redis.Nil):
			logrus.WithError(err).WithField("key", key).Warn("tour cache get failed")
		}
		metrics.TourCache.WithLabelValues("miss").Inc()
	}

	tours, err := load()
	if err != nil {
		return nil, err
	}

	if c != nil {
		if data, err := jsonMarshal(tours); err == nil {
			if err := c.Set(ctx, key, data, tourCacheTTL).Err(); err != nil {
				logrus.WithError(err).WithField("key", key).Warn("tour cache set failed")
			}
		}
	}
	return tours, nil
}

// invalidateTours 行程或座位異動後清除列表快取
func invalidateTours(ctx context.Context, c cache.Cache) {
	if c == nil {
		return
	}
	if err := c.Del(ctx, toursAllKey, toursFeaturedKey).Err(); err != nil {
		logrus.WithError(err).Warn("tour cache invalidate failed")
	}
}

func ListTours(ctx context.Context, db database.DB, c cache.Cache) ([]model.Tour, error) {
	tours, err := cachedTours(ctx, c, toursAllKey, func() ([]model.Tour, error) {
		return listTours(ctx, db)
	})
	if err != nil {
		return nil, fmt.Errorf("ListTours: %w", err)
	}
	return tours, nil
}

func ListFeaturedTours(ctx context.Context, db database.DB, c cache.Cache) ([]model.Tour, error) {
	tours, err := cachedTours(ctx, c, toursFeaturedKey, func() ([]model.Tour, error) {
		return listFeaturedTours(ctx, db, FeaturedLimit)
	})
	if err != nil {
		return nil, fmt.Errorf("ListFeaturedTours: %w", err)
	}
	return tours, nil
}

func GetTour(ctx context.Context, db database.DB, id int) (*model.Tour, error) {
	t, err := getTour(ctx, db, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrTourNotFound
		}
		return nil, fmt.Errorf("GetTour: %w", err)
	}
	return t, nil
}

func GetTourImage(ctx context.Context, db database.DB, id int) ([]byte, error) {
	img, err := getTourImage(ctx, db, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrImageNotFound
		}
		return nil, fmt.Errorf("GetTourImage: %w", err)
	}
	return img, nil
}

func invalidTour(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidTour, msg)
}

// buildTour 驗證表單並轉成 model.Tour
func buildTour(in TourInput) (*model.Tour, error) {
	t := &model.Tour{
		Name:           strings.TrimSpace(in.Name),
		Description:    strings.TrimSpace(in.Description),
		Price:          in.Price,
		Region:         strings.TrimSpace(in.Region),
		Duration:       strings.TrimSpace(in.Duration),
		Difficulty:     strings.TrimSpace(in.Difficulty),
		Featured:       in.Featured,
		TourType:       in.TourType,
		AvailableSeats: in.AvailableSeats,
	}
	if t.TourType == "" {
		t.TourType = model.TourTypePrivate
	}
	required := []struct{ field, value string }{
		{"name", t.Name},
		{"description", t.Description},
		{"region", t.Region},
		{"duration", t.Duration},
		{"difficulty", t.Difficulty},
	}
	for _, r := range required {
		if r.value == "" {
			return nil, invalidTour(r.field + " is required")
		}
	}
	if t.Price < 0 {
		return nil, invalidTour("price must not be negative")
	}
	if t.AvailableSeats < 0 {
		return nil, invalidTour("available seats must not be negative")
	}
	switch t.TourType {
	case model.TourTypePrivate:
	case model.TourTypeGroup:
		d, err := time.Parse(model.DateLayout, strings.TrimSpace(in.GroupStartDate))
		if err != nil {
			return nil, invalidTour("group tours need a start date (YYYY-MM-DD)")
		}
		t.GroupStartDate = &d
	default:
		return nil, invalidTour("tour type must be private or group")
	}

	if len(in.Image) > 0 {
		img, err := normalizeImage(in.Image)
		if err != nil {
			return nil, err
		}
		t.Image = img
	}
	return t, nil
}

func CreateTour(ctx context.Context, db database.DB, c cache.Cache, actor *CustomClaims, in TourInput) (*model.Tour, error) {
	if err := RequireAdmin(actor); err != nil {
		return nil, err
	}
	t, err := buildTour(in)
	if err != nil {
		return nil, err
	}
	created, err := createTour(ctx, db, t)
	if err != nil {
		return nil, fmt.Errorf("CreateTour: %w", err)
	}
	invalidateTours(ctx, c)
	return created, nil
}

// UpdateTour 未上傳新圖片時保留原圖
func UpdateTour(ctx context.Context, db database.DB, c cache.Cache, actor *CustomClaims, id int, in TourInput) (*model.Tour, error) {
	if err := RequireAdmin(actor); err != nil {
		return nil, err
	}
	t, err := buildTour(in)
	if err != nil {
		return nil, err
	}
	t.ID = id
	if err := updateTour(ctx, db, t); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrTourNotFound
		}
		return nil, fmt.Errorf("UpdateTour: %w", err)
	}
	invalidateTours(ctx, c)

	updated, err := getTour(ctx, db, id)
	if err != nil {
		return nil, fmt.Errorf("UpdateTour: %w", err)
	}
	return updated, nil
}

// DeleteTour 既有訂單保留 (tour_name 為快照)
func DeleteTour(ctx context.Context, db database.DB, c cache.Cache, actor *CustomClaims, id int) error {
	if err := RequireAdmin(actor); err != nil {
		return err
	}
	if err := deleteTour(ctx, db, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrTourNotFound
		}
		return fmt.Errorf("DeleteTour: %w", err)
	}
	invalidateTours(ctx, c)
	return nil
}
