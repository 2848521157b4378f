// File: internal/model/tour.go
package model

import "time"

type TourType string

const (
	TourTypePrivate TourType = "private"
	TourTypeGroup   TourType = "group"
)

// DateLayout 旅遊日期格式 (YYYY-MM-DD)
const DateLayout = "2006-01-02"

type Tour struct {
	ID             int        `db:"id" json:"id"`
	Name           string     `db:"name" json:"name"`
	Description    string     `db:"description" json:"description"`
	Price          float64    `db:"price" json:"price"`
	Image          []byte     `db:"image" json:"-"`
	HasImage       bool       `db:"has_image" json:"has_image"`
	Region         string     `db:"region" json:"region"`
	Duration       string     `db:"duration" json:"duration"`
	Difficulty     string     `db:"difficulty" json:"difficulty"`
	Featured       bool       `db:"featured" json:"featured"`
	TourType       TourType   `db:"tour_type" json:"tour_type"`
	AvailableSeats int        `db:"available_seats" json:"available_seats"`
	GroupStartDate *time.Time `db:"group_start_date" json:"group_start_date,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
}

func (t Tour) IsGroup() bool {
	return t.TourType == TourTypeGroup
}

// ManagesSeats 回報此團體行程是否有座位上限；available_seats 為 0 代表不控管
func (t Tour) ManagesSeats() bool {
	return t.IsGroup() && t.AvailableSeats > 0
}

// StartDate 回傳 group_start_date 的字串格式，未設定時為空字串
func (t Tour) StartDate() string {
	if t.GroupStartDate == nil {
		return ""
	}
	return t.GroupStartDate.Format(DateLayout)
}
