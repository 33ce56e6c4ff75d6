package domain

import "time"

const (
	MinRatingValue = 1
	MaxRatingValue = 5
)

type Rating struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      string    `gorm:"column:user_id;type:uuid;not null" json:"user_id"`
	ContentID   string    `gorm:"column:movie_id;type:uuid;not null" json:"content_id"`
	RatingValue int       `gorm:"column:rating_value;not null" json:"rating_value"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Rating) TableName() string {
	return "ratings"
}

type Review struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     string    `gorm:"column:user_id;type:uuid;not null" json:"user_id"`
	ContentID  string    `gorm:"column:movie_id;type:uuid;not null" json:"content_id"`
	ReviewText string    `gorm:"column:review_text;type:text;not null" json:"review_text"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Review) TableName() string {
	return "reviews"
}
