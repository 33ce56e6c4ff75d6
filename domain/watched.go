package domain

import "time"

// CREATE TABLE public.user_watched_content (
//     user_id     UUID NOT NULL,
//     movie_id    UUID NOT NULL REFERENCES movies_tv_shows(id) ON DELETE CASCADE,
//     watched_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
//     PRIMARY KEY (user_id, movie_id)
// );

type WatchedItem struct {
	UserID    string         `gorm:"primaryKey;column:user_id;type:uuid" json:"user_id"`
	ContentID string         `gorm:"primaryKey;column:movie_id;type:uuid" json:"content_id"`
	WatchedAt time.Time      `gorm:"column:watched_at" json:"watched_at"`
	Content   *ContentRecord `gorm:"foreignKey:ContentID;references:ID" json:"content,omitempty"`
}

func (WatchedItem) TableName() string {
	return "user_watched_content"
}
