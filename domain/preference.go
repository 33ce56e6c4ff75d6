package domain

import (
	"time"

	"github.com/lib/pq"
)

type UserPreference struct {
	UserID               string         `gorm:"primaryKey;column:user_id;type:uuid" json:"user_id"`
	PreferredGenreIDs    pq.Int64Array  `gorm:"column:preferred_genre_ids;type:bigint[]" json:"preferred_genre_ids"`
	PreferredLanguageIDs pq.StringArray `gorm:"column:preferred_language_ids;type:text[]" json:"preferred_language_ids"`
	OnboardingComplete   bool           `gorm:"column:onboarding_complete;default:false" json:"onboarding_complete"`
	UpdatedAt            time.Time      `gorm:"column:updated_at" json:"updated_at"`
}

func (UserPreference) TableName() string {
	return "user_profiles"
}
