package domain

import (
	"time"

	"gorm.io/datatypes"
)

// ModelSuggestion is one entry of the model's free-text reply. It is never
// persisted and must be reconciled against the catalog before it is shown.
type ModelSuggestion struct {
	Title    string `json:"title" validate:"required"`
	Type     string `json:"type"`
	Overview string `json:"overview"`

	// accepted when the model drifts to the older prompt shape
	Year   *int   `json:"year,omitempty"`
	Reason string `json:"reason,omitempty"`
}

type OttPlatformRef struct {
	Name    string  `json:"name"`
	IconURL *string `json:"icon_url"`
}

type Recommendation struct {
	ID           string           `json:"id"`
	Title        string           `json:"title"`
	Overview     string           `json:"overview"`
	ReleaseYear  *int             `json:"release_year"`
	Type         string           `json:"type"`
	PosterURL    *string          `json:"poster_url"`
	LanguageIDs  []string         `json:"language_ids"`
	GenreIDs     []int64          `json:"genre_ids"`
	OttPlatforms []OttPlatformRef `json:"ott_platforms"`
}

// CREATE TABLE public.user_recommendations (
//     user_id          UUID PRIMARY KEY,
//     recommendations  JSONB NOT NULL DEFAULT '[]',
//     watched_count    INT NOT NULL,
//     generated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
// );

type CachedRecommendationSet struct {
	UserID          string                              `gorm:"primaryKey;column:user_id;type:uuid" json:"user_id"`
	Recommendations datatypes.JSONSlice[Recommendation] `gorm:"column:recommendations;type:jsonb" json:"recommendations"`
	Fingerprint     int                                 `gorm:"column:watched_count;not null" json:"fingerprint"`
	GeneratedAt     time.Time                           `gorm:"column:generated_at" json:"generated_at"`
}

func (CachedRecommendationSet) TableName() string {
	return "user_recommendations"
}

// RecommendationResult is what the pipeline hands back to callers. When
// regeneration fails, Recommendations holds the last cached list (if any)
// and Stale is set.
type RecommendationResult struct {
	Recommendations []Recommendation `json:"recommendations"`
	Fingerprint     int              `json:"fingerprint"`
	GeneratedAt     time.Time        `json:"generated_at"`
	CacheHit        bool             `json:"cache_hit"`
	Stale           bool             `json:"stale,omitempty"`
}
