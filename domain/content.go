package domain

import (
	"strings"
	"time"

	"github.com/lib/pq"
)

const (
	ContentTypeMovie  = "movie"
	ContentTypeTVShow = "tv_show"
)

// CREATE TABLE public.movies_tv_shows (
//     id              UUID PRIMARY KEY DEFAULT gen_random_uuid(),
//     title           TEXT NOT NULL,
//     release_year    INT,
//     type            TEXT NOT NULL CHECK (type IN ('movie', 'tv_show')),
//     genre_ids       BIGINT[] NOT NULL DEFAULT '{}',
//     language_ids    TEXT[] NOT NULL DEFAULT '{}',
//     poster_url      TEXT,
//     overview        TEXT,
//     created_at      TIMESTAMPTZ DEFAULT NOW()
// );

type ContentRecord struct {
	ID           string         `gorm:"primaryKey;column:id;type:uuid" json:"id"`
	Title        string         `gorm:"column:title;type:text;not null" json:"title"`
	ReleaseYear  *int           `gorm:"column:release_year" json:"release_year"`
	Type         string         `gorm:"column:type;type:text;not null" json:"type"`
	GenreIDs     pq.Int64Array  `gorm:"column:genre_ids;type:bigint[]" json:"genre_ids"`
	LanguageIDs  pq.StringArray `gorm:"column:language_ids;type:text[]" json:"language_ids"`
	PosterURL    *string        `gorm:"column:poster_url;type:text" json:"poster_url"`
	Overview     *string        `gorm:"column:overview;type:text" json:"overview"`
	OttPlatforms []OttPlatform  `gorm:"many2many:movie_ott_platforms;foreignKey:ID;joinForeignKey:MovieID;references:ID;joinReferences:OttPlatformID" json:"ott_platforms"`
	CreatedAt    time.Time      `gorm:"column:created_at" json:"-"`
}

func (ContentRecord) TableName() string {
	return "movies_tv_shows"
}

type OttPlatform struct {
	ID      string  `gorm:"primaryKey;column:id;type:uuid" json:"id"`
	Name    string  `gorm:"column:name;type:text;not null" json:"name"`
	IconURL *string `gorm:"column:icon_url;type:text" json:"icon_url"`
}

func (OttPlatform) TableName() string {
	return "ott_platforms"
}

type Genre struct {
	ID   int64  `gorm:"primaryKey;column:id" json:"id"`
	Name string `gorm:"column:name;type:text;not null" json:"name"`
}

func (Genre) TableName() string {
	return "genres"
}

type Language struct {
	ID   string `gorm:"primaryKey;column:id;type:text" json:"id"`
	Name string `gorm:"column:name;type:text;not null" json:"name"`
}

func (Language) TableName() string {
	return "languages"
}

// ContentFilter narrows a catalog search. Zero values mean "any".
type ContentFilter struct {
	Query      string
	GenreID    int64
	LanguageID string
	Type       string
	Limit      int
}

// NormalizeContentType maps the loose spellings a model produces onto the
// two catalog types. Anything unrecognised is treated as a movie.
func NormalizeContentType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "tv_show", "tv", "tv show", "tv-show", "tvshow", "series", "tv series", "show":
		return ContentTypeTVShow
	default:
		return ContentTypeMovie
	}
}
