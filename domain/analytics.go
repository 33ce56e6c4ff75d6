package domain

type GenreCount struct {
	GenreID int64  `json:"genre_id"`
	Name    string `json:"name"`
	Count   int    `json:"count"`
}

type RatingCount struct {
	Rating int `json:"rating"`
	Count  int `json:"count"`
}

type UserAnalytics struct {
	TotalWatched       int           `json:"total_watched"`
	AverageRating      *float64      `json:"average_rating"`
	GenreDistribution  []GenreCount  `json:"genre_distribution"`
	RatingDistribution []RatingCount `json:"rating_distribution"`
	PreferredGenreIDs  []int64       `json:"preferred_genre_ids"`
}
