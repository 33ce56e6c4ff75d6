package analytics

import (
	"context"
	"testing"
	"watchwise/business/catalog"
	"watchwise/domain"
)

type stubHistory []domain.WatchedItem

func (s stubHistory) ListWatched(ctx context.Context, userID string) ([]domain.WatchedItem, error) {
	return s, nil
}

type stubRatings []domain.Rating

func (s stubRatings) FindByUser(ctx context.Context, userID string) ([]domain.Rating, error) {
	return s, nil
}

type stubLookup struct{}

func (stubLookup) Lookup(ctx context.Context) (*catalog.Lookup, error) {
	return catalog.NewLookup([]domain.Genre{{ID: 1, Name: "Drama"}, {ID: 2, Name: "Comedy"}}, nil), nil
}

type stubPrefs struct{}

func (stubPrefs) GetPreferences(ctx context.Context, userID string) (domain.UserPreference, error) {
	return domain.UserPreference{UserID: userID, PreferredGenreIDs: []int64{2}}, nil
}

func TestGetUserAnalytics(t *testing.T) {
	history := stubHistory{
		{ContentID: "a", Content: &domain.ContentRecord{GenreIDs: []int64{1, 2}}},
		{ContentID: "b", Content: &domain.ContentRecord{GenreIDs: []int64{1}}},
		{ContentID: "c", Content: &domain.ContentRecord{GenreIDs: []int64{9}}},
	}
	ratings := stubRatings{{RatingValue: 5}, {RatingValue: 4}, {RatingValue: 4}}

	svc := NewAnalyticsService(history, ratings, stubLookup{}, stubPrefs{})
	got, err := svc.GetUserAnalytics(context.Background(), "u1")
	if err != nil {
		t.Fatalf("GetUserAnalytics: %v", err)
	}

	if got.TotalWatched != 3 {
		t.Errorf("TotalWatched = %d", got.TotalWatched)
	}
	if got.AverageRating == nil || *got.AverageRating != 4.33 {
		t.Errorf("AverageRating = %v, want 4.33", got.AverageRating)
	}
	if len(got.GenreDistribution) != 3 || got.GenreDistribution[0].Name != "Drama" || got.GenreDistribution[0].Count != 2 {
		t.Errorf("GenreDistribution = %+v", got.GenreDistribution)
	}
	foundRaw := false
	for _, g := range got.GenreDistribution {
		if g.GenreID == 9 && g.Name == "9" {
			foundRaw = true
		}
	}
	if !foundRaw {
		t.Errorf("unknown genre should keep its id as name, got %+v", got.GenreDistribution)
	}
	if len(got.RatingDistribution) != 5 || got.RatingDistribution[3].Count != 2 || got.RatingDistribution[4].Count != 1 {
		t.Errorf("RatingDistribution = %+v", got.RatingDistribution)
	}
	if len(got.PreferredGenreIDs) != 1 || got.PreferredGenreIDs[0] != 2 {
		t.Errorf("PreferredGenreIDs = %v", got.PreferredGenreIDs)
	}
}

func TestGetUserAnalyticsEmpty(t *testing.T) {
	svc := NewAnalyticsService(stubHistory{}, stubRatings{}, stubLookup{}, stubPrefs{})

	got, err := svc.GetUserAnalytics(context.Background(), "u1")
	if err != nil {
		t.Fatalf("GetUserAnalytics: %v", err)
	}
	if got.AverageRating != nil {
		t.Errorf("AverageRating = %v, want nil", *got.AverageRating)
	}
	if len(got.GenreDistribution) != 0 || len(got.RatingDistribution) != 5 {
		t.Errorf("unexpected distributions %+v", got)
	}
}
