package analytics

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"watchwise/business/catalog"
	"watchwise/domain"
	"watchwise/pkg/logger"

	"golang.org/x/sync/errgroup"
)

type WatchHistory interface {
	ListWatched(ctx context.Context, userID string) ([]domain.WatchedItem, error)
}

type RatingRepository interface {
	FindByUser(ctx context.Context, userID string) ([]domain.Rating, error)
}

type CatalogLookup interface {
	Lookup(ctx context.Context) (*catalog.Lookup, error)
}

type PreferenceReader interface {
	GetPreferences(ctx context.Context, userID string) (domain.UserPreference, error)
}

type analyticsService struct {
	history     WatchHistory
	ratings     RatingRepository
	lookup      CatalogLookup
	preferences PreferenceReader
}

func NewAnalyticsService(history WatchHistory, ratings RatingRepository, lookup CatalogLookup, preferences PreferenceReader) *analyticsService {
	return &analyticsService{
		history:     history,
		ratings:     ratings,
		lookup:      lookup,
		preferences: preferences,
	}
}

func (s *analyticsService) GetUserAnalytics(ctx context.Context, userID string) (domain.UserAnalytics, error) {
	if err := ctx.Err(); err != nil {
		return domain.UserAnalytics{}, fmt.Errorf("context error: %w", err)
	}

	var (
		watched []domain.WatchedItem
		ratings []domain.Rating
		lookup  *catalog.Lookup
		pref    domain.UserPreference
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		watched, err = s.history.ListWatched(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		ratings, err = s.ratings.FindByUser(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		lookup, err = s.lookup.Lookup(gctx)
		return err
	})
	g.Go(func() (err error) {
		pref, err = s.preferences.GetPreferences(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		logger.Error("Failed to load analytics inputs", err, "user_id", userID)
		return domain.UserAnalytics{}, err
	}

	genreIDs := []int64(pref.PreferredGenreIDs)
	if genreIDs == nil {
		genreIDs = []int64{}
	}

	return domain.UserAnalytics{
		TotalWatched:       len(watched),
		AverageRating:      averageRating(ratings),
		GenreDistribution:  genreDistribution(watched, lookup),
		RatingDistribution: ratingDistribution(ratings),
		PreferredGenreIDs:  genreIDs,
	}, nil
}

func averageRating(ratings []domain.Rating) *float64 {
	if len(ratings) == 0 {
		return nil
	}

	sum := 0
	for _, r := range ratings {
		sum += r.RatingValue
	}
	avg := math.Round(float64(sum)/float64(len(ratings))*100) / 100
	return &avg
}

// genreDistribution counts watched content per genre, most watched first.
func genreDistribution(watched []domain.WatchedItem, lookup *catalog.Lookup) []domain.GenreCount {
	counts := map[int64]int{}
	for _, w := range watched {
		if w.Content == nil {
			continue
		}
		for _, id := range w.Content.GenreIDs {
			counts[id]++
		}
	}

	out := make([]domain.GenreCount, 0, len(counts))
	for id, n := range counts {
		name, ok := lookup.GenreName(id)
		if !ok {
			name = strconv.FormatInt(id, 10)
		}
		out = append(out, domain.GenreCount{GenreID: id, Name: name, Count: n})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func ratingDistribution(ratings []domain.Rating) []domain.RatingCount {
	out := make([]domain.RatingCount, 0, domain.MaxRatingValue)
	for v := domain.MinRatingValue; v <= domain.MaxRatingValue; v++ {
		out = append(out, domain.RatingCount{Rating: v})
	}
	for _, r := range ratings {
		if r.RatingValue >= domain.MinRatingValue && r.RatingValue <= domain.MaxRatingValue {
			out[r.RatingValue-domain.MinRatingValue].Count++
		}
	}
	return out
}
