package rating

import (
	"context"
	"fmt"
	"strings"
	"watchwise/domain"
	"watchwise/pkg/logger"
)

type Repository interface {
	UpsertRating(ctx context.Context, rating domain.Rating, review *domain.Review) error
	FindByUser(ctx context.Context, userID string) ([]domain.Rating, error)
}

type ContentRepository interface {
	FindByIDs(ctx context.Context, ids []string) ([]domain.ContentRecord, error)
}

type ratingService struct {
	ratingRepo  Repository
	contentRepo ContentRepository
}

func NewRatingService(ratingRepo Repository, contentRepo ContentRepository) *ratingService {
	return &ratingService{
		ratingRepo:  ratingRepo,
		contentRepo: contentRepo,
	}
}

// RateContent upserts the user's rating. A blank review leaves any existing
// review untouched.
func (s *ratingService) RateContent(ctx context.Context, userID, contentID string, value int, review string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if value < domain.MinRatingValue || value > domain.MaxRatingValue {
		return fmt.Errorf("rating must be between %d and %d: %w", domain.MinRatingValue, domain.MaxRatingValue, domain.ErrInvalidInput)
	}

	records, err := s.contentRepo.FindByIDs(ctx, []string{contentID})
	if err != nil {
		logger.Error("Failed to check content", err)
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("content %s: %w", contentID, domain.ErrNotFound)
	}

	var rv *domain.Review
	if text := strings.TrimSpace(review); text != "" {
		rv = &domain.Review{
			UserID:     userID,
			ContentID:  contentID,
			ReviewText: text,
		}
	}

	err = s.ratingRepo.UpsertRating(ctx, domain.Rating{
		UserID:      userID,
		ContentID:   contentID,
		RatingValue: value,
	}, rv)
	if err != nil {
		logger.Error("Failed to save rating", err)
		return err
	}

	return nil
}

// UserRatings maps content id to the user's rating value.
func (s *ratingService) UserRatings(ctx context.Context, userID string) (map[string]int, error) {
	ratings, err := s.ratingRepo.FindByUser(ctx, userID)
	if err != nil {
		logger.Error("Failed to load ratings", err)
		return nil, err
	}

	out := make(map[string]int, len(ratings))
	for _, r := range ratings {
		out[r.ContentID] = r.RatingValue
	}
	return out, nil
}
