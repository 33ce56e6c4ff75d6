package postgres

import (
	"context"
	"fmt"
	"time"
	"watchwise/business/rating"
	"watchwise/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RatingRepository struct {
	DB *gorm.DB
}

var _ rating.Repository = (*RatingRepository)(nil)

func NewRatingRepository(db *gorm.DB) *RatingRepository {
	return &RatingRepository{DB: db}
}

// UpsertRating stores the rating and, when review is non-nil, the review in
// one transaction.
func (r *RatingRepository) UpsertRating(ctx context.Context, rt domain.Rating, review *domain.Review) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	now := time.Now().UTC()

	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rt.UpdatedAt = now
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "movie_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"rating_value", "updated_at"}),
		}).Create(&rt).Error
		if err != nil {
			return fmt.Errorf("failed to upsert rating: %w", err)
		}

		if review == nil {
			return nil
		}

		review.UpdatedAt = now
		err = tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "movie_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"review_text", "updated_at"}),
		}).Create(review).Error
		if err != nil {
			return fmt.Errorf("failed to upsert review: %w", err)
		}

		return nil
	})
}

func (r *RatingRepository) FindByUser(ctx context.Context, userID string) ([]domain.Rating, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var ratings []domain.Rating
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&ratings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find ratings: %w", err)
	}

	return ratings, nil
}
