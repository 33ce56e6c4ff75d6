package postgres

import (
	"context"
	"errors"
	"fmt"
	"watchwise/business/recommendation"
	"watchwise/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RecommendationCacheRepository struct {
	DB *gorm.DB
}

var _ recommendation.CacheRepository = (*RecommendationCacheRepository)(nil)

func NewRecommendationCacheRepository(db *gorm.DB) *RecommendationCacheRepository {
	return &RecommendationCacheRepository{DB: db}
}

func (r *RecommendationCacheRepository) Get(ctx context.Context, userID string) (domain.CachedRecommendationSet, bool, error) {
	var row domain.CachedRecommendationSet

	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.CachedRecommendationSet{}, false, nil
	}
	if err != nil {
		return domain.CachedRecommendationSet{}, false, fmt.Errorf("failed to load cached recommendations: %w", err)
	}

	return row, true, nil
}

// Upsert replaces the user's single row. Concurrent writers race and the
// last one wins.
func (r *RecommendationCacheRepository) Upsert(ctx context.Context, set domain.CachedRecommendationSet) error {
	if set.Recommendations == nil {
		set.Recommendations = []domain.Recommendation{}
	}

	err := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"recommendations", "watched_count", "generated_at"}),
		}).
		Create(&set).Error
	if err != nil {
		return fmt.Errorf("failed to upsert cached recommendations: %w", err)
	}

	return nil
}
