package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"
	"watchwise/business/preference"
	"watchwise/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PreferenceRepository struct {
	DB *gorm.DB
}

var _ preference.Repository = (*PreferenceRepository)(nil)

func NewPreferenceRepository(db *gorm.DB) *PreferenceRepository {
	return &PreferenceRepository{DB: db}
}

func (r *PreferenceRepository) FindByUserID(ctx context.Context, userID string) (domain.UserPreference, bool, error) {
	var row domain.UserPreference
	err := r.DB.WithContext(ctx).First(&row, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.UserPreference{}, false, nil
	}
	if err != nil {
		return domain.UserPreference{}, false, fmt.Errorf("failed to find preferences: %w", err)
	}
	return row, true, nil
}

func (r *PreferenceRepository) Upsert(ctx context.Context, pref domain.UserPreference) error {
	pref.UpdatedAt = time.Now().UTC()
	if pref.PreferredGenreIDs == nil {
		pref.PreferredGenreIDs = []int64{}
	}
	if pref.PreferredLanguageIDs == nil {
		pref.PreferredLanguageIDs = []string{}
	}

	err := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"preferred_genre_ids",
				"preferred_language_ids",
				"onboarding_complete",
				"updated_at",
			}),
		}).
		Create(&pref).Error
	if err != nil {
		return fmt.Errorf("failed to upsert preferences: %w", err)
	}
	return nil
}
