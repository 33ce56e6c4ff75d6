package postgres

import (
	"context"
	"fmt"
	"time"
	"watchwise/business/watchhistory"
	"watchwise/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WatchedRepository struct {
	DB *gorm.DB
}

var _ watchhistory.WatchedRepository = (*WatchedRepository)(nil)

func NewWatchedRepository(db *gorm.DB) *WatchedRepository {
	return &WatchedRepository{
		DB: db,
	}
}

// Add is idempotent on (user_id, movie_id); a repeat keeps the original
// watched_at so the fingerprint does not move.
func (r *WatchedRepository) Add(ctx context.Context, userID, contentID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("context error: %w", err)
	}

	row := domain.WatchedItem{
		UserID:    userID,
		ContentID: contentID,
		WatchedAt: time.Now().UTC(),
	}

	res := r.DB.WithContext(ctx).
		Omit("Content").
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&row)
	if res.Error != nil {
		return false, fmt.Errorf("failed to add watched content: %w", res.Error)
	}

	return res.RowsAffected > 0, nil
}

func (r *WatchedRepository) Remove(ctx context.Context, userID, contentID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("context error: %w", err)
	}

	res := r.DB.WithContext(ctx).
		Where("user_id = ? AND movie_id = ?", userID, contentID).
		Delete(&domain.WatchedItem{})
	if res.Error != nil {
		return false, fmt.Errorf("failed to remove watched content: %w", res.Error)
	}

	return res.RowsAffected > 0, nil
}

func (r *WatchedRepository) Count(ctx context.Context, userID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("context error: %w", err)
	}

	var count int64
	err := r.DB.WithContext(ctx).
		Model(&domain.WatchedItem{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count watched content: %w", err)
	}

	return int(count), nil
}

// ListRecent returns the newest items first with their content preloaded.
// A non-positive limit returns everything.
func (r *WatchedRepository) ListRecent(ctx context.Context, userID string, limit int) ([]domain.WatchedItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	query := r.DB.WithContext(ctx).
		Preload("Content").
		Preload("Content.OttPlatforms").
		Where("user_id = ?", userID).
		Order("watched_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var items []domain.WatchedItem
	if err := query.Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list watched content: %w", err)
	}

	return items, nil
}

func (r *WatchedRepository) ListContentIDs(ctx context.Context, userID string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var ids []string
	err := r.DB.WithContext(ctx).
		Model(&domain.WatchedItem{}).
		Where("user_id = ?", userID).
		Pluck("movie_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list watched ids: %w", err)
	}

	return ids, nil
}
