package postgres

import (
	"context"
	"fmt"
	"strings"
	"watchwise/business/catalog"
	"watchwise/domain"

	"gorm.io/gorm"
)

type ContentRepository struct {
	DB *gorm.DB
}

var _ catalog.ContentRepository = (*ContentRepository)(nil)

func NewContentRepository(db *gorm.DB) *ContentRepository {
	return &ContentRepository{
		DB: db,
	}
}

func (r *ContentRepository) FindByIDs(ctx context.Context, ids []string) ([]domain.ContentRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if len(ids) == 0 {
		return []domain.ContentRecord{}, nil
	}

	var records []domain.ContentRecord
	err := r.DB.WithContext(ctx).
		Preload("OttPlatforms").
		Where("id IN ?", ids).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find content by ids: %w", err)
	}

	return records, nil
}

// FindByNormalizedTitles matches on lower(btrim(title)). Rows come back in
// insertion order so callers can apply first-match-wins.
func (r *ContentRepository) FindByNormalizedTitles(ctx context.Context, titles []string) ([]domain.ContentRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	normalized := make([]string, 0, len(titles))
	for _, t := range titles {
		if n := strings.ToLower(strings.TrimSpace(t)); n != "" {
			normalized = append(normalized, n)
		}
	}
	if len(normalized) == 0 {
		return []domain.ContentRecord{}, nil
	}

	var records []domain.ContentRecord
	err := r.DB.WithContext(ctx).
		Preload("OttPlatforms").
		Where("lower(btrim(title)) IN ?", normalized).
		Order("created_at ASC, id ASC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find content by titles: %w", err)
	}

	return records, nil
}

func (r *ContentRepository) FindCandidates(ctx context.Context, excludeIDs []string, limit int) ([]domain.ContentRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	query := r.DB.WithContext(ctx).
		Where("title IS NOT NULL AND btrim(title) <> ''")
	if len(excludeIDs) > 0 {
		query = query.Where("id NOT IN ?", excludeIDs)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var records []domain.ContentRecord
	if err := query.Order("created_at ASC, id ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to find candidate content: %w", err)
	}

	return records, nil
}

func (r *ContentRepository) Search(ctx context.Context, filter domain.ContentFilter) ([]domain.ContentRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	query := r.DB.WithContext(ctx).Preload("OttPlatforms")

	if q := strings.TrimSpace(filter.Query); q != "" {
		query = query.Where("title ILIKE ?", "%"+escapeLike(q)+"%")
	}
	if filter.GenreID != 0 {
		query = query.Where("? = ANY(genre_ids)", filter.GenreID)
	}
	if filter.LanguageID != "" {
		query = query.Where("? = ANY(language_ids)", filter.LanguageID)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}

	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var records []domain.ContentRecord
	err := query.Order("release_year DESC NULLS LAST, title ASC").Limit(limit).Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search content: %w", err)
	}

	return records, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
