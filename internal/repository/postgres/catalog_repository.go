package postgres

import (
	"context"
	"fmt"
	"watchwise/business/catalog"
	"watchwise/domain"

	"gorm.io/gorm"
)

// CatalogRepository serves the small reference tables (genres, languages)
// that names are resolved against.
type CatalogRepository struct {
	DB *gorm.DB
}

var _ catalog.ReferenceRepository = (*CatalogRepository)(nil)

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{
		DB: db,
	}
}

func (r *CatalogRepository) FindAllGenres(ctx context.Context) ([]domain.Genre, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var genres []domain.Genre
	if err := r.DB.WithContext(ctx).Order("name ASC").Find(&genres).Error; err != nil {
		return nil, fmt.Errorf("failed to find genres: %w", err)
	}

	return genres, nil
}

func (r *CatalogRepository) FindAllLanguages(ctx context.Context) ([]domain.Language, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var languages []domain.Language
	if err := r.DB.WithContext(ctx).Order("name ASC").Find(&languages).Error; err != nil {
		return nil, fmt.Errorf("failed to find languages: %w", err)
	}

	return languages, nil
}
