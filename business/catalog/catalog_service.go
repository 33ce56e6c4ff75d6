package catalog

import (
	"context"
	"fmt"
	"strings"
	"watchwise/domain"
	"watchwise/pkg/logger"

	"golang.org/x/sync/errgroup"
)

type ContentRepository interface {
	FindByIDs(ctx context.Context, ids []string) ([]domain.ContentRecord, error)
	FindByNormalizedTitles(ctx context.Context, titles []string) ([]domain.ContentRecord, error)
	FindCandidates(ctx context.Context, excludeIDs []string, limit int) ([]domain.ContentRecord, error)
	Search(ctx context.Context, filter domain.ContentFilter) ([]domain.ContentRecord, error)
}

type ReferenceRepository interface {
	FindAllGenres(ctx context.Context) ([]domain.Genre, error)
	FindAllLanguages(ctx context.Context) ([]domain.Language, error)
}

type catalogService struct {
	contentRepo   ContentRepository
	referenceRepo ReferenceRepository
}

func NewCatalogService(contentRepo ContentRepository, referenceRepo ReferenceRepository) *catalogService {
	return &catalogService{
		contentRepo:   contentRepo,
		referenceRepo: referenceRepo,
	}
}

func (s *catalogService) GetGenres(ctx context.Context) ([]domain.Genre, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	genres, err := s.referenceRepo.FindAllGenres(ctx)
	if err != nil {
		logger.Error("Failed to find genres", err)
		return nil, err
	}

	return genres, nil
}

func (s *catalogService) GetLanguages(ctx context.Context) ([]domain.Language, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	languages, err := s.referenceRepo.FindAllLanguages(ctx)
	if err != nil {
		logger.Error("Failed to find languages", err)
		return nil, err
	}

	return languages, nil
}

// Lookup loads both reference tables concurrently.
func (s *catalogService) Lookup(ctx context.Context) (*Lookup, error) {
	var (
		genres    []domain.Genre
		languages []domain.Language
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		genres, err = s.referenceRepo.FindAllGenres(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		languages, err = s.referenceRepo.FindAllLanguages(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		logger.Error("Failed to load catalog lookup", err)
		return nil, err
	}

	return NewLookup(genres, languages), nil
}

func (s *catalogService) GetContent(ctx context.Context, id string) (domain.ContentRecord, error) {
	records, err := s.contentRepo.FindByIDs(ctx, []string{id})
	if err != nil {
		logger.Error("Failed to find content", err)
		return domain.ContentRecord{}, err
	}
	if len(records) == 0 {
		return domain.ContentRecord{}, fmt.Errorf("content %s: %w", id, domain.ErrNotFound)
	}

	return records[0], nil
}

func (s *catalogService) SearchContent(ctx context.Context, filter domain.ContentFilter) ([]domain.ContentRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if filter.Type != "" && filter.Type != domain.ContentTypeMovie && filter.Type != domain.ContentTypeTVShow {
		return nil, fmt.Errorf("content type %q: %w", filter.Type, domain.ErrInvalidInput)
	}
	filter.Query = strings.TrimSpace(filter.Query)

	records, err := s.contentRepo.Search(ctx, filter)
	if err != nil {
		logger.Error("Failed to search content", err)
		return nil, err
	}

	return records, nil
}

// Candidates returns catalog rows the model may pick from, excluding content
// the user already watched.
func (s *catalogService) Candidates(ctx context.Context, excludeIDs []string, limit int) ([]domain.ContentRecord, error) {
	records, err := s.contentRepo.FindCandidates(ctx, excludeIDs, limit)
	if err != nil {
		logger.Error("Failed to load recommendation candidates", err)
		return nil, err
	}

	return records, nil
}

func (s *catalogService) MatchTitles(ctx context.Context, titles []string) ([]domain.ContentRecord, error) {
	records, err := s.contentRepo.FindByNormalizedTitles(ctx, titles)
	if err != nil {
		logger.Error("Failed to match suggested titles", err)
		return nil, err
	}

	return records, nil
}
