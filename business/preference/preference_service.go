package preference

import (
	"context"
	"fmt"
	"watchwise/business/catalog"
	"watchwise/domain"
	"watchwise/pkg/logger"
)

type Repository interface {
	FindByUserID(ctx context.Context, userID string) (domain.UserPreference, bool, error)
	Upsert(ctx context.Context, pref domain.UserPreference) error
}

type CatalogLookup interface {
	Lookup(ctx context.Context) (*catalog.Lookup, error)
}

type preferenceService struct {
	repo   Repository
	lookup CatalogLookup
}

func NewPreferenceService(repo Repository, lookup CatalogLookup) *preferenceService {
	return &preferenceService{
		repo:   repo,
		lookup: lookup,
	}
}

// GetPreferences returns empty preferences for users who never saved any.
func (s *preferenceService) GetPreferences(ctx context.Context, userID string) (domain.UserPreference, error) {
	if err := ctx.Err(); err != nil {
		return domain.UserPreference{}, fmt.Errorf("context error: %w", err)
	}

	pref, found, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		logger.Error("Failed to load preferences", err)
		return domain.UserPreference{}, err
	}
	if !found {
		return domain.UserPreference{
			UserID:               userID,
			PreferredGenreIDs:    []int64{},
			PreferredLanguageIDs: []string{},
		}, nil
	}

	return pref, nil
}

// UpdatePreferences replaces both lists. Ids that are not in the reference
// tables are rejected and duplicates are collapsed.
func (s *preferenceService) UpdatePreferences(ctx context.Context, userID string, genreIDs []int64, languageIDs []string) (domain.UserPreference, error) {
	if err := ctx.Err(); err != nil {
		return domain.UserPreference{}, fmt.Errorf("context error: %w", err)
	}

	lookup, err := s.lookup.Lookup(ctx)
	if err != nil {
		return domain.UserPreference{}, err
	}

	genres := make([]int64, 0, len(genreIDs))
	seenGenre := make(map[int64]bool, len(genreIDs))
	for _, id := range genreIDs {
		if seenGenre[id] {
			continue
		}
		if _, ok := lookup.GenreName(id); !ok {
			return domain.UserPreference{}, fmt.Errorf("unknown genre %d: %w", id, domain.ErrInvalidInput)
		}
		seenGenre[id] = true
		genres = append(genres, id)
	}

	languages := make([]string, 0, len(languageIDs))
	seenLang := make(map[string]bool, len(languageIDs))
	for _, id := range languageIDs {
		if seenLang[id] {
			continue
		}
		if len(lookup.LanguageNames([]string{id})) == 0 {
			return domain.UserPreference{}, fmt.Errorf("unknown language %q: %w", id, domain.ErrInvalidInput)
		}
		seenLang[id] = true
		languages = append(languages, id)
	}

	pref := domain.UserPreference{
		UserID:               userID,
		PreferredGenreIDs:    genres,
		PreferredLanguageIDs: languages,
		OnboardingComplete:   true,
	}
	if err := s.repo.Upsert(ctx, pref); err != nil {
		logger.Error("Failed to save preferences", err)
		return domain.UserPreference{}, err
	}

	return pref, nil
}
