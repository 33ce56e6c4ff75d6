package preference

import (
	"context"
	"errors"
	"testing"
	"watchwise/business/catalog"
	"watchwise/domain"
)

type memoryPrefs struct {
	rows map[string]domain.UserPreference
}

func (m *memoryPrefs) FindByUserID(ctx context.Context, userID string) (domain.UserPreference, bool, error) {
	p, ok := m.rows[userID]
	return p, ok, nil
}

func (m *memoryPrefs) Upsert(ctx context.Context, pref domain.UserPreference) error {
	m.rows[pref.UserID] = pref
	return nil
}

type staticLookup struct{}

func (staticLookup) Lookup(ctx context.Context) (*catalog.Lookup, error) {
	return catalog.NewLookup(
		[]domain.Genre{{ID: 1, Name: "Comedy"}, {ID: 2, Name: "Horror"}},
		[]domain.Language{{ID: "en", Name: "English"}},
	), nil
}

func TestGetPreferencesDefaultsWhenMissing(t *testing.T) {
	svc := NewPreferenceService(&memoryPrefs{rows: map[string]domain.UserPreference{}}, staticLookup{})

	pref, err := svc.GetPreferences(context.Background(), "u1")
	if err != nil {
		t.Fatalf("GetPreferences: %v", err)
	}
	if pref.UserID != "u1" || len(pref.PreferredGenreIDs) != 0 || pref.OnboardingComplete {
		t.Fatalf("unexpected default: %+v", pref)
	}
}

func TestUpdatePreferencesDedupsAndValidates(t *testing.T) {
	repo := &memoryPrefs{rows: map[string]domain.UserPreference{}}
	svc := NewPreferenceService(repo, staticLookup{})

	pref, err := svc.UpdatePreferences(context.Background(), "u1", []int64{2, 1, 2}, []string{"en", "en"})
	if err != nil {
		t.Fatalf("UpdatePreferences: %v", err)
	}
	if len(pref.PreferredGenreIDs) != 2 || pref.PreferredGenreIDs[0] != 2 {
		t.Fatalf("genres = %v", pref.PreferredGenreIDs)
	}
	if len(pref.PreferredLanguageIDs) != 1 {
		t.Fatalf("languages = %v", pref.PreferredLanguageIDs)
	}
	if !repo.rows["u1"].OnboardingComplete {
		t.Fatal("saved preferences should mark onboarding complete")
	}

	if _, err := svc.UpdatePreferences(context.Background(), "u1", []int64{99}, nil); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("unknown genre: err = %v", err)
	}
	if _, err := svc.UpdatePreferences(context.Background(), "u1", nil, []string{"xx"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("unknown language: err = %v", err)
	}
}
