package catalog

import (
	"context"
	"errors"
	"testing"
	"watchwise/domain"
)

type fakeContentRepo struct {
	records    []domain.ContentRecord
	lastFilter domain.ContentFilter
}

func (f *fakeContentRepo) FindByIDs(ctx context.Context, ids []string) ([]domain.ContentRecord, error) {
	var out []domain.ContentRecord
	for _, r := range f.records {
		for _, id := range ids {
			if r.ID == id {
				out = append(out, r)
			}
		}
	}
	return out, nil
}

func (f *fakeContentRepo) FindByNormalizedTitles(ctx context.Context, titles []string) ([]domain.ContentRecord, error) {
	return f.records, nil
}

func (f *fakeContentRepo) FindCandidates(ctx context.Context, excludeIDs []string, limit int) ([]domain.ContentRecord, error) {
	return f.records, nil
}

func (f *fakeContentRepo) Search(ctx context.Context, filter domain.ContentFilter) ([]domain.ContentRecord, error) {
	f.lastFilter = filter
	return f.records, nil
}

type fakeReferenceRepo struct {
	genreErr error
}

func (f *fakeReferenceRepo) FindAllGenres(ctx context.Context) ([]domain.Genre, error) {
	if f.genreErr != nil {
		return nil, f.genreErr
	}
	return []domain.Genre{{ID: 1, Name: "Comedy"}}, nil
}

func (f *fakeReferenceRepo) FindAllLanguages(ctx context.Context) ([]domain.Language, error) {
	return []domain.Language{{ID: "fr", Name: "French"}}, nil
}

func TestCatalogServiceLookup(t *testing.T) {
	svc := NewCatalogService(&fakeContentRepo{}, &fakeReferenceRepo{})

	l, err := svc.Lookup(context.Background())
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if name, ok := l.GenreName(1); !ok || name != "Comedy" {
		t.Fatalf("GenreName(1) = %q, %v", name, ok)
	}
	if got := l.LanguageNames([]string{"fr"}); len(got) != 1 || got[0] != "French" {
		t.Fatalf("LanguageNames = %v", got)
	}
}

func TestCatalogServiceLookupError(t *testing.T) {
	boom := errors.New("db down")
	svc := NewCatalogService(&fakeContentRepo{}, &fakeReferenceRepo{genreErr: boom})

	if _, err := svc.Lookup(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
}

func TestCatalogServiceGetContentNotFound(t *testing.T) {
	svc := NewCatalogService(&fakeContentRepo{}, &fakeReferenceRepo{})

	_, err := svc.GetContent(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestCatalogServiceSearchValidatesType(t *testing.T) {
	repo := &fakeContentRepo{}
	svc := NewCatalogService(repo, &fakeReferenceRepo{})

	if _, err := svc.SearchContent(context.Background(), domain.ContentFilter{Type: "podcast"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}

	if _, err := svc.SearchContent(context.Background(), domain.ContentFilter{Query: "  matrix ", Type: domain.ContentTypeMovie}); err != nil {
		t.Fatalf("SearchContent: %v", err)
	}
	if repo.lastFilter.Query != "matrix" {
		t.Fatalf("query not trimmed: %q", repo.lastFilter.Query)
	}
}
