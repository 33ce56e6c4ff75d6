package recommendation

import (
	"strings"
	"testing"
	"watchwise/domain"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestReconcileMatchesCaseInsensitively(t *testing.T) {
	records := []domain.ContentRecord{
		{ID: "c-1", Title: "The Matrix", Type: domain.ContentTypeMovie, ReleaseYear: intPtr(1999),
			GenreIDs: []int64{28}, LanguageIDs: []string{"en"}, Overview: strPtr("Neo wakes up.")},
	}
	suggestions := []domain.ModelSuggestion{{Title: "the MATRIX ", Type: "movie", Overview: "model text"}}

	got, stats := Reconcile(suggestions, records, ReconcileOptions{MaxResults: 10})

	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].ID != "c-1" {
		t.Fatalf("ID = %q, want catalog id", got[0].ID)
	}
	if got[0].Title != "The Matrix" {
		t.Fatalf("Title = %q, want catalog title", got[0].Title)
	}
	if got[0].Overview != "Neo wakes up." {
		t.Fatalf("Overview = %q, want catalog overview", got[0].Overview)
	}
	if stats.Matched != 1 || stats.Synthetic != 0 {
		t.Fatalf("stats = %+v", stats)
	}
}

func TestReconcileFallsBackToModelOverview(t *testing.T) {
	records := []domain.ContentRecord{{ID: "c-1", Title: "Dark", Type: domain.ContentTypeTVShow}}
	suggestions := []domain.ModelSuggestion{{Title: "Dark", Type: "tv_show", Reason: "time travel mystery"}}

	got, _ := Reconcile(suggestions, records, ReconcileOptions{})
	if got[0].Overview != "time travel mystery" {
		t.Fatalf("Overview = %q", got[0].Overview)
	}
}

func TestReconcileFirstCatalogRowWins(t *testing.T) {
	records := []domain.ContentRecord{
		{ID: "first", Title: "Solaris", Type: domain.ContentTypeMovie},
		{ID: "second", Title: "SOLARIS", Type: domain.ContentTypeMovie},
	}

	got, _ := Reconcile([]domain.ModelSuggestion{{Title: "solaris"}}, records, ReconcileOptions{})
	if got[0].ID != "first" {
		t.Fatalf("ID = %q, want first", got[0].ID)
	}
}

func TestReconcileSyntheticForUnmatched(t *testing.T) {
	got, stats := Reconcile([]domain.ModelSuggestion{{Title: "Ghost Movie", Type: "movie", Overview: "spooky", Year: intPtr(2021)}}, nil, ReconcileOptions{})

	if len(got) != 1 {
		t.Fatalf("len = %d", len(got))
	}
	r := got[0]
	if !strings.HasPrefix(r.ID, "ai-rec-") {
		t.Fatalf("ID = %q, want synthetic prefix", r.ID)
	}
	if r.ID != SyntheticID("Ghost Movie", "movie") {
		t.Fatalf("ID not deterministic: %q", r.ID)
	}
	if r.Overview != "spooky" || r.Type != domain.ContentTypeMovie {
		t.Fatalf("unexpected synthetic entry %+v", r)
	}
	if r.GenreIDs == nil || r.LanguageIDs == nil || r.OttPlatforms == nil {
		t.Fatal("synthetic metadata arrays should be empty, not nil")
	}
	if stats.Synthetic != 1 {
		t.Fatalf("stats = %+v", stats)
	}
}

func TestSyntheticIDDeterminism(t *testing.T) {
	a := SyntheticID("Ghost Movie", "movie")
	b := SyntheticID("  ghost MOVIE ", "movie")
	if a != b {
		t.Fatalf("same normalized title gave %q and %q", a, b)
	}

	if c := SyntheticID("Ghost Movie", "tv_show"); c == a {
		t.Fatal("type should be part of the synthetic id")
	}
	if d := SyntheticID("Ghost Movie", "series"); d != SyntheticID("Ghost Movie", "tv_show") {
		t.Fatal("type spellings should normalize before hashing")
	}
}

func TestReconcileDeduplicatesByID(t *testing.T) {
	records := []domain.ContentRecord{{ID: "c-1", Title: "Heat", Type: domain.ContentTypeMovie}}
	suggestions := []domain.ModelSuggestion{
		{Title: "Heat"},
		{Title: "heat "},
		{Title: "Unknown Film", Type: "movie"},
		{Title: "unknown film", Type: "Movie"},
		{Title: "Unknown Film", Type: "tv"},
	}

	got, stats := Reconcile(suggestions, records, ReconcileOptions{})

	seen := map[string]bool{}
	for _, r := range got {
		if seen[r.ID] {
			t.Fatalf("duplicate id %q in %+v", r.ID, got)
		}
		seen[r.ID] = true
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3 (catalog, synthetic movie, synthetic tv)", len(got))
	}
	if got[0].ID != "c-1" {
		t.Fatalf("order not preserved: %+v", got)
	}
	if stats.Dropped != 2 {
		t.Fatalf("dropped = %d, want 2", stats.Dropped)
	}
}

func TestReconcileDropsBlankTitles(t *testing.T) {
	got, stats := Reconcile([]domain.ModelSuggestion{{Title: "   "}, {Title: ""}}, nil, ReconcileOptions{})
	if len(got) != 0 {
		t.Fatalf("len = %d, want 0", len(got))
	}
	if stats.Dropped != 2 {
		t.Fatalf("dropped = %d", stats.Dropped)
	}
}

func TestReconcileExcludesWatched(t *testing.T) {
	records := []domain.ContentRecord{{ID: "watched", Title: "Alien", Type: domain.ContentTypeMovie}}

	got, _ := Reconcile([]domain.ModelSuggestion{{Title: "Alien"}, {Title: "Aliens"}}, records, ReconcileOptions{
		Exclude: map[string]struct{}{"watched": {}},
	})
	if len(got) != 1 || got[0].Title != "Aliens" {
		t.Fatalf("got %+v, want only Aliens", got)
	}
}

func TestReconcileCapsList(t *testing.T) {
	var suggestions []domain.ModelSuggestion
	for _, title := range []string{"a", "b", "c", "d", "e"} {
		suggestions = append(suggestions, domain.ModelSuggestion{Title: title})
	}

	got, stats := Reconcile(suggestions, nil, ReconcileOptions{MaxResults: 3})
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if got[2].Title != "c" {
		t.Fatalf("cap should keep the first entries, got %+v", got)
	}
	if stats.Synthetic != 3 || stats.Dropped != 2 {
		t.Fatalf("stats = %+v", stats)
	}
}
