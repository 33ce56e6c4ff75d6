package recommendation

import (
	"strings"
	"testing"
	"watchwise/business/catalog"
	"watchwise/domain"
)

func promptLookup() *catalog.Lookup {
	return catalog.NewLookup(
		[]domain.Genre{{ID: 28, Name: "Action"}, {ID: 878, Name: "Science Fiction"}},
		[]domain.Language{{ID: "en", Name: "English"}, {ID: "ja", Name: "Japanese"}},
	)
}

func TestBuildPromptDescribesHistoryAndPreferences(t *testing.T) {
	in := PromptInput{
		Recent: []domain.WatchedItem{
			{ContentID: "m1", Content: &domain.ContentRecord{ID: "m1", Title: "Akira", ReleaseYear: intPtr(1988), GenreIDs: []int64{878}, LanguageIDs: []string{"ja"}}},
			{ContentID: "m2", Content: &domain.ContentRecord{ID: "m2", Title: "Heat", GenreIDs: []int64{28}, LanguageIDs: []string{"en"}}},
		},
		Ratings: map[string]int{"m1": 5},
		Preference: domain.UserPreference{
			PreferredGenreIDs:    []int64{28},
			PreferredLanguageIDs: []string{"en"},
		},
		Candidates: []domain.ContentRecord{
			{ID: "c1", Title: "Ghost in the Shell", ReleaseYear: intPtr(1995), Type: domain.ContentTypeMovie, GenreIDs: []int64{878}},
		},
		Lookup:     promptLookup(),
		MaxResults: 7,
	}

	prompt, err := BuildPrompt(in)
	if err != nil {
		t.Fatalf("BuildPrompt: %v", err)
	}

	for _, want := range []string{
		"- Akira (1988), Genres: Science Fiction, Languages: Japanese, Your Rating: 5",
		"- Heat (?), Genres: Action, Languages: English, Your Rating: Not Rated",
		"Preferred Genres: Action",
		"Preferred Languages: English",
		"selecting ONLY from the following list",
		"- Ghost in the Shell (1995, movie, Genres: Science Fiction, Languages: N/A)",
		"up to 7",
		"JSON array only",
		`"title"`,
		`"overview"`,
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q\n---\n%s", want, prompt)
		}
	}
}

func TestBuildPromptWithoutCandidatesOmitsConstraint(t *testing.T) {
	prompt, err := BuildPrompt(PromptInput{Lookup: promptLookup()})
	if err != nil {
		t.Fatalf("BuildPrompt: %v", err)
	}

	if strings.Contains(prompt, "ONLY from the following list") {
		t.Errorf("constraint section should be omitted:\n%s", prompt)
	}
	for _, want := range []string{
		"Preferred Genres: any",
		"Preferred Languages: any",
		"No content watched yet.",
		"up to 10",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q\n---\n%s", want, prompt)
		}
	}
}

func TestBuildPromptKeepsTitlesOnOneLine(t *testing.T) {
	prompt, err := BuildPrompt(PromptInput{
		Candidates: []domain.ContentRecord{{Title: "Line\nBreak", Type: domain.ContentTypeMovie}},
	})
	if err != nil {
		t.Fatalf("BuildPrompt: %v", err)
	}
	if !strings.Contains(prompt, "- Line Break (?, movie") {
		t.Errorf("title not flattened:\n%s", prompt)
	}
}
