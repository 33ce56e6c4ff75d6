package recommendation

import (
	"bytes"
	_ "embed"
	"fmt"
	"strconv"
	"strings"
	"text/template"
	"watchwise/business/catalog"
	"watchwise/domain"
)

//go:embed prompt.tmpl
var promptTmpl string

var promptTemplate = template.Must(template.New("recommend").Parse(promptTmpl))

const notRated = "Not Rated"

// PromptInput carries everything the prompt describes. Recent is expected
// newest first with Content preloaded.
type PromptInput struct {
	Recent     []domain.WatchedItem
	Ratings    map[string]int
	Preference domain.UserPreference
	Candidates []domain.ContentRecord
	Lookup     *catalog.Lookup
	MaxResults int
}

type promptData struct {
	MaxResults         int
	Candidates         []string
	PreferredGenres    string
	PreferredLanguages string
	Watched            []string
}

// BuildPrompt renders the model prompt. It has no side effects.
func BuildPrompt(in PromptInput) (string, error) {
	lookup := in.Lookup
	if lookup == nil {
		lookup = catalog.NewLookup(nil, nil)
	}

	data := promptData{
		MaxResults:         in.MaxResults,
		PreferredGenres:    joinOr(lookup.GenreNames(in.Preference.PreferredGenreIDs), "any"),
		PreferredLanguages: joinOr(lookup.LanguageNames(in.Preference.PreferredLanguageIDs), "any"),
	}
	if data.MaxResults <= 0 {
		data.MaxResults = defaultMaxRecommendations
	}

	for _, item := range in.Recent {
		if item.Content == nil {
			continue
		}
		c := item.Content
		rating := notRated
		if v, ok := in.Ratings[item.ContentID]; ok {
			rating = strconv.Itoa(v)
		}
		data.Watched = append(data.Watched, fmt.Sprintf("%s (%s), Genres: %s, Languages: %s, Your Rating: %s",
			oneLine(c.Title),
			yearOrUnknown(c.ReleaseYear),
			joinOr(lookup.GenreNamesOrIDs(c.GenreIDs), "N/A"),
			joinOr(lookup.LanguageNamesOrIDs(c.LanguageIDs), "N/A"),
			rating,
		))
	}

	for _, c := range in.Candidates {
		if strings.TrimSpace(c.Title) == "" {
			continue
		}
		data.Candidates = append(data.Candidates, fmt.Sprintf("%s (%s, %s, Genres: %s, Languages: %s)",
			oneLine(c.Title),
			yearOrUnknown(c.ReleaseYear),
			c.Type,
			joinOr(lookup.GenreNames(c.GenreIDs), "N/A"),
			joinOr(lookup.LanguageNames(c.LanguageIDs), "N/A"),
		))
	}

	var buf bytes.Buffer
	if err := promptTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render prompt: %w", err)
	}

	return buf.String(), nil
}

func joinOr(parts []string, fallback string) string {
	if len(parts) == 0 {
		return fallback
	}
	return strings.Join(parts, ", ")
}

func yearOrUnknown(year *int) string {
	if year == nil {
		return "?"
	}
	return strconv.Itoa(*year)
}

// titles are user-visible catalog data; keep each on one prompt line
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
