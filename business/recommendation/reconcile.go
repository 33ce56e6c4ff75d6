package recommendation

import (
	"strings"
	"watchwise/domain"

	"github.com/google/uuid"
)

const syntheticIDPrefix = "ai-rec-"

// namespace for synthetic recommendation ids; changing it changes every id
var syntheticNamespace = uuid.MustParse("6f1c7f0e-8e3b-5d55-9a8c-3f0b7f5c2d41")

type ReconcileOptions struct {
	MaxResults int

	// catalog ids that must not be recommended, usually already watched
	Exclude map[string]struct{}
}

// ReconcileStats counts how each kept suggestion was resolved.
type ReconcileStats struct {
	Matched   int
	Synthetic int
	Dropped   int
}

func NormalizeTitle(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}

// SyntheticID is stable for a given normalized title and content type, so
// the same unmatched suggestion keeps its id across regenerations.
func SyntheticID(title, contentType string) string {
	key := NormalizeTitle(title) + "|" + domain.NormalizeContentType(contentType)
	return syntheticIDPrefix + uuid.NewSHA1(syntheticNamespace, []byte(key)).String()
}

// Reconcile resolves model suggestions against catalog rows, preserving the
// suggestion order. The first catalog row with a matching normalized title
// wins; unmatched suggestions get a synthetic id. The result never holds two
// entries with the same id and is capped at opts.MaxResults.
func Reconcile(suggestions []domain.ModelSuggestion, records []domain.ContentRecord, opts ReconcileOptions) ([]domain.Recommendation, ReconcileStats) {
	var stats ReconcileStats

	byTitle := make(map[string]*domain.ContentRecord, len(records))
	for i := range records {
		key := NormalizeTitle(records[i].Title)
		if key == "" {
			continue
		}
		if _, exists := byTitle[key]; !exists {
			byTitle[key] = &records[i]
		}
	}

	out := make([]domain.Recommendation, 0, len(suggestions))
	seen := make(map[string]struct{}, len(suggestions))

	for _, s := range suggestions {
		key := NormalizeTitle(s.Title)
		if key == "" {
			stats.Dropped++
			continue
		}

		var rec domain.Recommendation
		if match, ok := byTitle[key]; ok {
			if _, excluded := opts.Exclude[match.ID]; excluded {
				stats.Dropped++
				continue
			}
			rec = fromCatalog(*match, s)
		} else {
			rec = synthetic(s)
		}

		if _, dup := seen[rec.ID]; dup {
			stats.Dropped++
			continue
		}
		seen[rec.ID] = struct{}{}

		if strings.HasPrefix(rec.ID, syntheticIDPrefix) {
			stats.Synthetic++
		} else {
			stats.Matched++
		}
		out = append(out, rec)
	}

	return capRecommendations(out, opts.MaxResults, &stats), stats
}

func fromCatalog(c domain.ContentRecord, s domain.ModelSuggestion) domain.Recommendation {
	overview := modelOverview(s)
	if c.Overview != nil && strings.TrimSpace(*c.Overview) != "" {
		overview = *c.Overview
	}

	platforms := make([]domain.OttPlatformRef, 0, len(c.OttPlatforms))
	for _, p := range c.OttPlatforms {
		platforms = append(platforms, domain.OttPlatformRef{Name: p.Name, IconURL: p.IconURL})
	}

	genres := []int64(c.GenreIDs)
	if genres == nil {
		genres = []int64{}
	}
	languages := []string(c.LanguageIDs)
	if languages == nil {
		languages = []string{}
	}

	return domain.Recommendation{
		ID:           c.ID,
		Title:        c.Title,
		Overview:     overview,
		ReleaseYear:  c.ReleaseYear,
		Type:         c.Type,
		PosterURL:    c.PosterURL,
		LanguageIDs:  languages,
		GenreIDs:     genres,
		OttPlatforms: platforms,
	}
}

func synthetic(s domain.ModelSuggestion) domain.Recommendation {
	contentType := domain.NormalizeContentType(s.Type)
	return domain.Recommendation{
		ID:           SyntheticID(s.Title, contentType),
		Title:        strings.TrimSpace(s.Title),
		Overview:     modelOverview(s),
		ReleaseYear:  s.Year,
		Type:         contentType,
		LanguageIDs:  []string{},
		GenreIDs:     []int64{},
		OttPlatforms: []domain.OttPlatformRef{},
	}
}

func modelOverview(s domain.ModelSuggestion) string {
	if o := strings.TrimSpace(s.Overview); o != "" {
		return o
	}
	return strings.TrimSpace(s.Reason)
}

func capRecommendations(recs []domain.Recommendation, max int, stats *ReconcileStats) []domain.Recommendation {
	if max <= 0 || len(recs) <= max {
		return recs
	}

	for _, r := range recs[max:] {
		stats.Dropped++
		if strings.HasPrefix(r.ID, syntheticIDPrefix) {
			stats.Synthetic--
		} else {
			stats.Matched--
		}
	}
	return recs[:max]
}
