package catalog

import (
	"strconv"
	"watchwise/domain"
)

// Lookup resolves genre and language ids to display names. It is built once
// per request from the reference tables and is read-only afterwards.
type Lookup struct {
	genres    map[int64]string
	languages map[string]string
}

func NewLookup(genres []domain.Genre, languages []domain.Language) *Lookup {
	l := &Lookup{
		genres:    make(map[int64]string, len(genres)),
		languages: make(map[string]string, len(languages)),
	}
	for _, g := range genres {
		l.genres[g.ID] = g.Name
	}
	for _, lang := range languages {
		l.languages[lang.ID] = lang.Name
	}
	return l
}

func (l *Lookup) GenreName(id int64) (string, bool) {
	name, ok := l.genres[id]
	return name, ok
}

// GenreNames drops ids that are not in the genre table.
func (l *Lookup) GenreNames(ids []int64) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := l.genres[id]; ok {
			names = append(names, name)
		}
	}
	return names
}

func (l *Lookup) LanguageNames(ids []string) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := l.languages[id]; ok {
			names = append(names, name)
		}
	}
	return names
}

// GenreNamesOrIDs keeps unknown ids as their raw value, which is how watched
// titles are described to the model.
func (l *Lookup) GenreNamesOrIDs(ids []int64) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := l.genres[id]; ok {
			names = append(names, name)
			continue
		}
		names = append(names, strconv.FormatInt(id, 10))
	}
	return names
}

func (l *Lookup) LanguageNamesOrIDs(ids []string) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := l.languages[id]; ok {
			names = append(names, name)
			continue
		}
		names = append(names, id)
	}
	return names
}
