package search

import (
	"sort"

	"findmyrave/internal/upstream"
)

const GenreAll = "all"

// genreMapping maps our genre keys onto the provider's genre ids.
// An id may sit under several keys.
var genreMapping = map[string][]string{
	"house":         {"1", "12", "46"},
	"techno":        {"2", "47", "48"},
	"drum-and-bass": {"3", "17"},
	"trance":        {"4", "49"},
	"garage":        {"5", "12"},
	"dubstep":       {"6", "17"},
	"hardcore":      {"7", "50"},
	"disco":         {"8", "46"},
	"hip-hop":       {"9"},
	"electronic":    {"2", "6", "10", "47"},
}

var genreIndex = buildGenreIndex()

func buildGenreIndex() map[string]map[string]struct{} {
	index := make(map[string]map[string]struct{}, len(genreMapping))
	for key, ids := range genreMapping {
		set := make(map[string]struct{}, len(ids))
		for _, id := range ids {
			set[id] = struct{}{}
		}
		index[key] = set
	}
	return index
}

// IsKnownGenre reports whether genre is "all" or a mapped key
func IsKnownGenre(genre string) bool {
	if genre == GenreAll {
		return true
	}
	_, ok := genreMapping[genre]
	return ok
}

// Genres lists the mapped genre keys in alphabetical order
func Genres() []string {
	keys := make([]string, 0, len(genreMapping))
	for key := range genreMapping {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// ProviderIDs returns the provider ids mapped to genre
func ProviderIDs(genre string) []string {
	return genreMapping[genre]
}

// FilterByGenre keeps events whose provider genres intersect the mapped set.
// The batch is returned unchanged for "all" or an empty genre.
func FilterByGenre(batch []upstream.RawEvent, genre string) []upstream.RawEvent {
	if genre == "" || genre == GenreAll {
		return batch
	}

	wanted := genreIndex[genre]
	filtered := make([]upstream.RawEvent, 0, len(batch))
	for _, event := range batch {
		for _, g := range event.Genres {
			if _, ok := wanted[g.GenreID]; ok {
				filtered = append(filtered, event)
				break
			}
		}
	}
	return filtered
}

// Classify returns, sorted, every genre key that matches at least one of ids
func Classify(ids []string) []string {
	keys := []string{}
	for key, set := range genreIndex {
		for _, id := range ids {
			if _, ok := set[id]; ok {
				keys = append(keys, key)
				break
			}
		}
	}
	sort.Strings(keys)
	return keys
}
