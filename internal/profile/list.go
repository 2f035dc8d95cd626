package profile

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortByTitle orders profiles by title using locale-aware collation that
// still distinguishes case. Ties fall back to the canonical id.
func SortByTitle(ps []Profile) {
	c := collate.New(language.Und)
	sort.SliceStable(ps, func(i, j int) bool {
		if r := c.CompareString(ps[i].Title(), ps[j].Title()); r != 0 {
			return r < 0
		}
		return ps[i].CanonicalID() < ps[j].CanonicalID()
	})
}

// SortFavoritesFirst orders favorites ahead of everything else, then by title.
func SortFavoritesFirst(ps []Profile) {
	SortByTitle(ps)
	sort.SliceStable(ps, func(i, j int) bool {
		return ps[i].IsFavorite() && !ps[j].IsFavorite()
	})
}

// Filter keeps the profiles whose title contains every whitespace separated
// term of query, ignoring case. An empty query keeps everything.
func Filter(ps []Profile, query string) []Profile {
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return ps
	}

	var result []Profile
	for _, p := range ps {
		title := strings.ToLower(p.Title())
		matched := true
		for _, term := range terms {
			if !strings.Contains(title, term) {
				matched = false
				break
			}
		}
		if matched {
			result = append(result, p)
		}
	}
	return result
}
