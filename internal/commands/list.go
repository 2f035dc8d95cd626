package commands

import (
	"context"

	"github.com/ruminaider/sso-profiles/internal/profile"
)

// ListOptions narrows and orders List output.
type ListOptions struct {
	// Query holds whitespace separated terms that must all appear in a title.
	Query          string
	FavoritesFirst bool
	FavoritesOnly  bool
}

// List returns the stored profiles matching opts, sorted by title.
func List(ctx context.Context, env *Env, opts ListOptions) ([]profile.Profile, error) {
	all, err := env.Store.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	matched := profile.Filter(all, opts.Query)
	if opts.FavoritesOnly {
		var favs []profile.Profile
		for _, p := range matched {
			if p.IsFavorite() {
				favs = append(favs, p)
			}
		}
		matched = favs
	}
	if opts.FavoritesFirst {
		profile.SortFavoritesFirst(matched)
	}
	return matched, nil
}
