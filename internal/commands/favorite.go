package commands

import (
	"context"

	"github.com/ruminaider/sso-profiles/internal/profile"
)

// FavoriteMode selects how SetFavorite changes the flag.
type FavoriteMode int

const (
	FavoriteToggle FavoriteMode = iota
	FavoriteSet
	FavoriteUnset
)

// SetFavorite updates the favorite flag of a stored profile and returns the
// record as saved.
func SetFavorite(ctx context.Context, env *Env, p profile.Profile, mode FavoriteMode) (profile.Profile, error) {
	var v bool
	switch mode {
	case FavoriteSet:
		v = true
	case FavoriteUnset:
		v = false
	default:
		v = !p.IsFavorite()
	}
	return env.Store.ReconcileOne(ctx, p.WithFavorite(v))
}
