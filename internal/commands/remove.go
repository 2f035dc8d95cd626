package commands

import (
	"context"
	"errors"

	"github.com/ruminaider/sso-profiles/internal/profile"
)

// RemoveDomain deletes every stored profile of a portal domain and returns
// them sorted by title.
func RemoveDomain(ctx context.Context, env *Env, domain string) ([]profile.Profile, error) {
	if domain == "" {
		return nil, errors.New("portal domain is required")
	}
	removed, err := env.Store.RemoveAllForDomain(ctx, domain)
	if err != nil {
		return nil, err
	}
	return removed.Profiles(), nil
}
