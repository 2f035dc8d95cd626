package commands

import (
	"context"

	"github.com/ruminaider/sso-profiles/internal/store"
)

// Migrate converts any legacy layout in the store. A nil report means the
// data was already current.
func Migrate(ctx context.Context, env *Env) (*store.MigrationReport, error) {
	return env.Store.Migrate(ctx)
}
