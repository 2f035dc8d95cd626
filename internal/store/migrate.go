package store

import (
	"context"

	"github.com/ruminaider/sso-profiles/internal/legacy"
	"github.com/ruminaider/sso-profiles/internal/profile"
)

// MigrationReport summarizes a migration run. A nil report means the
// document was already current.
type MigrationReport struct {
	Schemas  []legacy.Schema
	Migrated []profile.Profile
	Rejected []error
}

// Migrate converts legacy layouts found in the backend into the current
// collection. It is a no-op once no legacy data remains, so it is safe to
// call before every operation.
func (s *Store) Migrate(ctx context.Context) (*MigrationReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.migrateLocked(ctx)
}

func (s *Store) migrateLocked(ctx context.Context) (*MigrationReport, error) {
	doc, err := s.backend.Get(ctx, nil)
	if err != nil {
		return nil, &StorageUnavailableError{Op: "migrate", Err: err}
	}

	plan, err := legacy.Detect(doc)
	if err != nil {
		return nil, &StorageUnavailableError{Op: "migrate", Err: err}
	}
	if plan.Empty() {
		return nil, nil
	}

	coll := Collection{}
	if err := doc.Decode(legacy.ProfilesKey, &coll); err != nil {
		return nil, &StorageUnavailableError{Op: "migrate", Err: err}
	}
	if coll == nil {
		coll = Collection{}
	}
	for _, key := range plan.StaleKeys {
		delete(coll, key)
	}

	res := s.merge(coll, plan.Candidates, nil)
	if err := s.save(ctx, res.Profiles); err != nil {
		return nil, err
	}
	if len(plan.RemoveKeys) > 0 {
		if err := s.backend.Remove(ctx, plan.RemoveKeys...); err != nil {
			return nil, &StorageUnavailableError{Op: "migrate cleanup", Err: err}
		}
	}

	report := &MigrationReport{Schemas: plan.Schemas, Migrated: res.Stored, Rejected: res.Rejected}
	s.logger.Info("migrated legacy profiles",
		"schemas", len(report.Schemas),
		"migrated", len(report.Migrated),
		"rejected", len(report.Rejected),
	)
	return report, nil
}
