// Package store reconciles observed profiles with the persisted collection.
//
// The collection lives under one document key and is always replaced with a
// single write, after every candidate of a batch has been merged in memory.
// A failure before that write leaves the stored state untouched.
package store

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"sync"

	"github.com/ruminaider/sso-profiles/internal/legacy"
	"github.com/ruminaider/sso-profiles/internal/profile"
	"github.com/ruminaider/sso-profiles/internal/storage"
)

// Collection maps canonical ids to stored profiles.
type Collection map[string]profile.Profile

// Profiles returns the records sorted by title.
func (c Collection) Profiles() []profile.Profile {
	out := make([]profile.Profile, 0, len(c))
	for _, p := range c {
		out = append(out, p)
	}
	profile.SortByTitle(out)
	return out
}

func (c Collection) clone() Collection {
	out := make(Collection, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

func (c Collection) sortedKeys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Store is the only reader and writer of the profile collection in a backend.
// Operations are serialized by a mutex covering the whole load, merge and
// save cycle.
type Store struct {
	backend storage.Backend
	logger  *slog.Logger
	mu      sync.Mutex
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// New returns a store persisting to backend.
func New(backend storage.Backend, opts ...Option) *Store {
	s := &Store{backend: backend, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Result is the outcome of a reconciliation.
type Result struct {
	// Profiles is the collection as persisted.
	Profiles Collection

	// Stored holds the record written for each accepted candidate, in
	// processing order.
	Stored []profile.Profile

	// Rejected holds one *profile.MalformedProfileError per skipped candidate.
	Rejected []error

	// Conflicts lists candidates overridden by a later one with the same id.
	Conflicts []*IdentityConflictError

	// Pruned lists merge pool records that were neither observed again nor
	// used as a merge source.
	Pruned []profile.Profile
}

// ReconcileOption tunes a single Reconcile call.
type ReconcileOption func(*reconcileOptions)

type reconcileOptions struct {
	pool Collection
}

// WithMergePool supplies records that are no longer in the collection but
// may still be used as merge sources, typically the map returned by
// RemoveAllForDomain ahead of a full rescan.
func WithMergePool(pool Collection) ReconcileOption {
	return func(o *reconcileOptions) {
		o.pool = pool
	}
}

// Reconcile merges candidates into the persisted collection and saves it.
// Malformed candidates are skipped and reported in the result; the returned
// error is always a *StorageUnavailableError.
func (s *Store) Reconcile(ctx context.Context, candidates []profile.Profile, opts ...ReconcileOption) (*Result, error) {
	var o reconcileOptions
	for _, opt := range opts {
		opt(&o)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.migrateLocked(ctx); err != nil {
		return nil, err
	}

	coll, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	res := s.merge(coll, candidates, o.pool.clone())
	if err := s.save(ctx, res.Profiles); err != nil {
		return nil, err
	}
	return res, nil
}

// ReconcileOne reconciles a single candidate and returns the stored record.
// A malformed candidate is returned as the error.
func (s *Store) ReconcileOne(ctx context.Context, candidate profile.Profile) (profile.Profile, error) {
	res, err := s.Reconcile(ctx, []profile.Profile{candidate})
	if err != nil {
		return profile.Profile{}, err
	}
	if len(res.Rejected) > 0 {
		return profile.Profile{}, res.Rejected[0]
	}
	return res.Stored[0], nil
}

// RemoveAllForDomain deletes every record of portalDomain and returns them
// keyed by canonical id, for use with WithMergePool.
func (s *Store) RemoveAllForDomain(ctx context.Context, portalDomain string) (Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.migrateLocked(ctx); err != nil {
		return nil, err
	}

	coll, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	removed := extractDomain(coll, portalDomain)
	if err := s.save(ctx, coll); err != nil {
		return nil, err
	}

	s.logger.Debug("removed profiles for domain", "domain", portalDomain, "count", len(removed))
	return removed, nil
}

// Rescan replaces every record of portalDomain with the result of a full
// scan of that portal. Preferences of records seen again are kept; records
// not seen again are pruned. Removal and reconciliation share one write.
func (s *Store) Rescan(ctx context.Context, portalDomain string, candidates []profile.Profile) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.migrateLocked(ctx); err != nil {
		return nil, err
	}

	coll, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	removed := extractDomain(coll, portalDomain)
	res := s.merge(coll, candidates, removed)

	if err := s.save(ctx, res.Profiles); err != nil {
		return nil, err
	}

	if len(res.Pruned) > 0 {
		s.logger.Info("pruned stale profiles", "domain", portalDomain, "count", len(res.Pruned))
	}
	return res, nil
}

// LoadAll migrates legacy data if needed and returns every record sorted by
// title.
func (s *Store) LoadAll(ctx context.Context) ([]profile.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.migrateLocked(ctx); err != nil {
		return nil, err
	}

	coll, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return coll.Profiles(), nil
}

func extractDomain(coll Collection, portalDomain string) Collection {
	removed := Collection{}
	for key, p := range coll {
		if p.PortalDomain == portalDomain {
			removed[key] = p
			delete(coll, key)
		}
	}
	return removed
}

func (s *Store) load(ctx context.Context) (Collection, error) {
	doc, err := s.backend.Get(ctx, storage.Document{legacy.ProfilesKey: json.RawMessage(`{}`)})
	if err != nil {
		return nil, &StorageUnavailableError{Op: "load", Err: err}
	}

	coll := Collection{}
	if err := doc.Decode(legacy.ProfilesKey, &coll); err != nil {
		return nil, &StorageUnavailableError{Op: "load", Err: err}
	}
	if coll == nil {
		coll = Collection{}
	}
	return coll, nil
}

func (s *Store) save(ctx context.Context, coll Collection) error {
	doc := storage.Document{}
	if err := doc.Encode(legacy.ProfilesKey, coll); err != nil {
		return &StorageUnavailableError{Op: "save", Err: err}
	}
	if err := s.backend.Set(ctx, doc); err != nil {
		return &StorageUnavailableError{Op: "save", Err: err}
	}
	return nil
}
