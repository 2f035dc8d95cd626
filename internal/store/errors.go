package store

import (
	"fmt"
	"strings"

	"github.com/ruminaider/sso-profiles/internal/profile"
)

// StorageUnavailableError reports a failed read or write of the backend.
// Nothing was persisted by the operation that returned it, except when Op is
// "migrate cleanup": the migrated collection was saved but the legacy keys
// could not be removed. The next operation re-detects them and finishes the
// migration with the same result.
type StorageUnavailableError struct {
	Op  string
	Err error
}

func (e *StorageUnavailableError) Error() string {
	return fmt.Sprintf("storage unavailable (%s): %v", e.Op, e.Err)
}

func (e *StorageUnavailableError) Unwrap() error {
	return e.Err
}

// IdentityConflictError records two candidates of one batch that resolved to
// the same canonical id with different facts. Kept is the one that was stored.
type IdentityConflictError struct {
	CanonicalID string
	Kept        profile.Profile
	Dropped     profile.Profile
}

func (e *IdentityConflictError) Error() string {
	var diffs []string
	if e.Kept.URL != e.Dropped.URL {
		diffs = append(diffs, fmt.Sprintf("url %q over %q", e.Kept.URL, e.Dropped.URL))
	}
	if e.Kept.AccountName != e.Dropped.AccountName {
		diffs = append(diffs, fmt.Sprintf("account name %q over %q", e.Kept.AccountName, e.Dropped.AccountName))
	}
	return fmt.Sprintf("identity conflict on %q: kept %s", e.CanonicalID, strings.Join(diffs, ", "))
}
