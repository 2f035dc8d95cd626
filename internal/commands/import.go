package commands

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/ruminaider/sso-profiles/internal/portal"
	"github.com/ruminaider/sso-profiles/internal/profile"
	"github.com/ruminaider/sso-profiles/internal/store"
)

// ImportResult summarizes an import across every portal domain it touched.
type ImportResult struct {
	Domains   []string
	Stored    []profile.Profile
	Rejected  []error
	Conflicts []*store.IdentityConflictError
	Pruned    []profile.Profile
}

func (r *ImportResult) add(res *store.Result) {
	r.Stored = append(r.Stored, res.Stored...)
	r.Rejected = append(r.Rejected, res.Rejected...)
	r.Conflicts = append(r.Conflicts, res.Conflicts...)
	r.Pruned = append(r.Pruned, res.Pruned...)
}

// ImportFile reads a scrape file and imports it.
func ImportFile(ctx context.Context, env *Env, path string, rescan bool) (*ImportResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scrape file: %w", err)
	}
	return Import(ctx, env, data, rescan)
}

// Import reconciles the profiles of a scrape file with the store. With rescan
// the scrape is taken as the complete list for each portal domain it
// mentions, and stored profiles of those domains it no longer lists are
// pruned.
func Import(ctx context.Context, env *Env, data []byte, rescan bool) (*ImportResult, error) {
	candidates, err := portal.DecodeCandidates(data)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{}
	if !rescan {
		res, err := env.Store.Reconcile(ctx, candidates)
		if err != nil {
			return nil, err
		}
		result.Domains = domainsOf(res.Stored)
		result.add(res)
		return result, nil
	}

	// Only the domain is needed to group. The store validates the rest once
	// the URL hints are applied.
	byDomain := map[string][]profile.Profile{}
	for _, c := range candidates {
		if c.PortalDomain == "" {
			err := c.Validate()
			env.Logger.Warn("skipping malformed profile", "error", err)
			result.Rejected = append(result.Rejected, err)
			continue
		}
		byDomain[c.PortalDomain] = append(byDomain[c.PortalDomain], c)
	}

	result.Domains = make([]string, 0, len(byDomain))
	for d := range byDomain {
		result.Domains = append(result.Domains, d)
	}
	sort.Strings(result.Domains)

	for _, d := range result.Domains {
		res, err := env.Store.Rescan(ctx, d, byDomain[d])
		if err != nil {
			return nil, fmt.Errorf("rescanning %s: %w", d, err)
		}
		result.add(res)
	}
	return result, nil
}

func domainsOf(ps []profile.Profile) []string {
	seen := map[string]bool{}
	var out []string
	for _, p := range ps {
		if !seen[p.PortalDomain] {
			seen[p.PortalDomain] = true
			out = append(out, p.PortalDomain)
		}
	}
	sort.Strings(out)
	return out
}
