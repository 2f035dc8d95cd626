package store

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/ruminaider/sso-profiles/internal/profile"
)

// merger folds one batch of candidates into a collection. pool holds records
// already removed from the collection that may still serve as merge sources.
type merger struct {
	s        *Store
	coll     Collection
	pool     Collection
	poolUsed map[string]bool
}

// merge folds candidates into coll in title order and returns the result.
// coll is modified in place.
func (s *Store) merge(coll Collection, candidates []profile.Profile, pool Collection) *Result {
	m := &merger{s: s, coll: coll, pool: pool, poolUsed: map[string]bool{}}
	res := &Result{Profiles: coll}

	ordered := make([]profile.Profile, 0, len(candidates))
	for _, c := range candidates {
		if c.AccountID == "" {
			c.AccountID = c.AccountIDHint()
		}
		if err := c.Validate(); err != nil {
			s.logger.Warn("skipping malformed profile", "error", err)
			res.Rejected = append(res.Rejected, err)
			continue
		}
		ordered = append(ordered, c)
	}
	sortCandidates(ordered)

	batch := make(map[string]profile.Profile, len(ordered))
	for _, c := range ordered {
		stored := m.mergeOne(c)

		id := stored.CanonicalID()
		if prev, ok := batch[id]; ok && conflicting(prev, stored) {
			s.logger.Warn("identity conflict in batch", "id", id, "kept_url", stored.URL, "dropped_url", prev.URL)
			res.Conflicts = append(res.Conflicts, &IdentityConflictError{CanonicalID: id, Kept: stored, Dropped: prev})
		}
		batch[id] = stored
		res.Stored = append(res.Stored, stored)
	}

	for _, key := range pool.sortedKeys() {
		if _, ok := coll[key]; !ok && !m.poolUsed[key] {
			res.Pruned = append(res.Pruned, pool[key])
		}
	}
	return res
}

// mergeOne resolves the merge sources for c, stores the merged record and
// returns it.
func (m *merger) mergeOne(c profile.Profile) profile.Profile {
	var sources []profile.Profile
	var staleKeys []string

	// A record still stored under the name based key is folded into the
	// canonical one.
	if c.AccountName != "" && c.AccountID != "" {
		if prev, ok := m.coll[c.LegacyID()]; ok {
			delete(m.coll, c.LegacyID())
			sources = append(sources, prev)
		}
	}
	if prev, ok := m.coll[c.CanonicalID()]; ok {
		sources = append(sources, prev)
	}
	if len(sources) == 0 {
		for _, key := range []string{c.CanonicalID(), c.LegacyID()} {
			if prev, ok := m.pool[key]; ok && (key == c.CanonicalID() || c.AccountName != "") {
				sources = append(sources, prev)
				m.poolUsed[key] = true
				break
			}
		}
	}

	// Cross-source backfill: the same profile may have been recorded by a
	// source that knew the account id but not its name, or the reverse.
	if len(sources) == 0 && (c.AccountID == "" || c.AccountName == "") {
		if key, ok := findCounterpart(m.coll, c); ok {
			m.s.logger.Debug("backfilling profile", "candidate", c.Title(), "record", key)
			sources = append(sources, m.coll[key])
			staleKeys = append(staleKeys, key)
		} else if key, ok := findCounterpart(m.pool, c); ok {
			m.s.logger.Debug("backfilling profile from removed record", "candidate", c.Title(), "record", key)
			sources = append(sources, m.pool[key])
			m.poolUsed[key] = true
		}
	}

	merged := c
	for i := range sources {
		merged = merged.MergeFrom(&sources[i])
	}

	id := merged.CanonicalID()
	for _, key := range staleKeys {
		if key != id {
			delete(m.coll, key)
		}
	}

	if merged.Color == "" {
		merged.Color = profile.NextColor(len(m.coll))
		m.s.logger.Debug("assigned color", "profile", merged.Title(), "color", string(merged.Color))
	}
	if merged.Favorite == nil {
		merged = merged.WithFavorite(false)
	}

	m.coll[id] = merged
	return merged
}

// findCounterpart looks in coll for the record of the same profile entered by
// a source that supplied the fact c is missing. A record whose facts confirm
// the match wins; otherwise a single unconfirmed record sharing the portal
// domain and profile name is accepted. Several unconfirmed records are
// ambiguous and match nothing.
func findCounterpart(coll Collection, c profile.Profile) (string, bool) {
	var confirmed, unconfirmed []string

	for _, key := range coll.sortedKeys() {
		rec := coll[key]
		if rec.PortalDomain != c.PortalDomain || rec.ProfileName != c.ProfileName {
			continue
		}

		switch {
		case c.AccountName == "":
			if rec.AccountID == c.AccountID {
				confirmed = append(confirmed, key)
			} else if rec.AccountID == "" {
				unconfirmed = append(unconfirmed, key)
			}
		case c.AccountID == "":
			if rec.AccountName == c.AccountName {
				confirmed = append(confirmed, key)
			} else if rec.AccountName == "" {
				unconfirmed = append(unconfirmed, key)
			}
		}
	}

	if len(confirmed) > 0 {
		return confirmed[0], true
	}
	if len(unconfirmed) == 1 {
		return unconfirmed[0], true
	}
	return "", false
}

// sortCandidates fixes processing order by title, with canonical id and url
// as tie breakers so the outcome never depends on input order.
func sortCandidates(cs []profile.Profile) {
	c := collate.New(language.Und)
	sort.SliceStable(cs, func(i, j int) bool {
		if r := c.CompareString(cs[i].Title(), cs[j].Title()); r != 0 {
			return r < 0
		}
		if cs[i].CanonicalID() != cs[j].CanonicalID() {
			return cs[i].CanonicalID() < cs[j].CanonicalID()
		}
		return cs[i].URL < cs[j].URL
	})
}

func conflicting(a, b profile.Profile) bool {
	if a.URL != b.URL {
		return true
	}
	return a.AccountName != "" && b.AccountName != "" && a.AccountName != b.AccountName
}
