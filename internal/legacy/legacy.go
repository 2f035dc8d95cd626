// Package legacy decodes the historical storage layouts into candidate
// profiles for the current flat collection.
//
// Two layouts predate the current one:
//
//   - v0 keeps profiles under "awsProfilesByDomain", nested by portal domain,
//     account name and profile name.
//   - v1 keeps a flat map under "awsProfiles" like today, but keyed by
//     "{domain} - {accountName} - {profileName}" and with a "name" field
//     instead of "profileName".
//
// Decoding is pure; the store feeds the resulting plan through its regular
// reconciliation and then deletes the old keys.
package legacy

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/ruminaider/sso-profiles/internal/profile"
	"github.com/ruminaider/sso-profiles/internal/storage"
)

// Document keys.
const (
	ProfilesKey = "awsProfiles"
	ByDomainKey = "awsProfilesByDomain"
)

// Schema tags a storage layout found in a document.
type Schema int

const (
	SchemaV0Nested Schema = iota
	SchemaV1LegacyKeys
)

func (s Schema) String() string {
	switch s {
	case SchemaV0Nested:
		return "v0 (nested by domain)"
	case SchemaV1LegacyKeys:
		return "v1 (keyed by account name)"
	default:
		return fmt.Sprintf("Schema(%d)", int(s))
	}
}

// Record is the union of every field a stored profile has carried.
type Record struct {
	PortalDomain string `json:"portalDomain"`
	AccountID    string `json:"accountId"`
	AccountName  string `json:"accountName"`
	ProfileName  string `json:"profileName"`
	Name         string `json:"name"`
	Title        string `json:"title"`
	ID           string `json:"id"`
	URL          string `json:"url"`
	Color        string `json:"color"`
	Favorite     *bool  `json:"favorite"`
}

// Profile converts the record into a candidate. An account id missing from
// the record is recovered from the URL when the link carries one.
func (r Record) Profile() profile.Profile {
	p := profile.Profile{
		PortalDomain: r.PortalDomain,
		AccountID:    r.AccountID,
		AccountName:  r.AccountName,
		ProfileName:  r.ProfileName,
		URL:          r.URL,
		Favorite:     r.Favorite,
	}
	if p.ProfileName == "" {
		p.ProfileName = r.Name
	}
	if c := profile.Color(r.Color); c.Valid() {
		p.Color = c
	}
	if p.AccountID == "" {
		p.AccountID = p.AccountIDHint()
	}
	return p
}

// Plan describes the work needed to bring a document to the current layout.
type Plan struct {
	Schemas []Schema

	// Candidates are decoded legacy records in discovery order.
	Candidates []profile.Profile

	// StaleKeys are entries of the flat collection stored under a legacy key.
	StaleKeys []string

	// RemoveKeys are top-level document keys to delete once migrated.
	RemoveKeys []string
}

// Empty reports whether the document is already current.
func (p *Plan) Empty() bool {
	return len(p.Schemas) == 0
}

// Detect inspects doc and decodes every legacy record it holds.
func Detect(doc storage.Document) (*Plan, error) {
	plan := &Plan{}

	if raw, ok := doc[ByDomainKey]; ok {
		candidates, err := decodeNested(raw)
		if err != nil {
			return nil, err
		}
		plan.Schemas = append(plan.Schemas, SchemaV0Nested)
		plan.Candidates = append(plan.Candidates, candidates...)
		plan.RemoveKeys = append(plan.RemoveKeys, ByDomainKey)
	}

	if raw, ok := doc[ProfilesKey]; ok {
		candidates, stale, err := decodeFlat(raw)
		if err != nil {
			return nil, err
		}
		if len(stale) > 0 {
			plan.Schemas = append(plan.Schemas, SchemaV1LegacyKeys)
			plan.Candidates = append(plan.Candidates, candidates...)
			plan.StaleKeys = stale
		}
	}

	return plan, nil
}

// decodeFlat returns the entries of the flat collection that are not stored
// under their canonical key, together with those keys.
func decodeFlat(raw json.RawMessage) ([]profile.Profile, []string, error) {
	var entries map[string]Record
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, nil, fmt.Errorf("decoding %s: %w", ProfilesKey, err)
	}

	var candidates []profile.Profile
	var stale []string
	for _, key := range sortedKeys(entries) {
		rec := entries[key]
		if rec.ProfileName != "" && rec.Name == "" && rec.Profile().CanonicalID() == key {
			continue
		}
		stale = append(stale, key)
		candidates = append(candidates, rec.Profile())
	}
	return candidates, stale, nil
}

// decodeNested flattens the v0 layout. Both the wrapped form
// ({domain: {awsProfilesByAccount: {account: {awsProfilesByName: {...}}}}})
// and plain nested maps are accepted. Map keys fill in domain, account name
// and profile name when a record omits them.
func decodeNested(raw json.RawMessage) ([]profile.Profile, error) {
	var domains map[string]json.RawMessage
	if err := json.Unmarshal(raw, &domains); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", ByDomainKey, err)
	}

	var candidates []profile.Profile
	for _, domain := range sortedKeys(domains) {
		accounts, err := unwrap(domains[domain], "awsProfilesByAccount")
		if err != nil {
			return nil, fmt.Errorf("decoding %s[%q]: %w", ByDomainKey, domain, err)
		}
		for _, account := range sortedKeys(accounts) {
			names, err := unwrap(accounts[account], "awsProfilesByName")
			if err != nil {
				return nil, fmt.Errorf("decoding %s[%q][%q]: %w", ByDomainKey, domain, account, err)
			}
			for _, name := range sortedKeys(names) {
				var rec Record
				if err := json.Unmarshal(names[name], &rec); err != nil {
					return nil, fmt.Errorf("decoding %s[%q][%q][%q]: %w", ByDomainKey, domain, account, name, err)
				}
				if rec.PortalDomain == "" {
					rec.PortalDomain = domain
				}
				if rec.AccountName == "" {
					rec.AccountName = account
				}
				if rec.ProfileName == "" && rec.Name == "" {
					rec.Name = name
				}
				candidates = append(candidates, rec.Profile())
			}
		}
	}
	return candidates, nil
}

// unwrap decodes one nesting level. When the object holds the wrapper key,
// the wrapped object is returned instead.
func unwrap(raw json.RawMessage, wrapper string) (map[string]json.RawMessage, error) {
	var level map[string]json.RawMessage
	if err := json.Unmarshal(raw, &level); err != nil {
		return nil, err
	}
	if inner, ok := level[wrapper]; ok {
		var unwrapped map[string]json.RawMessage
		if err := json.Unmarshal(inner, &unwrapped); err != nil {
			return nil, err
		}
		return unwrapped, nil
	}
	return level, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
