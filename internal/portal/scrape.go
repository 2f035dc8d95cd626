package portal

import (
	"bytes"
	"fmt"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/ruminaider/sso-profiles/internal/profile"
)

// Scraped is one profile as written by a portal scrape. Older scrapers wrote
// the role under "name"; both spellings are accepted.
type Scraped struct {
	PortalDomain string `yaml:"portalDomain"`
	AccountID    string `yaml:"accountId"`
	AccountName  string `yaml:"accountName"`
	ProfileName  string `yaml:"profileName"`
	Name         string `yaml:"name"`
	URL          string `yaml:"url"`
}

// Profile converts s into a candidate. Fields are trimmed but not validated;
// the store rejects what cannot be identified.
func (s Scraped) Profile() profile.Profile {
	name := s.ProfileName
	if name == "" {
		name = s.Name
	}
	return profile.Profile{
		PortalDomain: strings.TrimSpace(s.PortalDomain),
		AccountID:    strings.TrimSpace(s.AccountID),
		AccountName:  strings.TrimSpace(s.AccountName),
		ProfileName:  strings.TrimSpace(name),
		URL:          strings.TrimSpace(s.URL),
	}
}

type scrapeFile struct {
	Profiles []Scraped `yaml:"profiles"`
}

// DecodeCandidates reads a scrape file. The document is either a list of
// profiles or an object holding that list under "profiles", in JSON or YAML.
// A profile without a portal domain inherits it from its URL when the URL
// points into a portal.
func DecodeCandidates(data []byte) ([]profile.Profile, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("parsing scrape file: %w", err)
	}
	if len(node.Content) == 0 {
		return nil, nil
	}

	var scraped []Scraped
	switch root := node.Content[0]; root.Kind {
	case yaml.SequenceNode:
		if err := root.Decode(&scraped); err != nil {
			return nil, fmt.Errorf("parsing scrape file: %w", err)
		}
	case yaml.MappingNode:
		var f scrapeFile
		if err := root.Decode(&f); err != nil {
			return nil, fmt.Errorf("parsing scrape file: %w", err)
		}
		scraped = f.Profiles
	default:
		return nil, fmt.Errorf("parsing scrape file: expected a list of profiles")
	}

	out := make([]profile.Profile, 0, len(scraped))
	for _, s := range scraped {
		if s.PortalDomain == "" {
			if d, err := DomainFromURL(s.URL); err == nil {
				s.PortalDomain = d
			}
		}
		out = append(out, s.Profile())
	}
	return out, nil
}
