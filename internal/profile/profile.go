package profile

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformed matches every *MalformedProfileError via errors.Is.
var ErrMalformed = errors.New("malformed profile")

// Profile is one (account, role) pair reachable through an SSO portal.
// PortalDomain, AccountID, AccountName, ProfileName and URL are facts learned
// from the portal; Color and Favorite are user preferences.
type Profile struct {
	PortalDomain string `json:"portalDomain" yaml:"portalDomain"`
	AccountID    string `json:"accountId,omitempty" yaml:"accountId,omitempty"`
	AccountName  string `json:"accountName,omitempty" yaml:"accountName,omitempty"`
	ProfileName  string `json:"profileName" yaml:"profileName"`
	URL          string `json:"url" yaml:"url"`
	Color        Color  `json:"color,omitempty" yaml:"color,omitempty"`
	Favorite     *bool  `json:"favorite,omitempty" yaml:"favorite,omitempty"`
}

// MalformedProfileError reports a candidate that cannot be identified.
type MalformedProfileError struct {
	Profile Profile
	Reason  string
}

func (e *MalformedProfileError) Error() string {
	return fmt.Sprintf("malformed profile %q (domain %q): %s", e.Profile.ProfileName, e.Profile.PortalDomain, e.Reason)
}

// Is makes errors.Is(err, ErrMalformed) true for any MalformedProfileError.
func (e *MalformedProfileError) Is(target error) bool {
	return target == ErrMalformed
}

// New builds a profile from freshly observed facts and validates it.
// accountID and accountName may be empty, but not both.
func New(portalDomain, accountID, accountName, profileName, url string) (Profile, error) {
	p := Profile{
		PortalDomain: strings.TrimSpace(portalDomain),
		AccountID:    strings.TrimSpace(accountID),
		AccountName:  strings.TrimSpace(accountName),
		ProfileName:  strings.TrimSpace(profileName),
		URL:          strings.TrimSpace(url),
	}
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// Validate checks that the profile carries enough facts to be identified
// and launched.
func (p Profile) Validate() error {
	switch {
	case p.PortalDomain == "":
		return &MalformedProfileError{Profile: p, Reason: "portal domain is required"}
	case p.ProfileName == "":
		return &MalformedProfileError{Profile: p, Reason: "profile name is required"}
	case p.URL == "":
		return &MalformedProfileError{Profile: p, Reason: "url is required"}
	case p.AccountID == "" && p.AccountName == "":
		return &MalformedProfileError{Profile: p, Reason: "account id or account name is required"}
	}
	if p.Color != "" && !p.Color.Valid() {
		return &MalformedProfileError{Profile: p, Reason: fmt.Sprintf("unknown color %q", p.Color)}
	}
	return nil
}

// CanonicalID is the stable identity key: "{domain} - {accountId} - {profileName}".
// Until the account id is learned the record is keyed by its LegacyID, so two
// accounts sharing a role name never collapse into one record.
func (p Profile) CanonicalID() string {
	if p.AccountID == "" {
		return p.LegacyID()
	}
	return CanonicalID(p.PortalDomain, p.AccountID, p.ProfileName)
}

// LegacyID is the superseded key based on the account name. It is only
// meaningful when the account name is known.
func (p Profile) LegacyID() string {
	return LegacyID(p.PortalDomain, p.AccountName, p.ProfileName)
}

// Title is the display label, "{accountName or accountId} - {profileName}".
func (p Profile) Title() string {
	account := p.AccountName
	if account == "" {
		account = p.AccountID
	}
	return account + " - " + p.ProfileName
}

// IsFavorite reports the favorite flag, defaulting to false.
func (p Profile) IsFavorite() bool {
	return p.Favorite != nil && *p.Favorite
}

// WithFavorite returns a copy of p with the favorite flag set explicitly.
func (p Profile) WithFavorite(v bool) Profile {
	p.Favorite = &v
	return p
}

// MergeFrom overlays previous onto p field by field and returns the result.
// Facts observed in p (URL, account id, names) win whenever present; the
// previous record only fills gaps. Preferences (color, favorite) are taken
// from previous unless p sets them explicitly.
func (p Profile) MergeFrom(previous *Profile) Profile {
	if previous == nil {
		return p
	}
	if p.Color == "" {
		p.Color = previous.Color
	}
	if p.Favorite == nil && previous.Favorite != nil {
		fav := *previous.Favorite
		p.Favorite = &fav
	}
	if p.AccountName == "" {
		p.AccountName = previous.AccountName
	}
	if p.AccountID == "" {
		p.AccountID = previous.AccountID
	}
	if p.URL == "" {
		p.URL = previous.URL
	}
	return p
}

// CanonicalID formats the canonical identity key from its parts.
func CanonicalID(portalDomain, accountID, profileName string) string {
	return portalDomain + " - " + accountID + " - " + profileName
}

// LegacyID formats the legacy identity key from its parts.
func LegacyID(portalDomain, accountName, profileName string) string {
	return portalDomain + " - " + accountName + " - " + profileName
}
