// Package portal understands the URLs and payloads exchanged with an AWS IAM
// Identity Center access portal: federation requests made when a profile is
// opened, the sign-in response they return and the console login URL built
// from it.
package portal

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/ruminaider/sso-profiles/internal/profile"
)

// DefaultDestination is the console page opened after login when neither the
// sign-in response nor the caller names one.
const DefaultDestination = "https://console.aws.amazon.com/"

const portalHostSuffix = ".awsapps.com"

var errNotFederation = errors.New("not a federation request")

// IsPortalURL reports whether raw points into an access portal.
func IsPortalURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "https" {
		return false
	}
	host := u.Hostname()
	return strings.HasSuffix(host, portalHostSuffix) && len(host) > len(portalHostSuffix)
}

// DomainFromURL returns the portal domain of an access portal URL, i.e. the
// host without ".awsapps.com".
func DomainFromURL(raw string) (string, error) {
	if !IsPortalURL(raw) {
		return "", fmt.Errorf("%q is not an access portal url", raw)
	}
	u, _ := url.Parse(raw)
	return strings.TrimSuffix(u.Hostname(), portalHostSuffix), nil
}

// IsFederationRequest reports whether raw is a console federation request,
// the call a portal makes when a profile is opened.
func IsFederationRequest(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.Scheme == "https" &&
		strings.HasSuffix(u.Hostname(), ".amazonaws.com") &&
		strings.HasPrefix(u.Path, "/federation/console")
}

// ParseFederationRequest builds a candidate profile from an intercepted
// federation request and the portal page that issued it.
//
// The request carries role_name and account_id. The account name is only
// known when originURL uses the legacy "#/saml/custom/<id> (<name>)/..."
// layout; otherwise it is left empty for the store to backfill. The stored
// URL is originURL, the link that reopens this profile from the portal.
func ParseFederationRequest(requestURL, originURL string) (profile.Profile, error) {
	if !IsFederationRequest(requestURL) {
		return profile.Profile{}, fmt.Errorf("%q: %w", requestURL, errNotFederation)
	}
	req, err := url.Parse(requestURL)
	if err != nil {
		return profile.Profile{}, fmt.Errorf("parsing request url: %w", err)
	}
	origin, err := url.Parse(originURL)
	if err != nil {
		return profile.Profile{}, fmt.Errorf("parsing origin url: %w", err)
	}

	q := req.Query()
	domain, _, _ := strings.Cut(origin.Hostname(), ".")

	var accountName string
	if strings.Contains(originURL, "/saml/custom") {
		_, accountName = profile.AccountFromURL(originURL)
	}

	return profile.New(domain, q.Get("account_id"), accountName, q.Get("role_name"), originURL)
}

// SignInInfo is the body returned by a federation request.
type SignInInfo struct {
	SignInToken              string `json:"signInToken"`
	SignInFederationLocation string `json:"signInFederationLocation"`
	Destination              string `json:"destination,omitempty"`
}

// ParseSignInResponse decodes a federation response body.
func ParseSignInResponse(data []byte) (SignInInfo, error) {
	var info SignInInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return SignInInfo{}, fmt.Errorf("parsing sign-in response: %w", err)
	}
	if info.SignInToken == "" || info.SignInFederationLocation == "" {
		return SignInInfo{}, errors.New("sign-in response lacks token or federation location")
	}
	return info, nil
}

// LoginURL builds the console login URL for p. The destination is taken from
// the sign-in response, then from destination, then DefaultDestination.
func LoginURL(p profile.Profile, info SignInInfo, destination string) (string, error) {
	if info.SignInToken == "" || info.SignInFederationLocation == "" {
		return "", errors.New("sign-in info lacks token or federation location")
	}

	dest := info.Destination
	if dest == "" {
		dest = destination
	}
	if dest == "" {
		dest = DefaultDestination
	}

	q := url.Values{}
	q.Set("Action", "login")
	q.Set("SigninToken", info.SignInToken)
	q.Set("Issuer", p.URL)
	q.Set("Destination", dest)
	return info.SignInFederationLocation + "?" + q.Encode(), nil
}
