package profile

import (
	"net/url"
	"regexp"
	"strings"
)

// samlCustomSegment matches the legacy portal path segment "<id> (<name>)".
var samlCustomSegment = regexp.MustCompile(`^\s*(\d*)\s*\((.*)\)\s*$`)

// AccountFromURL extracts whatever account facts a portal deep link carries.
// New-style links carry account_id in a query string (possibly after the
// fragment marker); legacy links carry "<id> (<name>)" after /saml/custom/.
// Missing facts are returned as "".
func AccountFromURL(raw string) (accountID, accountName string) {
	if i := strings.Index(raw, "?"); i >= 0 {
		query := raw[i+1:]
		if j := strings.Index(query, "#"); j >= 0 {
			query = query[:j]
		}
		if values, err := url.ParseQuery(query); err == nil {
			accountID = values.Get("account_id")
		}
	}

	const marker = "/saml/custom/"
	if i := strings.Index(raw, marker); i >= 0 {
		segment := raw[i+len(marker):]
		if j := strings.Index(segment, "/"); j >= 0 {
			segment = segment[:j]
		}
		if decoded, err := url.PathUnescape(segment); err == nil {
			if m := samlCustomSegment.FindStringSubmatch(decoded); m != nil {
				if accountID == "" {
					accountID = m[1]
				}
				accountName = strings.TrimSpace(m[2])
			}
		}
	}
	return accountID, accountName
}

// AccountIDHint returns the account id recoverable from p.URL, if any.
func (p Profile) AccountIDHint() string {
	id, _ := AccountFromURL(p.URL)
	return id
}
