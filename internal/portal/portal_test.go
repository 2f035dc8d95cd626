package portal_test

import (
	"errors"
	"net/url"
	"testing"

	"github.com/ruminaider/sso-profiles/internal/portal"
	"github.com/ruminaider/sso-profiles/internal/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const federationURL = "https://portal.sso.eu-west-1.amazonaws.com/federation/console?account_id=123456789012&role_name=AdministratorAccess"

func TestIsPortalURL(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://mysso.awsapps.com/start/#/", true},
		{"https://mysso.awsapps.com", true},
		{"http://mysso.awsapps.com/start", false},
		{"https://awsapps.com/start", false},
		{"https://example.com/start", false},
		{"::not a url", false},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, portal.IsPortalURL(tt.url))
		})
	}
}

func TestDomainFromURL(t *testing.T) {
	d, err := portal.DomainFromURL("https://mysso.awsapps.com/start/#/?tab=accounts")
	require.NoError(t, err)
	assert.Equal(t, "mysso", d)

	_, err = portal.DomainFromURL("https://example.com")
	assert.Error(t, err)
}

func TestParseFederationRequest(t *testing.T) {
	t.Run("current portal layout", func(t *testing.T) {
		origin := "https://mysso.awsapps.com/start/#/console?account_id=123456789012&role_name=AdministratorAccess"
		p, err := portal.ParseFederationRequest(federationURL, origin)
		require.NoError(t, err)

		assert.Equal(t, "mysso", p.PortalDomain)
		assert.Equal(t, "123456789012", p.AccountID)
		assert.Empty(t, p.AccountName)
		assert.Equal(t, "AdministratorAccess", p.ProfileName)
		assert.Equal(t, origin, p.URL)
		assert.Equal(t, "mysso - 123456789012 - AdministratorAccess", p.CanonicalID())
		assert.Nil(t, p.Favorite)
	})

	t.Run("legacy portal layout carries the account name", func(t *testing.T) {
		origin := "https://mysso.awsapps.com/start/#/saml/custom/123456789012%20%28Production%29/MTIzNDU2"
		p, err := portal.ParseFederationRequest(federationURL, origin)
		require.NoError(t, err)

		assert.Equal(t, "Production", p.AccountName)
		assert.Equal(t, "Production - AdministratorAccess", p.Title())
	})

	t.Run("not a federation request", func(t *testing.T) {
		_, err := portal.ParseFederationRequest("https://example.com/federation/console?role_name=x", "https://mysso.awsapps.com/start")
		assert.Error(t, err)
	})

	t.Run("missing role", func(t *testing.T) {
		_, err := portal.ParseFederationRequest(
			"https://portal.sso.eu-west-1.amazonaws.com/federation/console?account_id=1",
			"https://mysso.awsapps.com/start",
		)
		assert.True(t, errors.Is(err, profile.ErrMalformed))
	})
}

func TestParseSignInResponse(t *testing.T) {
	info, err := portal.ParseSignInResponse([]byte(`{"signInToken":"tok","signInFederationLocation":"https://signin.aws.amazon.com/federation"}`))
	require.NoError(t, err)
	assert.Equal(t, "tok", info.SignInToken)
	assert.Empty(t, info.Destination)

	_, err = portal.ParseSignInResponse([]byte(`{"signInToken":"tok"}`))
	assert.Error(t, err)

	_, err = portal.ParseSignInResponse([]byte(`<html>`))
	assert.Error(t, err)
}

func TestLoginURL(t *testing.T) {
	p := profile.Profile{PortalDomain: "mysso", AccountID: "1", ProfileName: "Admin", URL: "https://mysso.awsapps.com/start/#/x"}
	info := portal.SignInInfo{SignInToken: "tok en", SignInFederationLocation: "https://signin.aws.amazon.com/federation"}

	tests := []struct {
		name        string
		infoDest    string
		destination string
		want        string
	}{
		{"default", "", "", portal.DefaultDestination},
		{"configured", "", "https://eu-west-1.console.aws.amazon.com/", "https://eu-west-1.console.aws.amazon.com/"},
		{"from response", "https://s3.console.aws.amazon.com/", "https://ignored/", "https://s3.console.aws.amazon.com/"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := info
			in.Destination = tt.infoDest
			raw, err := portal.LoginURL(p, in, tt.destination)
			require.NoError(t, err)

			u, err := url.Parse(raw)
			require.NoError(t, err)
			assert.Equal(t, "signin.aws.amazon.com", u.Host)
			assert.Equal(t, "/federation", u.Path)

			q := u.Query()
			assert.Equal(t, "login", q.Get("Action"))
			assert.Equal(t, "tok en", q.Get("SigninToken"))
			assert.Equal(t, p.URL, q.Get("Issuer"))
			assert.Equal(t, tt.want, q.Get("Destination"))
		})
	}

	_, err := portal.LoginURL(p, portal.SignInInfo{}, "")
	assert.Error(t, err)
}

func TestDecodeCandidates(t *testing.T) {
	t.Run("json list", func(t *testing.T) {
		ps, err := portal.DecodeCandidates([]byte(`[
  {"portalDomain": "mysso", "accountId": "123456789012", "accountName": "Prod", "profileName": "Admin", "url": "https://mysso.awsapps.com/start/#/a"},
  {"accountName": "Dev", "name": "ReadOnly", "url": "https://other.awsapps.com/start/#/b"}
]`))
		require.NoError(t, err)
		require.Len(t, ps, 2)
		assert.Equal(t, "mysso - 123456789012 - Admin", ps[0].CanonicalID())
		assert.Equal(t, "other", ps[1].PortalDomain, "domain inherited from the url")
		assert.Equal(t, "ReadOnly", ps[1].ProfileName)
	})

	t.Run("yaml document", func(t *testing.T) {
		ps, err := portal.DecodeCandidates([]byte(`profiles:
  - portalDomain: mysso
    accountId: "000123456789"
    profileName: Admin
    url: https://mysso.awsapps.com/start/#/a
`))
		require.NoError(t, err)
		require.Len(t, ps, 1)
		assert.Equal(t, "000123456789", ps[0].AccountID)
	})

	t.Run("incomplete entries are passed through", func(t *testing.T) {
		ps, err := portal.DecodeCandidates([]byte(`[{"portalDomain": " mysso ", "profileName": "Admin", "url": "u"}]`))
		require.NoError(t, err)
		require.Len(t, ps, 1)
		assert.ErrorIs(t, ps[0].Validate(), profile.ErrMalformed)
	})

	t.Run("empty", func(t *testing.T) {
		ps, err := portal.DecodeCandidates([]byte("  \n"))
		require.NoError(t, err)
		assert.Empty(t, ps)
	})

	t.Run("scalar", func(t *testing.T) {
		_, err := portal.DecodeCandidates([]byte(`"hello"`))
		assert.Error(t, err)
	})
}
