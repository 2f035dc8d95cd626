package commands

import (
	"context"

	"github.com/ruminaider/sso-profiles/internal/portal"
	"github.com/ruminaider/sso-profiles/internal/profile"
)

// InterceptRequest describes a federation request observed when a profile
// was opened from a portal.
type InterceptRequest struct {
	RequestURL string
	OriginURL  string

	// Response is the federation response body, if captured.
	Response []byte

	// Force saves the profile even when auto-population is off.
	Force bool
}

// Container is the browser container a profile should be opened in.
type Container struct {
	Name  string
	Color profile.Color
}

// InterceptResult is what an intercepted request resolved to.
type InterceptResult struct {
	Profile   profile.Profile
	Saved     bool
	LoginURL  string
	Container *Container
}

// Intercept records the profile behind a federation request when
// auto-population is enabled, and builds its console login URL when the
// response was captured.
func Intercept(ctx context.Context, env *Env, req InterceptRequest) (*InterceptResult, error) {
	p, err := portal.ParseFederationRequest(req.RequestURL, req.OriginURL)
	if err != nil {
		return nil, err
	}

	result := &InterceptResult{Profile: p}
	if env.Config.AutoPopulateUsedProfiles || req.Force {
		stored, err := env.Store.ReconcileOne(ctx, p)
		if err != nil {
			return nil, err
		}
		result.Profile = stored
		result.Saved = true
	}

	if len(req.Response) > 0 {
		info, err := portal.ParseSignInResponse(req.Response)
		if err != nil {
			return nil, err
		}
		loginURL, err := portal.LoginURL(result.Profile, info, env.Config.Destination)
		if err != nil {
			return nil, err
		}
		result.LoginURL = loginURL
	}

	switch {
	case result.Saved && env.Config.OpenProfileInDedicatedContainer:
		result.Container = &Container{Name: result.Profile.Title(), Color: result.Profile.Color}
	case env.Config.DefaultContainer != "":
		result.Container = &Container{Name: env.Config.DefaultContainer}
	}
	return result, nil
}
