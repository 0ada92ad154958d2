package services

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/desertthunder/myflix/internal/shared"
	"golang.org/x/oauth2"
)

// BearerTransport sets "Authorization: Bearer <token>" on each request from a token fetched at send time.
//
// When Source reports [shared.ErrNotAuthenticated] the request is sent without the header and the server decides.
type BearerTransport struct {
	Source oauth2.TokenSource
	Base   http.RoundTripper
}

func (t *BearerTransport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}

func (t *BearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.Source == nil {
		return t.base().RoundTrip(req)
	}

	token, err := t.Source.Token()
	switch {
	case errors.Is(err, shared.ErrNotAuthenticated):
		return t.base().RoundTrip(req)
	case err != nil:
		if req.Body != nil {
			req.Body.Close()
		}
		return nil, fmt.Errorf("failed to read session token: %w", err)
	}

	if token == nil || token.AccessToken == "" {
		return t.base().RoundTrip(req)
	}

	authed := req.Clone(req.Context())
	token.SetAuthHeader(authed)
	return t.base().RoundTrip(authed)
}
