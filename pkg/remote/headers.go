package remote

import (
	"fmt"
	"net/http"
)

// HeaderFactory returns a fresh header set for one outbound request.
// Each call returns an independent http.Header so concurrent requests
// never share a mutable header collection.
type HeaderFactory func() http.Header

// NewHeaderFactory builds the authenticated header set used on every
// call to the task service: a {name}/{version} user agent, an
// "apikey {token}" authorization value, and a JSON content type.
func NewHeaderFactory(name, version, token string) HeaderFactory {
	userAgent := fmt.Sprintf("%s/%s", name, version)
	authorization := fmt.Sprintf("apikey %s", token)

	return func() http.Header {
		h := make(http.Header, 3)
		h.Set("User-Agent", userAgent)
		h.Set("Authorization", authorization)
		h.Set("Content-Type", "application/json")
		return h
	}
}
