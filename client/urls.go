package client

import (
	"net/url"
	"strings"

	"github.com/pkg/errors"
)

// Resource is one of the platform's REST endpoints.
type Resource struct {
	path          string
	requiresToken bool
}

// Path returns the fixed resource path.
func (r Resource) Path() string {
	return r.path
}

// The documented Payvment REST resources.
var (
	ResourceStoresList     = Resource{path: "/1/stores/list", requiresToken: true}
	ResourceOrders         = Resource{path: "/rest/orders/", requiresToken: true}
	ResourceProductsImport = Resource{path: "/1/products/import", requiresToken: true}
	ResourceAccountsUser   = Resource{path: "/1/accounts/user", requiresToken: true}
)

// BuildURL composes the fully qualified URL for a resource: environment
// base URL, fixed path, access_token when the resource requires one, then
// each query parameter in its given order. Deterministic given identical
// inputs; no network or state mutation.
func (s *Session) BuildURL(resource Resource, params Params) (string, error) {
	var b strings.Builder
	b.WriteString(s.env.BaseURL)
	b.WriteString(resource.path)

	separator := "?"
	if resource.requiresToken {
		cred, ok := s.creds.Get()
		if !ok || !cred.Valid() {
			return "", errors.Wrap(ErrNotAuthenticated, "[Session.BuildURL] "+resource.path)
		}
		b.WriteString("?access_token=")
		b.WriteString(cred.AccessToken)
		separator = "&"
	}

	for _, p := range params {
		b.WriteString(separator)
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteString("=")
		b.WriteString(url.QueryEscape(p.Value))
		separator = "&"
	}

	return b.String(), nil
}
