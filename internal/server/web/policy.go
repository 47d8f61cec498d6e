package web

import (
	"strings"

	"github.com/acamacho/dulceria/internal/server/auth"
)

// Decision is the outcome of evaluating the access policy for a request.
type Decision int

const (
	// DecisionAllow lets the request through.
	DecisionAllow Decision = iota
	// DecisionLogin means the request needs authentication it does not have.
	DecisionLogin
	// DecisionDeny means the principal is authenticated but lacks the
	// required authority.
	DecisionDeny
)

// rule matches a path prefix against a required set of authorities. An empty
// set means public; a nil principal fails any non-public rule.
type rule struct {
	prefix      string
	exact       bool
	authorities []string
}

func (r rule) matches(path string) bool {
	if r.exact {
		return path == r.prefix
	}
	return strings.HasPrefix(path, r.prefix)
}

// AccessPolicy is the static, ordered route authorization table. Rules are
// evaluated top to bottom and the first match wins; the trailing catch-all
// requires authentication for anything not matched earlier.
type AccessPolicy struct {
	rules []rule
}

// NewAccessPolicy builds the production route table.
func NewAccessPolicy() *AccessPolicy {
	return &AccessPolicy{rules: []rule{
		// Public surface: landing pages, auth endpoints, static assets.
		{prefix: "/", exact: true},
		{prefix: "/home", exact: true},
		{prefix: "/login", exact: true},
		{prefix: "/signup", exact: true},
		{prefix: "/access-denied", exact: true},
		{prefix: "/css/"},
		{prefix: "/js/"},
		{prefix: "/imagenes/"},
		{prefix: "/api/auth/"},
		{prefix: "/oauth2/"},
		{prefix: "/api/products", exact: true},
		{prefix: "/api/products/"},

		// Role-gated areas.
		{prefix: "/admin/", authorities: []string{auth.AdminAuthority}},
		{prefix: "/api/admin/", authorities: []string{auth.AdminAuthority}},
		{prefix: "/user/", authorities: []string{auth.UserAuthority, auth.AdminAuthority}},
		{prefix: "/api/user/", authorities: []string{auth.UserAuthority, auth.AdminAuthority}},
	}}
}

// Evaluate decides whether the principal (nil for anonymous) may reach path.
func (p *AccessPolicy) Evaluate(path string, principal *auth.Principal) Decision {
	for _, r := range p.rules {
		if !r.matches(path) {
			continue
		}
		if len(r.authorities) == 0 {
			return DecisionAllow
		}
		if principal == nil {
			return DecisionLogin
		}
		for _, a := range r.authorities {
			if principal.HasAuthority(a) {
				return DecisionAllow
			}
		}
		return DecisionDeny
	}

	// Anything else just requires an authenticated principal.
	if principal == nil {
		return DecisionLogin
	}
	return DecisionAllow
}
