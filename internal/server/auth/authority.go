package auth

import "strings"

// RolePrefix is prepended to stored role names to form authority strings.
const RolePrefix = "ROLE_"

// Well-known authorities.
const (
	AdminAuthority = RolePrefix + "ADMIN"
	UserAuthority  = RolePrefix + "USER"
)

// NormalizeAuthority maps a stored role name onto its authority string,
// adding the ROLE_ prefix when absent. This is the single place the prefix
// rule lives.
func NormalizeAuthority(role string) string {
	if strings.HasPrefix(role, RolePrefix) {
		return role
	}
	return RolePrefix + role
}

// JoinAuthorities renders an authority list as the comma-joined roles claim.
func JoinAuthorities(authorities []string) string {
	return strings.Join(authorities, ",")
}

// SplitAuthorities parses a comma-joined roles claim back into a list,
// dropping empty elements.
func SplitAuthorities(claim string) []string {
	if claim == "" {
		return nil
	}
	parts := strings.Split(claim, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Principal is the immutable outcome of a successful authentication:
// a resolved identity plus its granted authorities. The zero value is not
// meaningful; an unauthenticated request simply carries no Principal.
type Principal struct {
	Username    string
	Authorities []string
}

// NewPrincipal builds a Principal holding exactly one authority derived
// from the account's role.
func NewPrincipal(username, role string) *Principal {
	return &Principal{
		Username:    username,
		Authorities: []string{NormalizeAuthority(role)},
	}
}

// HasAuthority reports whether the principal holds the given authority.
func (p *Principal) HasAuthority(authority string) bool {
	for _, a := range p.Authorities {
		if a == authority {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the principal holds the ADMIN authority.
func (p *Principal) IsAdmin() bool {
	return p.HasAuthority(AdminAuthority)
}
