// Package auth implements the authentication primitives of the server:
// signed bearer tokens, password verification, and authority handling.
package auth

import (
	"errors"
	"time"

	"github.com/acamacho/dulceria/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the bearer token claim set: the registered claims plus a
// comma-joined list of granted authorities.
type Claims struct {
	jwt.RegisteredClaims
	Roles string `json:"roles"`
}

// TokenService mints and verifies HS256-signed bearer tokens. Tokens are
// valid for the half-open interval [iat, exp): a token presented exactly at
// its expiry instant is already expired.
type TokenService struct {
	secret   []byte
	validity time.Duration
	now      func() time.Time
}

func NewTokenService(secret []byte, validity time.Duration) *TokenService {
	return &TokenService{secret: secret, validity: validity, now: time.Now}
}

// Issue creates a signed token for the given username carrying the
// comma-joined authorities in the roles claim.
func (s *TokenService) Issue(username string, authorities []string) (string, error) {
	issued := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(issued.Add(s.validity)),
		},
		Roles: JoinAuthorities(authorities),
	})
	return token.SignedString(s.secret)
}

// Claims parses and validates a token string, mapping parser failures onto
// the common token error taxonomy. Expired and signature failures are
// distinct from structural ones.
func (s *TokenService) Claims(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, common.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, common.ErrTokenSignatureInvalid
		default:
			return nil, common.ErrTokenMalformed
		}
	}
	return claims, nil
}

// ExtractSubject returns the token's subject (username).
func (s *TokenService) ExtractSubject(tokenString string) (string, error) {
	claims, err := s.Claims(tokenString)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// ExtractRoles returns the token's comma-joined roles claim.
func (s *TokenService) ExtractRoles(tokenString string) (string, error) {
	claims, err := s.Claims(tokenString)
	if err != nil {
		return "", err
	}
	return claims.Roles, nil
}

// Verify reports whether the token is valid for the expected username.
// It fails closed: signature mismatch, malformed structure, expiry, and
// subject mismatch all yield false. Malformed input is an expected case and
// never produces a panic or error for the caller to handle.
func (s *TokenService) Verify(tokenString, username string) bool {
	claims, err := s.Claims(tokenString)
	if err != nil {
		return false
	}
	return claims.Subject == username
}
