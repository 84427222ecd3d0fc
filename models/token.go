package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token wraps the bearer credential returned by the login endpoint together
// with the claims parsed out of it. The client never verifies the signature,
// the server does that on every request; claims are parsed only for display
// and expiry hints.
type Token struct {
	// SignedString is the compact JWS representation as received from the
	// server and attached to Authorization headers.
	SignedString string `json:"token"`

	// Claims holds the registered claim set parsed from SignedString.
	// Zero-valued when the token could not be parsed.
	Claims jwt.RegisteredClaims `json:"-"`
}

// ParseToken builds a Token from its compact form, extracting registered
// claims without verifying the signature.
func ParseToken(signed string) Token {
	t := Token{SignedString: signed}

	parsed, _, err := jwt.NewParser().ParseUnverified(signed, &jwt.RegisteredClaims{})
	if err != nil {
		return t
	}
	if claims, ok := parsed.Claims.(*jwt.RegisteredClaims); ok {
		t.Claims = *claims
	}
	return t
}

// Subject returns the "sub" claim, usually the account identifier.
func (t Token) Subject() string {
	return t.Claims.Subject
}

// Expired reports whether the token carries an exp claim in the past.
// Tokens without an exp claim are treated as unexpired; the server remains
// the authority and will reject them with 401 if it disagrees.
func (t Token) Expired(now time.Time) bool {
	if t.Claims.ExpiresAt == nil {
		return false
	}
	return t.Claims.ExpiresAt.Before(now)
}

// String implements fmt.Stringer, returning the compact form.
func (t Token) String() string {
	return t.SignedString
}
