// Package auth provides JWT authentication for the proxy API.
package auth

import "github.com/golang-jwt/jwt/v5"

// TokenType marks what a token may be used for.
type TokenType string

// TokenTypeAccess is the short-lived token used for API authorization.
const TokenTypeAccess TokenType = "access"

// Claims are the JWT claims carried by proxy API tokens.
type Claims struct {
	jwt.RegisteredClaims

	// Username is the authenticated API account.
	Username string `json:"username"`

	// TokenType marks the token's purpose.
	TokenType TokenType `json:"token_type"`
}

// IsAccessToken returns true if this is an access token.
func (c *Claims) IsAccessToken() bool {
	return c.TokenType == TokenTypeAccess
}
