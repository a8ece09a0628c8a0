package auth

import "github.com/golang-jwt/jwt/v5"

type Authenticator interface {
	GenerateToken(userName, role string) (string, error)
	ValidateToken(token string) (*jwt.Token, error)
	// Identity extracts the username and role carried by a validated token.
	Identity(token *jwt.Token) (string, string, error)
}
