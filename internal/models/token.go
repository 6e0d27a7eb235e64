package models

import "time"

// AuthResult is returned by a successful login.
type AuthResult struct {
	AccessToken string    `json:"accessToken"`
	TokenType   string    `json:"tokenType"`
	ExpiresIn   int       `json:"expiresIn"`
	TokenID     string    `json:"tokenId"`
	IssuedAt    time.Time `json:"issuedAt"`
	User        *User     `json:"user"`
}
