package models

import "time"

// Token is a signed bearer credential. UserID is its "sub" claim, the
// identity sync records are keyed by.
type Token struct {
	SignedString string    `json:"token"`
	UserID       string    `json:"user_id"`
	ExpiresAt    time.Time `json:"expires_at"`
}

func (t Token) String() string {
	return t.SignedString
}
