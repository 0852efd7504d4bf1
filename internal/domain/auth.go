package domain

import "time"

// IssuedToken describes a freshly minted access token.
type IssuedToken struct {
	Token     string
	Subject   string
	Role      Role
	ExpiresAt time.Time
}
