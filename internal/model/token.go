package model

import "time"

// RevokedToken records the jti of an access token that must be rejected
// regardless of its cryptographic validity or remaining lifetime. Rows are
// only ever inserted; revocation is terminal.
type RevokedToken struct {
	ID        uint64    // revoked_tokens.id
	JTI       string    // revoked_tokens.jti (36-char token identifier)
	CreatedAt time.Time // revoked_tokens.created_at (revocation time)
}
