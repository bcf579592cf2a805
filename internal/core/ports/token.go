package ports

// Claim is the minimal identity a token carries: just the user id. Role and
// email are deliberately excluded so that privilege is always re-resolved
// against the store, never trusted from stale token contents.
type Claim struct {
	UserID string
}

// TokenIssuer produces and validates signed, tamper-evident tokens.
// Verify is pure: it requires no I/O and no record of issued tokens.
type TokenIssuer interface {
	Issue(claim Claim) (string, error)

	// Verify checks signature and expiry. Tampered, expired, and otherwise
	// malformed tokens all fail with domain.ErrInvalidToken, with no
	// distinguishing detail leaked to the caller.
	Verify(token string) (Claim, error)
}
