// internal/domain/identity/identity.go
package identity

// Identity is the caller's resolved authentication state for one request.
// It is built once by the HTTP layer and passed explicitly into every cart
// and checkout operation; domain code never consults ambient session state.
type Identity struct {
	UserID    *uint  // nil for anonymous callers
	Name      string // account display name, empty when anonymous
	Phone     string // account phone, empty when anonymous
	SessionID string // browser session token, always set for anonymous callers
}

// Authenticated reports whether the identity belongs to a registered account.
func (id Identity) Authenticated() bool {
	return id.UserID != nil
}

// Account returns an identity for a registered user.
func Account(userID uint, name, phone string) Identity {
	return Identity{UserID: &userID, Name: name, Phone: phone}
}

// Guest returns an identity for an anonymous browser session.
func Guest(sessionID string) Identity {
	return Identity{SessionID: sessionID}
}
