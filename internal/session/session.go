// Package session holds the resolved marketplace identity for the process
// and the logic that discovers it.
package session

import (
	"sync"
)

// Identity is a point-in-time snapshot of the resolved account identity.
// Confirmed distinguishes a profile-verified seller from one assumed from
// the user id alone.
type Identity struct {
	UserID    string
	SellerID  string
	Confirmed bool
}

// Session is the mutable seller identity shared across fetches. It is
// created by the composition root and passed explicitly to whoever needs
// it; all access goes through the mutex.
type Session struct {
	mu       sync.Mutex
	userID   string
	sellerID string

	// confirmed records whether the seller-reputation marker was actually
	// seen on the profile, as opposed to assumed after a failed lookup.
	confirmed bool
}

// New creates an empty Session; identity is discovered on first use.
func New() *Session {
	return &Session{}
}

// NewWithSeller creates a Session pre-seeded with a manually configured
// seller id, skipping discovery entirely.
func NewWithSeller(sellerID string) *Session {
	return &Session{sellerID: sellerID, confirmed: true}
}

// SellerID returns the resolved seller id, or "" when not yet resolved.
func (s *Session) SellerID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sellerID
}

// SetIdentity stores a resolved identity. Last write wins; concurrent
// duplicate resolutions are tolerated.
func (s *Session) SetIdentity(userID, sellerID string, confirmed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = userID
	s.sellerID = sellerID
	s.confirmed = confirmed
}

// Snapshot returns the current identity.
func (s *Session) Snapshot() Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Identity{
		UserID:    s.userID,
		SellerID:  s.sellerID,
		Confirmed: s.confirmed,
	}
}
