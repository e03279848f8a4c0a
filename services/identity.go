package services

// Identity is the resolved requester, passed explicitly into every operation.
// Exactly one side matters per request: UserID for authenticated customers,
// GuestCartID for anonymous guests holding a signed cart cookie.
type Identity struct {
	UserID      uint
	GuestCartID uint
}

func (id Identity) Authenticated() bool { return id.UserID != 0 }
