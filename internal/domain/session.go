package domain

// Session describes the caller of a request. A nil *Session is an anonymous visitor.
// Credentials are verified before a Session exists; core code only reads it.
type Session struct {
	UserID       string       `json:"user_id"`
	Role         Role         `json:"role"`
	Subscription Subscription `json:"subscription_status"`
}

// Tier is the access tier derived from a session.
type Tier string

const (
	// TierRestricted covers anonymous visitors and free accounts.
	TierRestricted Tier = "restricted"
	// TierUnrestricted covers pro subscribers and admins.
	TierUnrestricted Tier = "unrestricted"
)

// Tier returns the access tier of the session. Safe to call on nil.
func (s *Session) Tier() Tier {
	if s == nil {
		return TierRestricted
	}
	if s.Role == RoleAdmin || s.Subscription == SubscriptionPro {
		return TierUnrestricted
	}
	return TierRestricted
}

// IsAdmin reports whether the session belongs to an admin. Safe to call on nil.
func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}

// Anonymous reports whether there is no authenticated user.
func (s *Session) Anonymous() bool {
	return s == nil || s.UserID == ""
}
