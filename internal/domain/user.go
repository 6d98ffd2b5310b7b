package domain

import "time"

// Role represents the user's permission level in the system.
type Role string

const (
	// RoleAdmin grants access to content and taxonomy management.
	RoleAdmin Role = "admin"
	// RoleUser grants standard browsing access.
	RoleUser Role = "user"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// Subscription is the user's billing status.
type Subscription string

const (
	// SubscriptionFree is the default for new accounts.
	SubscriptionFree Subscription = "free"
	// SubscriptionPro removes the upgrade prompt.
	SubscriptionPro Subscription = "pro"
)

// Valid reports whether s is a known subscription status.
func (s Subscription) Valid() bool {
	return s == SubscriptionFree || s == SubscriptionPro
}

// User represents an account in the system.
type User struct {
	ID            string       `json:"id"`
	Email         string       `json:"email"`
	PasswordHash  string       `json:"-"`
	Name          string       `json:"name"`
	Role          Role         `json:"role"`
	Subscription  Subscription `json:"subscription_status"`
	EmailVerified bool         `json:"email_verified"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// IsAdmin returns true if the user has administrative privileges.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Touch updates the UpdatedAt timestamp.
func (u *User) Touch() {
	u.UpdatedAt = time.Now()
}

// Session returns the session descriptor for this user.
func (u *User) Session() *Session {
	return &Session{
		UserID:       u.ID,
		Role:         u.Role,
		Subscription: u.Subscription,
	}
}
