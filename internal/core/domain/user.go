package domain

// Role determines what a user may do server-side.
// The client only uses it to decide which controls to render.
type Role string

const (
	// RoleUser is a regular authenticated user.
	RoleUser Role = "user"

	// RoleAdmin can see and edit every page and manage users.
	RoleAdmin Role = "admin"
)

// User is the authenticated principal.
type User struct {
	// ID is the user's numeric identifier.
	ID int64

	// Username is the login and display name.
	Username string

	// Email is the user's email address.
	Email string

	// Role is user or admin.
	Role Role

	// IsActive is false for blocked accounts.
	IsActive bool
}

// IsAdmin reports whether the user has the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Ref returns a lightweight reference to this user.
func (u User) Ref() UserRef {
	return UserRef{ID: u.ID, Username: u.Username, Email: u.Email}
}

// Session holds the authenticated principal and bearer credential.
// The zero value is an unauthenticated session.
type Session struct {
	// User is the authenticated user, or nil.
	User *User

	// Token is the opaque bearer credential, empty when logged out.
	Token string

	// Pending is true while a login or token resolution is in flight.
	Pending bool

	// LastErr records the most recent authentication failure.
	LastErr error
}

// Authenticated reports whether a user is logged in.
func (s Session) Authenticated() bool {
	return s.User != nil && s.Token != ""
}
