package domain

// SessionUser is the authenticated-user reference stored in a session.
type SessionUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Session is the server-side state behind the session cookie.
type Session struct {
	ID   string       `json:"id"`
	User *SessionUser `json:"user,omitempty"`
	Cart Cart         `json:"cart"`

	// IsNew is true until the session has been written to the store once.
	IsNew bool `json:"-"`
}

// NewSession returns an empty, unauthenticated session.
func NewSession(id string) *Session {
	return &Session{ID: id, IsNew: true}
}

// Authenticated reports whether a user has logged in on this session.
func (s *Session) Authenticated() bool {
	return s != nil && s.User != nil
}

// SignIn links u to the session.
func (s *Session) SignIn(u *User) {
	s.User = &SessionUser{ID: u.ID, Username: u.Username, Email: u.Email}
}

// SignOut drops the authenticated user and keeps the cart.
func (s *Session) SignOut() {
	s.User = nil
}

// LogoutMode selects what logging out destroys.
type LogoutMode string

const (
	// LogoutDestroy deletes the whole session, cart included.
	LogoutDestroy LogoutMode = "destroy"
	// LogoutKeepCart clears only the authenticated user.
	LogoutKeepCart LogoutMode = "keep_cart"
)

// ParseLogoutMode converts a config value to a LogoutMode, falling back to
// LogoutDestroy for anything unrecognised.
func ParseLogoutMode(s string) LogoutMode {
	if LogoutMode(s) == LogoutKeepCart {
		return LogoutKeepCart
	}
	return LogoutDestroy
}
