package models

// Keys under which the session is persisted.
const (
	SessionUserKey  = "user"
	SessionTokenKey = "token"
)

// Session pairs the current user with the opaque bearer credential the
// service issued for them.
type Session struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// AuthResponse is returned by login and register.
type AuthResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}
