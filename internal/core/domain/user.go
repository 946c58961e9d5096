package domain

import "time"

// User models an authenticated actor in the system. Admin privilege is not
// stored here: it is derived per call from the admins registry.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Identity is the per-request resolved caller, threaded explicitly into
// every core call. The zero value is the anonymous caller.
type Identity struct {
	UserID   string
	Username string
}

// Anonymous reports whether no identity was resolved for the request.
func (id Identity) Anonymous() bool {
	return id.UserID == ""
}
