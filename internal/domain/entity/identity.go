package entity

// User is the authenticated operator behind a request
type User struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
}

// Identity is the outcome of an identity check
type Identity struct {
	Authenticated bool  `json:"authenticated"`
	User          *User `json:"user,omitempty"`
}

// Anonymous is the identity of a request without valid credentials
var Anonymous = Identity{Authenticated: false}
