package entity

import "time"

// Profile is the public identity of a user, used for collaborator
// lookup by email and for attributing comments.
type Profile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
