package domain

import "time"

const (
	RoleUser    = "user"
	RoleAdvisor = "advisor"
	RoleAdmin   = "admin"
)

// MaxPasswordBytes is the longest password bcrypt can hash.
const MaxPasswordBytes = 72

// User models a registered account. Email and username are unique.
type User struct {
	ID           string    `json:"id"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	City         string    `json:"city"`
	Region       string    `json:"region"`
	Expertise    string    `json:"expertise,omitempty"`
	WorkRegion   string    `json:"workRegion,omitempty"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Identity is the assertion carried by a verified session token.
type Identity struct {
	UserID string
	Role   string
}
