package domain

import "time"

const RequestStatusPending = "pending"

// MaxDescriptionLength bounds PropertyRequest.Description.
const MaxDescriptionLength = 500

// PropertyRequest is a property search request owned by exactly one user.
// Optional attributes are nil when the client did not send them.
type PropertyRequest struct {
	ID          string
	UserID      string
	Type        string
	Area        int
	Location    string
	Bedrooms    *int
	Style       *string
	Budget      *int
	Payment     *string
	Description *string
	Status      string
	CreatedAt   time.Time
}
