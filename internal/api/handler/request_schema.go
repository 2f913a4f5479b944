package handler

import "github.com/allnik/property-service/internal/core/domain"

// createRequestRequest keeps optional and numeric fields as pointers so that
// an absent value stays distinguishable from zero.
type createRequestRequest struct {
	Type        string  `json:"type"        validate:"required"`
	Area        *int    `json:"area"        validate:"required"`
	Location    string  `json:"location"    validate:"required"`
	Bedrooms    *int    `json:"bedrooms"`
	Style       *string `json:"style"`
	Budget      *int    `json:"budget"`
	Payment     *string `json:"payment"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

type requestResponse struct {
	ID          string  `json:"id"`
	Type        string  `json:"type"`
	Area        int     `json:"area"`
	Location    string  `json:"location"`
	Bedrooms    *int    `json:"bedrooms"`
	Style       *string `json:"style"`
	Budget      *int    `json:"budget"`
	Payment     *string `json:"payment"`
	Description *string `json:"description"`
	Status      string  `json:"status"`
}

func toRequestResponse(r *domain.PropertyRequest) requestResponse {
	return requestResponse{
		ID:          r.ID,
		Type:        r.Type,
		Area:        r.Area,
		Location:    r.Location,
		Bedrooms:    r.Bedrooms,
		Style:       r.Style,
		Budget:      r.Budget,
		Payment:     r.Payment,
		Description: r.Description,
		Status:      r.Status,
	}
}
