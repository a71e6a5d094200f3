package models

// CreateBookingRequest represents the request body for creating a booking.
// Dates are strings so that unparseable input can be told apart from missing input.
type CreateBookingRequest struct {
	ServiceID uint   `json:"serviceId"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// UpdateBookingRequest represents the request body for replacing booking details
type UpdateBookingRequest struct {
	StartDate string  `json:"startDate"`
	EndDate   string  `json:"endDate"`
	Status    *string `json:"status,omitempty"`
	ServiceID *uint   `json:"serviceId,omitempty"`
}

// UpdateBookingStatusRequest represents the request body for a status change
type UpdateBookingStatusRequest struct {
	Status string `json:"status"`
}
