package models

// HospitalRequest is the body of hospital create and replace.
// Services stays untyped until it has been checked to be an array.
type HospitalRequest struct {
	Name     string      `json:"name"`
	Services interface{} `json:"services"`
}

// ServiceInput is one element of HospitalRequest.Services
type ServiceInput struct {
	Name        string  `mapstructure:"name"`
	Description string  `mapstructure:"description"`
	Price       float64 `mapstructure:"price"`
}
