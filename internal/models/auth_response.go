package models

// Response is the envelope of every JSON body the API returns
type Response struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}
