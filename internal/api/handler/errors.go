package handler

// ErrorResponse is the JSON envelope of every failed API call.
type ErrorResponse struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	Retryable bool   `json:"retryable,omitempty"`
}
