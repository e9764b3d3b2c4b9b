package handler

// ErrorResponse is the error envelope shared by every endpoint.
type ErrorResponse struct {
	Error string `json:"Error"`
}
