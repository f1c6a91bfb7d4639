// Package types holds the wire envelopes shared by every API handler.
package types

// SuccessEnvelope wraps successful payloads; handlers nest data one
// level down so list and object responses decode the same way on the
// app side.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the client-facing error body. Code is the stable
// machine-readable identifier; Details is set only for validation
// failures, carrying the field-level messages.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope wraps an APIError the same way SuccessEnvelope wraps
// data.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
