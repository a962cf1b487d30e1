package validation

import "strings"

// FieldError represents a validation error on a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// CommandRequest mirrors the fields needed for command envelope validation.
type CommandRequest struct {
	CallerExternalID string
	Verb             string
	CallbackToken    string
}

// ValidateCommandRequest validates the normalized command envelope. The
// envelope must identify the caller and carry either a verb or a callback
// token; everything beyond that is the engine's concern.
func ValidateCommandRequest(req CommandRequest) []FieldError {
	var errs []FieldError

	if strings.TrimSpace(req.CallerExternalID) == "" {
		errs = append(errs, FieldError{Field: "callerExternalId", Message: "callerExternalId is required"})
	}

	if strings.TrimSpace(req.Verb) == "" && strings.TrimSpace(req.CallbackToken) == "" {
		errs = append(errs, FieldError{Field: "verb", Message: "either verb or callbackToken is required"})
	}

	return errs
}
