package dto

// APIResponse is the envelope every JSON endpoint answers with.
// Callers must check Success before reading Data.
type APIResponse struct {
	Success bool              `json:"success"`
	Data    any               `json:"data,omitempty"`
	Error   string            `json:"error,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// OK wraps a successful payload.
func OK(data any) APIResponse {
	return APIResponse{Success: true, Data: data}
}

// Fail wraps a user-visible error message.
func Fail(message string) APIResponse {
	return APIResponse{Success: false, Error: message}
}

// FailFields wraps a validation failure with field level messages.
func FailFields(message string, fields map[string]string) APIResponse {
	return APIResponse{Success: false, Error: message, Fields: fields}
}
