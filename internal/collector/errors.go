package collector

import "fmt"

// NetworkError is a transport failure or a non-2xx response from the price API.
type NetworkError struct {
	StatusCode int // 0 when the request never got a response
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("price api: status %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("price api: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// SchemaValidationError reports a price field that is not a JSON number.
type SchemaValidationError struct {
	Field string
	Got   string
}

func (e *SchemaValidationError) Error() string {
	return fmt.Sprintf("schema validation failed: %s: expected number, got %s", e.Field, e.Got)
}
