package ai

import "fmt"

// UnsupportedProviderError is returned by the registry for identifiers
// outside the configured set.
type UnsupportedProviderError struct {
	Name string
}

func (e *UnsupportedProviderError) Error() string {
	return fmt.Sprintf("unsupported ai provider: %s", e.Name)
}

// HTTPError is a non-success status from a vendor endpoint. Body holds a
// bounded snippet of the response body for diagnostics.
type HTTPError struct {
	Provider string
	Status   int
	Body     string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: unexpected status %d", e.Provider, e.Status)
	}
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Provider, e.Status, e.Body)
}

// APIError is a vendor-reported application error, including errors some
// vendors embed inside a 200 response body.
type APIError struct {
	Provider string
	Message  string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

// MalformedError means the vendor response could not be decoded, or the
// expected response shape was absent.
type MalformedError struct {
	Provider string
	Reason   string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("%s: malformed response: %s", e.Provider, e.Reason)
}
