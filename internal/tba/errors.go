package tba

import "fmt"

// UpstreamError is returned for transport failures and non-2xx responses.
type UpstreamError struct {
	Endpoint   string
	StatusCode int // 0 when the request never got a response
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("tba %s: unexpected status %d", e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("tba %s: %v", e.Endpoint, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
