package llm

import (
	"encoding/json"
	"fmt"
	"time"
)

// RateLimitError is a 429 from the provider.
type RateLimitError struct {
	RetryAfter time.Duration
	Err        error
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("llm: rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *RateLimitError) Unwrap() error { return e.Err }

// InvalidResponseError is a reply that is not JSON or breaks the schema.
type InvalidResponseError struct {
	Content json.RawMessage
	Err     error
}

func (e *InvalidResponseError) Error() string {
	return fmt.Sprintf("llm: invalid response: %v", e.Err)
}

func (e *InvalidResponseError) Unwrap() error { return e.Err }

// UnavailableError is a provider that could not be reached or failed
// server side.
type UnavailableError struct {
	Err error
}

func (e *UnavailableError) Error() string {
	if e.Err == nil {
		return "llm: provider unavailable"
	}
	return fmt.Sprintf("llm: provider unavailable: %v", e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// TruncatedError is a reply cut off at the token limit.
type TruncatedError struct {
	Content json.RawMessage
}

func (e *TruncatedError) Error() string {
	return "llm: response truncated at max tokens"
}
