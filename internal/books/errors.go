package books

import (
	"errors"
	"fmt"
)

// ConfigError means the request itself is wrong: unknown sport, unknown book,
// or a missing required option. It is raised before any network call and
// always propagates to the caller.
type ConfigError struct {
	Sport  string
	Book   string
	Reason string
}

func (e *ConfigError) Error() string {
	switch {
	case e.Book != "" && e.Sport != "":
		return fmt.Sprintf("book %q not usable for sport %q: %s", e.Book, e.Sport, e.Reason)
	case e.Sport != "":
		return fmt.Sprintf("sport %q: %s", e.Sport, e.Reason)
	default:
		return e.Reason
	}
}

// FetchError covers transport failures, timeouts and non-success HTTP
// statuses. Fatal to the one book's attempt, never to the whole collection.
type FetchError struct {
	Book   string
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: fetch %s: status %d", e.Book, e.URL, e.Status)
	}
	return fmt.Sprintf("%s: fetch %s: %v", e.Book, e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// DecodeError means the response body was not parseable JSON.
type DecodeError struct {
	Book string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: decode response: %v", e.Book, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// IsConfigError reports whether err is (or wraps) a ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}
