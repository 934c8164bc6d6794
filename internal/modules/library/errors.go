package library

import "fmt"

// FetchError reports a transport or HTTP failure while retrieving the catalog.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch catalog %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError reports a malformed catalog payload.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse catalog: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
