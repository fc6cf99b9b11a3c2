package strategy

import (
	"fmt"
	"strings"
)

// Error kinds shared by all strategies. Provider-native error codes
// (the token endpoint's "error" field) are propagated verbatim as kinds
// and are not enumerated here.
const (
	// KindMissingCode means the callback carried neither an
	// authorization code nor an access token.
	KindMissingCode = "missing_code"

	// KindToken means the token was unauthorized or failed verification.
	KindToken = "token"

	// KindOAuth2 wraps a transport-level failure during an OAuth2 call.
	KindOAuth2 = "OAuth2"

	// KindProviderError means the provider answered a user-info request
	// with a status the protocol flow does not otherwise define.
	KindProviderError = "provider_error"
)

// Error is one structured failure entry: a machine-readable kind and a
// human-readable message.
type Error struct {
	Kind    string
	Message string
}

// Error implements the error interface.
func (e Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Errors is an ordered collection of failure entries for one
// authentication attempt. Any entry means the attempt failed and no
// identity result is produced.
type Errors struct {
	entries []Error
}

// Fail appends one failure entry.
func (e *Errors) Fail(kind, message string) {
	e.entries = append(e.entries, Error{Kind: kind, Message: message})
}

// Failed reports whether any failure has been recorded.
func (e *Errors) Failed() bool {
	return e != nil && len(e.entries) > 0
}

// Entries returns the recorded failures in order.
func (e *Errors) Entries() []Error {
	if e == nil {
		return nil
	}
	return e.entries
}

// Len returns the number of recorded failures.
func (e *Errors) Len() int {
	if e == nil {
		return 0
	}
	return len(e.entries)
}

// Error implements the error interface, joining all entries.
func (e *Errors) Error() string {
	if !e.Failed() {
		return ""
	}
	parts := make([]string, len(e.entries))
	for i, entry := range e.entries {
		parts[i] = entry.Error()
	}
	return strings.Join(parts, "; ")
}
