package ig

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind discriminates the single tagged Error type's variants. The
// set is exhaustive: every pipeline failure carries exactly one of
// these.
type ErrorKind int

const (
	// ErrorKindSessionExpired means the owning API reference was lost
	// during a deferred step.
	ErrorKindSessionExpired ErrorKind = iota
	// ErrorKindInvalidCredentials means no credentials are held, or the
	// held credentials are malformed.
	ErrorKindInvalidCredentials
	// ErrorKindInvalidRequest means validation or request construction
	// failed before anything was sent.
	ErrorKindInvalidRequest
	// ErrorKindCallFailed means the HTTP exchange itself failed (network,
	// transport, or an unexpected non-HTTP response).
	ErrorKindCallFailed
	// ErrorKindInvalidResponse means the response was received but failed
	// protocol-level or decode-level validation.
	ErrorKindInvalidResponse
	// ErrorKindStreamer is isomorphic to ErrorKindInvalidResponse but
	// originates from the streaming channel rather than the request
	// pipeline.
	ErrorKindStreamer
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorKindSessionExpired:
		return "SessionExpired"
	case ErrorKindInvalidCredentials:
		return "InvalidCredentials"
	case ErrorKindInvalidRequest:
		return "InvalidRequest"
	case ErrorKindCallFailed:
		return "CallFailed"
	case ErrorKindInvalidResponse:
		return "InvalidResponse"
	case ErrorKindStreamer:
		return "Streamer"
	default:
		return "Unknown"
	}
}

// Suggestion tags the recommended caller response to an Error.
type Suggestion int

const (
	SuggestionNone Suggestion = iota
	SuggestionReadDocumentation
	SuggestionLogIn
	SuggestionReviewError
	SuggestionFileBug
)

func (s Suggestion) String() string {
	switch s {
	case SuggestionReadDocumentation:
		return "ReadDocumentation"
	case SuggestionLogIn:
		return "LogIn"
	case SuggestionReviewError:
		return "ReviewError"
	case SuggestionFileBug:
		return "FileBug"
	default:
		return "None"
	}
}

// ContextPair is one piece of contributing evidence accumulated on an
// Error as it propagates upward (e.g. the last successfully executed
// paginated request).
type ContextPair struct {
	Label string
	Value interface{}
}

// Error is the single tagged error every pipeline stage can fail with.
// Attachments are optional and may be filled in by outer stages after
// the Error is first constructed.
type Error struct {
	Kind       ErrorKind
	Message    string
	Request    *http.Request
	Response   *http.Response
	Data       []byte
	Cause      error
	Suggestion Suggestion
	Context    []ContextPair
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("ig: %s: %s: %v", e.Kind, e.Message, e.Cause)
	}

	return fmt.Sprintf("ig: %s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// WithContext returns e with an additional (label, value) context pair
// appended. e is mutated and returned for chaining convenience.
func (e *Error) WithContext(label string, value interface{}) *Error {
	e.Context = append(e.Context, ContextPair{Label: label, Value: value})

	return e
}

// NewSessionExpired constructs an ErrorKindSessionExpired error.
func NewSessionExpired(message string) *Error {
	return &Error{Kind: ErrorKindSessionExpired, Message: message, Suggestion: SuggestionLogIn}
}

// NewInvalidCredentials constructs an ErrorKindInvalidCredentials error.
func NewInvalidCredentials(message string) *Error {
	return &Error{Kind: ErrorKindInvalidCredentials, Message: message, Suggestion: SuggestionLogIn}
}

// NewInvalidRequest constructs an ErrorKindInvalidRequest error.
func NewInvalidRequest(message string, cause error) *Error {
	return &Error{Kind: ErrorKindInvalidRequest, Message: message, Cause: cause, Suggestion: SuggestionReviewError}
}

// NewCallFailed constructs an ErrorKindCallFailed error.
func NewCallFailed(message string, request *http.Request, response *http.Response, data []byte, cause error) *Error {
	return &Error{
		Kind:       ErrorKindCallFailed,
		Message:    message,
		Request:    request,
		Response:   response,
		Data:       data,
		Cause:      cause,
		Suggestion: SuggestionReviewError,
	}
}

// NewInvalidResponse constructs an ErrorKindInvalidResponse error.
func NewInvalidResponse(message string, request *http.Request, response *http.Response, data []byte, cause error) *Error {
	return &Error{
		Kind:       ErrorKindInvalidResponse,
		Message:    message,
		Request:    request,
		Response:   response,
		Data:       data,
		Cause:      cause,
		Suggestion: SuggestionFileBug,
	}
}

// NewStreamerError constructs an ErrorKindStreamer error, isomorphic to
// ErrorKindInvalidResponse but originating from the streaming channel.
func NewStreamerError(message string, cause error) *Error {
	return &Error{Kind: ErrorKindStreamer, Message: message, Cause: cause, Suggestion: SuggestionFileBug}
}

// IsSessionExpired reports whether err (or any error it wraps) is an
// ErrorKindSessionExpired Error.
func IsSessionExpired(err error) bool { return hasKind(err, ErrorKindSessionExpired) }

// IsInvalidCredentials reports whether err (or any error it wraps) is an
// ErrorKindInvalidCredentials Error.
func IsInvalidCredentials(err error) bool { return hasKind(err, ErrorKindInvalidCredentials) }

// IsInvalidRequest reports whether err (or any error it wraps) is an
// ErrorKindInvalidRequest Error.
func IsInvalidRequest(err error) bool { return hasKind(err, ErrorKindInvalidRequest) }

// IsCallFailed reports whether err (or any error it wraps) is an
// ErrorKindCallFailed Error.
func IsCallFailed(err error) bool { return hasKind(err, ErrorKindCallFailed) }

// IsInvalidResponse reports whether err (or any error it wraps) is an
// ErrorKindInvalidResponse Error.
func IsInvalidResponse(err error) bool { return hasKind(err, ErrorKindInvalidResponse) }

// IsStreamerError reports whether err (or any error it wraps) is an
// ErrorKindStreamer Error.
func IsStreamerError(err error) bool { return hasKind(err, ErrorKindStreamer) }

func hasKind(err error, kind ErrorKind) bool {
	var igErr *Error
	if errors.As(err, &igErr) {
		return igErr.Kind == kind
	}

	return false
}
