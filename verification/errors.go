package verification

import (
	"errors"
	"net/http"
)

// Kind classifies why a verification or lookup could not be answered.
type Kind string

const (
	KindMissingField           Kind = "missing_field"
	KindInvalidField           Kind = "invalid_field"
	KindVerificationCallFailed Kind = "verification_call_failed"
	KindStatusCallFailed       Kind = "status_call_failed"
	KindPostNotFound           Kind = "post_not_found"
	KindStoreQueryFailed       Kind = "store_query_failed"
	KindContentFetchFailed     Kind = "content_fetch_failed"
)

// Status maps a kind to its HTTP status: caller mistakes are 400, everything
// else is a fault on our side or upstream.
func (k Kind) Status() int {
	switch k {
	case KindMissingField, KindInvalidField:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

const (
	MessageMissingField           = "cid, signature and address are required"
	MessageVerificationCallFailed = "Error verifying content"
	MessageStatusCallFailed       = "Failed to fetch post"
	MessagePostNotFound           = "Verification was successful but the post could not be found"
	MessageStoreQueryFailed       = "Failed to fetch post"
	MessageContentFetchFailed     = "Failed to fetch content from the content gateway"
)

// Error is returned for every outcome that is not a verification answer.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func newError(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf returns the kind of a verification error, or "" for anything else.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

var (
	ErrMissingField           = &Error{Kind: KindMissingField}
	ErrInvalidField           = &Error{Kind: KindInvalidField}
	ErrVerificationCallFailed = &Error{Kind: KindVerificationCallFailed}
	ErrStatusCallFailed       = &Error{Kind: KindStatusCallFailed}
	ErrPostNotFound           = &Error{Kind: KindPostNotFound}
	ErrStoreQueryFailed       = &Error{Kind: KindStoreQueryFailed}
	ErrContentFetchFailed     = &Error{Kind: KindContentFetchFailed}
)
