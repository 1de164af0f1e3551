package services

import "errors"

// Sentinel errors handlers translate to HTTP statuses. Anything else is an
// internal error and maps to 500 with a generic message.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrUpstream   = errors.New("upstream service failed")
)

func validationError(msg string) error {
	return &taggedError{tag: ErrValidation, msg: msg}
}

func notFoundError(msg string) error {
	return &taggedError{tag: ErrNotFound, msg: msg}
}

func upstreamError(msg string, cause error) error {
	if cause != nil {
		msg = msg + ": " + cause.Error()
	}
	return &taggedError{tag: ErrUpstream, msg: msg}
}

type taggedError struct {
	tag error
	msg string
}

func (e *taggedError) Error() string {
	return e.msg
}

func (e *taggedError) Is(target error) bool {
	return target == e.tag
}
