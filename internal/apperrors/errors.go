package apperrors

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindImageProcessing
	KindStorageUnavailable
)

// error with a kind, the transport layer picks the HTTP status by it
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func ImageProcessing(message string, err error) *Error {
	return &Error{Kind: KindImageProcessing, Message: message, Err: err}
}

func StorageUnavailable(err error) *Error {
	return &Error{Kind: KindStorageUnavailable, Message: "хранилище недоступно", Err: err}
}

// KindOf returns the error kind, KindInternal for everything else
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
