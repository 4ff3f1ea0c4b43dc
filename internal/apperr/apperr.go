// Package apperr defines the error taxonomy shared by the service and
// handler layers. Services raise *Error values at the point of violation;
// handlers map the Kind onto an HTTP status and render the {title, detail}
// body that clients branch on. Nothing in between swallows or rewraps
// these errors.
package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies a failure. The set is closed: every error the service
// layer produces is one of these, and anything else is treated as an
// opaque internal failure.
type Kind int

const (
	Internal           Kind = iota // unexpected collaborator failure
	Validation                     // malformed or missing input
	Authentication                 // missing/invalid token or bad login credential
	Authorization                  // authenticated but wrong role or not the owner
	NotFound                       // referenced entity does not exist
	ForbiddenOperation             // business rule rejection (past slot, duplicate)
)

// Wire-facing titles. The forbidden-operation title matches the legacy
// wire text so existing clients keep matching on it.
var titles = map[Kind]string{
	Internal:           "서버 오류가 발생했습니다.",
	Validation:         "잘못된 입력입니다.",
	Authentication:     "인증에 실패했습니다.",
	Authorization:      "권한이 없습니다.",
	NotFound:           "대상을 찾을 수 없습니다.",
	ForbiddenOperation: "허용되지 않는 작업입니다.",
}

var statuses = map[Kind]int{
	Internal:           http.StatusInternalServerError,
	Validation:         http.StatusBadRequest,
	Authentication:     http.StatusUnauthorized,
	Authorization:      http.StatusForbidden,
	NotFound:           http.StatusNotFound,
	ForbiddenOperation: http.StatusBadRequest,
}

// Error is a classified failure with a human-readable reason. Detail is
// part of the wire contract; Err, when set, preserves the underlying
// cause for logs and errors.Is checks.
type Error struct {
	Kind   Kind
	Detail string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Detail + ": " + e.Err.Error()
	}
	return e.Detail
}

func (e *Error) Unwrap() error { return e.Err }

// Title returns the client-facing title for the error's kind.
func (e *Error) Title() string { return titles[e.Kind] }

// Status returns the HTTP status code the error maps to.
func (e *Error) Status() int { return statuses[e.Kind] }

// New builds an *Error of the given kind with a client-facing detail.
func New(kind Kind, detail string) *Error {
	return &Error{Kind: kind, Detail: detail}
}

// Wrap is like New but keeps the underlying cause attached.
func Wrap(kind Kind, detail string, err error) *Error {
	return &Error{Kind: kind, Detail: detail, Err: err}
}

// KindOf extracts the Kind from err. Errors that are not *Error values
// are classified as Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// As returns the *Error inside err, or a generic internal *Error when err
// was produced outside this taxonomy.
func As(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{Kind: Internal, Detail: "요청을 처리하지 못했습니다.", Err: err}
}
