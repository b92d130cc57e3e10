package service

import (
	"errors"
	"fmt"
)

const (
	// ErrInternalServerError means that an internal server error has occurred.
	ErrInternalServerError = "internal_server_error"
	// ErrBadParameter means that provided parameter does not match declared.
	ErrBadParameter = "bad_parameter"
	// ErrAddressSyntax means that an address specification matches neither the
	// "[HOST]:PORT" nor the "HOST:PORT" grammar, or that defaults could not fill
	// in a missing host or port.
	ErrAddressSyntax = "address_syntax"
	// ErrAddressResolution means that host and port are present but are not a
	// numeric literal of any address family.
	ErrAddressResolution = "address_resolution"
	// ErrProtocolForm means that a registration body is not valid form data or
	// does not carry exactly one "client" value.
	ErrProtocolForm = "protocol_form"
)

// FacilitatorError represents an error within the context of facilitator services.
type FacilitatorError struct {
	// Code is a machine-readable code.
	Code string `json:"code,omitempty"`
	// Message is a human-readable message.
	Message string `json:"message"`
	// Inner is a wrapped error that is never shown to API consumers.
	Inner error `json:"-"`
}

// NewFacilitatorError creates a new FacilitatorError.
func NewFacilitatorError(code string, message string, inner error) *FacilitatorError {
	return &FacilitatorError{
		Code:    code,
		Message: message,
		Inner:   inner,
	}
}

func NewInternalServerError(message string, inner error) *FacilitatorError {
	fInner := ToFacilitatorError(inner)
	if fInner != nil {
		return fInner
	}

	return NewFacilitatorError(ErrInternalServerError, message, inner)
}

func NewBadParameterError(message string, inner error) *FacilitatorError {
	fInner := ToFacilitatorError(inner)
	if fInner != nil {
		return fInner
	}

	return NewFacilitatorError(ErrBadParameter, message, inner)
}

func NewAddressSyntaxError(message string, inner error) *FacilitatorError {
	return NewFacilitatorError(ErrAddressSyntax, message, inner)
}

func NewAddressResolutionError(message string, inner error) *FacilitatorError {
	return NewFacilitatorError(ErrAddressResolution, message, inner)
}

func NewProtocolFormError(message string, inner error) *FacilitatorError {
	return NewFacilitatorError(ErrProtocolForm, message, inner)
}

func (e FacilitatorError) Error() string {
	if e.Inner != nil {
		return fmt.Sprintf("%s %s: %v", e.Code, e.Message, e.Inner)
	}

	return fmt.Sprintf("%s %s", e.Code, e.Message)
}

// Unwrap the error returning the error's reason.
func (e FacilitatorError) Unwrap() error {
	return e.Inner
}

// ToFacilitatorError returns a pointer to a facilitator error, or nil if it is not a facilitator error.
func ToFacilitatorError(err error) *FacilitatorError {
	var e *FacilitatorError
	if errors.As(err, &e) {
		return e
	}

	return nil
}

// ToErrorCode returns the code of the error, if available.
func ToErrorCode(err error) string {
	ferr := ToFacilitatorError(err)
	if ferr != nil {
		return ferr.Code
	}
	return ""
}

func IsFacilitatorError(err error, code string) bool {
	ferr := ToFacilitatorError(err)
	if ferr != nil {
		return ferr.Code == code
	}
	return false
}

func IsInternalServerError(err error) bool {
	return IsFacilitatorError(err, ErrInternalServerError)
}

func IsBadParameterError(err error) bool {
	return IsFacilitatorError(err, ErrBadParameter)
}

func IsAddressSyntaxError(err error) bool {
	return IsFacilitatorError(err, ErrAddressSyntax)
}

func IsAddressResolutionError(err error) bool {
	return IsFacilitatorError(err, ErrAddressResolution)
}

func IsProtocolFormError(err error) bool {
	return IsFacilitatorError(err, ErrProtocolForm)
}
