// Package errorx defines coded business errors.
// A CodeError carries a stable business code alongside its message, wraps an
// underlying cause with %w semantics, and cooperates with errors.Is/errors.As.
package errorx

import (
	"errors"
	"fmt"
)

// CodeError is an error with a business status code.
type CodeError struct {
	Code  int    // business status code
	Msg   string // human-readable message
	cause error  // wrapped underlying error
}

// Error implements the error interface. When a cause is present the result is
// "message: cause", otherwise just the message.
func (e *CodeError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.cause)
	}
	return e.Msg
}

// Unwrap exposes the cause to errors.Is/errors.As.
func (e *CodeError) Unwrap() error {
	return e.cause
}

// New creates a CodeError without a cause.
func New(code int, msg string) *CodeError {
	return &CodeError{
		Code: code,
		Msg:  msg,
	}
}

// Newf creates a CodeError with a formatted message.
func Newf(code int, format string, args ...any) *CodeError {
	return &CodeError{
		Code: code,
		Msg:  fmt.Sprintf(format, args...),
	}
}

// Wrap attaches a code and message to an underlying error.
// Usage: errorx.Wrap(err, CodeDBError, "create group")
func Wrap(err error, code int, msg string) *CodeError {
	return &CodeError{
		Code:  code,
		Msg:   msg,
		cause: err,
	}
}

// Wrapf is Wrap with a formatted message.
func Wrapf(err error, code int, format string, args ...any) *CodeError {
	return &CodeError{
		Code:  code,
		Msg:   fmt.Sprintf(format, args...),
		cause: err,
	}
}

// GetCode extracts the business code from an error chain.
// Non-CodeError values map to CodeServerBusy.
func GetCode(err error) int {
	var codeErr *CodeError
	if errors.As(err, &codeErr) {
		return codeErr.Code
	}
	return CodeServerBusy
}

// Is reports whether the error chain contains a CodeError with the given code.
// Rejections are matched by code, not by instance, because most are created
// ad hoc with contextual messages.
func Is(err error, code int) bool {
	var codeErr *CodeError
	return errors.As(err, &codeErr) && codeErr.Code == code
}

// Business status codes.
//
// 1xxx are generic infrastructure/protocol codes, 2xxx are the engine's typed
// rejection kinds. Every rejected operation returns one of these, never a
// bare error, so the caller can render a precise message.
const (
	CodeSuccess      = 1000 // success
	CodeInvalidParam = 1001 // malformed or invalid request parameters
	CodeUserExist    = 1002 // account already registered
	CodeUserNotExist = 1003 // account not found
	CodeWrongSecret  = 1004 // wrong password
	CodeServerBusy   = 1005 // unexpected internal failure
	CodeUnauthorized = 1006 // caller lacks the required authority
	CodeNotFound     = 1008 // generic resource not found
	CodeDBError      = 1010 // database failure
	CodeCacheError   = 1011 // redis failure

	CodeGroupNotFound      = 2001 // group does not exist or was deleted
	CodeGroupFull          = 2002 // member count already at maxMembers
	CodeDuplicateMember    = 2003 // identity is already a member
	CodeNotAMember         = 2004 // caller is not a member of the group
	CodeMemberNotFound     = 2005 // recipient member not in the group
	CodeCreatorCannotLeave = 2006 // creator must delete instead of leaving
	CodeNumberNotInPool    = 2007 // number outside 1..maxMembers
	CodeNumberTaken        = 2008 // number held by another active member
	CodeCycleMismatch      = 2009 // contribution targets a non-current cycle
	CodeInvalidAmount      = 2010 // non-positive amount
	CodeAlreadyReceived    = 2011 // recipient already paid this cycle
	CodeBusy               = 2012 // group lock wait timed out, retryable
	CodeEscrowClosed       = 2013 // escrow pool past deadline or inactive
	CodeEscrowIncomplete   = 2014 // withdrawal before the pool reached target
)

// Predefined instances for the common cases. They can be returned directly or
// compared with errors.Is.
var (
	ErrInvalidParam = New(CodeInvalidParam, "invalid request parameters")
	ErrServerBusy   = New(CodeServerBusy, "service temporarily unavailable")
	ErrUnauthorized = New(CodeUnauthorized, "operation not permitted for this caller")
	ErrBusy         = New(CodeBusy, "group is busy, retry shortly")
)

// IsNotFound reports whether err represents a missing record, including
// gorm.ErrRecordNotFound wrapped by the repository layer.
func IsNotFound(err error) bool {
	var codeErr *CodeError
	if errors.As(err, &codeErr) &&
		(codeErr.Code == CodeNotFound || codeErr.Code == CodeGroupNotFound || codeErr.Code == CodeMemberNotFound) {
		return true
	}
	return err != nil && err.Error() == "record not found"
}
