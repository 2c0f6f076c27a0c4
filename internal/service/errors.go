package service

import "errors"

// Common service errors
var (
	// ErrQuoteNotFound is returned when no quote has the requested public id
	ErrQuoteNotFound = errors.New("quote not found")

	// ErrInvalidQuoteID is returned when a looked up quote id is not a UUID
	ErrInvalidQuoteID = errors.New("invalid quote id")

	// ErrInvalidQuoteType is returned by the JSON API for anything but Hotshot or Air
	ErrInvalidQuoteType = errors.New("invalid quote_type")

	// ErrQuoteIDConflict is returned when the generated quote id already exists.
	// The request can be retried as is.
	ErrQuoteIDConflict = errors.New("quote id conflict")

	// ErrUserContextRequired is returned when user context is not available
	ErrUserContextRequired = errors.New("user context required")

	// ErrPermissionDenied is returned when a user doesn't have permission for an action
	ErrPermissionDenied = errors.New("permission denied")

	// ErrMailDisabled is returned when quote emails are requested but SMTP is off
	ErrMailDisabled = errors.New("quote email is not enabled")

	// ErrMailPrivilegesRequired is returned when the user may not send quote emails
	ErrMailPrivilegesRequired = errors.New("mail privileges required")

	// ErrEmailSendFailed is returned when SMTP delivery fails
	ErrEmailSendFailed = errors.New("failed to send email")

	// ErrInvalidInput is returned when request input validation fails
	ErrInvalidInput = errors.New("invalid input")
)

// User facing messages
const (
	MsgInvalidQuoteID     = "Please enter a valid Quote ID."
	MsgQuoteNotFound      = "Quote not found. Please verify the Quote ID and try again."
	MsgEmailSendFailed    = "Failed to send email. Please try again later."
	MsgInvalidQuoteType   = "Invalid quote_type"
	MsgQuoteIDConflict    = "Quote could not be saved because of an id collision. Please retry."
	MsgMailDisabled       = "Quote emails are not enabled."
	MsgMailPrivileges     = "Your account is not allowed to send quote emails."
	MsgAPIQuoteNotFound   = "Quote not found"
	MsgUnknownUserID      = "Unknown user_id."
	MsgQuoteEmailSentTmpl = "Quote details sent to %s"
)
