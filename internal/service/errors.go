package service

import "errors"

// Validation failures surfaced to the user. Messages are user-facing.
var (
	ErrInvalidEmailFormat    = errors.New("please enter a valid email address")
	ErrUserNotFound          = errors.New("no account found with this email address")
	ErrInvalidCredentials    = errors.New("invalid password")
	ErrAccountExists         = errors.New("an account with this email already exists")
	ErrPasswordMismatch      = errors.New("passwords do not match")
	ErrPasswordTooShort      = errors.New("password must be at least 6 characters long")
	ErrUsernameTaken         = errors.New("this username is already taken")
	ErrUsernameTooShort      = errors.New("username must be at least 3 characters")
	ErrUsernameTooLong       = errors.New("username must be at most 20 characters")
	ErrInvalidCode           = errors.New("please enter a valid 6-digit code")
	ErrCodeExpired           = errors.New("verification code has expired, request a new one")
	ErrDisclaimerNotAccepted = errors.New("you must accept the disclaimer to continue")
	ErrAlreadyCompleted      = errors.New("the assessment has already been completed and cannot be retaken")
	ErrToolUnavailable       = errors.New("this tool is not available yet")
	ErrNameTooShort          = errors.New("full name must be at least 2 characters")
	ErrInvalidSetting        = errors.New("invalid setting")
)

// IsValidation reports whether err is one of the user-facing validation
// failures above rather than an infrastructure error.
func IsValidation(err error) bool {
	for _, v := range validationErrors {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}

var validationErrors = []error{
	ErrInvalidEmailFormat,
	ErrUserNotFound,
	ErrInvalidCredentials,
	ErrAccountExists,
	ErrPasswordMismatch,
	ErrPasswordTooShort,
	ErrUsernameTaken,
	ErrUsernameTooShort,
	ErrUsernameTooLong,
	ErrInvalidCode,
	ErrCodeExpired,
	ErrDisclaimerNotAccepted,
	ErrAlreadyCompleted,
	ErrToolUnavailable,
	ErrNameTooShort,
	ErrInvalidSetting,
}
