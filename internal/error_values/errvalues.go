package errorvalues

import "errors"

var (
	ErrUserExists       = errors.New("such user already exists")
	ErrUserNotFound     = errors.New("user doesn't exists")
	ErrWrongCredentials = errors.New("wrong name or password")
	ErrInvalidToken     = errors.New("invalid token")

	ErrGoalNotFound       = errors.New("goal doesn't exist")
	ErrWrongOwner         = errors.New("resource has different owner")
	ErrOwnerNotFound      = errors.New("owner doesn't exist")
	ErrInvalidGoalType    = errors.New("unknown goal type")
	ErrInvalidTrackerType = errors.New("unknown tracker type")
	ErrTargetNotNumeric  = errors.New("target value requires numeric tracker")

	ErrEntryNotFound       = errors.New("entry doesn't exist")
	ErrTrackerUnset        = errors.New("goal has no tracker")
	ErrEntryKindMismatch   = errors.New("entry fields don't match goal tracker")
	ErrEntryDateNotAllowed = errors.New("entry date not allowed")

	ErrMemoNotFound = errors.New("memo doesn't exist")
)
