package users

import "errors"

var (
	// ErrNotFound means no user matches the lookup key.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateIdentity means the email is already registered.
	ErrDuplicateIdentity = errors.New("email already registered")
	// ErrInvalidCredentials covers both unknown email and wrong password;
	// callers must not be able to tell the two apart.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
