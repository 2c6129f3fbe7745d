package application

import "errors"

var (
	ErrCredentialsTaken     = errors.New("credentials taken")
	ErrCredentialsIncorrect = errors.New("credentials incorrect")
	ErrUnauthenticated      = errors.New("unauthenticated")
	ErrAccessDenied         = errors.New("access to resources denied")
	ErrEmailTaken           = errors.New("email already in use")
	ErrUserNotFound         = errors.New("user not found")
)
