package vault

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("vault not found")
	ErrInvalidCredentials = errors.New("invalid password")
	ErrAuthentication     = errors.New("authentication failed")
	ErrMalformedStructure = errors.New("malformed vault structure")
	ErrEmptyPassword      = errors.New("password must not be empty")
)

// ErrPasswordReuse is returned when the decoy password equals the real one
var ErrPasswordReuse = fmt.Errorf("%w: decoy password must differ from the real password", ErrAuthentication)
