package core

import "errors"

var (
	ErrAlreadyExists = errors.New("vault already exists")
	ErrFileNotFound  = errors.New("file not found in vault")
	ErrSessionClosed = errors.New("session is closed")
)
