package services

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrAlreadyExists      = errors.New("already exists")
	ErrOutOfStock         = errors.New("not enough stock")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
