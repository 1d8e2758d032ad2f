package service

import "errors"

var (
	ErrValidation         = errors.New("validation")          // 400
	ErrDuplicate          = errors.New("duplicate key")       // 400
	ErrNotFound           = errors.New("not found")           // 404
	ErrInvalidCredentials = errors.New("invalid credentials") // 401
)
