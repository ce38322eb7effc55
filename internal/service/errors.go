package service

import "errors"

var (
	ErrValidation      = errors.New("invalid data provided")
	ErrWrongPassword   = errors.New("wrong password")
	ErrAccountDisabled = errors.New("account is disabled")

	ErrTokenIsExpired = errors.New("token is expired")
)
