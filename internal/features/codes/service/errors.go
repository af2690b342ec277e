package service

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrCodeNotFound       = errors.New("code not found")
	ErrCodeAlreadyUsed    = errors.New("code already used")
	ErrAlreadyRegistered  = errors.New("telegram user already registered")
	ErrCodeSpaceExhausted = errors.New("no free invite codes left")
)
