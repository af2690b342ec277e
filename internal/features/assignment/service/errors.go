package service

import "errors"

var (
	ErrInvalidInput             = errors.New("invalid input")
	ErrInsufficientParticipants = errors.New("not enough participants")
	ErrParticipantNotFound      = errors.New("participant not found")
)
