package usecase

import "errors"

var (
	ErrInternal         = errors.New("internal error")
	ErrInvalidInput     = errors.New("invalid input")
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrTeamNotFound     = errors.New("team not found")
)
