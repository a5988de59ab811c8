package common

import "errors"

var (
	ErrNotFound   = errors.New("requested item not found")
	ErrConflict   = errors.New("item already exists or conflict")
	ErrBadRequest = errors.New("bad request")
	ErrNoText     = errors.New("no text to analyze")
)
