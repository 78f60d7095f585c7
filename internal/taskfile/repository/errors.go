package repository

import "errors"

var (
	ErrFailedToRead   = errors.New("failed to read task document")
	ErrFailedToAppend = errors.New("failed to append to task document")
)
