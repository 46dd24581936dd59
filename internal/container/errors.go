package container

import "errors"

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrForeignStack    = errors.New("stack belongs to another store")
	ErrRemovedStack    = errors.New("stack has been removed")
)
