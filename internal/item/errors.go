package item

import "errors"

var (
	ErrInvalidItemType  = errors.New("invalid item type")
	ErrTemplateNotFound = errors.New("template not found")
)
