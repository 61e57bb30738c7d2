package template

import "errors"

var (
	// ErrTemplateNotFound is returned when the named template file does not exist.
	ErrTemplateNotFound = errors.New("template not found")
	// ErrInvalidName is returned for names that would resolve outside the template directory.
	ErrInvalidName = errors.New("invalid template name")
)
