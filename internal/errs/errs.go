// Package errs provides common errors thrown in the app that are expected to be caught upstream
package errs

import "errors"

var (
	ErrShortcutNotFound  = errors.New("shortcut not found")
	ErrMapNotFound       = errors.New("map not found")
	ErrNoKeyCaptured     = errors.New("no key captured")
	ErrNoActiveMap       = errors.New("no active map selected")
	ErrDuplicateShortcut = errors.New("shortcut already in use")
	ErrUnknownCommand    = errors.New("unknown host command")
	ErrInvalidParams     = errors.New("invalid command parameters")
)
