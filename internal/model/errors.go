package model

import (
	"errors"
	"fmt"
)

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound  = errors.New("player not found")
	ErrInvalidPlayer   = errors.New("invalid player")
	ErrInvalidPlayerID = errors.New("invalid player id")

	// Listing errors
	ErrInvalidFilter = errors.New("invalid filter")
)

// ValidationError reports the first player field that failed validation
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid player: %s", e.Field)
}

// Is makes errors.Is(err, ErrInvalidPlayer) hold for every ValidationError
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidPlayer
}

// ParseError reports an unknown enumeration or order name
type ParseError struct {
	Kind  string
	Value string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unknown %s %q", e.Kind, e.Value)
}

// Is makes errors.Is(err, ErrInvalidFilter) hold for every ParseError
func (e *ParseError) Is(target error) bool {
	return target == ErrInvalidFilter
}
