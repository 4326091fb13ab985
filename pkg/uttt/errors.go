package uttt

import "errors"

var (
	ErrIllegalMove     = errors.New("illegal move")
	ErrNotTerminal     = errors.New("state is not terminal")
	ErrInvalidAction   = errors.New("invalid action notation")
	ErrInvalidNotation = errors.New("invalid state notation")
)
