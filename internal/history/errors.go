package history

import "errors"

var (
	ErrInvalidMethod   = errors.New("history: method must be manual or recipe")
	ErrInvalidQuantity = errors.New("history: quantity used must be positive")
)
