package app

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")

	ErrItemNotFound    = fmt.Errorf("item %w", ErrNotFound)
	ErrSourceNotFound  = fmt.Errorf("source %w", ErrNotFound)
	ErrReceiptNotFound = fmt.Errorf("receipt %w", ErrNotFound)
)

func invalidInput(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, msg)
}
