package confirmation

import "errors"

var (
	ErrNotFound         = errors.New("confirmation not found")
	ErrAlreadyResolved  = errors.New("confirmation already resolved")
	ErrDuplicatePending = errors.New("a pending confirmation already exists for this item")
	ErrItemMissing      = errors.New("inventory item no longer exists")
	ErrInvalidResponse  = errors.New("response must be confirmed or denied")
)
