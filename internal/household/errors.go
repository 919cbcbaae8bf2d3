package household

import "errors"

var (
	ErrNotFound  = errors.New("household not found")
	ErrNotMember = errors.New("not a member of this household")
	ErrNotHost   = errors.New("only the household host may do this")
)
