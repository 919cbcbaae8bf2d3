package household

import "context"

// Access performs household membership checks for the HTTP surface. The
// core prediction components assume callers are already authorized.
type Access struct {
	repo Repository
}

func NewAccess(repo Repository) *Access {
	return &Access{repo: repo}
}

// Authorize verifies the household exists and the user belongs to it.
func (a *Access) Authorize(ctx context.Context, householdID, userID int64) error {
	hh, err := a.repo.FindByID(ctx, householdID)
	if err != nil {
		return err
	}
	if hh == nil {
		return ErrNotFound
	}
	if hh.HostID == userID {
		return nil
	}
	member, err := a.repo.IsMember(ctx, householdID, userID)
	if err != nil {
		return err
	}
	if !member {
		return ErrNotMember
	}
	return nil
}

// AuthorizeHost verifies the household exists and the user is its host.
func (a *Access) AuthorizeHost(ctx context.Context, householdID, userID int64) error {
	hh, err := a.repo.FindByID(ctx, householdID)
	if err != nil {
		return err
	}
	if hh == nil {
		return ErrNotFound
	}
	if hh.HostID != userID {
		return ErrNotHost
	}
	return nil
}
