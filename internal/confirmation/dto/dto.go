package dto

// RespondInput is a member's answer to a depletion confirmation request.
type RespondInput struct {
	UserID                  int64    `json:"-"`
	ConfirmationID          string   `json:"confirmation_id" binding:"required"`
	Response                string   `json:"response" binding:"required"` // confirmed, denied
	ActualQuantityRemaining *float64 `json:"actual_quantity_remaining,omitempty"`
}

// RespondResult reports what a resolution did.
type RespondResult struct {
	ConfirmationID string `json:"confirmation_id"`
	Status         string `json:"status"`
	ItemName       string `json:"item_name"`
	ItemRemoved    bool   `json:"item_removed"`
	DaysLasted     *int   `json:"days_lasted,omitempty"`
	AddedToList    bool   `json:"added_to_shopping_list"`
}

// PendingKey identifies one item's open confirmation for duplicate
// suppression during a scan.
type PendingKey struct {
	HouseholdID int64
	ItemID      string
}
