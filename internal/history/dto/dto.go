package dto

type EventFilters struct {
	HouseholdID int64
	ItemName    string
	Method      string
	Limit       int
	Days        int // only events from the last N days when > 0
}

type UsageFilters struct {
	HouseholdID int64
	ItemName    string
	Limit       int
	Days        int
}

// UsageInput records a partial use of an item, e.g. a recipe consuming
// half a container.
type UsageInput struct {
	HouseholdID       int64   `json:"-"`
	ItemID            *string `json:"item_id,omitempty"`
	ItemName          string  `json:"item_name" binding:"required"`
	QuantityUsed      float64 `json:"quantity_used" binding:"required"`
	QuantityRemaining float64 `json:"quantity_remaining"`
	Unit              string  `json:"unit"`
	Method            string  `json:"method"`
	RecipeID          *int64  `json:"recipe_id,omitempty"`
}

// Analytics summarizes a page of depletion events.
type Analytics struct {
	TotalEvents int            `json:"total_events"`
	ByMethod    map[string]int `json:"by_method"`
	AverageDays *float64       `json:"average_days,omitempty"`
	MinDays     *int           `json:"min_days,omitempty"`
	MaxDays     *int           `json:"max_days,omitempty"`
}

// UsageAnalytics summarizes a page of partial-usage events.
type UsageAnalytics struct {
	TotalEvents       int            `json:"total_events"`
	ByMethod          map[string]int `json:"by_method"`
	TotalQuantityUsed float64        `json:"total_quantity_used"`
}

type TopItem struct {
	Item  string `json:"item"`
	Count int    `json:"count"`
}

// Stats is the per-household analytics dashboard payload.
type Stats struct {
	TotalPatterns       int            `json:"total_patterns"`
	TotalEvents         int            `json:"total_events"`
	ConfidenceBreakdown map[string]int `json:"confidence_breakdown"`
	RecentEvents30Days  int            `json:"recent_events_30_days"`
	MethodBreakdown     map[string]int `json:"method_breakdown"`
	TopConsumedItems    []TopItem      `json:"top_consumed_items"`
	LearningProgress    Progress       `json:"learning_progress"`
}

type Progress struct {
	PatternsLearned      int     `json:"patterns_learned"`
	ConfidencePercentage float64 `json:"confidence_percentage"`
	TotalObservations    int     `json:"total_observations"`
}
