package model

// Baseline is a static reference row: how long an item typically lasts in
// an average household. Loaded in bulk at boot, never mutated at runtime.
type Baseline struct {
	ID       int64  `db:"id" json:"id"`
	ItemName string `db:"item_name" json:"item_name"`
	AvgDays  int    `db:"avg_consumption_days" json:"avg_consumption_days"`
	Category string `db:"category" json:"category"`
}
