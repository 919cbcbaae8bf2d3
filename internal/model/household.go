package model

import "time"

type Household struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	HostID    int64     `db:"host_id" json:"host_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type HouseholdMember struct {
	ID          int64     `db:"id" json:"id"`
	HouseholdID int64     `db:"household_id" json:"household_id"`
	UserID      int64     `db:"user_id" json:"user_id"`
	MemberType  string    `db:"member_type" json:"member_type"` // 'host', 'co-host', 'member'
	JoinedAt    time.Time `db:"joined_at" json:"joined_at"`
}
