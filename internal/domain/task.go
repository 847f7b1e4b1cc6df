package domain

import "time"

// Priority is stored as its integer value, ordered low to high.
type Priority int

const (
	PriorityLow Priority = iota + 1
	PriorityMediumLow
	PriorityMedium
	PriorityMediumHigh
	PriorityHigh
)

func (p Priority) Valid() bool {
	return p >= PriorityLow && p <= PriorityHigh
}

func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityMediumLow:
		return "medium-low"
	case PriorityMedium:
		return "medium"
	case PriorityMediumHigh:
		return "medium-high"
	case PriorityHigh:
		return "high"
	default:
		return "unknown"
	}
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

func (s Status) Valid() bool {
	return s == StatusPending || s == StatusCompleted
}

type Task struct {
	ID           int64     `db:"id" json:"id"`
	UserID       int64     `db:"user_id" json:"userId"`
	Title        string    `db:"title" json:"title"`
	StartingDate time.Time `db:"starting_date" json:"startingDate"`
	EndingDate   time.Time `db:"ending_date" json:"endingDate"`
	Priority     Priority  `db:"priority" json:"priority"`
	Status       Status    `db:"task_status" json:"taskStatus"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}
