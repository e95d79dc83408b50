package model

import "time"

type TaskStatus string

const (
	StatusPosted     TaskStatus = "posted"
	StatusAccepted   TaskStatus = "accepted"
	StatusInProgress TaskStatus = "in_progress"
	StatusCompleted  TaskStatus = "completed"
	StatusCancelled  TaskStatus = "cancelled"
)

// Valid reports whether s is one of the lifecycle states known to the backend.
// It says nothing about which transitions are allowed.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusPosted, StatusAccepted, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

type Task struct {
	ID                  string           `json:"id"`
	Title               string           `json:"title"`
	Description         string           `json:"description"`
	Category            string           `json:"category"`
	Store               string           `json:"store"`
	DropoffAddress      string           `json:"dropoff_address"`
	DropoffInstructions string           `json:"dropoff_instructions"`
	Urgency             string           `json:"urgency"`
	RewardCents         int64            `json:"reward_cents"`
	EstimatedMinutes    int              `json:"estimated_minutes"`
	CreatedBy           string           `json:"created_by"`
	AcceptedBy          *string          `json:"accepted_by"`
	Status              TaskStatus       `json:"task_current_status"`
	ModerationStatus    ModerationStatus `json:"moderation_status"`
	ModerationReason    *string          `json:"moderation_reason,omitempty"`
	AcceptedAt          *time.Time       `json:"accepted_at"`
	UpdatedAt           time.Time        `json:"updated_at"`
	CreatedAt           time.Time        `json:"created_at"`
}

type TaskFilter struct {
	Status *TaskStatus
	Query  string
	Limit  int
}
