package model

// ModerationStatus governs visibility and editability of a task's content.
// It is independent of TaskStatus.
type ModerationStatus string

const (
	ModerationApproved    ModerationStatus = "approved"
	ModerationNeedsReview ModerationStatus = "needs_review"
	ModerationBlocked     ModerationStatus = "blocked"
)

// ModerationResult is the outcome of a single create/edit submission.
// Error is set when the moderation call itself failed, which is not the same
// thing as a blocked decision.
type ModerationResult struct {
	Status ModerationStatus `json:"status"`
	Reason string           `json:"reason,omitempty"`
	TaskID string           `json:"task_id,omitempty"`
	Error  string           `json:"error,omitempty"`
}

// TaskDraft is what the author submits for moderation. Zero values are
// replaced with defaults before the call.
type TaskDraft struct {
	TaskID              string `json:"task_id,omitempty"`
	Title               string `json:"title"`
	Description         string `json:"description"`
	DropoffInstructions string `json:"dropoff_instructions"`
	Store               string `json:"store"`
	DropoffAddress      string `json:"dropoff_address"`
	Category            string `json:"category"`
	Urgency             string `json:"urgency"`
	EstimatedMinutes    int    `json:"estimated_minutes"`
	RewardCents         int64  `json:"reward_cents"`
}
