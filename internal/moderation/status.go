package moderation

import (
	"strings"

	"github.com/BuzzLyutic/task-market/internal/model"
)

const (
	ColorApproved    = "#10B981"
	ColorNeedsReview = "#F59E0B"
	ColorBlocked     = "#EF4444"
	ColorUnknown     = "#6B7280"
)

const (
	MsgSexualContent = "This task contains sexual content, which is not allowed on our platform."
	MsgViolence      = "This task contains violent or harmful content, which is not allowed."
	MsgIllegal       = "This task involves illegal or unsafe activities, which are not allowed."
	MsgGuidelines    = "This task violates our community guidelines. Please revise and try again."
)

func StatusLabel(s model.ModerationStatus) string {
	switch s {
	case model.ModerationApproved:
		return "Approved"
	case model.ModerationNeedsReview:
		return "Under Review"
	case model.ModerationBlocked:
		return "Blocked"
	default:
		return "Unknown"
	}
}

func StatusColor(s model.ModerationStatus) string {
	switch s {
	case model.ModerationApproved:
		return ColorApproved
	case model.ModerationNeedsReview:
		return ColorNeedsReview
	case model.ModerationBlocked:
		return ColorBlocked
	default:
		return ColorUnknown
	}
}

type reasonMessage struct {
	patterns []string
	message  string
}

// First matching entry wins.
var reasonMessages = []reasonMessage{
	{patterns: []string{"sexual"}, message: MsgSexualContent},
	{patterns: []string{"violence", "harm"}, message: MsgViolence},
	{patterns: []string{"illegal", "unsafe"}, message: MsgIllegal},
}

// ErrorMessage turns a moderation reason into the sentence shown to the
// author. An empty reason gets the generic guideline message.
func ErrorMessage(reason string) string {
	for _, rm := range reasonMessages {
		for _, p := range rm.patterns {
			if strings.Contains(reason, p) {
				return rm.message
			}
		}
	}
	return MsgGuidelines
}

// CanEditTask reports whether the author may still change the content.
func CanEditTask(s model.ModerationStatus) bool {
	return s == model.ModerationBlocked || s == model.ModerationNeedsReview
}

func IsTaskPubliclyVisible(s model.ModerationStatus) bool {
	return s == model.ModerationApproved
}
