// Package view builds the data the mobile screens render. Nothing here keeps
// state; every function is a pure mapping of its input.
package view

import (
	"github.com/BuzzLyutic/task-market/internal/model"
	"github.com/BuzzLyutic/task-market/internal/moderation"
)

const (
	IconBlock   = "block"
	IconClock   = "clock"
	IconWarning = "warning"

	MsgUnderReview   = "Your task is being reviewed and will be visible to others once approved."
	MsgUnknownStatus = "Unknown moderation status."
)

type Action struct {
	Kind   string `json:"kind"`
	Label  string `json:"label"`
	Target string `json:"target,omitempty"`
}

type BannerProps struct {
	Status model.ModerationStatus
	Reason string
	// EditTarget is where the edit action leads; empty means no edit handler.
	EditTarget  string
	Dismissable bool
}

type Banner struct {
	Status  model.ModerationStatus `json:"status"`
	Label   string                 `json:"label"`
	Color   string                 `json:"color"`
	Icon    string                 `json:"icon"`
	Message string                 `json:"message"`
	Actions []Action               `json:"actions"`
}

// ModerationBanner returns nil for approved content.
func ModerationBanner(p BannerProps) *Banner {
	if p.Status == model.ModerationApproved {
		return nil
	}

	b := &Banner{
		Status:  p.Status,
		Label:   moderation.StatusLabel(p.Status),
		Color:   moderation.StatusColor(p.Status),
		Actions: []Action{},
	}

	switch p.Status {
	case model.ModerationBlocked:
		b.Icon = IconBlock
		b.Message = moderation.ErrorMessage(p.Reason)
	case model.ModerationNeedsReview:
		b.Icon = IconClock
		b.Message = MsgUnderReview
	default:
		b.Icon = IconWarning
		b.Message = MsgUnknownStatus
	}

	if p.Status == model.ModerationBlocked && p.EditTarget != "" {
		b.Actions = append(b.Actions, Action{Kind: "edit", Label: "Edit Task", Target: p.EditTarget})
	}
	if p.Dismissable {
		b.Actions = append(b.Actions, Action{Kind: "dismiss", Label: "Dismiss"})
	}
	return b
}

// HasAction reports whether the banner offers an action of the given kind.
func (b *Banner) HasAction(kind string) bool {
	if b == nil {
		return false
	}
	for _, a := range b.Actions {
		if a.Kind == kind {
			return true
		}
	}
	return false
}
