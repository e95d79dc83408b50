package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/BuzzLyutic/task-market/internal/model"
	"github.com/BuzzLyutic/task-market/internal/moderation"
	"github.com/BuzzLyutic/task-market/internal/service"
	"github.com/BuzzLyutic/task-market/internal/view"
)

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printTask(task model.Task, err error) error {
	if err != nil {
		return err
	}
	return printJSON(task)
}

func listTasks(ctx context.Context, tasks *service.TaskService) error {
	filter := model.TaskFilter{Query: *taskListQuery, Limit: *taskListLimit}
	if *taskListStatus != "" {
		s := model.TaskStatus(*taskListStatus)
		filter.Status = &s
	}

	list, err := tasks.ListTasks(ctx, filter)
	if err != nil {
		return err
	}
	for _, t := range list {
		fmt.Printf("%s  %-11s  %-8s  %s\n", t.ID, t.Status, view.FormatCents(t.RewardCents), t.Title)
	}
	return nil
}

func updateStatus(ctx context.Context, tasks *service.TaskService) error {
	update, err := tasks.UpdateTaskStatus(ctx, *taskStatusID, model.TaskStatus(*taskStatusNext))
	if err != nil {
		return err
	}
	if update.Via == service.ViaFallback {
		color.New(color.FgYellow).Fprintln(os.Stderr, "status written directly; transition procedure did not apply")
	}
	return printJSON(update.Task)
}

func moderateDraft() model.TaskDraft {
	return model.TaskDraft{
		TaskID:              *moderateTaskID,
		Title:               *moderateTitle,
		Description:         *moderateDescription,
		DropoffInstructions: *moderateInstructions,
		Store:               *moderateStore,
		DropoffAddress:      *moderateAddress,
		Category:            *moderateCategory,
		Urgency:             *moderateUrgency,
		EstimatedMinutes:    *moderateMinutes,
		RewardCents:         *moderateReward,
	}
}

func statusColor(s model.ModerationStatus) *color.Color {
	switch s {
	case model.ModerationApproved:
		return color.New(color.FgGreen, color.Bold)
	case model.ModerationNeedsReview:
		return color.New(color.FgYellow, color.Bold)
	case model.ModerationBlocked:
		return color.New(color.FgRed, color.Bold)
	default:
		return color.New(color.FgHiBlack)
	}
}

func printModeration(res model.ModerationResult) {
	statusColor(res.Status).Println(moderation.StatusLabel(res.Status))
	if res.TaskID != "" {
		fmt.Println("task:", res.TaskID)
	}
	if res.Error != "" {
		color.New(color.FgRed).Println(res.Error)
		return
	}
	if b := view.ModerationBanner(view.BannerProps{Status: res.Status, Reason: res.Reason}); b != nil {
		fmt.Println(b.Message)
	}
}

func printLegal(kind string) error {
	doc, err := view.LegalDocument(view.DocumentKind(kind))
	if err != nil {
		return err
	}
	color.New(color.Bold).Println(doc.Title)
	fmt.Printf("Last updated %s\n\n", doc.LastUpdated)
	for _, s := range doc.Sections {
		color.New(color.Underline).Println(s.Heading)
		fmt.Printf("%s\n\n", s.Body)
	}
	return nil
}
