package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-market/internal/auth"
	"github.com/BuzzLyutic/task-market/internal/config"
	"github.com/BuzzLyutic/task-market/internal/moderation"
	"github.com/BuzzLyutic/task-market/internal/repo"
	"github.com/BuzzLyutic/task-market/internal/service"
)

var (
	app   = kingpin.New("task-market", "Student task marketplace API and CLI")
	token = app.Flag("token", "Access token of the acting user").Envar("TASKMARKET_TOKEN").String()

	serveCmd = app.Command("serve", "Start the HTTP API").Default()

	taskCmd = app.Command("task", "Task commands")

	taskGetCmd = taskCmd.Command("get", "Show a task")
	taskGetID  = taskGetCmd.Arg("id", "Task ID").Required().String()

	taskListCmd    = taskCmd.Command("list", "List or search tasks")
	taskListStatus = taskListCmd.Flag("status", "Lifecycle status filter").Enum("posted", "accepted", "in_progress", "completed", "cancelled")
	taskListQuery  = taskListCmd.Flag("query", "Title search").Short('q').String()
	taskListLimit  = taskListCmd.Flag("limit", "Max results").Default("20").Int()

	taskAcceptCmd = taskCmd.Command("accept", "Accept a posted task")
	taskAcceptID  = taskAcceptCmd.Arg("id", "Task ID").Required().String()

	taskStatusCmd  = taskCmd.Command("status", "Move a task to another status")
	taskStatusID   = taskStatusCmd.Arg("id", "Task ID").Required().String()
	taskStatusNext = taskStatusCmd.Arg("status", "New status").Required().Enum("posted", "accepted", "in_progress", "completed", "cancelled")

	moderateCmd          = app.Command("moderate", "Submit a task for moderation and save it")
	moderateTitle        = moderateCmd.Arg("title", "Task title").Required().String()
	moderateDescription  = moderateCmd.Flag("description", "Task description").String()
	moderateStore        = moderateCmd.Flag("store", "Store to pick up from").String()
	moderateAddress      = moderateCmd.Flag("dropoff-address", "Drop-off address").String()
	moderateInstructions = moderateCmd.Flag("dropoff-instructions", "Drop-off instructions").String()
	moderateCategory     = moderateCmd.Flag("category", "Category").String()
	moderateUrgency      = moderateCmd.Flag("urgency", "Urgency").String()
	moderateMinutes      = moderateCmd.Flag("minutes", "Estimated minutes").Int()
	moderateReward       = moderateCmd.Flag("reward-cents", "Reward in cents").Int64()
	moderateTaskID       = moderateCmd.Flag("task-id", "Existing task to edit").String()

	legalCmd = app.Command("legal", "Print a legal document")
	legalDoc = legalCmd.Arg("doc", "Document").Required().Enum("privacy", "terms")
)

func main() {
	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Команды без БД
	if command == legalCmd.FullCommand() {
		exitOn(printLegal(*legalDoc))
		return
	}

	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("Failed to connect to Database", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(context.Background()); err != nil {
		logger.Fatal("Failed to ping the Database", zap.Error(err))
	}
	logger.Debug("Successfully connected to the Database")

	verifier := auth.NewVerifier(cfg.JWTSecret)
	taskRepo := repo.NewTaskRepo(pool)
	tasks := service.NewTaskService(taskRepo, logger)
	mod := moderation.NewService(taskRepo, logger)

	if command == serveCmd.FullCommand() {
		serve(cfg, logger, verifier, tasks, mod)
		return
	}

	ctx, err := callerContext(verifier, *token)
	exitOn(err)

	switch command {
	case taskGetCmd.FullCommand():
		exitOn(printTask(tasks.GetTask(ctx, *taskGetID)))
	case taskListCmd.FullCommand():
		exitOn(listTasks(ctx, tasks))
	case taskAcceptCmd.FullCommand():
		exitOn(printTask(tasks.AcceptTask(ctx, *taskAcceptID)))
	case taskStatusCmd.FullCommand():
		exitOn(updateStatus(ctx, tasks))
	case moderateCmd.FullCommand():
		printModeration(mod.ModerateAndSaveTask(ctx, moderateDraft()))
	}
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	if cfg.Debug() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func callerContext(v *auth.Verifier, token string) (context.Context, error) {
	ctx := context.Background()
	if token == "" {
		return ctx, nil
	}
	userID, err := v.UserID(token)
	if err != nil {
		return nil, err
	}
	return auth.WithUser(ctx, userID), nil
}

func exitOn(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
