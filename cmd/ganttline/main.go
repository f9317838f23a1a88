package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/evanmahr/ganttline/internal/cli"
	"github.com/evanmahr/ganttline/internal/commit"
	"github.com/evanmahr/ganttline/internal/db"
	"github.com/evanmahr/ganttline/internal/gesture"
	"github.com/evanmahr/ganttline/internal/repository"
	"github.com/evanmahr/ganttline/internal/selection"
	"github.com/evanmahr/ganttline/internal/service"
	"github.com/evanmahr/ganttline/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.ganttline/ganttline.db
	dbPath := os.Getenv("GANTTLINE_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".ganttline", "ganttline.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	uow := db.NewSQLiteUnitOfWork(database)
	repo := repository.NewSQLiteScheduleRepo(database, uow)

	snapshots := store.New()
	labels := store.NewLabelRegistry()
	sel := selection.NewManager()

	var commitObs commit.Observer = commit.NoopObserver{}
	var useCaseObs service.UseCaseObserver = service.NoopUseCaseObserver{}
	if os.Getenv("GANTTLINE_LOG") != "" {
		commitObs = commit.NewLogObserver(os.Stderr)
		useCaseObs = service.NewLogUseCaseObserver(os.Stderr)
	}

	committer := commit.NewCommitter(snapshots, commitObs)
	engine := gesture.NewEngine(snapshots, committer, sel)

	app := &cli.App{
		Schedule:  service.NewScheduleService(repo, snapshots, useCaseObs),
		Repo:      repo,
		Store:     snapshots,
		Labels:    labels,
		Selection: sel,
		Engine:    engine,
		Committer: committer,
	}
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
