package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/mlefebvre/girder/internal/cli"
	"github.com/mlefebvre/girder/internal/db"
	"github.com/mlefebvre/girder/internal/repository"
	"github.com/mlefebvre/girder/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.girder/girder.db
	dbPath := os.Getenv("GIRDER_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".girder", "girder.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	projectRepo := repository.NewSQLiteProjectRepo(database)
	itemRepo := repository.NewSQLiteWbsItemRepo(database)
	depRepo := repository.NewSQLiteDependencyRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	// Plain output when stdout is piped.
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	// Use-case logging is opt-in via GIRDER_LOG; it goes to stderr so
	// command output stays clean.
	var observers []service.UseCaseObserver
	if os.Getenv("GIRDER_LOG") != "" {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	app := &cli.App{
		Projects: service.NewProjectService(projectRepo, uow, observers...),
		Wbs:      service.NewWbsService(itemRepo, projectRepo, uow, observers...),
		Deps:     service.NewDependencyService(depRepo, itemRepo, uow, observers...),
		Schedule: service.NewScheduleService(projectRepo, itemRepo, depRepo, observers...),
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
