package main

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/FAJRIKUN-MAKALALAG/smart-scheduler-ai-project/internal/assistant"
	"github.com/FAJRIKUN-MAKALALAG/smart-scheduler-ai-project/internal/cli"
	"github.com/FAJRIKUN-MAKALALAG/smart-scheduler-ai-project/internal/config"
	"github.com/FAJRIKUN-MAKALALAG/smart-scheduler-ai-project/internal/db"
	"github.com/FAJRIKUN-MAKALALAG/smart-scheduler-ai-project/internal/extract"
	"github.com/FAJRIKUN-MAKALALAG/smart-scheduler-ai-project/internal/llm"
	"github.com/FAJRIKUN-MAKALALAG/smart-scheduler-ai-project/internal/logger"
	"github.com/FAJRIKUN-MAKALALAG/smart-scheduler-ai-project/internal/repository"
	"github.com/FAJRIKUN-MAKALALAG/smart-scheduler-ai-project/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath, err := config.DefaultPath()
	if err != nil {
		return fmt.Errorf("finding config directory: %w", err)
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	if err := logger.Init(logger.Config{Debug: cfg.Debug, ConfigDir: cfg.Dir()}); err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	log := logger.Get()

	// Open the schedule store
	database, newRepo, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	uow := db.NewTxUnitOfWork(database)
	schedules := service.NewScheduleService(newRepo(database), newRepo, uow,
		service.NewLogUseCaseObserver(logger.Slog()))

	loc := cfg.Location()
	app := &cli.App{
		Schedules:   schedules,
		Location:    loc,
		Leads:       cfg.Leads(),
		WatchSpec:   cfg.Notify.Cron,
		Logger:      log,
		HistoryPath: filepath.Join(cfg.Dir(), "chat_history"),
	}

	// Detect interactive terminal for the chat view and forms.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// Wire the assistant (only when the generator is enabled)
	apiKey, err := config.APIKey()
	if err != nil && !errors.Is(err, config.ErrNoSecret) {
		log.Warn("reading API key", "err", err)
	}
	llmCfg := cfg.LLMClientConfig(apiKey)
	if llmCfg.Enabled {
		var observer llm.Observer = llm.NoopObserver{}
		if llmCfg.LogCalls {
			observer = llm.NewLogObserver(log)
		}
		client, err := llm.NewClient(llmCfg, observer)
		if err != nil {
			// Commands that do not need the generator keep working.
			app.AssistantErr = fmt.Errorf("configuring %s generator: %w (store a key with 'smartsched auth set-key')", llmCfg.Provider, err)
		} else {
			app.Assistant = assistant.New(client, schedules,
				assistant.WithLocation(loc),
				assistant.WithExtractor(extract.New(extract.NewLexicon(cfg.Words()))),
				assistant.WithLogger(log),
			)
		}
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}

// openStore opens the configured database and returns the matching repo
// factory.
func openStore(cfg *config.Config) (*sql.DB, repository.ScheduleRepoFactory, error) {
	switch cfg.DB.Driver {
	case "postgres":
		dsn, err := config.PostgresDSN()
		if err != nil {
			return nil, nil, fmt.Errorf("postgres DSN: %w (set SMARTSCHED_POSTGRES_DSN, or store it with 'smartsched auth set-key --postgres' while db.driver is sqlite)", err)
		}
		database, err := db.OpenPostgres(dsn)
		if err != nil {
			return nil, nil, err
		}
		return database, repository.PostgresFactory(), nil
	default:
		database, err := db.OpenDB(cfg.DB.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("opening database: %w", err)
		}
		return database, repository.SQLiteFactory(), nil
	}
}
