package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/inventory/internal/formatter"
	"github.com/desertthunder/inventory/internal/models"
	"github.com/desertthunder/inventory/internal/repositories"
	"github.com/desertthunder/inventory/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
//
// The repository is opened lazily from the loaded config so commands like setup never touch a stale database.
type Runner struct {
	config     *shared.Config
	configPath string
	logger     *log.Logger
	output     io.Writer
	repo       models.ItemsRepository
	currency   *formatter.Currency
	closers    []func()
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Logger     *log.Logger
	Output     io.Writer
	Repository models.ItemsRepository // skips opening the configured database when set
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		logger:     opts.Logger,
		output:     opts.Output,
		repo:       opts.Repository,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, itemsCommand, tuiCommand, serveCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// SetLogger replaces the logger used by subsequent commands.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

// Close releases the repository and database opened by [Runner.repository].
func (r *Runner) Close() {
	for i := len(r.closers) - 1; i >= 0; i-- {
		r.closers[i]()
	}
	r.closers = nil
}

// loadConfig resolves the config once per run: the --config flag wins over RunnerOpts.ConfigPath,
// a missing file falls back to defaults, and the log level is applied to the runner's logger.
func (r *Runner) loadConfig(cmd *cli.Command) (*shared.Config, error) {
	if r.config != nil {
		return r.config, nil
	}

	path := r.configPath
	if cmd != nil && (cmd.IsSet("config") || path == "") {
		path = cmd.String("config")
	}

	config, err := shared.LoadConfigOrDefault(path)
	if err != nil {
		return nil, err
	}

	level, err := shared.ParseLogLevel(config.Log.Level)
	if err != nil {
		return nil, err
	}
	shared.SetLogLevel(r.logger, level)

	r.config = config
	r.configPath = path
	return config, nil
}

// repository returns the items repository, opening and migrating the configured database on first use.
func (r *Runner) repository(ctx context.Context, cmd *cli.Command) (models.ItemsRepository, error) {
	if r.repo != nil {
		return r.repo, nil
	}

	config, err := r.loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("opening database", "path", config.Database.Path)
	db, err := shared.OpenDatabase(config.Database)
	if err != nil {
		return nil, err
	}

	repo := repositories.NewOfflineItemsRepository(repositories.NewItemDAO(db), repositories.OfflineOpts{Logger: r.logger})
	r.repo = repo
	r.closers = append(r.closers, func() { db.Close() }, repo.Close)
	return repo, nil
}

// priceFormatter returns the price formatter for the configured locale and currency.
func (r *Runner) priceFormatter(cmd *cli.Command) (*formatter.Currency, error) {
	if r.currency != nil {
		return r.currency, nil
	}

	config, err := r.loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	c, err := formatter.NewCurrencyFromConfig(config.Inventory)
	if err != nil {
		return nil, err
	}
	r.currency = c
	return c, nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
