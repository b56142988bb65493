package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/foodcodex/internal/shared"
	"github.com/desertthunder/foodcodex/internal/storage"
	"github.com/desertthunder/foodcodex/internal/ui"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	logger     *log.Logger
	output     io.Writer
	palette    *ui.Palette
	svc        *storage.Service
	ownsSvc    bool
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Logger     *log.Logger
	Output     io.Writer
	Service    *storage.Service // Service is used as-is when set; otherwise one is opened from Config on first use
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
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
		palette:    ui.DefaultPalette,
		svc:        opts.Service,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, recipesCommand, favoritesCommand, accountCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// service returns the storage service, opening it from the runner's config on first use.
func (r *Runner) service(ctx context.Context) (*storage.Service, error) {
	if r.svc != nil {
		return r.svc, nil
	}

	svc, err := storage.Open(ctx, r.config, r.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}
	r.svc, r.ownsSvc = svc, true
	return svc, nil
}

// Close releases a service opened by the runner. Injected services are left open.
func (r *Runner) Close() error {
	if r.svc == nil || !r.ownsSvc {
		return nil
	}
	err := r.svc.Close()
	r.svc, r.ownsSvc = nil, false
	return err
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

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", r.palette.Title("%s", title))
	r.writePlain("═══════════════════════════════════════\n")
}
