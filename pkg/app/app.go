// Package app wires the wl interpreter together: command line, logging,
// program loading, machine construction, and the interactive shell.
package app

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/zurustar/wl-go/pkg/cli"
	"github.com/zurustar/wl-go/pkg/logger"
	"github.com/zurustar/wl-go/pkg/script"
	"github.com/zurustar/wl-go/pkg/shell"
	"github.com/zurustar/wl-go/pkg/vm"
)

// Application holds the wired-up interpreter.
type Application struct {
	config  *cli.Config
	log     *slog.Logger
	program *script.Program
	machine *vm.Machine
}

// New creates an Application.
func New() *Application {
	return &Application{}
}

// Run executes the interpreter with the given command-line arguments.
func (app *Application) Run(args []string) error {
	// 1. Parse the command line
	if err := app.parseArgs(args); err != nil {
		return fmt.Errorf("failed to parse args: %w", err)
	}

	if app.config.ShowHelp {
		cli.PrintHelp()
		return nil
	}

	// 2. Initialize the logger
	if err := app.initLogger(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	// 3. Load the program
	if app.config.ProgramPath == "" {
		return fmt.Errorf("no program file given (see wl --help)")
	}
	program, err := script.Load(app.config.ProgramPath)
	if err != nil {
		return fmt.Errorf("failed to load program: %w", err)
	}
	app.program = program
	app.log.Info("program loaded", "file", program.FileName, "lines", len(program.Lines), "size", program.Size)

	// 4. Build the machine
	app.machine = vm.New(program.Lines,
		vm.WithLogger(app.log),
		vm.WithMaxSteps(app.config.MaxSteps),
	)

	// 5. Run: batch mode or the interactive shell
	if app.config.Batch {
		return app.runBatch()
	}
	return app.runShell()
}

// parseArgs parses the command line into the application config.
func (app *Application) parseArgs(args []string) error {
	config, err := cli.ParseArgs(args)
	if err != nil {
		return err
	}
	app.config = config
	return nil
}

// initLogger initializes the global logger.
func (app *Application) initLogger() error {
	if err := logger.InitLogger(app.config.LogLevel); err != nil {
		return err
	}
	app.log = logger.GetLogger()
	return nil
}

// runBatch runs the machine to completion and prints the final state.
// A faulted machine is an error; a halted one is normal termination.
func (app *Application) runBatch() error {
	state := app.machine.Run()
	app.log.Info("machine stopped", "state", state, "steps", app.machine.Steps())

	shell.PrintState(os.Stdout, app.machine)

	if state == vm.StateFaulted {
		return app.machine.Err()
	}
	return nil
}

// runShell starts the interactive step/run/quit loop on the console.
func (app *Application) runShell() error {
	return shell.New(app.machine, os.Stdin, os.Stdout).Loop()
}
