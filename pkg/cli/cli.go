// Package cli parses the wl command line.
package cli

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds the settings parsed from command-line arguments.
type Config struct {
	ProgramPath string // path to the WL program file
	MaxSteps    int    // step budget for run (0 = unlimited)
	LogLevel    string // log level (debug, info, warn, error)
	Batch       bool   // run to completion instead of the interactive shell
	ShowHelp    bool   // help flag
}

// ParseArgs parses command-line arguments into a Config.
// Flags may appear before or after the positional program path. Environment
// variables LOG_LEVEL and MAX_STEPS act as fallbacks when the corresponding
// flags are absent.
func ParseArgs(args []string) (*Config, error) {
	// Reorder so flags come first, positional arguments last.
	reorderedArgs := reorderArgs(args)

	fs := flag.NewFlagSet("wl", flag.ContinueOnError)

	config := &Config{}

	fs.IntVar(&config.MaxSteps, "steps", 0, "step budget (0 = unlimited)")
	fs.IntVar(&config.MaxSteps, "s", 0, "step budget (short)")
	fs.StringVar(&config.LogLevel, "log-level", "info", "log level (debug, info, warn, error)")
	fs.StringVar(&config.LogLevel, "l", "info", "log level (short)")
	fs.BoolVar(&config.Batch, "run", false, "run to completion without the interactive shell")
	fs.BoolVar(&config.Batch, "r", false, "run to completion (short)")
	fs.BoolVar(&config.ShowHelp, "help", false, "show help")
	fs.BoolVar(&config.ShowHelp, "h", false, "show help (short)")

	if err := fs.Parse(reorderedArgs); err != nil {
		return nil, err
	}

	// Environment fallbacks; command-line flags take precedence.
	if config.MaxSteps == 0 {
		if stepsEnv := os.Getenv("MAX_STEPS"); stepsEnv != "" {
			if n, err := strconv.Atoi(stepsEnv); err == nil && n > 0 {
				config.MaxSteps = n
			}
		}
	}
	if config.LogLevel == "info" {
		if logLevelEnv := os.Getenv("LOG_LEVEL"); logLevelEnv != "" {
			config.LogLevel = strings.ToLower(logLevelEnv)
		}
	}

	if config.MaxSteps < 0 {
		return nil, fmt.Errorf("steps must be non-negative, got %d", config.MaxSteps)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[config.LogLevel] {
		return nil, fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", config.LogLevel)
	}

	if fs.NArg() > 0 {
		config.ProgramPath = fs.Arg(0)
	}

	return config, nil
}

// reorderArgs moves flags in front of positional arguments.
func reorderArgs(args []string) []string {
	var flags []string
	var positional []string

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if len(arg) > 0 && arg[0] == '-' {
			flags = append(flags, arg)

			// A value flag consumes the next argument (-s 100 and the like).
			if i+1 < len(args) && len(args[i+1]) > 0 && args[i+1][0] != '-' {
				if !isBoolFlag(arg) {
					i++
					flags = append(flags, args[i])
				}
			}
		} else {
			positional = append(positional, arg)
		}
	}

	return append(flags, positional...)
}

// isBoolFlag reports whether arg is one of the boolean flags, which never
// consume a following value.
func isBoolFlag(arg string) bool {
	switch arg {
	case "-h", "--help", "-r", "--run":
		return true
	}
	return false
}

// PrintHelp writes the usage message to stdout.
func PrintHelp() {
	fmt.Fprintf(os.Stdout, `wl - WL interpreter

Usage:
  wl [options] <program.wl>

Arguments:
  program.wl    WL program file, one instruction per line

Options:
  -s, --steps <n>             stop with a fault after n executed instructions
                              (default: 0 = unlimited)
  -l, --log-level <level>     log level: debug, info, warn, error (default: info)
  -r, --run                   run to completion and print the final state
                              instead of starting the interactive shell
  -h, --help                  show this help

Environment Variables:
  MAX_STEPS=<n>               step budget
  LOG_LEVEL=<level>           log level

Shell commands (interactive mode):
  s, step    execute one instruction and print the machine state
  r, run     run until the machine halts or faults
  q, quit    leave the shell

Examples:
  wl program.wl               inspect a program step by step
  wl --run program.wl         run to completion
  wl -r -s 10000 program.wl   run with a safety step budget
`)
}
