// Package cmd implements the carousel CLI commands.
//
// The root command dispatches to subcommands (preview, snapshot, validate).
// Global flags are consumed before dispatch.
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-drift/carousel/cmd/carousel/internal/config"
	"github.com/go-drift/carousel/pkg/errors"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// Command represents a CLI command.
type Command struct {
	Name        string
	Short       string
	Long        string
	Usage       string
	Run         func(args []string) error
	SubCommands []*Command
}

var rootCmd = &Command{
	Name:  "carousel",
	Short: "Carousel - image slider state machine",
	Long: `Carousel drives an image slider from a carousel.yaml file.

It steps through slides with scroll, crossfade or overlay transitions,
plays them automatically and pauses autoplay after manual input.

Use "carousel <command> --help" for more information about a command.`,
	Usage: "carousel [--config FILE] [--verbose] <command> [flags]",
}

// Commands registered with the CLI.
var commands = make(map[string]*Command)

// Global flag values, set by Execute.
var (
	configPath string
	verbose    bool
	logOutput  io.Writer = os.Stderr
)

// RegisterCommand adds a command to the CLI.
func RegisterCommand(cmd *Command) {
	commands[cmd.Name] = cmd
	rootCmd.SubCommands = append(rootCmd.SubCommands, cmd)
}

// Execute runs the CLI with os.Args.
func Execute() error {
	return run(os.Args[1:])
}

func run(args []string) error {
	configPath = ""
	verbose = false

	if len(args) == 0 {
		printHelp(rootCmd)
		return nil
	}

	var filteredArgs []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "-h", "--help", "help":
			if len(filteredArgs) == 0 {
				printHelp(rootCmd)
				return nil
			}
			filteredArgs = append(filteredArgs, arg)
		case "-v", "--version", "version":
			if len(filteredArgs) == 0 {
				fmt.Printf("carousel version %s (built %s)\n", Version, BuildTime)
				return nil
			}
			filteredArgs = append(filteredArgs, arg)
		case "--config", "-c":
			if i+1 >= len(args) {
				return fmt.Errorf("--config requires a file path")
			}
			configPath = args[i+1]
			i++
		case "--verbose":
			verbose = true
		default:
			if strings.HasPrefix(arg, "--config=") {
				configPath = strings.TrimPrefix(arg, "--config=")
				continue
			}
			filteredArgs = append(filteredArgs, arg)
		}
	}
	args = filteredArgs

	if len(args) == 0 {
		printHelp(rootCmd)
		return nil
	}

	cmdName := args[0]
	cmd, ok := commands[cmdName]
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", cmdName)
		printHelp(rootCmd)
		return fmt.Errorf("unknown command: %s", cmdName)
	}

	cmdArgs := args[1:]
	for _, arg := range cmdArgs {
		if arg == "-h" || arg == "--help" || arg == "help" {
			printCommandHelp(cmd)
			return nil
		}
	}

	setupLogging()
	return cmd.Run(cmdArgs)
}

func setupLogging() {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(logOutput, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	errors.SetHandler(&errors.LogHandler{Logger: logger, Verbose: verbose})
}

// loadConfig resolves the configuration named by --config, or the nearest
// carousel.yaml above the working directory. A .env file next to the
// configuration contributes CAROUSEL_* overrides.
func loadConfig() (*config.Resolved, error) {
	path := configPath
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		path = config.FindConfig(wd)
	}
	env, err := config.Environment(filepath.Dir(path))
	if err != nil {
		return nil, err
	}
	res, err := config.Resolve(path, env)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	slog.Debug("config resolved", slog.String("path", res.Path), slog.String("version", res.Version))
	return res, nil
}

func printHelp(cmd *Command) {
	fmt.Println(cmd.Long)
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Printf("  %s\n", cmd.Usage)
	fmt.Println()
	fmt.Println("Commands:")
	for _, sub := range cmd.SubCommands {
		fmt.Printf("  %-14s %s\n", sub.Name, sub.Short)
	}
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Println("  -h, --help           Show help for a command")
	fmt.Println("  -v, --version        Show version information")
	fmt.Println("  -c, --config FILE    Configuration file (default: nearest carousel.yaml)")
	fmt.Println("  --verbose            Log debug records to stderr")
	fmt.Println()
	fmt.Println("Environment:")
	fmt.Printf("  %-27s Transition mode (scroll, crossfade, overlay)\n", config.EnvMode)
	fmt.Printf("  %-27s Enable autoplay (true/false)\n", config.EnvAutoScroll)
	fmt.Printf("  %-27s Autoplay interval\n", config.EnvTickInterval)
	fmt.Printf("  %-27s Cooldown after manual input\n", config.EnvResumeDelay)
	fmt.Printf("  %-27s Transition duration\n", config.EnvAnimationDuration)
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  carousel preview                    Interactive terminal preview")
	fmt.Println("  carousel snapshot --out frames next wait:3s")
	fmt.Println("  carousel validate                   Print the resolved configuration")
}

func printCommandHelp(cmd *Command) {
	fmt.Println(cmd.Long)
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Printf("  %s\n", cmd.Usage)
}
