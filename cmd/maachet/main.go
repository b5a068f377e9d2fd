package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/goetz-markgraf/maach-et/internal/config"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// errSessionFailed ends the process with a non-zero status; the cause has
// already been shown to the user.
var errSessionFailed = errors.New("session failed")

var (
	// Global flags
	configPath  string
	verbose     bool
	model       string
	hostname    string
	port        int
	resume      bool
	noPreflight bool
	noRender    bool

	logger = zap.NewNop()
	cfg    *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "maachet",
	Short: "Chat with a language model that edits your workspace through fenced tool blocks",
	Long: `maachet is a terminal assistant for programming tasks.

The model answers in markdown; fenced blocks such as

    ` + "```" + `save main.go
    package main
    ` + "```" + `

are run as tools against the current directory. Tool output is fed back to the
model until it answers without needing more input. Type /bye, /exit or /quit to
leave.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = loadConfig(cmd)
		if err != nil {
			return err
		}
		logger, err = newLogger(cfg.Logging.Level, verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default "+config.DefaultPath+" if present)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&model, "model", "ollama/qwen2.5-coder", "Model as provider/model (anthropic, gemini, ollama, openai)")
	rootCmd.PersistentFlags().StringVar(&hostname, "hostname", "localhost", "Hostname of the ollama server")
	rootCmd.PersistentFlags().IntVar(&port, "port", 11434, "Port of the ollama server")

	rootCmd.Flags().BoolVar(&resume, "resume", false, "Continue the stored conversation; without it the stored history is cleared")
	rootCmd.Flags().BoolVar(&noPreflight, "no-preflight", false, "Skip the uncommitted-changes check")
	rootCmd.Flags().BoolVar(&noRender, "no-render", false, "Print replies as plain text")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSchemaCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errSessionFailed) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

// loadConfig reads the config file, then applies the flags given explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, required := configPath, true
	if path == "" {
		path, required = config.DefaultPath, false
	}
	c, err := config.Load(path, required)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("model") {
		c.Model = model
	}
	if flags.Changed("hostname") {
		c.Ollama.Host = hostname
	}
	if flags.Changed("port") {
		c.Ollama.Port = port
	}
	if noPreflight {
		c.Preflight = false
	}
	if noRender {
		c.UI.Render = false
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return c, nil
}

func newLogger(level string, verbose bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.WarnLevel
	}
	if verbose {
		lvl = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(lvl)
	return zc.Build()
}
