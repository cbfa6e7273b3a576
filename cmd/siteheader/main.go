package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/siteheader/internal/config"
	"github.com/vango-dev/siteheader/internal/errors"
	"github.com/vango-dev/siteheader/internal/logging"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cmd := rootCmd()
	if err := cmd.Execute(); err != nil {
		format, _ := cmd.PersistentFlags().GetString("error-format")
		errors.Fprint(os.Stderr, err, format)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		configPath  string
		noColor     bool
		errorFormat string
	)

	root := &cobra.Command{
		Use:   "siteheader",
		Short: "Render the responsive site header",
		Long: `siteheader renders the site's desktop and mobile headers from
siteheader.yaml.

It can print a fragment, serve fragments over HTTP with a live
websocket channel, or publish pre-rendered fragments to S3.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if errorFormat != errors.FormatText && errorFormat != errors.FormatJSON {
				return errors.New("E170").WithField("--error-format").
					WithSuggestion("Use --error-format=text or --error-format=json")
			}
			if noColor || os.Getenv("NO_COLOR") != "" {
				errors.DisableColors()
			}
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to siteheader.yaml (default: nearest in this or a parent directory)")
	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored error output")
	root.PersistentFlags().StringVar(&errorFormat, "error-format", errors.FormatText, "Error output: text or json")

	load := func() (*config.Config, error) {
		if configPath != "" {
			return config.LoadFile(configPath)
		}
		return config.LoadFromWorkingDir()
	}

	root.AddCommand(
		renderCmd(load),
		serveCmd(load),
		publishCmd(load),
		versionCmd(),
	)
	return root
}

// loader returns the active configuration.
type loader func() (*config.Config, error)

func newLogger(cfg *config.Config) *slog.Logger {
	return logging.New(cfg.LoggingOptions())
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}
