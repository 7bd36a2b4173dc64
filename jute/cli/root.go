// Package cli wires the jute library into the jute command line tool.
package cli

import (
	internal "github.com/ZanzyTHEbar/jute-commons/jute"
	"github.com/ZanzyTHEbar/jute-commons/jute/config"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// app carries state shared by subcommands once flags are parsed
type app struct {
	configPath string
	logLevel   string
	cfg        *config.Config
	logger     zerolog.Logger
}

// NewRootCommand creates and returns the root cobra command for jute
func NewRootCommand() *cobra.Command {
	a := &app{logger: zerolog.Nop()}

	cmd := &cobra.Command{
		Use:   "jute",
		Short: "Directory tree enumeration and decimal truncation utilities",
		Long: `jute lists the regular files below a directory, dropping the ones that
match exclusion fragments, file names, globs or gitignore style rules,
and truncates decimal numbers without rounding.`,
		Version:      Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
	}

	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default searches ./config.yaml and "+internal.DefaultGlobalConfig+")")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")

	cmd.AddCommand(newTreeCommand(a))
	cmd.AddCommand(newTruncateCommand(a))

	return cmd
}

func (a *app) load() error {
	cfg, err := config.LoadConfig(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level := cfg.Log.Level
	if a.logLevel != "" {
		level = a.logLevel
	}
	a.logger = internal.NewLogger(level)
	return nil
}
