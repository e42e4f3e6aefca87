// Package cli implements cartctl, a command line client for one cart.
//
// Every command opens the local slot and catalog (and the Remote Cart Service when
// --remote is set), loads the cart, runs, flushes the write-back and prints the cart.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/light-bringer/cartsync-service/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Config config.Config
	Format string // "json" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command. Flag defaults come from the environment.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}
	cfg, cfgErr := config.Load()
	opts.Config = cfg

	// Keep the terminal quiet unless asked
	logLevel := "warn"
	if os.Getenv(config.EnvLogLevel) != "" {
		logLevel = cfg.LogLevel
	}

	cmd := &cobra.Command{
		Use:   "cartctl",
		Short: "Inspect and edit a shopping cart",
		Long: `cartctl drives one cart kept in a local SQLite slot and, when --remote is set,
synchronized with a Remote Cart Service. Without --user the session is anonymous.

Item ids are printed as local:<id> or remote:<id>; pass them back the same way.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cfgErr != nil {
				return cfgErr
			}
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	// Global flags
	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.Config.LocalStore, "store", cfg.LocalStore, "SQLite file holding the local cart")
	flags.StringVar(&opts.Config.LocalSlot, "slot", cfg.LocalSlot, "local store slot name")
	flags.StringVar(&opts.Config.Catalog, "catalog", cfg.Catalog, "product catalog YAML")
	flags.StringVar(&opts.Config.RemoteAddr, "remote", cfg.RemoteAddr, "Remote Cart Service address (host:port)")
	flags.DurationVar(&opts.Config.RemoteTimeout, "remote-timeout", cfg.RemoteTimeout, "timeout of each remote call")
	flags.StringVar(&opts.Config.UserID, "user", cfg.UserID, "signed-in user id")
	flags.StringVar(&opts.Config.LogLevel, "log-level", logLevel, "log level")
	flags.StringVar(&opts.Format, "format", "text", "output format (json|text)")

	// Add subcommands
	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewUpdateCommand(opts))
	cmd.AddCommand(NewRemoveCommand(opts))
	cmd.AddCommand(NewClearCommand(opts))
	cmd.AddCommand(NewMigrateCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
