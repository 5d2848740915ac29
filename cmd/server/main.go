// Command server runs the rental record keeper.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mmynk/rentkeeper/internal/config"
	"github.com/mmynk/rentkeeper/pkg/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	v := config.New()

	serveCmd := newServeCommand(v)
	rootCmd := &cobra.Command{
		Use:           "rentkeeper",
		Short:         "Rental record keeper for a single owner",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serveCmd.RunE,
	}
	cobra.CheckErr(config.RegisterFlags(rootCmd, v))

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(newMigrateCommand(v))
	rootCmd.AddCommand(newCreateOwnerCommand(v))
	return rootCmd
}

// loadConfig resolves settings and installs the default logger.
func loadConfig(v *viper.Viper) (*config.Config, error) {
	cfg, err := config.Load(v)
	if err != nil {
		return nil, err
	}
	logger := logging.Setup(cfg.LogLevel)
	if cfg.DevSecret {
		logger.Warn("SECRET_KEY is not set, using the development key; sessions are not secure")
	}
	return cfg, nil
}
