package commands

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"walletlink/internal/app"
)

var (
	home       string
	configPath string
	passphrase string
	verbose    bool

	wire *app.Wire
)

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "walletlink",
		Short:         "Drive a mobile wallet over encrypted deeplinks",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				log.SetLevel(log.DebugLevel)
			}
			dir, err := app.ResolveHome(home)
			if err != nil {
				return err
			}
			cfg, err := app.LoadConfig(dir, configPath)
			if err != nil {
				return err
			}
			if passphrase == "" && cfg.PersistSession {
				log.Debug("no passphrase; the session will not outlive this run")
			}
			wire, err = app.NewWire(cfg, passphrase)
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if wire == nil {
				return nil
			}
			return wire.Close()
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "config dir (default $"+app.HomeEnv+" or ~/.walletlink)")
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default <home>/"+app.ConfigFilename+")")
	root.PersistentFlags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase sealing the stored session")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		initCmd(),
		pubkeyCmd(),
		connectCmd(),
		disconnectCmd(),
		signMessageCmd(),
		signTransactionCmd(),
		signAllTransactionsCmd(),
		signAndSendTransactionCmd(),
		handleCmd(),
		statusCmd(),
	)
	return root
}

func requireConnected() error {
	if !wire.Sessions.Current().Connected() {
		return fmt.Errorf("not connected: run connect, then handle the redirect (use -p to keep the session)")
	}
	return nil
}
