package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func connectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "connect",
		Short: "Print a deeplink asking the wallet to connect",
		RunE: func(cmd *cobra.Command, args []string) error {
			link, err := wire.Builder.Connect()
			if err != nil {
				return err
			}
			fmt.Println(link)
			return nil
		},
	}
}

func disconnectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disconnect",
		Short: "Print a deeplink ending the wallet session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireConnected(); err != nil {
				return err
			}
			link, err := wire.Builder.Disconnect(wire.Sessions.Current())
			if err != nil {
				return err
			}
			fmt.Println(link)
			return nil
		},
	}
}
