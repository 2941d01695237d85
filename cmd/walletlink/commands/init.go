package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"walletlink/internal/app"
	"walletlink/internal/codec"
)

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a default config and generate the dapp key pair",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgFile := filepath.Join(wire.Config.Home, app.ConfigFilename)
			if _, err := os.Stat(cfgFile); os.IsNotExist(err) {
				if err := wire.Config.Save(); err != nil {
					return err
				}
				fmt.Printf("Config written to %s\n", cfgFile)
			}
			kp, err := wire.Keys.LoadOrCreateKeyPair()
			if err != nil {
				return err
			}
			fp, err := wire.Keys.Fingerprint()
			if err != nil {
				return err
			}
			fmt.Printf("Dapp key ready.\nPublic key:  %s\nFingerprint: %s\n", codec.EncodeBase58(kp.PublicKey.Slice()), fp)
			return nil
		},
	}
}
