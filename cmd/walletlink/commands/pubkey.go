package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"walletlink/internal/codec"
)

func pubkeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pubkey",
		Short: "Print the dapp encryption public key and its fingerprint",
		RunE: func(cmd *cobra.Command, args []string) error {
			kp, err := wire.Keys.LoadOrCreateKeyPair()
			if err != nil {
				return err
			}
			fp, err := wire.Keys.Fingerprint()
			if err != nil {
				return err
			}
			fmt.Printf("%s\nFingerprint: %s\n", codec.EncodeBase58(kp.PublicKey.Slice()), fp)
			return nil
		},
	}
}
