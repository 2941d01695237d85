package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"walletlink/internal/domain"
	"walletlink/internal/protocol/redirect"
)

// handle <url>: feed a wallet redirect through the router.
func handleCmd() *cobra.Command {
	var message string
	cmd := &cobra.Command{
		Use:   "handle <redirect-url>",
		Short: "Process a redirect URL the wallet sent back",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// The wallet key is read before the router may clear the state.
			prev := wire.Sessions.Current()
			res, err := wire.HandleURL(args[0])
			if err != nil {
				return err
			}
			fmt.Println(res.String())

			switch r := res.(type) {
			case domain.OperationFailed:
				var werr *domain.WalletError
				if errors.As(r.Cause, &werr) {
					return fmt.Errorf("wallet refused %s: %w", r.Operation, werr)
				}
				return r.Cause
			case domain.SignedMessage:
				if message == "" || prev == nil {
					return nil
				}
				if err := redirect.VerifyMessageSignature(prev.WalletPublicKey, []byte(message), r.Signature); err != nil {
					return fmt.Errorf("signature does not verify: %w", err)
				}
				fmt.Println("signature verified")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&message, "message", "", "verify a signed message against this text")
	return cmd
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current wallet session",
		RunE: func(cmd *cobra.Command, args []string) error {
			state := wire.Sessions.Current()
			if !state.Connected() {
				fmt.Println("not connected")
				return nil
			}
			fmt.Printf("connected\nWallet:    %s\nSession:   %s\nConnected: %s\n",
				redirect.FormatWalletPublicKey(state.WalletPublicKey),
				state.Session,
				state.ConnectedAt.Local().Format("2006-01-02 15:04:05"),
			)
			return nil
		},
	}
}
