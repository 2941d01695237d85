package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"walletlink/internal/codec"
	"walletlink/internal/protocol/deeplink"
)

// Transactions are passed as base58 serialized bytes; building them is the
// caller's business.
func decodeTransactions(args []string) ([][]byte, error) {
	txs := make([][]byte, 0, len(args))
	for i, a := range args {
		tx, err := codec.DecodeBase58(a)
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i+1, err)
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

func signMessageCmd() *cobra.Command {
	var display string
	cmd := &cobra.Command{
		Use:   "sign-message <message>",
		Short: "Print a deeplink asking the wallet to sign a message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireConnected(); err != nil {
				return err
			}
			link, err := wire.Builder.SignMessage(wire.Sessions.Current(), []byte(args[0]), deeplink.Display(display))
			if err != nil {
				return err
			}
			fmt.Println(link)
			return nil
		},
	}
	cmd.Flags().StringVar(&display, "display", "", "how the wallet shows the message: utf8 or hex")
	return cmd
}

func signTransactionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sign-transaction <base58-tx>",
		Short: "Print a deeplink asking the wallet to sign a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireConnected(); err != nil {
				return err
			}
			txs, err := decodeTransactions(args)
			if err != nil {
				return err
			}
			link, err := wire.Builder.SignTransaction(wire.Sessions.Current(), txs[0])
			if err != nil {
				return err
			}
			fmt.Println(link)
			return nil
		},
	}
}

func signAllTransactionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sign-all-transactions <base58-tx>...",
		Short: "Print a deeplink asking the wallet to sign several transactions",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireConnected(); err != nil {
				return err
			}
			txs, err := decodeTransactions(args)
			if err != nil {
				return err
			}
			link, err := wire.Builder.SignAllTransactions(wire.Sessions.Current(), txs)
			if err != nil {
				return err
			}
			fmt.Println(link)
			return nil
		},
	}
}

func signAndSendTransactionCmd() *cobra.Command {
	var (
		skipPreflight bool
		commitment    string
		maxRetries    int
	)
	cmd := &cobra.Command{
		Use:   "sign-and-send-transaction <base58-tx>",
		Short: "Print a deeplink asking the wallet to sign and submit a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireConnected(); err != nil {
				return err
			}
			txs, err := decodeTransactions(args)
			if err != nil {
				return err
			}
			var opts *deeplink.SendOptions
			if skipPreflight || commitment != "" || maxRetries > 0 {
				opts = &deeplink.SendOptions{
					SkipPreflight:       skipPreflight,
					PreflightCommitment: commitment,
					MaxRetries:          maxRetries,
				}
			}
			link, err := wire.Builder.SignAndSendTransaction(wire.Sessions.Current(), txs[0], opts)
			if err != nil {
				return err
			}
			fmt.Println(link)
			return nil
		},
	}
	cmd.Flags().BoolVar(&skipPreflight, "skip-preflight", false, "ask the wallet to skip preflight simulation")
	cmd.Flags().StringVar(&commitment, "commitment", "", "preflight commitment (processed, confirmed, finalized)")
	cmd.Flags().IntVar(&maxRetries, "max-retries", 0, "maximum RPC submission retries")
	return cmd
}
