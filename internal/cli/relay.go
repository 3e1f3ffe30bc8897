package cli

import (
	"context"
	"fmt"

	"github.com/pqwallet/walletd/internal/daemon"
	"github.com/pqwallet/walletd/internal/nodeclient"
	"github.com/pqwallet/walletd/internal/qaddress"
	"github.com/spf13/cobra"
)

var relayCmd = &cobra.Command{
	Use:   "relay",
	Short: "Build, sign, and relay a transaction",
}

// relayDaemon opens the local wallet.json against the node endpoint
// named by the --node-addr flag; the config file is not consulted for it.
func relayDaemon(cmd *cobra.Command) (*daemon.Daemon, error) {
	nodeAddr, _ := cmd.Flags().GetString("node-addr")
	store, err := openStore()
	if err != nil {
		return nil, err
	}
	return daemon.New(store, nodeclient.NewHTTPClient(nodeAddr)), nil
}

var relayTransferCmd = &cobra.Command{
	Use:   "transfer [signer-qaddress] [to-qaddress] [amount]",
	Short: "Relay a Transfer transaction to a single recipient",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		fee, _ := cmd.Flags().GetUint64("fee")
		otsIndex, _ := cmd.Flags().GetUint64("ots-index")
		master, _ := cmd.Flags().GetString("master")

		var amount uint64
		if _, err := fmt.Sscanf(args[2], "%d", &amount); err != nil {
			return fmt.Errorf("cli: invalid amount %q: %w", args[2], err)
		}
		to, err := qaddress.Parse(args[1])
		if err != nil {
			return fmt.Errorf("cli: invalid recipient: %w", err)
		}

		d, err := relayDaemon(cmd)
		if err != nil {
			return err
		}
		tx, err := d.RelayTransferTxn(context.Background(), args[0], master, fee, otsIndex, [][39]byte{to}, []uint64{amount})
		if err != nil {
			return fmt.Errorf("cli: relay transfer: %w", err)
		}
		fmt.Printf("transaction_hash: %x\n", tx.TransactionHash)
		return nil
	},
}

var relayMessageCmd = &cobra.Command{
	Use:   "message [signer-qaddress] [text]",
	Short: "Relay a Message transaction",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		fee, _ := cmd.Flags().GetUint64("fee")
		otsIndex, _ := cmd.Flags().GetUint64("ots-index")
		master, _ := cmd.Flags().GetString("master")

		d, err := relayDaemon(cmd)
		if err != nil {
			return err
		}
		tx, err := d.RelayMessageTxn(context.Background(), args[0], master, fee, otsIndex, []byte(args[1]))
		if err != nil {
			return fmt.Errorf("cli: relay message: %w", err)
		}
		fmt.Printf("transaction_hash: %x\n", tx.TransactionHash)
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{relayTransferCmd, relayMessageCmd} {
		c.Flags().String("node-addr", "http://127.0.0.1:8545", "node HTTP endpoint")
		c.Flags().Uint64("fee", 0, "transaction fee in Shor")
		c.Flags().Uint64("ots-index", 0, "OTS leaf index to sign with")
		c.Flags().String("master", "", "optional master qaddress")
	}

	relayCmd.AddCommand(relayTransferCmd, relayMessageCmd)
	rootCmd.AddCommand(relayCmd)
}
