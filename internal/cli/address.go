package cli

import (
	"fmt"

	"github.com/pqwallet/walletd/internal/daemon"
	"github.com/pqwallet/walletd/internal/nodeclient"
	"github.com/pqwallet/walletd/internal/walletstore"
	"github.com/spf13/cobra"
)

var addressCmd = &cobra.Command{
	Use:   "address",
	Short: "Manage addresses in the local wallet file",
}

// addressDaemon opens the local wallet.json and wraps it in a Daemon.
// Address subcommands never relay, so a Mock node client is enough.
func addressDaemon() (*daemon.Daemon, *walletstore.Store, error) {
	store, err := openStore()
	if err != nil {
		return nil, nil, err
	}
	return daemon.New(store, nodeclient.NewMock()), store, nil
}

var addressListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every qaddress in the wallet",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, _, err := addressDaemon()
		if err != nil {
			return err
		}
		for _, qaddr := range d.ListAddresses() {
			fmt.Println(qaddr)
		}
		return nil
	},
}

var addressNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Generate and add a new address to the wallet",
	RunE: func(cmd *cobra.Command, args []string) error {
		height, _ := cmd.Flags().GetUint8("height")
		hashFuncName, _ := cmd.Flags().GetString("hash-function")

		hashFunc, err := parseHashFunc(hashFuncName)
		if err != nil {
			return err
		}

		d, h, err := addressDaemon()
		if err != nil {
			return err
		}
		qaddr, err := d.AddNewAddress(height, hashFunc)
		if err != nil {
			return fmt.Errorf("cli: add address: %w", err)
		}
		if err := h.Save(); err != nil {
			return fmt.Errorf("cli: save wallet: %w", err)
		}
		fmt.Println(qaddr)
		return nil
	},
}

var addressAddFromSeedCmd = &cobra.Command{
	Use:   "add-from-seed",
	Short: "Add an address from an existing seed (hex or mnemonic)",
	RunE: func(cmd *cobra.Command, args []string) error {
		seedText, _ := cmd.Flags().GetString("seed")
		if seedText == "" {
			return fmt.Errorf("seed is required")
		}

		d, h, err := addressDaemon()
		if err != nil {
			return err
		}
		qaddr, err := d.AddAddressFromSeed(seedText)
		if err != nil {
			return fmt.Errorf("cli: add address: %w", err)
		}
		if err := h.Save(); err != nil {
			return fmt.Errorf("cli: save wallet: %w", err)
		}
		fmt.Println(qaddr)
		return nil
	},
}

var addressRemoveCmd = &cobra.Command{
	Use:   "remove [qaddress]",
	Short: "Remove an address from the wallet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, h, err := addressDaemon()
		if err != nil {
			return err
		}
		removed, err := d.RemoveAddress(args[0])
		if err != nil {
			return fmt.Errorf("cli: remove address: %w", err)
		}
		if err := h.Save(); err != nil {
			return fmt.Errorf("cli: save wallet: %w", err)
		}
		fmt.Println(removed)
		return nil
	},
}

var addressRecoverCmd = &cobra.Command{
	Use:   "recover [qaddress]",
	Short: "Print the recovery seed for an address",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, _, err := addressDaemon()
		if err != nil {
			return err
		}
		hexSeed, mnemonic, err := d.GetRecoverySeeds(args[0])
		if err != nil {
			return fmt.Errorf("cli: recover seeds: %w", err)
		}
		fmt.Printf("Hex seed: %s\n", hexSeed)
		fmt.Printf("Mnemonic: %s\n", mnemonic)
		return nil
	},
}

func init() {
	addressNewCmd.Flags().Uint8P("height", "H", 10, "XMSS tree height (4, 6, 8, 10, 12, 14, 16, or 18)")
	addressNewCmd.Flags().StringP("hash-function", "f", "shake128", "hash function: shake128, shake256, or sha2-256")
	addressAddFromSeedCmd.Flags().StringP("seed", "s", "", "extended seed, hex or mnemonic (required)")

	addressCmd.AddCommand(addressListCmd, addressNewCmd, addressAddFromSeedCmd, addressRemoveCmd, addressRecoverCmd)
	rootCmd.AddCommand(addressCmd)
}
