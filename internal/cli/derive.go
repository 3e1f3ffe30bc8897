package cli

import (
	"fmt"
	"strings"

	"github.com/pqwallet/walletd/internal/qaddress"
	"github.com/pqwallet/walletd/internal/seed"
	"github.com/pqwallet/walletd/internal/xmss"
	"github.com/spf13/cobra"
)

func decodeSeedText(text string) ([]byte, error) {
	if len(strings.Fields(text)) == seed.WordCount {
		return seed.FromMnemonic(text)
	}
	return seed.FromHex(text)
}

var deriveCmd = &cobra.Command{
	Use:   "derive",
	Short: "Derive the qaddress for an XMSS seed",
	Long: `Derive the qaddress, public key, and OTS capacity for an existing XMSS
extended seed, given as either hex or a mnemonic phrase.

Unlike a BIP-32 HD wallet, one XMSS extended seed derives exactly one
key-pair — there is no derivation path or address index to choose.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		seedText, _ := cmd.Flags().GetString("seed")
		showPrivate, _ := cmd.Flags().GetBool("private")

		if seedText == "" {
			return fmt.Errorf("seed is required")
		}

		extendedSeed, err := decodeSeedText(seedText)
		if err != nil {
			return fmt.Errorf("decode seed: %w", err)
		}
		kp, err := xmss.Derive(extendedSeed)
		if err != nil {
			return fmt.Errorf("derive key pair: %w", err)
		}

		pub := kp.PublicKey()
		addr, err := qaddress.Derive(kp.Descriptor.Encode(), kp.PublicSeed(), kp.Root())
		if err != nil {
			return fmt.Errorf("derive qaddress: %w", err)
		}

		fmt.Printf("Qaddress:   %s\n", qaddress.ToQaddress(addr))
		fmt.Printf("Height:     %d (%d one-time signatures)\n", kp.Descriptor.Height, kp.Descriptor.NumLeaves())
		fmt.Printf("Public key: %x\n", pub)

		if showPrivate {
			hexSeed, err := seed.ToHex(extendedSeed)
			if err != nil {
				return fmt.Errorf("encode hex: %w", err)
			}
			fmt.Printf("\nSeed (hex): %s\n", hexSeed)
			fmt.Println("\nWARNING: the seed above can sign on behalf of this address. Keep it secret.")
		}

		return nil
	},
}

func init() {
	deriveCmd.Flags().StringP("seed", "s", "", "extended seed, hex or mnemonic (required)")
	deriveCmd.Flags().Bool("private", false, "also print the seed in hex")

	deriveCmd.MarkFlagRequired("seed")
	rootCmd.AddCommand(deriveCmd)
}
