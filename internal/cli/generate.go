package cli

import (
	"fmt"

	"github.com/pqwallet/walletd/internal/hash"
	"github.com/pqwallet/walletd/internal/seed"
	"github.com/pqwallet/walletd/internal/xmss"
	"github.com/spf13/cobra"
)

func parseHashFunc(name string) (hash.Func, error) {
	switch name {
	case "shake128":
		return hash.SHAKE128, nil
	case "shake256":
		return hash.SHAKE256, nil
	case "sha2-256":
		return hash.SHA2_256, nil
	default:
		return 0, fmt.Errorf("unknown hash function %q (want shake128, shake256, or sha2-256)", name)
	}
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a new XMSS extended seed",
	Long: `Generate a fresh XMSS extended seed: a 3-byte descriptor (hash function,
tree height, signature scheme) followed by 48 bytes of random seed material.

The seed is printed in both hex and mnemonic form. Either form can later be
handed to "walletd address add-from-seed" to add the address to a wallet.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		height, _ := cmd.Flags().GetUint8("height")
		hashFuncName, _ := cmd.Flags().GetString("hash-function")

		hashFunc, err := parseHashFunc(hashFuncName)
		if err != nil {
			return err
		}
		descriptor := xmss.Descriptor{HashFunc: hashFunc, Height: height, Scheme: xmss.SchemeXMSS}

		extendedSeed, err := xmss.NewRandomSeed(descriptor)
		if err != nil {
			return fmt.Errorf("generate seed: %w", err)
		}

		hexSeed, err := seed.ToHex(extendedSeed)
		if err != nil {
			return fmt.Errorf("encode hex: %w", err)
		}
		mnemonic, err := seed.ToMnemonic(extendedSeed)
		if err != nil {
			return fmt.Errorf("encode mnemonic: %w", err)
		}

		fmt.Printf("Height:        %d (2^%d = %d one-time signatures)\n", height, height, uint64(1)<<height)
		fmt.Printf("Hash function: %s\n", hashFuncName)
		fmt.Printf("Hex seed:      %s\n", hexSeed)
		fmt.Printf("Mnemonic:      %s\n\n", mnemonic)
		fmt.Println("Store this seed securely: anyone who has it can sign with this address.")
		return nil
	},
}

func init() {
	generateCmd.Flags().Uint8P("height", "H", 10, "XMSS tree height (4, 6, 8, 10, 12, 14, 16, or 18)")
	generateCmd.Flags().StringP("hash-function", "f", "shake128", "hash function: shake128, shake256, or sha2-256")
	rootCmd.AddCommand(generateCmd)
}
