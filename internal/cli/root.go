package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	version = "1.0.0"
)

var rootCmd = &cobra.Command{
	Use:   "walletd",
	Short: "Post-quantum XMSS wallet daemon",
	Long: `walletd manages a persistent set of XMSS key-pairs, mints and signs
transactions, and relays them to a blockchain node over a structured RPC.

XMSS is a stateful hash-based signature scheme: every signature burns a
one-time key from the pair's Merkle tree, so walletd's wallet file tracks
which index is next for every address it holds.`,
	Version: version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.walletd.yaml)")
	rootCmd.PersistentFlags().String("datadir", "", "directory holding wallet.json (default is $HOME/.walletd)")
	rootCmd.PersistentFlags().Bool("verbose", false, "verbose output")

	viper.BindPFlag("datadir", rootCmd.PersistentFlags().Lookup("datadir"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".walletd")
	}

	viper.SetEnvPrefix("WALLETD")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// walletPath resolves the wallet.json location: --datadir/wallet.json,
// falling back to $HOME/.walletd/wallet.json.
func walletPath() (string, error) {
	datadir := viper.GetString("datadir")
	if datadir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cli: resolve home directory: %w", err)
		}
		datadir = filepath.Join(home, ".walletd")
	}
	if err := os.MkdirAll(datadir, 0o700); err != nil {
		return "", fmt.Errorf("cli: create datadir: %w", err)
	}
	return filepath.Join(datadir, "wallet.json"), nil
}
