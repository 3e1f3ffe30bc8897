package cli

import (
	"net/http"

	"github.com/btcsuite/btclog"
	"github.com/pqwallet/walletd/internal/daemon"
	"github.com/pqwallet/walletd/internal/nodeclient"
	"github.com/pqwallet/walletd/internal/rpcapi"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the wallet daemon's RPC server",
	Long: `serve loads (or creates) wallet.json, connects to a blockchain node, and
exposes the spec's RPC method surface over JSON-over-HTTP until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		bindAddr, _ := cmd.Flags().GetString("bind")
		nodeAddr, _ := cmd.Flags().GetString("node-addr")
		verbose, _ := cmd.Flags().GetBool("verbose")

		store, err := openStore()
		if err != nil {
			return err
		}

		backend := btclog.NewBackend(cmd.OutOrStderr())
		level := btclog.LevelInfo
		if verbose {
			level = btclog.LevelDebug
		}
		logger := backend.Logger("WALLETD")
		logger.SetLevel(level)
		daemon.UseLogger(logger)

		d := daemon.New(store, nodeclient.NewHTTPClient(nodeAddr))
		handler := rpcapi.NewHTTPHandler(rpcapi.NewService(d))

		logger.Infof("listening on %s, node=%s", bindAddr, nodeAddr)
		return http.ListenAndServe(bindAddr, handler)
	},
}

func init() {
	serveCmd.Flags().String("bind", "127.0.0.1:9000", "address to serve the wallet RPC on")
	serveCmd.Flags().String("node-addr", "http://127.0.0.1:8545", "node HTTP endpoint")
	rootCmd.AddCommand(serveCmd)
}
