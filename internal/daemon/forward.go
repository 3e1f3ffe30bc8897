package daemon

import (
	"context"

	"github.com/pqwallet/walletd/internal/nodeclient"
)

// GetTransaction forwards to the node's object store by transaction
// hash (spec §6). Confirmations is whatever the node reports via
// GetObject; this daemon does not track chain state itself.
func (d *Daemon) GetTransaction(ctx context.Context, txHash [32]byte) (nodeclient.Object, error) {
	callCtx, cancel := nodeclient.WithDefaultTimeout(ctx)
	defer cancel()
	return d.node.GetObject(callCtx, txHash)
}

// GetBalance forwards to the node's address-state query (spec §6).
func (d *Daemon) GetBalance(ctx context.Context, qaddr string) (uint64, error) {
	callCtx, cancel := nodeclient.WithDefaultTimeout(ctx)
	defer cancel()
	state, err := d.node.GetAddressState(callCtx, qaddr)
	if err != nil {
		return 0, err
	}
	return state.Balance, nil
}

// GetOTS forwards to the node's address-state query, returning the OTS
// bitfield and next unused index (spec §6).
func (d *Daemon) GetOTS(ctx context.Context, qaddr string) (bitfield []byte, nextUnused uint64, err error) {
	callCtx, cancel := nodeclient.WithDefaultTimeout(ctx)
	defer cancel()
	state, err := d.node.GetAddressState(callCtx, qaddr)
	if err != nil {
		return nil, 0, err
	}
	return state.OTSBitfield, state.NextUnusedOTSIndex, nil
}

// GetHeight forwards to the node's state query (spec §6).
func (d *Daemon) GetHeight(ctx context.Context) (uint64, error) {
	callCtx, cancel := nodeclient.WithDefaultTimeout(ctx)
	defer cancel()
	state, err := d.node.GetNodeState(callCtx)
	if err != nil {
		return 0, err
	}
	return state.BlockHeight, nil
}

// GetBlock forwards to the node's object store by block hash (spec §6).
func (d *Daemon) GetBlock(ctx context.Context, blockHash [32]byte) (nodeclient.Object, error) {
	callCtx, cancel := nodeclient.WithDefaultTimeout(ctx)
	defer cancel()
	return d.node.GetObject(callCtx, blockHash)
}

// GetBlockByNumber forwards directly to the node client (spec §6).
func (d *Daemon) GetBlockByNumber(ctx context.Context, number uint64) ([]byte, error) {
	callCtx, cancel := nodeclient.WithDefaultTimeout(ctx)
	defer cancel()
	return d.node.GetBlockByNumber(callCtx, number)
}
