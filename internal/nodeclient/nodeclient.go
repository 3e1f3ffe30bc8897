// Package nodeclient defines the daemon's outbound contract with a QRL
// node (spec §6, "Node client outbound contract") and the default
// timeout the relay pipeline applies to every call (spec §5,
// "Cancellation & timeouts").
package nodeclient

import (
	"context"
	"time"
)

// DefaultTimeout is the deadline the relay pipeline applies to every
// outbound node call unless the caller's context already carries a
// shorter one (spec §5: "each outbound node call has a 5-second default
// deadline").
const DefaultTimeout = 5 * time.Second

// PushResult is the node's verdict on a submitted transaction.
type PushResult string

const (
	PushSubmitted PushResult = "SUBMITTED"
	PushUnknown   PushResult = "UNKNOWN"
	PushRejected  PushResult = "REJECTED"
)

// AddressState is the node's view of one address's balances and OTS
// usage (spec §6).
type AddressState struct {
	Balance            uint64
	Tokens             map[string]uint64
	OTSBitfield         []byte
	NextUnusedOTSIndex uint64
}

// NodeState is a coarse snapshot of the node's sync status, used by
// GetNodeState.
type NodeState struct {
	BlockHeight uint64
	NetworkID   string
	Version     string
}

// Object is the generic response shape for GetObject — a node-defined
// blob (transaction, block, or other chain object) keyed by hash.
// Confirmations is the node's block-depth count for the object; it is
// meaningful for transactions and zero for objects the node does not
// track confirmations for (e.g. blocks).
type Object struct {
	Hash          [32]byte
	Data          []byte
	Confirmations uint64
}

// NodeClient is everything the daemon core needs from a QRL node. Every
// method takes a context so the relay pipeline can bound it with
// DefaultTimeout and so cancellation at the RPC layer can abort an
// in-flight call without rolling back an already-persisted OTS bump
// (spec §5).
type NodeClient interface {
	// PushTransaction submits a signed transaction's wire bytes to the
	// node for relay.
	PushTransaction(ctx context.Context, signedTxBytes []byte) (PushResult, error)
	GetAddressState(ctx context.Context, qaddress string) (AddressState, error)
	GetObject(ctx context.Context, hash [32]byte) (Object, error)
	GetNodeState(ctx context.Context) (NodeState, error)
	GetBlockByNumber(ctx context.Context, number uint64) ([]byte, error)
}

// WithDefaultTimeout derives a context bounded by DefaultTimeout unless
// ctx already carries an earlier deadline.
func WithDefaultTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if deadline, ok := ctx.Deadline(); ok {
		if time.Until(deadline) < DefaultTimeout {
			return context.WithCancel(ctx)
		}
	}
	return context.WithTimeout(ctx, DefaultTimeout)
}
