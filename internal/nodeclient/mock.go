package nodeclient

import (
	"context"
	"sync"
)

// Mock is an in-memory NodeClient for daemon tests: it records every
// call it receives and returns canned results, with no network I/O.
type Mock struct {
	mu sync.Mutex

	PushResultFunc func(signedTxBytes []byte) (PushResult, error)
	PushedTxs      [][]byte

	AddressStates map[string]AddressState
	Objects       map[[32]byte]Object
	State         NodeState
	BlocksByNum   map[uint64][]byte
}

// NewMock returns a Mock that accepts every pushed transaction
// (SUBMITTED) until reconfigured.
func NewMock() *Mock {
	return &Mock{
		AddressStates: make(map[string]AddressState),
		Objects:       make(map[[32]byte]Object),
		BlocksByNum:   make(map[uint64][]byte),
	}
}

func (m *Mock) PushTransaction(_ context.Context, signedTxBytes []byte) (PushResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PushedTxs = append(m.PushedTxs, signedTxBytes)
	if m.PushResultFunc != nil {
		return m.PushResultFunc(signedTxBytes)
	}
	return PushSubmitted, nil
}

func (m *Mock) GetAddressState(_ context.Context, qaddress string) (AddressState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.AddressStates[qaddress], nil
}

func (m *Mock) GetObject(_ context.Context, hash [32]byte) (Object, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Objects[hash], nil
}

func (m *Mock) GetNodeState(_ context.Context) (NodeState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.State, nil
}

func (m *Mock) GetBlockByNumber(_ context.Context, number uint64) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.BlocksByNum[number], nil
}
