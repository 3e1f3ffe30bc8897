package nodeclient

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMockPushTransactionDefaultsToSubmitted(t *testing.T) {
	m := NewMock()
	result, err := m.PushTransaction(context.Background(), []byte("tx"))
	require.NoError(t, err)
	require.Equal(t, PushSubmitted, result)
	require.Len(t, m.PushedTxs, 1)
}

func TestMockPushTransactionCanBeOverridden(t *testing.T) {
	m := NewMock()
	m.PushResultFunc = func(b []byte) (PushResult, error) {
		return PushRejected, nil
	}
	result, err := m.PushTransaction(context.Background(), []byte("tx"))
	require.NoError(t, err)
	require.Equal(t, PushRejected, result)
}

func TestWithDefaultTimeoutAppliesWhenNoDeadline(t *testing.T) {
	ctx, cancel := WithDefaultTimeout(context.Background())
	defer cancel()
	deadline, ok := ctx.Deadline()
	require.True(t, ok)
	require.WithinDuration(t, time.Now().Add(DefaultTimeout), deadline, time.Second)
}

func TestWithDefaultTimeoutPreservesEarlierDeadline(t *testing.T) {
	parent, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	ctx, cancel2 := WithDefaultTimeout(parent)
	defer cancel2()

	parentDeadline, _ := parent.Deadline()
	ctxDeadline, _ := ctx.Deadline()
	require.Equal(t, parentDeadline, ctxDeadline)
}
