package daemon

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/pqwallet/walletd/internal/daemonerr"
	"github.com/pqwallet/walletd/internal/hash"
	"github.com/pqwallet/walletd/internal/nodeclient"
	"github.com/pqwallet/walletd/internal/walletstore"
	"github.com/stretchr/testify/require"
)

func newTestDaemon(t *testing.T) (*Daemon, *walletstore.Store, *nodeclient.Mock) {
	t.Helper()
	store := walletstore.New(filepath.Join(t.TempDir(), "wallet.json"))
	mock := nodeclient.NewMock()
	return New(store, mock), store, mock
}

func addr39(b byte) [39]byte {
	var a [39]byte
	a[0] = b
	return a
}

func TestAddNewAddressTwiceDistinctQaddresses(t *testing.T) {
	d, _, _ := newTestDaemon(t)
	a, err := d.AddNewAddress(4, hash.SHAKE128)
	require.NoError(t, err)
	b, err := d.AddNewAddress(4, hash.SHAKE128)
	require.NoError(t, err)

	require.NotEqual(t, a, b)
	require.True(t, a[0] == 'Q' && b[0] == 'Q')
	require.Equal(t, []string{a, b}, d.ListAddresses())
}

func TestEncryptLockUnlockScenario(t *testing.T) {
	d, _, _ := newTestDaemon(t)
	_, err := d.AddNewAddress(4, hash.SHAKE128)
	require.NoError(t, err)

	require.NoError(t, d.EncryptWallet("你好"))
	require.NoError(t, d.LockWallet())
	require.Equal(t, StateLocked, d.LockState())

	err = d.UnlockWallet("wrong")
	require.Error(t, err)
	require.Equal(t, daemonerr.KindWalletDecryption, daemonerr.KindOf(err))
	require.Equal(t, StateLocked, d.LockState())

	require.NoError(t, d.UnlockWallet("你好"))
	require.Equal(t, StateUnlockedEncrypted, d.LockState())
}

func TestEncryptWalletTwiceIsValidationError(t *testing.T) {
	d, _, _ := newTestDaemon(t)
	_, err := d.AddNewAddress(4, hash.SHAKE128)
	require.NoError(t, err)

	require.NoError(t, d.EncryptWallet("pw"))
	err = d.EncryptWallet("pw")
	require.Error(t, err)
	require.Equal(t, daemonerr.KindValidation, daemonerr.KindOf(err))
}

func TestLockedWalletRejectsMutatingOps(t *testing.T) {
	d, _, _ := newTestDaemon(t)
	qaddr, err := d.AddNewAddress(4, hash.SHAKE128)
	require.NoError(t, err)
	require.NoError(t, d.EncryptWallet("pw"))
	require.NoError(t, d.LockWallet())

	_, err = d.AddNewAddress(4, hash.SHAKE128)
	require.Equal(t, daemonerr.KindWalletLocked, daemonerr.KindOf(err))

	_, _, err = d.GetRecoverySeeds(qaddr)
	require.Equal(t, daemonerr.KindWalletLocked, daemonerr.KindOf(err))

	_, err = d.RelayMessageTxn(context.Background(), qaddr, "", 0, 0, []byte("hi"))
	require.Equal(t, daemonerr.KindWalletLocked, daemonerr.KindOf(err))

	// Read-only ops still work while locked.
	require.Equal(t, []string{qaddr}, d.ListAddresses())
	_, _, encrypted := d.GetWalletInfo()
	_ = encrypted
}

func TestRelayTransferTxnScenario(t *testing.T) {
	d, store, mock := newTestDaemon(t)
	qaddr, err := d.AddNewAddress(4, hash.SHAKE128)
	require.NoError(t, err)

	tx, err := d.RelayTransferTxn(context.Background(), qaddr, "", 100_000_000, 0,
		[][39]byte{addr39(1), addr39(2)}, []uint64{1_000_000_000, 1_000_000_000})
	require.NoError(t, err)

	ok, err := tx.Verify()
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, mock.PushedTxs, 1)

	_, cursor, err := store.SignerMaterial(qaddr, "")
	require.NoError(t, err)
	require.Equal(t, uint64(1), cursor)

	_, err = d.RelayTransferTxn(context.Background(), qaddr, "", 100_000_000, 0,
		[][39]byte{addr39(1)}, []uint64{1_000_000_000})
	require.Equal(t, daemonerr.KindOtsIndexConflict, daemonerr.KindOf(err))
}

func TestRelayMessageTxnBoundariesAndLock(t *testing.T) {
	d, _, _ := newTestDaemon(t)
	qaddr, err := d.AddNewAddress(4, hash.SHAKE128)
	require.NoError(t, err)

	tx, err := d.RelayMessageTxn(context.Background(), qaddr, "", 0, 0, []byte("Hello QRL!"))
	require.NoError(t, err)
	ok, err := tx.Verify()
	require.NoError(t, err)
	require.True(t, ok)

	tooLong := make([]byte, 81)
	_, err = d.RelayMessageTxn(context.Background(), qaddr, "", 0, 1, tooLong)
	require.Equal(t, daemonerr.KindValidation, daemonerr.KindOf(err))

	require.NoError(t, d.EncryptWallet("pw"))
	require.NoError(t, d.LockWallet())
	_, err = d.RelayMessageTxn(context.Background(), qaddr, "", 0, 1, []byte("hi"))
	require.Equal(t, daemonerr.KindWalletLocked, daemonerr.KindOf(err))
}

// TestConcurrentRelaySameSignerNeverReusesOtsIndex guards spec §5's
// wallet mutex: two RelayTransferTxn calls racing for the same signer
// at ots_index=0 must not both sign at index 0 — the wallet mutex must
// serialize steps 1-5 so exactly one wins and the other sees
// OtsIndexConflict.
func TestConcurrentRelaySameSignerNeverReusesOtsIndex(t *testing.T) {
	d, store, _ := newTestDaemon(t)
	qaddr, err := d.AddNewAddress(8, hash.SHAKE128)
	require.NoError(t, err)

	const attempts = 8
	var wg sync.WaitGroup
	results := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := d.RelayMessageTxn(context.Background(), qaddr, "", 0, 0, []byte("hi"))
			results[i] = err
		}(i)
	}
	wg.Wait()

	successes, conflicts := 0, 0
	for _, err := range results {
		switch {
		case err == nil:
			successes++
		case daemonerr.KindOf(err) == daemonerr.KindOtsIndexConflict:
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	require.Equal(t, 1, successes, "exactly one concurrent relay at ots_index=0 may succeed")
	require.Equal(t, attempts-1, conflicts)

	_, cursor, err := store.SignerMaterial(qaddr, "")
	require.NoError(t, err)
	require.Equal(t, uint64(1), cursor)
}

func TestCursorBumpSurvivesNodeRejection(t *testing.T) {
	d, store, mock := newTestDaemon(t)
	qaddr, err := d.AddNewAddress(4, hash.SHAKE128)
	require.NoError(t, err)

	mock.PushResultFunc = func(b []byte) (nodeclient.PushResult, error) {
		return nodeclient.PushRejected, nil
	}

	_, err = d.RelayMessageTxn(context.Background(), qaddr, "", 0, 0, []byte("hi"))
	require.Equal(t, daemonerr.KindNodeRejected, daemonerr.KindOf(err))

	// The cursor bump from step 4 must have survived even though the
	// node rejected the transaction (spec §4.6 step 6, §8 scenario 6).
	_, cursor, err := store.SignerMaterial(qaddr, "")
	require.NoError(t, err)
	require.Equal(t, uint64(1), cursor)
}

func TestCursorBumpSurvivesSimulatedRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallet.json")
	store := walletstore.New(path)
	mock := nodeclient.NewMock()
	d := New(store, mock)

	qaddr, err := d.AddNewAddress(4, hash.SHAKE128)
	require.NoError(t, err)

	mock.PushResultFunc = func(b []byte) (nodeclient.PushResult, error) {
		return nodeclient.PushUnknown, nil
	}
	_, err = d.RelayMessageTxn(context.Background(), qaddr, "", 0, 0, []byte("hi"))
	require.Error(t, err)

	reloadedStore, err := walletstore.Load(path)
	require.NoError(t, err)
	reloaded := New(reloadedStore, nodeclient.NewMock())
	_, cursor, err := reloadedStore.SignerMaterial(qaddr, "")
	require.NoError(t, err)
	require.Equal(t, uint64(1), cursor)
	require.Equal(t, StateUnlocked, reloaded.LockState())
}
