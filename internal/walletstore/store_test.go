package walletstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pqwallet/walletd/internal/daemonerr"
	"github.com/pqwallet/walletd/internal/hash"
	"github.com/pqwallet/walletd/internal/xmss"
	"github.com/stretchr/testify/require"
)

func tempWalletPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "wallet.json")
}

func TestAddNewAddressTwiceYieldsDistinctQaddresses(t *testing.T) {
	s := New(tempWalletPath(t))

	a, err := s.AddNewAddress(4, hash.SHAKE128, "")
	require.NoError(t, err)
	b, err := s.AddNewAddress(4, hash.SHAKE128, "")
	require.NoError(t, err)

	require.NotEqual(t, a, b)
	require.Equal(t, byte('Q'), a[0])
	require.Equal(t, byte('Q'), b[0])
	require.Equal(t, []string{a, b}, s.ListAddresses())
}

func TestAddAddressFromSeedIsIdempotent(t *testing.T) {
	s := New(tempWalletPath(t))
	d := xmss.Descriptor{HashFunc: hash.SHAKE128, Height: 4, Scheme: xmss.SchemeXMSS}
	extendedSeed, err := xmss.NewRandomSeed(d)
	require.NoError(t, err)

	first, err := s.AddAddressFromSeed(extendedSeed, "")
	require.NoError(t, err)
	second, err := s.AddAddressFromSeed(extendedSeed, "")
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.Equal(t, 1, s.AddressCount())
}

func TestRemoveThenReAddYieldsSameQaddress(t *testing.T) {
	s := New(tempWalletPath(t))
	d := xmss.Descriptor{HashFunc: hash.SHA2_256, Height: 4, Scheme: xmss.SchemeXMSS}
	extendedSeed, err := xmss.NewRandomSeed(d)
	require.NoError(t, err)

	first, err := s.AddAddressFromSeed(extendedSeed, "")
	require.NoError(t, err)

	removed, err := s.RemoveAddress(first)
	require.NoError(t, err)
	require.True(t, removed)
	require.Equal(t, 0, s.AddressCount())

	second, err := s.AddAddressFromSeed(extendedSeed, "")
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestRemoveAddressMissingIsFalseNotError(t *testing.T) {
	s := New(tempWalletPath(t))
	removed, err := s.RemoveAddress("Qnotpresent")
	require.NoError(t, err)
	require.False(t, removed)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := tempWalletPath(t)
	s := New(path)
	qaddr, err := s.AddNewAddress(4, hash.SHAKE256, "")
	require.NoError(t, err)

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, []string{qaddr}, loaded.ListAddresses())
	require.Equal(t, CurrentVersion, loaded.Version())
	require.False(t, loaded.Encrypted())
}

func TestEncryptLockUnlockIsIdentityOnAddressList(t *testing.T) {
	path := tempWalletPath(t)
	s := New(path)
	qaddr, err := s.AddNewAddress(4, hash.SHAKE128, "")
	require.NoError(t, err)
	before := s.ListAddresses()

	require.NoError(t, s.EncryptWallet("你好"))
	require.True(t, s.Encrypted())

	// "lock" is purely a daemon-level in-memory disposition; the store
	// itself only cares whether the supplied passphrase opens the blob.
	err = s.VerifyPassphrase("wrong")
	require.Error(t, err)
	require.Equal(t, daemonerr.KindWalletDecryption, daemonerr.KindOf(err))

	require.NoError(t, s.VerifyPassphrase("你好"))
	require.Equal(t, before, s.ListAddresses())
	require.Contains(t, s.ListAddresses(), qaddr)
}

func TestEncryptWalletTwiceFails(t *testing.T) {
	s := New(tempWalletPath(t))
	_, err := s.AddNewAddress(4, hash.SHAKE128, "")
	require.NoError(t, err)
	require.NoError(t, s.EncryptWallet("pw"))
	require.ErrorIs(t, s.EncryptWallet("pw"), ErrAlreadyEncrypted)
}

func TestGetRecoverySeedsRequiresPassphraseWhenEncrypted(t *testing.T) {
	s := New(tempWalletPath(t))
	qaddr, err := s.AddNewAddress(4, hash.SHA2_256, "")
	require.NoError(t, err)
	require.NoError(t, s.EncryptWallet("secret"))

	_, _, err = s.GetRecoverySeeds(qaddr, "wrong")
	require.ErrorIs(t, err, ErrWrongPassphrase)

	hexSeed, mnemonic, err := s.GetRecoverySeeds(qaddr, "secret")
	require.NoError(t, err)
	require.NotEmpty(t, hexSeed)
	require.NotEmpty(t, mnemonic)
}

func TestChangePassphraseWrongOldLeavesStateUnchanged(t *testing.T) {
	s := New(tempWalletPath(t))
	qaddr, err := s.AddNewAddress(4, hash.SHAKE128, "")
	require.NoError(t, err)
	require.NoError(t, s.EncryptWallet("old"))

	err = s.ChangePassphrase("wrong-old", "new")
	require.Error(t, err)

	// Old passphrase must still open it; new one must not.
	require.NoError(t, s.VerifyPassphrase("old"))
	require.Error(t, s.VerifyPassphrase("new"))

	_, _, err = s.GetRecoverySeeds(qaddr, "old")
	require.NoError(t, err)
}

func TestChangePassphraseThenNewWorks(t *testing.T) {
	s := New(tempWalletPath(t))
	qaddr, err := s.AddNewAddress(4, hash.SHAKE128, "")
	require.NoError(t, err)
	require.NoError(t, s.EncryptWallet("old"))
	require.NoError(t, s.ChangePassphrase("old", "new"))

	require.Error(t, s.VerifyPassphrase("old"))
	require.NoError(t, s.VerifyPassphrase("new"))
	_, _, err = s.GetRecoverySeeds(qaddr, "new")
	require.NoError(t, err)
}

func TestDecryptWalletReturnsToPlaintext(t *testing.T) {
	s := New(tempWalletPath(t))
	qaddr, err := s.AddNewAddress(4, hash.SHAKE128, "")
	require.NoError(t, err)
	require.NoError(t, s.EncryptWallet("pw"))
	require.NoError(t, s.DecryptWallet("pw"))

	require.False(t, s.Encrypted())
	hexSeed, _, err := s.GetRecoverySeeds(qaddr, "")
	require.NoError(t, err)
	require.NotEmpty(t, hexSeed)
}

func TestBumpCursorPersistsAcrossReload(t *testing.T) {
	path := tempWalletPath(t)
	s := New(path)
	qaddr, err := s.AddNewAddress(4, hash.SHAKE128, "")
	require.NoError(t, err)

	require.NoError(t, s.BumpCursor(qaddr, 1))

	// Simulate a daemon restart: reload the store from disk. The
	// cursor bump must have survived even though nothing was ever
	// "signed" in this test (spec §8 scenario 6).
	reloaded, err := Load(path)
	require.NoError(t, err)
	_, cursor, err := reloaded.SignerMaterial(qaddr, "")
	require.NoError(t, err)
	require.Equal(t, uint64(1), cursor)
}

func TestBumpCursorRejectsRetreat(t *testing.T) {
	s := New(tempWalletPath(t))
	qaddr, err := s.AddNewAddress(4, hash.SHAKE128, "")
	require.NoError(t, err)
	require.NoError(t, s.BumpCursor(qaddr, 3))

	err = s.BumpCursor(qaddr, 1)
	require.Error(t, err)
	require.Equal(t, daemonerr.KindOtsIndexConflict, daemonerr.KindOf(err))
}

func TestSignerMaterialUnknownAddress(t *testing.T) {
	s := New(tempWalletPath(t))
	_, _, err := s.SignerMaterial("Qdoesnotexist", "")
	require.Equal(t, daemonerr.KindUnknownSigner, daemonerr.KindOf(err))
}

func TestUnknownFieldsRoundTripThroughSaveAndLoad(t *testing.T) {
	path := tempWalletPath(t)
	raw := `{
		"version": 1,
		"encrypted": false,
		"addresses": [
			{"qaddress": "Qdeadbeef", "ots_index": 0, "future_field": "keep-me"}
		],
		"future_top_level": 42
	}`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))

	s, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, s.Save())

	rewritten, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(rewritten), "future_field")
	require.Contains(t, string(rewritten), "future_top_level")
}
