package txmodel

import (
	"testing"

	"github.com/pqwallet/walletd/internal/hash"
	"github.com/pqwallet/walletd/internal/xmss"
	"github.com/stretchr/testify/require"
)

func testKeyPair(t *testing.T) *xmss.KeyPair {
	t.Helper()
	d := xmss.Descriptor{HashFunc: hash.SHAKE128, Height: 4, Scheme: xmss.SchemeXMSS}
	seed, err := xmss.NewRandomSeed(d)
	require.NoError(t, err)
	kp, err := xmss.Derive(seed)
	require.NoError(t, err)
	return kp
}

func addr(b byte) [addressSize]byte {
	var a [addressSize]byte
	a[0] = b
	return a
}

func TestTransferBuildSignVerify(t *testing.T) {
	kp := testKeyPair(t)
	pub := kp.PublicKey()

	body := &TransferBody{
		AddressesTo: [][addressSize]byte{addr(1), addr(2)},
		Amounts:     []uint64{1_000_000_000, 2_000_000_000},
	}
	tx, err := New(nil, 100_000_000, pub, body)
	require.NoError(t, err)
	require.NotEqual(t, [hash.Size]byte{}, tx.TransactionHash)

	require.NoError(t, tx.Sign(kp, 0))
	ok, err := tx.Verify()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, uint64(0), tx.OtsIndexUsed)
}

func TestTransferEmptyDestinations(t *testing.T) {
	kp := testKeyPair(t)
	body := &TransferBody{}
	_, err := New(nil, 0, kp.PublicKey(), body)
	require.ErrorIs(t, err, ErrEmptyDestinations)
}

func TestTransferLengthMismatch(t *testing.T) {
	kp := testKeyPair(t)
	body := &TransferBody{
		AddressesTo: [][addressSize]byte{addr(1), addr(2)},
		Amounts:     []uint64{1},
	}
	_, err := New(nil, 0, kp.PublicKey(), body)
	require.ErrorIs(t, err, ErrLengthMismatch)
}

func TestTransferZeroAmount(t *testing.T) {
	kp := testKeyPair(t)
	body := &TransferBody{
		AddressesTo: [][addressSize]byte{addr(1)},
		Amounts:     []uint64{0},
	}
	_, err := New(nil, 0, kp.PublicKey(), body)
	require.ErrorIs(t, err, ErrNegativeOrZeroAmount)
}

func TestTokenValidation(t *testing.T) {
	kp := testKeyPair(t)
	valid := &TokenBody{
		Symbol:   []byte("QRL"),
		Name:     []byte("Quantum Resistant Ledger"),
		Owner:    addr(9),
		Decimals: 8,
		InitialBalances: TransferBody{
			AddressesTo: [][addressSize]byte{addr(1)},
			Amounts:     []uint64{1},
		},
	}
	_, err := New(nil, 0, kp.PublicKey(), valid)
	require.NoError(t, err)

	tooLongSymbol := *valid
	tooLongSymbol.Symbol = make([]byte, maxSymbolLen+1)
	_, err = New(nil, 0, kp.PublicKey(), &tooLongSymbol)
	require.ErrorIs(t, err, ErrSymbolTooLong)

	tooLongName := *valid
	tooLongName.Name = make([]byte, maxNameLen+1)
	_, err = New(nil, 0, kp.PublicKey(), &tooLongName)
	require.ErrorIs(t, err, ErrNameTooLong)

	tooManyDecimals := *valid
	tooManyDecimals.Decimals = maxDecimals + 1
	_, err = New(nil, 0, kp.PublicKey(), &tooManyDecimals)
	require.ErrorIs(t, err, ErrDecimalsTooLarge)
}

func TestTransferTokenValidation(t *testing.T) {
	kp := testKeyPair(t)
	body := &TransferTokenBody{
		TokenHash:   [tokenHashSize]byte{1, 2, 3},
		AddressesTo: [][addressSize]byte{addr(1)},
		Amounts:     []uint64{5},
	}
	_, err := New(nil, 0, kp.PublicKey(), body)
	require.NoError(t, err)

	body.Amounts = nil
	_, err = New(nil, 0, kp.PublicKey(), body)
	require.ErrorIs(t, err, ErrLengthMismatch)
}

func TestMessageBoundaries(t *testing.T) {
	kp := testKeyPair(t)

	ok := &MessageBody{Data: make([]byte, 80)}
	_, err := New(nil, 0, kp.PublicKey(), ok)
	require.NoError(t, err)

	tooLong := &MessageBody{Data: make([]byte, 81)}
	_, err = New(nil, 0, kp.PublicKey(), tooLong)
	require.ErrorIs(t, err, ErrMessageOutOfRange)

	empty := &MessageBody{}
	_, err = New(nil, 0, kp.PublicKey(), empty)
	require.ErrorIs(t, err, ErrMessageOutOfRange)
}

func TestSlaveValidation(t *testing.T) {
	kp := testKeyPair(t)

	ok := &SlaveBody{
		SlavePublicKeys: [][]byte{{1, 2, 3}},
		AccessTypes:     []AccessType{AccessAll},
	}
	_, err := New(nil, 0, kp.PublicKey(), ok)
	require.NoError(t, err)

	mismatch := &SlaveBody{
		SlavePublicKeys: [][]byte{{1}, {2}},
		AccessTypes:     []AccessType{AccessAll},
	}
	_, err = New(nil, 0, kp.PublicKey(), mismatch)
	require.ErrorIs(t, err, ErrLengthMismatch)

	tooMany := &SlaveBody{
		SlavePublicKeys: make([][]byte, maxSlaves+1),
		AccessTypes:     make([]AccessType, maxSlaves+1),
	}
	for i := range tooMany.SlavePublicKeys {
		tooMany.SlavePublicKeys[i] = []byte{byte(i)}
	}
	_, err = New(nil, 0, kp.PublicKey(), tooMany)
	require.ErrorIs(t, err, ErrTooManySlaves)
}

func TestLatticePublicKeyValidatesTrivially(t *testing.T) {
	kp := testKeyPair(t)
	body := &LatticePublicKeyBody{}
	_, err := New(nil, 0, kp.PublicKey(), body)
	require.NoError(t, err)
}

func TestHashExcludesSignatureAndNonce(t *testing.T) {
	kp := testKeyPair(t)
	body := &TransferBody{
		AddressesTo: [][addressSize]byte{addr(1)},
		Amounts:     []uint64{1},
	}
	tx, err := New(nil, 0, kp.PublicKey(), body)
	require.NoError(t, err)
	before := tx.TransactionHash

	require.NoError(t, tx.Sign(kp, 0))
	tx.Nonce = 42
	after, err := tx.computeHash()
	require.NoError(t, err)
	require.Equal(t, before, after)
}

func TestVerifyFailsWithoutSignature(t *testing.T) {
	kp := testKeyPair(t)
	body := &MessageBody{Data: []byte("hi")}
	tx, err := New(nil, 0, kp.PublicKey(), body)
	require.NoError(t, err)

	_, err = tx.Verify()
	require.ErrorIs(t, err, ErrUnsignedTransaction)
}

func TestVerifyFailsOnTamperedHash(t *testing.T) {
	kp := testKeyPair(t)
	body := &MessageBody{Data: []byte("hi")}
	tx, err := New(nil, 0, kp.PublicKey(), body)
	require.NoError(t, err)
	require.NoError(t, tx.Sign(kp, 0))

	tx.TransactionHash[0] ^= 0xFF
	ok, err := tx.Verify()
	require.NoError(t, err)
	require.False(t, ok)
}

func TestDifferentBodiesProduceDifferentHashes(t *testing.T) {
	kp := testKeyPair(t)
	tx1, err := New(nil, 0, kp.PublicKey(), &MessageBody{Data: []byte("hello")})
	require.NoError(t, err)
	tx2, err := New(nil, 0, kp.PublicKey(), &MessageBody{Data: []byte("world")})
	require.NoError(t, err)
	require.NotEqual(t, tx1.TransactionHash, tx2.TransactionHash)
}

func TestMasterAddrMustBeEmptyOrAddressSized(t *testing.T) {
	kp := testKeyPair(t)
	body := &MessageBody{Data: []byte("hi")}
	_, err := New([]byte{1, 2, 3}, 0, kp.PublicKey(), body)
	require.ErrorIs(t, err, ErrInvalidAddress)
}
