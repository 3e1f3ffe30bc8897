package qaddress

import (
	"testing"

	"github.com/pqwallet/walletd/internal/hash"
	"github.com/pqwallet/walletd/internal/xmss"
	"github.com/stretchr/testify/require"
)

func testKeyPair(t *testing.T, f hash.Func, height uint8) *xmss.KeyPair {
	t.Helper()
	d := xmss.Descriptor{HashFunc: f, Height: height, Scheme: xmss.SchemeXMSS}
	seed, err := xmss.NewRandomSeed(d)
	require.NoError(t, err)
	kp, err := xmss.Derive(seed)
	require.NoError(t, err)
	return kp
}

func TestDeriveAndQaddressRoundTrip(t *testing.T) {
	kp := testKeyPair(t, hash.SHAKE128, 4)
	pub := kp.PublicKey()

	var descriptor [3]byte
	copy(descriptor[:], pub[:3])
	var pks, root [hash.Size]byte
	copy(pks[:], pub[3:3+hash.Size])
	copy(root[:], pub[3+hash.Size:])

	addr, err := Derive(descriptor, pks, root)
	require.NoError(t, err)

	qaddr := ToQaddress(addr)
	require.Len(t, qaddr, QaddressLength)
	require.Equal(t, byte('Q'), qaddr[0])

	back, err := Parse(qaddr)
	require.NoError(t, err)
	require.Equal(t, addr, back)
}

func TestDeriveIsDeterministic(t *testing.T) {
	kp := testKeyPair(t, hash.SHA2_256, 4)
	pub := kp.PublicKey()

	var descriptor [3]byte
	copy(descriptor[:], pub[:3])
	var pks, root [hash.Size]byte
	copy(pks[:], pub[3:3+hash.Size])
	copy(root[:], pub[3+hash.Size:])

	a, err := Derive(descriptor, pks, root)
	require.NoError(t, err)
	b, err := Derive(descriptor, pks, root)
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestDeriveDiffersForDifferentKeys(t *testing.T) {
	kp1 := testKeyPair(t, hash.SHAKE256, 4)
	kp2 := testKeyPair(t, hash.SHAKE256, 4)

	toParts := func(kp *xmss.KeyPair) ([3]byte, [hash.Size]byte, [hash.Size]byte) {
		pub := kp.PublicKey()
		var d [3]byte
		copy(d[:], pub[:3])
		var pks, root [hash.Size]byte
		copy(pks[:], pub[3:3+hash.Size])
		copy(root[:], pub[3+hash.Size:])
		return d, pks, root
	}

	d1, pks1, root1 := toParts(kp1)
	d2, pks2, root2 := toParts(kp2)

	a1, err := Derive(d1, pks1, root1)
	require.NoError(t, err)
	a2, err := Derive(d2, pks2, root2)
	require.NoError(t, err)
	require.NotEqual(t, a1, a2)
}

func TestParseRejectsBadPrefix(t *testing.T) {
	kp := testKeyPair(t, hash.SHAKE128, 4)
	pub := kp.PublicKey()
	var descriptor [3]byte
	copy(descriptor[:], pub[:3])
	var pks, root [hash.Size]byte
	copy(pks[:], pub[3:3+hash.Size])
	copy(root[:], pub[3+hash.Size:])

	addr, err := Derive(descriptor, pks, root)
	require.NoError(t, err)
	qaddr := ToQaddress(addr)

	bad := "X" + qaddr[1:]
	_, err = Parse(bad)
	require.ErrorIs(t, err, ErrMalformedAddress)
}

func TestParseRejectsWrongLength(t *testing.T) {
	_, err := Parse("Qabcd")
	require.ErrorIs(t, err, ErrMalformedAddress)
}

func TestParseRejectsCorruptedChecksum(t *testing.T) {
	kp := testKeyPair(t, hash.SHAKE128, 4)
	pub := kp.PublicKey()
	var descriptor [3]byte
	copy(descriptor[:], pub[:3])
	var pks, root [hash.Size]byte
	copy(pks[:], pub[3:3+hash.Size])
	copy(root[:], pub[3+hash.Size:])

	addr, err := Derive(descriptor, pks, root)
	require.NoError(t, err)
	qaddr := ToQaddress(addr)

	// Flip the last hex character, which lands inside the checksum.
	last := qaddr[len(qaddr)-1]
	flipped := byte('0')
	if last == '0' {
		flipped = '1'
	}
	corrupted := qaddr[:len(qaddr)-1] + string(flipped)
	_, err = Parse(corrupted)
	require.ErrorIs(t, err, ErrMalformedAddress)
}

func TestParseRejectsNonHex(t *testing.T) {
	bad := "Q" + string(make([]byte, Size*2))
	_, err := Parse(bad)
	require.ErrorIs(t, err, ErrMalformedAddress)
}
