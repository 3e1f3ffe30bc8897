package xmss

import (
	"crypto/rand"
	"testing"

	"github.com/pqwallet/walletd/internal/hash"
	"github.com/stretchr/testify/require"
)

func testSeed(t *testing.T, height uint8, f hash.Func) []byte {
	t.Helper()
	seed := make([]byte, ExtendedSeedSize)
	_, err := rand.Read(seed)
	require.NoError(t, err)
	seed[0] = byte(f)
	seed[1] = height
	seed[2] = byte(SchemeXMSS)
	return seed
}

func TestSignAndVerifyRoundTrip(t *testing.T) {
	for _, f := range []hash.Func{hash.SHAKE128, hash.SHAKE256, hash.SHA2_256} {
		seed := testSeed(t, 4, f)
		kp, err := Derive(seed)
		require.NoError(t, err)

		var msg [hash.Size]byte
		copy(msg[:], []byte("relay this transaction hash...."))

		for idx := uint64(0); idx < 3; idx++ {
			sig, err := kp.Sign(idx, msg)
			require.NoError(t, err)
			require.Equal(t, idx, sig.Index)

			pub := kp.PublicKey()
			ok, err := Verify(pub[:], msg, sig)
			require.NoError(t, err)
			require.True(t, ok, "signature at index %d under %s must verify", idx, f)
		}
	}
}

func TestVerifyRejectsTamperedMessage(t *testing.T) {
	seed := testSeed(t, 4, hash.SHAKE256)
	kp, err := Derive(seed)
	require.NoError(t, err)

	var msg, other [hash.Size]byte
	copy(msg[:], []byte("authentic message byte sequence"))
	copy(other[:], []byte("tampered message byte sequence!"))

	sig, err := kp.Sign(0, msg)
	require.NoError(t, err)

	pub := kp.PublicKey()
	ok, err := Verify(pub[:], other, sig)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestVerifyRejectsWrongPublicKey(t *testing.T) {
	seedA := testSeed(t, 4, hash.SHA2_256)
	seedB := testSeed(t, 4, hash.SHA2_256)
	kpA, err := Derive(seedA)
	require.NoError(t, err)
	kpB, err := Derive(seedB)
	require.NoError(t, err)

	var msg [hash.Size]byte
	copy(msg[:], []byte("some canonical transaction bytes"))

	sig, err := kpA.Sign(0, msg)
	require.NoError(t, err)

	pubB := kpB.PublicKey()
	ok, err := Verify(pubB[:], msg, sig)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSignExhaustedIndex(t *testing.T) {
	seed := testSeed(t, 4, hash.SHA2_256)
	kp, err := Derive(seed)
	require.NoError(t, err)

	var msg [hash.Size]byte
	_, err = kp.Sign(kp.Descriptor.NumLeaves(), msg)
	require.ErrorIs(t, err, ErrExhaustedKey)
}

func TestDeriveRejectsBadLength(t *testing.T) {
	_, err := Derive(make([]byte, 10))
	require.ErrorIs(t, err, ErrInvalidSeed)
}

func TestDeriveRejectsBadHeight(t *testing.T) {
	seed := testSeed(t, 5, hash.SHA2_256) // not in {4,6,8,...}
	_, err := Derive(seed)
	require.Error(t, err)
}

func TestSignatureMarshalRoundTrip(t *testing.T) {
	seed := testSeed(t, 4, hash.SHAKE128)
	kp, err := Derive(seed)
	require.NoError(t, err)

	var msg [hash.Size]byte
	copy(msg[:], []byte("message to be marshaled and back"))
	sig, err := kp.Sign(1, msg)
	require.NoError(t, err)

	blob := sig.Marshal()
	require.Len(t, blob, SignatureSize(4))

	back, err := UnmarshalSignature(blob, 4)
	require.NoError(t, err)
	require.Equal(t, sig, back)
}

func TestDifferentHashFunctionsAreNotInterchangeable(t *testing.T) {
	// The same 48-byte seed body under two different hash functions must
	// yield different roots and public keys, so a key from one descriptor
	// cannot stand in for the other (spec §4.1, "Determinism & tie-breaks").
	seedBody := make([]byte, SeedBodySize)
	_, err := rand.Read(seedBody)
	require.NoError(t, err)

	mk := func(f hash.Func) []byte {
		s := make([]byte, ExtendedSeedSize)
		s[0] = byte(f)
		s[1] = 4
		s[2] = byte(SchemeXMSS)
		copy(s[DescriptorSize:], seedBody)
		return s
	}

	kpShake, err := Derive(mk(hash.SHAKE128))
	require.NoError(t, err)
	kpSha2, err := Derive(mk(hash.SHA2_256))
	require.NoError(t, err)

	require.NotEqual(t, kpShake.Root(), kpSha2.Root())
	require.NotEqual(t, kpShake.PublicKey(), kpSha2.PublicKey())
}
