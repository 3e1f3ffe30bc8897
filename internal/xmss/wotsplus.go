package xmss

import "github.com/pqwallet/walletd/internal/hash"

// wotsSeed derives the per-leaf WOTS+ secret seed: PRF(skSeed, ADRS{OTS =
// leafIndex}). Each leaf gets an independent seed so that two different
// leaves never share a chain value (github.com/bwesterb/go-xmssmt
// core.go's getWotsSeed).
func wotsSeed(f hash.Func, skSeed []byte, leafIndex uint64) ([hash.Size]byte, error) {
	var a adrs
	a.setType(addrOTS)
	a.setOTS(uint32(leafIndex))
	return prf(f, skSeed, a.bytes())
}

// wotsExpandSeed derives the wotsLen chain-start secret values from a
// per-leaf seed (bwesterb's wots.go wotsExpandSeed).
func wotsExpandSeed(f hash.Func, seed [hash.Size]byte) ([wotsLen][hash.Size]byte, error) {
	var out [wotsLen][hash.Size]byte
	for i := 0; i < wotsLen; i++ {
		v, err := prf(f, seed[:], encodeCounter(uint64(i)))
		if err != nil {
			return out, err
		}
		out[i] = v
	}
	return out, nil
}

// wotsChainLengths converts a 32-byte message digest into the wotsLen
// base-w "chain lengths" to walk each WOTS+ chain to, including the
// checksum chains that prevent an attacker from forging a signature by
// only ever decreasing chain positions (bwesterb's wotsChainLengths).
func wotsChainLengths(msg [hash.Size]byte) [wotsLen]uint8 {
	var out [wotsLen]uint8
	toBaseW(msg[:], out[:wotsLen1])

	var csum uint32
	for i := 0; i < wotsLen1; i++ {
		csum += uint32(wotsW) - 1 - uint32(out[i])
	}
	csum <<= 8 - ((wotsLen2 * wotsLogW) % 8)

	csumBytes := make([]byte, (wotsLen2*wotsLogW+7)/8)
	for i := len(csumBytes) - 1; i >= 0; i-- {
		csumBytes[i] = byte(csum)
		csum >>= 8
	}
	toBaseW(csumBytes, out[wotsLen1:])
	return out
}

// toBaseW unpacks input's bits, wotsLogW at a time, into output. Only
// correct when wotsLogW divides 8, which it does (4).
func toBaseW(input []byte, output []uint8) {
	in, bits := 0, uint(0)
	var total byte
	for out := 0; out < len(output); out++ {
		if bits == 0 {
			total = input[in]
			in++
			bits = 8
		}
		bits -= wotsLogW
		output[out] = uint8(total>>bits) & (wotsW - 1)
	}
}

// wotsChain repeatedly applies chainF, start steps at a time, to in,
// addressed by a chain whose position is fixed by the caller via
// a.setChain; a.setHash is advanced internally.
func wotsChain(f hash.Func, pubSeed []byte, a adrs, chain uint32, in [hash.Size]byte, start, steps uint8) ([hash.Size]byte, error) {
	a.setChain(chain)
	out := in
	var err error
	for i := start; i < start+steps && i < wotsW; i++ {
		a.setHash(uint32(i))
		out, err = chainF(f, pubSeed, a, out)
		if err != nil {
			return out, err
		}
	}
	return out, nil
}

// wotsPkGen derives the WOTS+ public key (wotsLen chain-end values) for
// one leaf from its secret seed.
func wotsPkGen(f hash.Func, skSeed, pubSeed []byte, leafIndex uint64) ([wotsLen][hash.Size]byte, error) {
	seed, err := wotsSeed(f, skSeed, leafIndex)
	if err != nil {
		return [wotsLen][hash.Size]byte{}, err
	}
	secrets, err := wotsExpandSeed(f, seed)
	if err != nil {
		return [wotsLen][hash.Size]byte{}, err
	}
	var a adrs
	a.setType(addrOTS)
	a.setOTS(uint32(leafIndex))

	var pk [wotsLen][hash.Size]byte
	for i := 0; i < wotsLen; i++ {
		pk[i], err = wotsChain(f, pubSeed, a, uint32(i), secrets[i], 0, wotsW-1)
		if err != nil {
			return pk, err
		}
	}
	return pk, nil
}

// wotsSign walks each chain from its secret start to the base-w length
// implied by msg, producing the WOTS+ signature.
func wotsSign(f hash.Func, skSeed, pubSeed []byte, leafIndex uint64, msg [hash.Size]byte) ([wotsLen][hash.Size]byte, error) {
	seed, err := wotsSeed(f, skSeed, leafIndex)
	if err != nil {
		return [wotsLen][hash.Size]byte{}, err
	}
	secrets, err := wotsExpandSeed(f, seed)
	if err != nil {
		return [wotsLen][hash.Size]byte{}, err
	}
	lengths := wotsChainLengths(msg)

	var a adrs
	a.setType(addrOTS)
	a.setOTS(uint32(leafIndex))

	var sig [wotsLen][hash.Size]byte
	for i := 0; i < wotsLen; i++ {
		sig[i], err = wotsChain(f, pubSeed, a, uint32(i), secrets[i], 0, lengths[i])
		if err != nil {
			return sig, err
		}
	}
	return sig, nil
}

// wotsPkFromSig recomputes the public key a signature must correspond to,
// by continuing each chain from the signature value up to its top (w-1).
// Verification succeeds iff the L-tree/root derived from this recovered
// public key matches the stored root.
func wotsPkFromSig(f hash.Func, pubSeed []byte, leafIndex uint64, msg [hash.Size]byte, sig [wotsLen][hash.Size]byte) ([wotsLen][hash.Size]byte, error) {
	lengths := wotsChainLengths(msg)

	var a adrs
	a.setType(addrOTS)
	a.setOTS(uint32(leafIndex))

	var pk [wotsLen][hash.Size]byte
	var err error
	for i := 0; i < wotsLen; i++ {
		pk[i], err = wotsChain(f, pubSeed, a, uint32(i), sig[i], lengths[i], wotsW-1-lengths[i])
		if err != nil {
			return pk, err
		}
	}
	return pk, nil
}
