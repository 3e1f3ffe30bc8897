package xmss

import "encoding/binary"

// addrType distinguishes the three kinds of ADRS (hash address structure)
// used while hashing: a WOTS+ chain, an L-tree node, or a binary Merkle
// tree node. Field layout and the three type ids follow the RFC 8391
// ADRS structure as implemented in github.com/bwesterb/go-xmssmt
// (address.go) — adapted here to drop the XMSS^MT layer/tree-address
// words, which are always zero for a single-tree XMSS instance.
type addrType uint32

const (
	addrOTS      addrType = 0
	addrLTree    addrType = 1
	addrHashTree addrType = 2
)

// adrs is the 32-byte domain-separation address mixed into every PRF and
// hash call, so that the same 32-byte input never produces the same
// output in two different structural positions of the tree (this is what
// prevents a forgery that copies one chain's hash into another's
// position).
type adrs [8]uint32

func (a *adrs) setType(t addrType)    { a[2] = uint32(t) }
func (a *adrs) setOTS(i uint32)       { a[3] = i }
func (a *adrs) setChain(i uint32)     { a[4] = i }
func (a *adrs) setHash(i uint32)      { a[5] = i }
func (a *adrs) setLTree(i uint32)     { a[3] = i }
func (a *adrs) setTreeHeight(i uint32) { a[4] = i }
func (a *adrs) setTreeIndex(i uint32) { a[5] = i }
func (a *adrs) setKeyAndMask(i uint32) { a[7] = i }

// bytes renders the address to its 32-byte wire form (big-endian words,
// matching the PRF/hash inputs' "fixed-length big-endian" requirement of
// spec §4.1).
func (a adrs) bytes() []byte {
	buf := make([]byte, 32)
	for i, w := range a {
		binary.BigEndian.PutUint32(buf[i*4:i*4+4], w)
	}
	return buf
}
