package xmss

import "github.com/pqwallet/walletd/internal/hash"

// lTree collapses a WOTS+ public key's wotsLen chain-end values into a
// single leaf by repeatedly hashing pairs together, exactly as
// github.com/bwesterb/go-xmssmt's core.go lTree does (carrying an odd
// value straight up a level when wotsLen isn't a power of two, which it
// isn't here: 67).
func lTree(f hash.Func, pubSeed []byte, leafIndex uint64, pk [wotsLen][hash.Size]byte) ([hash.Size]byte, error) {
	var a adrs
	a.setType(addrLTree)
	a.setLTree(uint32(leafIndex))

	nodes := make([][hash.Size]byte, wotsLen)
	copy(nodes, pk[:])
	l := wotsLen
	height := uint32(0)
	for l > 1 {
		a.setTreeHeight(height)
		parents := l / 2
		for i := 0; i < parents; i++ {
			a.setTreeIndex(uint32(i))
			node, err := treeH(f, pubSeed, a, nodes[2*i], nodes[2*i+1])
			if err != nil {
				return [hash.Size]byte{}, err
			}
			nodes[i] = node
		}
		if l%2 == 1 {
			nodes[l/2] = nodes[l-1]
			l = l/2 + 1
		} else {
			l = l / 2
		}
		height++
	}
	return nodes[0], nil
}

// genLeaf computes the XMSS tree leaf at leafIndex from the secret and
// public seeds: the WOTS+ public key at that leaf, collapsed by lTree.
func genLeaf(f hash.Func, skSeed, pubSeed []byte, leafIndex uint64) ([hash.Size]byte, error) {
	pk, err := wotsPkGen(f, skSeed, pubSeed, leafIndex)
	if err != nil {
		return [hash.Size]byte{}, err
	}
	return lTree(f, pubSeed, leafIndex, pk)
}

// tree holds every node of a fully materialized XMSS Merkle tree, indexed
// tree.levels[height][index]. Building the whole tree up front (rather
// than computing an authentication path on demand) trades memory for
// simplicity: at the tallest allowed height (18) this is 2^18 leaves,
// each costing one full WOTS+ key generation, entirely acceptable for the
// wallet-management workload this engine serves (signing is rare relative
// to leaf count) but not tuned for high-throughput signing services.
type tree struct {
	height uint8
	levels [][][hash.Size]byte
}

// buildTree materializes every level of the Merkle tree over 2^height
// leaves derived from (skSeed, pubSeed).
func buildTree(f hash.Func, skSeed, pubSeed []byte, height uint8) (*tree, error) {
	numLeaves := uint64(1) << height
	leaves := make([][hash.Size]byte, numLeaves)
	for i := uint64(0); i < numLeaves; i++ {
		leaf, err := genLeaf(f, skSeed, pubSeed, i)
		if err != nil {
			return nil, err
		}
		leaves[i] = leaf
	}

	t := &tree{height: height, levels: make([][][hash.Size]byte, height+1)}
	t.levels[0] = leaves

	var a adrs
	a.setType(addrHashTree)
	for level := uint8(0); level < height; level++ {
		cur := t.levels[level]
		next := make([][hash.Size]byte, len(cur)/2)
		a.setTreeHeight(uint32(level))
		for i := range next {
			a.setTreeIndex(uint32(i))
			node, err := treeH(f, pubSeed, a, cur[2*i], cur[2*i+1])
			if err != nil {
				return nil, err
			}
			next[i] = node
		}
		t.levels[level+1] = next
	}
	return t, nil
}

// root returns the tree's apex node.
func (t *tree) root() [hash.Size]byte {
	return t.levels[t.height][0]
}

// authPath returns the sibling of each node on the path from leafIndex up
// to the root, bottom first — exactly what a verifier needs to recompute
// the root from a recovered leaf.
func (t *tree) authPath(leafIndex uint64) [][hash.Size]byte {
	path := make([][hash.Size]byte, t.height)
	idx := leafIndex
	for level := uint8(0); level < t.height; level++ {
		sibling := idx ^ 1
		path[level] = t.levels[level][sibling]
		idx /= 2
	}
	return path
}

// rootFromAuthPath recomputes the Merkle root from a recovered leaf, its
// index, and its authentication path — the verification-side counterpart
// of authPath, requiring none of the tree's other nodes.
func rootFromAuthPath(f hash.Func, pubSeed []byte, leafIndex uint64, leaf [hash.Size]byte, path [][hash.Size]byte) ([hash.Size]byte, error) {
	var a adrs
	a.setType(addrHashTree)
	node := leaf
	idx := leafIndex
	for level := 0; level < len(path); level++ {
		a.setTreeHeight(uint32(level))
		var err error
		if idx%2 == 0 {
			a.setTreeIndex(uint32(idx / 2))
			node, err = treeH(f, pubSeed, a, node, path[level])
		} else {
			a.setTreeIndex(uint32(idx / 2))
			node, err = treeH(f, pubSeed, a, path[level], node)
		}
		if err != nil {
			return [hash.Size]byte{}, err
		}
		idx /= 2
	}
	return node, nil
}
