package xmss

// WOTS+ is fixed to n = 32 (security parameter / hash size) and Winternitz
// parameter w = 16, the standard RFC 8391 XMSS parameterization. len1,
// len2 and len below are the well-known values for that (n, w) pair
// (len1 = ceil(8n/log2 w), len2 = floor(log2(len1*(w-1))/log2 w) + 1):
// the same derivation github.com/bwesterb/go-xmssmt computes generically
// in params.go's wotsLen/wotsLen1/wotsLen2 fields, specialized here to
// the one (n, w) pair this engine supports.
const (
	wotsN     = 32 // bytes per chain value; matches hash.Size
	wotsW     = 16 // Winternitz parameter
	wotsLogW  = 4  // log2(wotsW)
	wotsLen1  = 64 // ceil(8*32/4)
	wotsLen2  = 3
	wotsLen   = wotsLen1 + wotsLen2 // 67 chains total
	sigIndexSize = 4                // bytes for the big-endian leaf index
	sigRSize     = wotsN             // bytes for the signature's randomizer r
)

// SignatureSize returns the number of bytes in the fixed-format encoding
// of a signature for the given tree height: index || r || wots chains ||
// auth path.
func SignatureSize(height uint8) int {
	return sigIndexSize + sigRSize + wotsLen*wotsN + int(height)*wotsN
}

// PublicKeySize is the length of the wire-form public key: descriptor ||
// public seed || root (spec §4.4: "signer's 67-byte XMSS public key").
const PublicKeySize = DescriptorSize + wotsN + wotsN
