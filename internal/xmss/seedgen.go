package xmss

import "crypto/rand"

// NewRandomSeed generates a fresh cryptographically random extended seed
// for the given descriptor: the 3-byte descriptor followed by 48 random
// bytes (spec §4.5, add_new_address's "fresh random seed").
func NewRandomSeed(d Descriptor) ([]byte, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	out := make([]byte, ExtendedSeedSize)
	desc := d.Encode()
	copy(out[:DescriptorSize], desc[:])
	if _, err := rand.Read(out[DescriptorSize:]); err != nil {
		return nil, err
	}
	return out, nil
}
