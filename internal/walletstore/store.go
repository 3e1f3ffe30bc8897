package walletstore

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/pqwallet/walletd/internal/daemonerr"
	"github.com/pqwallet/walletd/internal/hash"
	"github.com/pqwallet/walletd/internal/qaddress"
	"github.com/pqwallet/walletd/internal/seed"
	"github.com/pqwallet/walletd/internal/xmss"
)

// Store owns one wallet.json file: its records, its encryption state,
// and the OTS cursor for every address in it. A sync.RWMutex serializes
// every mutating call the same way the teacher guards SimpleWallet's
// state — read-only queries (ListAddresses, Version, Encrypted) take an
// RLock, everything else takes the full Lock (spec §5, "wallet mutex").
type Store struct {
	mu   sync.RWMutex
	path string
	file walletFile
}

// New creates a fresh, empty, unencrypted wallet at path. It is not
// written to disk until Save is called.
func New(path string) *Store {
	return &Store{path: path, file: walletFile{Version: CurrentVersion}}
}

// Load reads an existing wallet.json, migrating and re-persisting it if
// its version is behind CurrentVersion.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("walletstore: read %s: %w", path, err)
	}

	var f walletFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, daemonerr.Wrap(daemonerr.KindCorruptWallet, fmt.Errorf("walletstore: parse %s: %w", path, err))
	}

	s := &Store{path: path, file: f}
	if migrate(&s.file) {
		if err := s.saveLocked(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Save persists the wallet atomically (spec §4.5, "Atomic save").
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked()
}

func (s *Store) saveLocked() error {
	data, err := json.MarshalIndent(s.file, "", "  ")
	if err != nil {
		return fmt.Errorf("walletstore: marshal wallet: %w", err)
	}
	return atomicWriteFile(s.path, data, 0o600)
}

// Version reports the wallet file's schema version.
func (s *Store) Version() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.file.Version
}

// Encrypted reports whether the wallet file currently holds encrypted
// seed material.
func (s *Store) Encrypted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.file.Encrypted
}

// AddressCount returns the number of addresses in the wallet.
func (s *Store) AddressCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.file.Addresses)
}

// ListAddresses returns every qaddress in insertion order.
func (s *Store) ListAddresses() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.file.Addresses))
	for i, r := range s.file.Addresses {
		out[i] = r.Qaddress
	}
	return out
}

// HasAddress reports whether qaddr is present in the wallet, regardless
// of encryption state.
func (s *Store) HasAddress(qaddr string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.findLocked(qaddr)
	return ok
}

func (s *Store) findLocked(qaddr string) (int, bool) {
	for i, r := range s.file.Addresses {
		if r.Qaddress == qaddr {
			return i, true
		}
	}
	return 0, false
}

// deriveQaddress computes the qaddress an extended seed would produce,
// without needing the wallet's own encryption state.
func deriveQaddress(extendedSeed []byte) (string, xmss.Descriptor, error) {
	kp, err := xmss.Derive(extendedSeed)
	if err != nil {
		return "", xmss.Descriptor{}, daemonerr.Wrap(daemonerr.KindInvalidSeed, err)
	}
	pub := kp.PublicKey()
	var descriptor [3]byte
	copy(descriptor[:], pub[:3])
	var pks, root [hash.Size]byte
	copy(pks[:], pub[3:3+hash.Size])
	copy(root[:], pub[3+hash.Size:])

	addr, err := qaddress.Derive(descriptor, pks, root)
	if err != nil {
		return "", xmss.Descriptor{}, err
	}
	return qaddress.ToQaddress(addr), kp.Descriptor, nil
}

// AddAddressFromSeed adds an address derived from extendedSeed,
// encrypting its seed material under passphrase if the wallet is
// currently encrypted (passphrase is ignored otherwise). Per I3 and
// spec §9's open-question decision, adding an already-present seed is
// a no-op that returns the existing qaddress rather than an error.
func (s *Store) AddAddressFromSeed(extendedSeed []byte, passphrase string) (string, error) {
	qaddr, descriptor, err := deriveQaddress(extendedSeed)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.findLocked(qaddr); ok {
		return qaddr, nil
	}

	hexSeed, err := seed.ToHex(extendedSeed)
	if err != nil {
		return "", daemonerr.Wrap(daemonerr.KindInvalidSeed, err)
	}
	mnemonic, err := seed.ToMnemonic(extendedSeed)
	if err != nil {
		return "", daemonerr.Wrap(daemonerr.KindInvalidSeed, err)
	}

	record := AddressRecord{Qaddress: qaddr, OtsIndex: 0}
	if s.file.Encrypted {
		blob, err := sealBlob(passphrase, blobPayload{
			ExtendedSeedHex: hexSeed,
			Mnemonic:        mnemonic,
			Height:          descriptor.Height,
			HashFunction:    uint8(descriptor.HashFunc),
		})
		if err != nil {
			return "", err
		}
		record.EncryptedBlob = blob
	} else {
		record.ExtendedSeedHex = hexSeed
		record.Mnemonic = mnemonic
		record.Height = descriptor.Height
		record.HashFunction = uint8(descriptor.HashFunc)
	}

	s.file.Addresses = append(s.file.Addresses, record)
	if err := s.saveLocked(); err != nil {
		return "", err
	}
	return qaddr, nil
}

// AddNewAddress generates a fresh random extended seed for the given
// descriptor parameters and adds it, convenience for the
// "AddNewAddress(height, hash_function)" RPC of spec §6.
func (s *Store) AddNewAddress(height uint8, hashFunc hash.Func, passphrase string) (string, error) {
	d := xmss.Descriptor{HashFunc: hashFunc, Height: height, Scheme: xmss.SchemeXMSS}
	extendedSeed, err := xmss.NewRandomSeed(d)
	if err != nil {
		return "", daemonerr.Wrap(daemonerr.KindInvalidSeed, err)
	}
	return s.AddAddressFromSeed(extendedSeed, passphrase)
}

// RemoveAddress deletes the address matching qaddress. It reports false
// (not an error) if the address was never present.
func (s *Store) RemoveAddress(qaddr string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.findLocked(qaddr)
	if !ok {
		return false, nil
	}
	s.file.Addresses = append(s.file.Addresses[:i], s.file.Addresses[i+1:]...)
	if err := s.saveLocked(); err != nil {
		return false, err
	}
	return true, nil
}

// GetRecoverySeeds returns the hex and mnemonic forms of qaddress's
// extended seed, decrypting with passphrase if required.
func (s *Store) GetRecoverySeeds(qaddr, passphrase string) (hexSeed, mnemonic string, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.findLocked(qaddr)
	if !ok {
		return "", "", daemonerr.Wrap(daemonerr.KindUnknownSigner, ErrAddressNotFound)
	}
	r := s.file.Addresses[i]
	if !r.IsEncrypted() {
		return r.ExtendedSeedHex, r.Mnemonic, nil
	}
	payload, err := openBlob(passphrase, r.EncryptedBlob)
	if err != nil {
		return "", "", err
	}
	return payload.ExtendedSeedHex, payload.Mnemonic, nil
}

// SignerMaterial returns everything the relay pipeline needs to
// reconstruct an XMSS key pair and validate the OTS cursor for
// qaddress: the raw extended seed (whose 3-byte descriptor carries the
// height and hash function) and the current cursor.
func (s *Store) SignerMaterial(qaddr, passphrase string) (extendedSeed []byte, cursor uint64, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.findLocked(qaddr)
	if !ok {
		return nil, 0, daemonerr.Wrap(daemonerr.KindUnknownSigner, ErrAddressNotFound)
	}
	r := s.file.Addresses[i]

	var hexSeed string
	if r.IsEncrypted() {
		payload, err := openBlob(passphrase, r.EncryptedBlob)
		if err != nil {
			return nil, 0, err
		}
		hexSeed = payload.ExtendedSeedHex
	} else {
		hexSeed = r.ExtendedSeedHex
	}

	raw, err := seed.FromHex(hexSeed)
	if err != nil {
		return nil, 0, daemonerr.Wrap(daemonerr.KindInvalidSeed, err)
	}
	return raw, r.OtsIndex, nil
}

// BumpCursor advances qaddress's OTS cursor to newIndex and persists
// immediately. The relay pipeline (spec §4.6 step 4) calls this before
// signing, never after, so a crash can never leave a burned index
// unrecorded (I1, I2).
func (s *Store) BumpCursor(qaddr string, newIndex uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.findLocked(qaddr)
	if !ok {
		return daemonerr.Wrap(daemonerr.KindUnknownSigner, ErrAddressNotFound)
	}
	if newIndex < s.file.Addresses[i].OtsIndex {
		return daemonerr.Wrap(daemonerr.KindOtsIndexConflict, fmt.Errorf("walletstore: cursor may not retreat"))
	}
	s.file.Addresses[i].OtsIndex = newIndex
	return s.saveLocked()
}

// VerifyPassphrase checks passphrase against the wallet's encrypted
// records without mutating the file — the non-destructive check
// UnlockWallet performs before caching the passphrase in memory.
func (s *Store) VerifyPassphrase(passphrase string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.file.Encrypted {
		return ErrNotEncrypted
	}
	for _, r := range s.file.Addresses {
		if !r.IsEncrypted() {
			continue
		}
		if _, err := openBlob(passphrase, r.EncryptedBlob); err != nil {
			return err
		}
	}
	return nil
}

// EncryptWallet seals every address's seed material under passphrase
// and marks the wallet encrypted (spec §4.6, encrypt_wallet(pw)).
func (s *Store) EncryptWallet(passphrase string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file.Encrypted {
		return ErrAlreadyEncrypted
	}
	for i, r := range s.file.Addresses {
		blob, err := sealBlob(passphrase, blobPayload{
			ExtendedSeedHex: r.ExtendedSeedHex,
			Mnemonic:        r.Mnemonic,
			Height:          r.Height,
			HashFunction:    r.HashFunction,
		})
		if err != nil {
			return err
		}
		s.file.Addresses[i] = AddressRecord{
			Qaddress:      r.Qaddress,
			OtsIndex:      r.OtsIndex,
			EncryptedBlob: blob,
		}
	}
	s.file.Encrypted = true
	return s.saveLocked()
}

// DecryptWallet reverses EncryptWallet: every record's blob is opened
// under passphrase and rewritten as plaintext. On wrong passphrase the
// wallet is left entirely unchanged (spec §8, "Passphrase change with
// wrong old pw leaves state unchanged" applies equally here).
func (s *Store) DecryptWallet(passphrase string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.file.Encrypted {
		return ErrNotEncrypted
	}

	plain := make([]AddressRecord, len(s.file.Addresses))
	for i, r := range s.file.Addresses {
		payload, err := openBlob(passphrase, r.EncryptedBlob)
		if err != nil {
			return err
		}
		plain[i] = AddressRecord{
			Qaddress:        r.Qaddress,
			OtsIndex:        r.OtsIndex,
			ExtendedSeedHex: payload.ExtendedSeedHex,
			Mnemonic:        payload.Mnemonic,
			Height:          payload.Height,
			HashFunction:    payload.HashFunction,
		}
	}
	s.file.Addresses = plain
	s.file.Encrypted = false
	return s.saveLocked()
}

// ChangePassphrase re-encrypts every record under newPassphrase after
// verifying oldPassphrase. On a wrong old passphrase, no record is
// touched and no save happens (spec §8 law).
func (s *Store) ChangePassphrase(oldPassphrase, newPassphrase string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.file.Encrypted {
		return ErrNotEncrypted
	}

	opened := make([]blobPayload, len(s.file.Addresses))
	for i, r := range s.file.Addresses {
		payload, err := openBlob(oldPassphrase, r.EncryptedBlob)
		if err != nil {
			return err
		}
		opened[i] = payload
	}

	for i, payload := range opened {
		blob, err := sealBlob(newPassphrase, payload)
		if err != nil {
			return err
		}
		s.file.Addresses[i].EncryptedBlob = blob
	}
	return s.saveLocked()
}
