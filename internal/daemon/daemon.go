// Package daemon implements the wallet daemon core of spec §4.6: the
// lock state machine, the wallet mutex, and the relay pipeline that
// every relay_* RPC shares. It is the library core the design notes
// (§9) call for — cmd/walletd and internal/rpcapi are thin front-ends
// over this package, sharing no process state beyond the wallet file.
package daemon

import (
	"fmt"
	"strings"
	"sync"

	"github.com/pqwallet/walletd/internal/daemonerr"
	"github.com/pqwallet/walletd/internal/hash"
	"github.com/pqwallet/walletd/internal/nodeclient"
	"github.com/pqwallet/walletd/internal/seed"
	"github.com/pqwallet/walletd/internal/walletstore"
	"github.com/pqwallet/walletd/internal/xmss"
)

// Daemon is one running wallet-daemon instance: a wallet store, a node
// client, and the in-memory lock state layered on top of them. The
// zero value is not usable; build one with New.
type Daemon struct {
	// stateMu guards lockState and passphrase, which are daemon-level
	// in-memory disposition, not wallet-file content.
	stateMu    sync.RWMutex
	lockState  LockState
	passphrase string

	// walletMu is spec §5's "single wallet mutex": it serializes every
	// mutating operation on the wallet store — add, remove, encrypt,
	// lock/unlock, passphrase change, and relay pipeline steps 1-5 —
	// so that two concurrent callers can never observe-then-act on the
	// same address's OTS cursor at once. The walletstore.Store's own
	// mutex only serializes each individual store call; it does not
	// order the read-validate-bump sequence the relay pipeline spans
	// across several calls, so this daemon-level lock is still needed
	// on top of it. It is released before the outbound PushTransaction
	// call (relay step 6), which must not serialize the whole daemon
	// (spec §5, "released before the suspension point").
	walletMu sync.Mutex

	store *walletstore.Store
	node  nodeclient.NodeClient

	keysMu sync.Mutex
	keys   map[string]*xmss.KeyPair
}

// New builds a Daemon over an already-loaded wallet store and node
// client. The initial lock state is derived from the store: an
// encrypted wallet starts LOCKED (no passphrase has been supplied yet
// this process), a plaintext wallet starts UNLOCKED.
func New(store *walletstore.Store, node nodeclient.NodeClient) *Daemon {
	d := &Daemon{
		store: store,
		node:  node,
		keys:  make(map[string]*xmss.KeyPair),
	}
	if store.Encrypted() {
		d.lockState = StateLocked
	} else {
		d.lockState = StateUnlocked
	}
	return d
}

// LockState reports the daemon's current lock disposition.
func (d *Daemon) LockState() LockState {
	d.stateMu.RLock()
	defer d.stateMu.RUnlock()
	return d.lockState
}

func (d *Daemon) cachedPassphrase() string {
	d.stateMu.RLock()
	defer d.stateMu.RUnlock()
	return d.passphrase
}

// requireMutable returns *daemonerr.Error(KindWalletLocked) when the
// daemon is LOCKED, for the ops spec §4.6 gates on unlock: "add_new_address,
// relay_*, get_recovery_seeds -> WalletLocked".
func (d *Daemon) requireMutable() error {
	if d.LockState() == StateLocked {
		return daemonerr.Wrap(daemonerr.KindWalletLocked, fmt.Errorf("daemon: wallet is locked"))
	}
	return nil
}

// GetWalletInfo reports the wallet's schema version, address count, and
// encryption flag (spec §6). This is a read-only op, allowed in every
// lock state.
func (d *Daemon) GetWalletInfo() (version, addressCount int, encrypted bool) {
	return d.store.Version(), d.store.AddressCount(), d.store.Encrypted()
}

// ListAddresses returns every qaddress in insertion order. Read-only,
// allowed in every lock state.
func (d *Daemon) ListAddresses() []string {
	return d.store.ListAddresses()
}

// AddNewAddress generates a fresh extended seed for (height, hashFunc)
// and adds it to the wallet (spec §6, "AddNewAddress").
func (d *Daemon) AddNewAddress(height uint8, hashFunc hash.Func) (string, error) {
	if err := d.requireMutable(); err != nil {
		return "", err
	}
	d.walletMu.Lock()
	defer d.walletMu.Unlock()
	qaddr, err := d.store.AddNewAddress(height, hashFunc, d.cachedPassphrase())
	if err != nil {
		return "", err
	}
	log.Infof("added address %s (height=%d)", qaddr, height)
	return qaddr, nil
}

// AddAddressFromSeed adds an address from an existing seed, given
// either as 102-character hex or a 34-word mnemonic phrase (spec §6,
// "AddAddressFromSeed"). Adding an already-present seed is a no-op that
// returns the existing qaddress (spec §9, open question 3).
func (d *Daemon) AddAddressFromSeed(seedText string) (string, error) {
	if err := d.requireMutable(); err != nil {
		return "", err
	}
	extendedSeed, err := decodeSeedText(seedText)
	if err != nil {
		return "", err
	}
	d.walletMu.Lock()
	defer d.walletMu.Unlock()
	qaddr, err := d.store.AddAddressFromSeed(extendedSeed, d.cachedPassphrase())
	if err != nil {
		return "", err
	}
	log.Infof("added address %s from supplied seed", qaddr)
	return qaddr, nil
}

// decodeSeedText accepts either hex or mnemonic form, deciding by
// looking like the mnemonic's word count before falling back to hex.
func decodeSeedText(text string) ([]byte, error) {
	fields := strings.Fields(text)
	if len(fields) == seed.WordCount {
		b, err := seed.FromMnemonic(text)
		if err != nil {
			return nil, daemonerr.Wrap(daemonerr.KindInvalidSeed, err)
		}
		return b, nil
	}
	b, err := seed.FromHex(text)
	if err != nil {
		return nil, daemonerr.Wrap(daemonerr.KindInvalidSeed, err)
	}
	return b, nil
}

// RemoveAddress deletes qaddress from the wallet.
func (d *Daemon) RemoveAddress(qaddr string) (bool, error) {
	if err := d.requireMutable(); err != nil {
		return false, err
	}
	d.walletMu.Lock()
	defer d.walletMu.Unlock()
	d.forgetCachedKey(qaddr)
	removed, err := d.store.RemoveAddress(qaddr)
	if err != nil {
		return false, err
	}
	return removed, nil
}

// GetRecoverySeeds returns qaddress's hex seed and mnemonic. Fails if
// the daemon is LOCKED (spec §6). An unknown qaddress is reported as
// *UnknownSigner* even while LOCKED — existence is checked before lock
// state, matching the original daemon's check order (see DESIGN.md).
func (d *Daemon) GetRecoverySeeds(qaddr string) (hexSeed, mnemonic string, err error) {
	if !d.store.HasAddress(qaddr) {
		return "", "", daemonerr.Wrap(daemonerr.KindUnknownSigner, fmt.Errorf("daemon: unknown address %s", qaddr))
	}
	if err := d.requireMutable(); err != nil {
		return "", "", err
	}
	return d.store.GetRecoverySeeds(qaddr, d.cachedPassphrase())
}

// EncryptWallet seals the wallet under passphrase and caches it for
// this process, moving to UNLOCKED_ENCRYPTED (spec §4.6,
// encrypt_wallet(pw)).
func (d *Daemon) EncryptWallet(passphrase string) error {
	if d.LockState() == StateLocked {
		return daemonerr.Wrap(daemonerr.KindWalletLocked, fmt.Errorf("daemon: cannot encrypt while locked"))
	}
	d.walletMu.Lock()
	defer d.walletMu.Unlock()
	if err := d.store.EncryptWallet(passphrase); err != nil {
		if err == walletstore.ErrAlreadyEncrypted {
			return daemonerr.Wrap(daemonerr.KindValidation, err)
		}
		return err
	}
	d.stateMu.Lock()
	d.lockState = StateUnlockedEncrypted
	d.passphrase = passphrase
	d.stateMu.Unlock()
	d.clearKeyCache()
	log.Info("wallet encrypted")
	return nil
}

// LockWallet forgets the cached passphrase, moving to LOCKED. It is an
// error to lock a wallet that was never encrypted.
func (d *Daemon) LockWallet() error {
	d.walletMu.Lock()
	defer d.walletMu.Unlock()
	if !d.store.Encrypted() {
		return daemonerr.Wrap(daemonerr.KindValidation, fmt.Errorf("daemon: wallet is not encrypted, nothing to lock"))
	}
	d.stateMu.Lock()
	d.lockState = StateLocked
	d.passphrase = ""
	d.stateMu.Unlock()
	d.clearKeyCache()
	log.Info("wallet locked")
	return nil
}

// UnlockWallet verifies passphrase and, on success, caches it and moves
// to UNLOCKED_ENCRYPTED. On a wrong passphrase the daemon stays LOCKED
// and returns *WalletDecryption* (spec §8 scenario 3).
func (d *Daemon) UnlockWallet(passphrase string) error {
	d.walletMu.Lock()
	defer d.walletMu.Unlock()
	if d.LockState() != StateLocked {
		return nil
	}
	if err := d.store.VerifyPassphrase(passphrase); err != nil {
		return err
	}
	d.stateMu.Lock()
	d.lockState = StateUnlockedEncrypted
	d.passphrase = passphrase
	d.stateMu.Unlock()
	log.Info("wallet unlocked")
	return nil
}

// ChangePassphrase re-encrypts the wallet under newPassphrase after
// verifying oldPassphrase, regardless of the current lock state — the
// caller proves knowledge of the old passphrase directly, so it doesn't
// need one already cached in memory. On success the daemon ends up
// UNLOCKED_ENCRYPTED with the new passphrase cached; on failure nothing
// changes (spec §8 law).
func (d *Daemon) ChangePassphrase(oldPassphrase, newPassphrase string) error {
	d.walletMu.Lock()
	defer d.walletMu.Unlock()
	if err := d.store.ChangePassphrase(oldPassphrase, newPassphrase); err != nil {
		return err
	}
	d.stateMu.Lock()
	d.lockState = StateUnlockedEncrypted
	d.passphrase = newPassphrase
	d.stateMu.Unlock()
	d.clearKeyCache()
	log.Info("wallet passphrase changed")
	return nil
}

func (d *Daemon) forgetCachedKey(qaddr string) {
	d.keysMu.Lock()
	delete(d.keys, qaddr)
	d.keysMu.Unlock()
}

func (d *Daemon) clearKeyCache() {
	d.keysMu.Lock()
	d.keys = make(map[string]*xmss.KeyPair)
	d.keysMu.Unlock()
}

// keyPairFor reconstructs (or returns a cached) XMSS key pair for
// qaddress. Derivation is O(2^h), so it is cached per address for the
// lifetime of the current lock session; locking or changing the
// passphrase invalidates the cache.
func (d *Daemon) keyPairFor(qaddr string) (*xmss.KeyPair, uint64, error) {
	extendedSeed, cursor, err := d.store.SignerMaterial(qaddr, d.cachedPassphrase())
	if err != nil {
		return nil, 0, err
	}

	d.keysMu.Lock()
	defer d.keysMu.Unlock()
	if kp, ok := d.keys[qaddr]; ok {
		return kp, cursor, nil
	}
	kp, err := xmss.Derive(extendedSeed)
	if err != nil {
		return nil, 0, daemonerr.Wrap(daemonerr.KindInvalidSeed, err)
	}
	d.keys[qaddr] = kp
	return kp, cursor, nil
}
