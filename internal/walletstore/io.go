package walletstore

import (
	"fmt"
	"os"
	"path/filepath"
)

// atomicWriteFile writes data to path by writing to a sibling
// ".tmp" file, fsyncing it, then renaming over path — rename is atomic
// on POSIX filesystems, so a crash mid-write never leaves a corrupted
// wallet.json in place (spec §4.5, "Atomic save").
func atomicWriteFile(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp := path + ".tmp"

	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return fmt.Errorf("walletstore: open tmp file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("walletstore: write tmp file: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("walletstore: fsync tmp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("walletstore: close tmp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("walletstore: rename tmp file: %w", err)
	}

	// Best effort: fsync the containing directory so the rename
	// itself survives a crash on filesystems that need it (e.g.
	// ext4 without journaling guarantees for directory entries).
	if dh, err := os.Open(dir); err == nil {
		dh.Sync()
		dh.Close()
	}
	return nil
}
