package walletstore

import "errors"

var (
	ErrWrongPassphrase  = errors.New("walletstore: passphrase does not match")
	ErrCorruptBlob       = errors.New("walletstore: encrypted blob is malformed")
	ErrAlreadyEncrypted = errors.New("walletstore: wallet is already encrypted")
	ErrNotEncrypted     = errors.New("walletstore: wallet is not encrypted")
	ErrAddressNotFound  = errors.New("walletstore: qaddress not present in wallet")
	ErrCorruptFile      = errors.New("walletstore: wallet file is malformed")
	ErrUnknownRecordShape = errors.New("walletstore: address record is neither plaintext nor encrypted")
)
