package walletstore

import "encoding/json"

// AddressRecord is one entry in wallet.json's addresses list (spec
// §4.5). Per I4, a record carries either the plaintext seed fields or
// EncryptedBlob, never both; Qaddress and OtsIndex are always cleartext
// so the daemon can list addresses and enforce the cursor invariants
// without the passphrase.
type AddressRecord struct {
	Qaddress string `json:"qaddress"`
	OtsIndex uint64 `json:"ots_index"`

	ExtendedSeedHex string `json:"extended_seed_hex,omitempty"`
	Mnemonic        string `json:"mnemonic,omitempty"`
	Height          uint8  `json:"height,omitempty"`
	HashFunction    uint8  `json:"hash_function,omitempty"`

	EncryptedBlob string `json:"encrypted_blob,omitempty"`

	// Extra holds any fields this version of the daemon doesn't know
	// about, so version migration never silently discards them
	// (spec §4.5, "Version migration").
	Extra map[string]json.RawMessage `json:"-"`
}

// IsEncrypted reports whether this record carries its seed material as
// an encrypted blob rather than plaintext fields.
func (r AddressRecord) IsEncrypted() bool {
	return r.EncryptedBlob != ""
}

var knownRecordFields = map[string]bool{
	"qaddress":          true,
	"ots_index":         true,
	"extended_seed_hex": true,
	"mnemonic":          true,
	"height":            true,
	"hash_function":     true,
	"encrypted_blob":    true,
}

// MarshalJSON re-merges Extra's unknown fields back into the record so
// round-tripping an unfamiliar future schema never drops data.
func (r AddressRecord) MarshalJSON() ([]byte, error) {
	type alias AddressRecord
	base, err := json.Marshal(alias(r))
	if err != nil {
		return nil, err
	}
	if len(r.Extra) == 0 {
		return base, nil
	}

	var merged map[string]json.RawMessage
	if err := json.Unmarshal(base, &merged); err != nil {
		return nil, err
	}
	for k, v := range r.Extra {
		merged[k] = v
	}
	return json.Marshal(merged)
}

// UnmarshalJSON decodes the known fields normally and stashes anything
// else into Extra.
func (r *AddressRecord) UnmarshalJSON(data []byte) error {
	type alias AddressRecord
	aux := (*alias)(r)
	if err := json.Unmarshal(data, aux); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	extra := make(map[string]json.RawMessage)
	for k, v := range raw {
		if !knownRecordFields[k] {
			extra[k] = v
		}
	}
	if len(extra) > 0 {
		r.Extra = extra
	}
	return nil
}
