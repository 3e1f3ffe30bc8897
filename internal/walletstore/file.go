package walletstore

import "encoding/json"

// CurrentVersion is the wallet.json schema version this daemon writes
// (spec §4.5, "version: integer (current = 1)").
const CurrentVersion = 1

// walletFile is the on-disk shape of wallet.json.
type walletFile struct {
	Version   int             `json:"version"`
	Encrypted bool            `json:"encrypted"`
	Addresses []AddressRecord `json:"addresses"`

	// Extra preserves any top-level fields a future schema version
	// added that this build doesn't understand (spec §4.5, "never
	// silently discard unknown fields").
	Extra map[string]json.RawMessage `json:"-"`
}

var knownFileFields = map[string]bool{
	"version":   true,
	"encrypted": true,
	"addresses": true,
}

func (f walletFile) MarshalJSON() ([]byte, error) {
	type alias walletFile
	base, err := json.Marshal(alias(f))
	if err != nil {
		return nil, err
	}
	if len(f.Extra) == 0 {
		return base, nil
	}
	var merged map[string]json.RawMessage
	if err := json.Unmarshal(base, &merged); err != nil {
		return nil, err
	}
	for k, v := range f.Extra {
		merged[k] = v
	}
	return json.Marshal(merged)
}

func (f *walletFile) UnmarshalJSON(data []byte) error {
	type alias walletFile
	aux := (*alias)(f)
	if err := json.Unmarshal(data, aux); err != nil {
		return err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	extra := make(map[string]json.RawMessage)
	for k, v := range raw {
		if !knownFileFields[k] {
			extra[k] = v
		}
	}
	if len(extra) > 0 {
		f.Extra = extra
	}
	return nil
}

// migrate upgrades a loaded file to CurrentVersion in memory. There is
// only one schema version today, so an older file only has its version
// number raised, with no field transform; it exists so the next version
// bump has a single place to add a transform step (spec §4.5, "Version
// migration").
func migrate(f *walletFile) (upgraded bool) {
	if f.Version >= CurrentVersion {
		return false
	}
	f.Version = CurrentVersion
	return true
}
