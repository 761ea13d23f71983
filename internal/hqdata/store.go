package hqdata

import (
	"encoding/json"
	"fmt"
)

// Store persists the [Overrides] blob under a single key.
//
// Write replaces the whole blob; callers must read-modify-write the entire
// structure or they lose sibling collections.
type Store interface {
	// Read returns the persisted overrides. It returns an empty [Overrides]
	// when nothing was saved or when the saved blob does not parse.
	// The error is reserved for failures of the storage medium itself.
	Read() (Overrides, error)

	// Write replaces the persisted blob with o.
	Write(o Overrides) error

	// Clear removes the blob, reverting every collection to baseline.
	// Clearing an absent blob is not an error.
	Clear() error
}

// encodeOverrides is the only place overrides become bytes.
func encodeOverrides(o Overrides) ([]byte, error) {
	data, err := json.Marshal(o)
	if err != nil {
		return nil, fmt.Errorf("encode overrides: %w", err)
	}

	return data, nil
}

// decodeOverrides is the only place bytes become overrides.
// Anything that does not parse as an overrides object reads as empty.
func decodeOverrides(data []byte) Overrides {
	if len(data) == 0 {
		return Overrides{}
	}

	var o Overrides

	err := json.Unmarshal(data, &o)
	if err != nil {
		return Overrides{}
	}

	return o
}
