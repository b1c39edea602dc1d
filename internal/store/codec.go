package store

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tidwall/jsonc"

	"github.com/Makepad-fr/checklist/internal/model"
)

// Encode renders the snapshot document: pretty-printed, two-space indent.
func Encode(c model.Collection) ([]byte, error) {
	b, err := json.MarshalIndent(c.Normalize(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}
	return b, nil
}

// Decode parses a snapshot document. Comments and trailing commas from hand
// edits are tolerated; blank input counts as empty.
func Decode(b []byte) (model.Collection, error) {
	b = jsonc.ToJSON(b)
	if len(bytes.TrimSpace(b)) == 0 {
		return model.Collection{}, nil
	}
	var c model.Collection
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w: %w", ErrCorrupt, err)
	}
	return c.Normalize(), nil
}
