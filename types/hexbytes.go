package types

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// HexBytes is a byte slice that marshals to and from JSON as a hex string.
// A leading "0x" prefix is accepted on input and always added on output.
type HexBytes []byte

func (b HexBytes) String() string {
	return "0x" + hex.EncodeToString(b)
}

func (b HexBytes) MarshalJSON() ([]byte, error) {
	return []byte(`"` + b.String() + `"`), nil
}

func (b *HexBytes) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	s = strings.TrimPrefix(s, "0x")
	s = strings.TrimPrefix(s, "0X")
	decoded, err := hex.DecodeString(s)
	if err != nil {
		return fmt.Errorf("invalid hex string: %w", err)
	}
	*b = decoded
	return nil
}

// HexBytesFromString decodes a hex string (with or without 0x prefix).
func HexBytesFromString(s string) (HexBytes, error) {
	s = strings.TrimPrefix(s, "0x")
	s = strings.TrimPrefix(s, "0X")
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, err
	}
	return HexBytes(b), nil
}
