package weave

import (
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

// HexBytes is a byte slice that reads and writes itself as upper case hex in
// JSON. Kitty DNA uses it in genesis files and query responses.
type HexBytes []byte

// MarshalJSON implements json.Marshaler.
func (h HexBytes) MarshalJSON() ([]byte, error) {
	return marshalHex(h)
}

// UnmarshalJSON implements json.Unmarshaler.
func (h *HexBytes) UnmarshalJSON(src []byte) error {
	return unmarshalHex((*[]byte)(h), src)
}

// String returns the upper case hex form.
func (h HexBytes) String() string {
	return strings.ToUpper(hex.EncodeToString(h))
}

func unmarshalHex(dst *[]byte, src []byte) (err error) {
	var s string
	err = json.Unmarshal(src, &s)
	if err != nil {
		return errors.Wrap(err, "parse string")
	}
	// and interpret that string as hex
	*dst, err = hex.DecodeString(s)
	return err
}

func marshalHex(bytes []byte) ([]byte, error) {
	s := strings.ToUpper(hex.EncodeToString(bytes))
	return json.Marshal(s)
}
