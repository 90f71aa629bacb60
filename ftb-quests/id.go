package ftb_quests

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strings"
)

// ID identifies a quest object. Older packs store ids as numeric longs; those
// are normalised to the upper case hexadecimal form current packs write.
type ID string

var _ json.Unmarshaler = new(ID)

func (id *ID) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	h, err := HexID(string(b))
	if err != nil {
		return err
	}
	*id = ID(h)
	return nil
}

// HexID converts a decimal id of any width to upper case hexadecimal.
func HexID(dec string) (string, error) {
	n, ok := new(big.Int).SetString(dec, 10)
	if !ok {
		return "", fmt.Errorf("invalid numeric id %q", dec)
	}
	return strings.ToUpper(n.Text(16)), nil
}

// DecimalID is the inverse of HexID.
func DecimalID(hex string) (string, error) {
	hex = strings.TrimPrefix(strings.ToLower(hex), "0x")
	n, ok := new(big.Int).SetString(hex, 16)
	if !ok {
		return "", fmt.Errorf("invalid hex id %q", hex)
	}
	return n.Text(10), nil
}
