package snbt

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	_ json.Marshaler   = Long("")
	_ json.Marshaler   = &Compound{}
	_ json.Unmarshaler = &Compound{}
)

// MarshalJSON writes the digits as a JSON number, without the float64 detour.
func (l Long) MarshalJSON() ([]byte, error) {
	b, ok := l.BigInt()
	if !ok {
		return nil, fmt.Errorf("snbt: invalid long %q", string(l))
	}
	return []byte(b.String()), nil
}

// MarshalJSON writes the compound as a JSON object keeping key order.
func (c *Compound) MarshalJSON() ([]byte, error) {
	if c == nil {
		return []byte("null"), nil
	}
	buf := new(bytes.Buffer)
	buf.WriteByte('{')
	for i, k := range c.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encodeJSON(buf, k); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := encodeJSON(buf, c.values[k]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func encodeJSON(buf *bytes.Buffer, v any) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	// Encode always terminates with a newline
	buf.Truncate(buf.Len() - 1)
	return nil
}

// UnmarshalJSON reads a JSON object. Integers become Long so that no digits
// are lost; other numbers become float64.
func (c *Compound) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok != json.Delim('{') {
		return errors.New("snbt: compound must be a JSON object")
	}
	v, err := decodeCompound(dec)
	if err != nil {
		return err
	}
	*c = *v
	return nil
}

func decodeJSON(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeCompound(dec)
		case '[':
			list := make([]Value, 0)
			for dec.More() {
				v, err := decodeJSON(dec)
				if err != nil {
					return nil, err
				}
				list = append(list, v)
			}
			_, err := dec.Token()
			return list, err
		}
		return nil, fmt.Errorf("snbt: unexpected JSON delimiter %s", t)
	case json.Number:
		if strings.ContainsAny(t.String(), ".eE") {
			return t.Float64()
		}
		return Long(t.String()), nil
	}
	return tok, nil
}

func decodeCompound(dec *json.Decoder) (*Compound, error) {
	c := NewCompound()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("snbt: unexpected JSON key %v", tok)
		}
		v, err := decodeJSON(dec)
		if err != nil {
			return nil, err
		}
		c.Set(key, v)
	}
	_, err := dec.Token()
	return c, err
}

// Unmarshal projects a parsed tree onto target using its json struct tags.
func Unmarshal(v Value, target any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, target)
}
