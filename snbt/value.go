package snbt

import (
	"math/big"
	"strconv"
)

// Value is a node of a parsed SNBT tree. The dynamic type is one of:
//   - nil for null
//   - bool
//   - int64 for integers without a type suffix
//   - float64 for decimals, exponents and f/d suffixed numbers
//   - Long for b/s/i/l suffixed integers
//   - string
//   - []Value for lists and typed arrays
//   - *Compound for compounds
type Value = any

// Long holds the exact decimal text of an integer written with a b, s, i or l
// suffix. 64-bit values do not survive a float64 round trip, so the digits are
// kept as they were written.
type Long string

func (l Long) Int64() (int64, error) {
	return strconv.ParseInt(string(l), 10, 64)
}

func (l Long) BigInt() (*big.Int, bool) {
	return new(big.Int).SetString(string(l), 10)
}

func (l Long) String() string {
	return string(l)
}

// Compound is an ordered string keyed map. Keys keep the position of their
// first insertion.
type Compound struct {
	keys   []string
	values map[string]Value
}

func NewCompound() *Compound {
	return &Compound{values: make(map[string]Value)}
}

func (c *Compound) Set(key string, v Value) {
	if c.values == nil {
		c.values = make(map[string]Value)
	}
	if _, ok := c.values[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.values[key] = v
}

func (c *Compound) Get(key string) (Value, bool) {
	if c == nil {
		return nil, false
	}
	v, ok := c.values[key]
	return v, ok
}

func (c *Compound) Delete(key string) {
	if _, ok := c.values[key]; !ok {
		return
	}
	delete(c.values, key)
	for i, k := range c.keys {
		if k == key {
			c.keys = append(c.keys[:i:i], c.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in insertion order.
func (c *Compound) Keys() []string {
	if c == nil {
		return nil
	}
	return append([]string(nil), c.keys...)
}

func (c *Compound) Len() int {
	if c == nil {
		return 0
	}
	return len(c.keys)
}

// Clone returns a shallow copy; nested values are shared.
func (c *Compound) Clone() *Compound {
	out := NewCompound()
	for _, k := range c.Keys() {
		out.Set(k, c.values[k])
	}
	return out
}

// IsZeroNumber reports whether v is a numeric value equal to zero.
func IsZeroNumber(v Value) bool {
	switch n := v.(type) {
	case int64:
		return n == 0
	case float64:
		return n == 0
	case Long:
		b, ok := n.BigInt()
		return ok && b.Sign() == 0
	}
	return false
}
