package snbt

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Marshal writes v as compact SNBT. Parse(Marshal(v)) yields a tree equal to v
// for every Value produced by Parse.
func Marshal(v Value) (string, error) {
	var sb strings.Builder
	if err := writeValue(&sb, v); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func writeValue(sb *strings.Builder, v Value) error {
	switch v := v.(type) {
	case nil:
		sb.WriteString("null")
	case bool:
		sb.WriteString(strconv.FormatBool(v))
	case int64:
		sb.WriteString(strconv.FormatInt(v, 10))
	case int:
		sb.WriteString(strconv.Itoa(v))
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("snbt: cannot marshal %v", v)
		}
		sb.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		sb.WriteByte('d')
	case Long:
		sb.WriteString(string(v))
		sb.WriteByte('L')
	case string:
		writeString(sb, v)
	case []Value:
		sb.WriteByte('[')
		for i, e := range v {
			if i > 0 {
				sb.WriteByte(',')
			}
			if err := writeValue(sb, e); err != nil {
				return err
			}
		}
		sb.WriteByte(']')
	case *Compound:
		sb.WriteByte('{')
		for i, k := range v.Keys() {
			if i > 0 {
				sb.WriteByte(',')
			}
			if isBareKey(k) {
				sb.WriteString(k)
			} else {
				writeString(sb, k)
			}
			sb.WriteByte(':')
			e, _ := v.Get(k)
			if err := writeValue(sb, e); err != nil {
				return err
			}
		}
		sb.WriteByte('}')
	default:
		return fmt.Errorf("snbt: cannot marshal %T", v)
	}
	return nil
}

func isBareKey(k string) bool {
	if k == "" {
		return false
	}
	for _, c := range k {
		if !isKeyChar(c) {
			return false
		}
	}
	return true
}

func writeString(sb *strings.Builder, s string) {
	sb.WriteByte('"')
	for _, c := range s {
		switch c {
		case '"', '\\':
			sb.WriteByte('\\')
			sb.WriteRune(c)
		case '\b':
			sb.WriteString(`\b`)
		case '\f':
			sb.WriteString(`\f`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			if c < ' ' {
				fmt.Fprintf(sb, `\u%04x`, c)
				continue
			}
			sb.WriteRune(c)
		}
	}
	sb.WriteByte('"')
}
