package snbt

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"
)

// SyntaxError reports malformed SNBT. Line and Column are zero based and count
// code points; Error prints them one based.
type SyntaxError struct {
	Source  string
	Line    int
	Column  int
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("snbt: %s at %d:%d of <%s>", e.Message, e.Line+1, e.Column+1, e.Source)
}

const eof rune = -1

type position struct {
	line, col int
}

type parser struct {
	source string
	src    []rune
	pos    int
	at     position
}

// Parse parses a single SNBT document. sourceName is only used for error
// reporting. There is no lenient mode: the first malformed token fails the
// whole document.
func Parse(text, sourceName string) (Value, error) {
	p := &parser{source: sourceName, src: []rune(text)}
	v, err := p.value()
	if err != nil {
		return nil, err
	}
	p.skipWhitespace()
	if p.peek() != eof {
		return nil, p.errorf("unexpected %s after value", p.describe())
	}
	return v, nil
}

func (p *parser) peek() rune {
	return p.peekAt(0)
}

func (p *parser) peekAt(n int) rune {
	if p.pos+n >= len(p.src) {
		return eof
	}
	return p.src[p.pos+n]
}

func (p *parser) next() rune {
	c := p.peek()
	if c == eof {
		return eof
	}
	p.pos++
	if c == '\n' {
		p.at.line++
		p.at.col = 0
	} else {
		p.at.col++
	}
	return c
}

func (p *parser) skipWhitespace() {
	for c := p.peek(); c != eof && c <= ' '; c = p.peek() {
		p.next()
	}
}

func (p *parser) describe() string {
	if c := p.peek(); c != eof {
		return strconv.QuoteRune(c)
	}
	return "end of input"
}

func (p *parser) errorf(format string, args ...any) error {
	return p.errorAt(p.at, format, args...)
}

func (p *parser) errorAt(at position, format string, args ...any) error {
	return &SyntaxError{
		Source:  p.source,
		Line:    at.line,
		Column:  at.col,
		Message: fmt.Sprintf(format, args...),
	}
}

func (p *parser) value() (Value, error) {
	p.skipWhitespace()
	switch c := p.peek(); {
	case c == '{':
		return p.compound()
	case c == '[':
		return p.list()
	case c == '"' || c == '\'':
		return p.quoted()
	case c == '-' || isDigit(c):
		return p.number()
	case c == eof:
		return nil, p.errorf("unexpected end of input")
	}
	return p.word()
}

func (p *parser) word() (Value, error) {
	var literal string
	var v Value
	switch p.peek() {
	case 't':
		literal, v = "true", true
	case 'f':
		literal, v = "false", false
	case 'n':
		literal, v = "null", nil
	default:
		return nil, p.errorf("unexpected %s", p.describe())
	}
	for _, want := range literal {
		if p.peek() != want {
			return nil, p.errorf("expected %q in %q, found %s", want, literal, p.describe())
		}
		p.next()
	}
	return v, nil
}

func (p *parser) compound() (Value, error) {
	p.next()
	c := NewCompound()
	p.skipWhitespace()
	if p.peek() == '}' {
		p.next()
		return c, nil
	}
	for {
		p.skipWhitespace()
		key, err := p.key()
		if err != nil {
			return nil, err
		}
		p.skipWhitespace()
		if p.peek() != ':' {
			return nil, p.errorf("expected ':' after key %q, found %s", key, p.describe())
		}
		p.next()
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		c.Set(key, v)

		p.skipWhitespace()
		switch p.peek() {
		case '}':
			p.next()
			return c, nil
		case ',':
			p.next()
		case eof:
			return nil, p.errorf("unterminated compound")
		}
	}
}

func (p *parser) key() (string, error) {
	if p.peek() == '"' {
		return p.quoted()
	}
	var sb strings.Builder
	for isKeyChar(p.peek()) {
		sb.WriteRune(p.next())
	}
	if sb.Len() == 0 {
		return "", p.errorf("expected key, found %s", p.describe())
	}
	return sb.String(), nil
}

func (p *parser) list() (Value, error) {
	p.next()
	p.skipWhitespace()
	if isArrayType(p.peek()) && p.peekAt(1) == ';' {
		p.next()
		p.next()
		p.skipWhitespace()
	}
	list := make([]Value, 0)
	if p.peek() == ']' {
		p.next()
		return list, nil
	}
	for {
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		list = append(list, v)

		p.skipWhitespace()
		switch p.peek() {
		case ']':
			p.next()
			return list, nil
		case ',':
			p.next()
		case eof:
			return nil, p.errorf("unterminated list")
		}
	}
}

func (p *parser) quoted() (string, error) {
	start := p.at
	quote := p.next()
	var sb strings.Builder
	for {
		switch c := p.peek(); c {
		case eof:
			return "", p.errorAt(start, "unterminated string")
		case quote:
			p.next()
			return sb.String(), nil
		case '\\':
			if err := p.escape(&sb, start); err != nil {
				return "", err
			}
		default:
			sb.WriteRune(p.next())
		}
	}
}

func (p *parser) escape(sb *strings.Builder, stringStart position) error {
	at := p.at
	p.next()
	c := p.next()
	switch c {
	case '"', '\'', '\\', '/':
		sb.WriteRune(c)
	case 'b':
		sb.WriteByte('\b')
	case 'f':
		sb.WriteByte('\f')
	case 'n':
		sb.WriteByte('\n')
	case 'r':
		sb.WriteByte('\r')
	case 't':
		sb.WriteByte('\t')
	case 'u':
		r, err := p.hex4()
		if err != nil {
			return err
		}
		if utf16.IsSurrogate(r) && p.peek() == '\\' && p.peekAt(1) == 'u' {
			p.next()
			p.next()
			r2, err := p.hex4()
			if err != nil {
				return err
			}
			if pair := utf16.DecodeRune(r, r2); pair != unicode.ReplacementChar {
				sb.WriteRune(pair)
				return nil
			}
			sb.WriteRune(unicode.ReplacementChar)
			r = r2
		}
		sb.WriteRune(r)
	case eof:
		return p.errorAt(stringStart, "unterminated string")
	default:
		return p.errorAt(at, "unknown escape '\\%c'", c)
	}
	return nil
}

func (p *parser) hex4() (rune, error) {
	var r rune
	for i := 0; i < 4; i++ {
		c := p.peek()
		d, ok := hexDigit(c)
		if !ok {
			return 0, p.errorf("bad unicode escape, found %s", p.describe())
		}
		p.next()
		r = r*16 + d
	}
	return r, nil
}

func (p *parser) number() (Value, error) {
	var sb strings.Builder
	if p.peek() == '-' {
		sb.WriteRune(p.next())
	}
	if err := p.digits(&sb); err != nil {
		return nil, err
	}

	float := false
	if p.peek() == '.' {
		float = true
		sb.WriteRune(p.next())
		if err := p.digits(&sb); err != nil {
			return nil, err
		}
	}
	if c := p.peek(); c == 'e' || c == 'E' {
		float = true
		sb.WriteRune(p.next())
		if c := p.peek(); c == '+' || c == '-' {
			sb.WriteRune(p.next())
		}
		if err := p.digits(&sb); err != nil {
			return nil, err
		}
	}

	text := sb.String()
	switch unicode.ToLower(p.peek()) {
	case 'b', 's', 'i', 'l':
		if float {
			return nil, p.errorf("integer suffix %s on decimal number %s", p.describe(), text)
		}
		p.next()
		return Long(text), nil
	case 'f', 'd':
		p.next()
		return p.parseFloat(text)
	}
	if float {
		return p.parseFloat(text)
	}
	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		return i, nil
	}
	return p.parseFloat(text)
}

func (p *parser) digits(sb *strings.Builder) error {
	if !isDigit(p.peek()) {
		return p.errorf("expected digit, found %s", p.describe())
	}
	for isDigit(p.peek()) {
		sb.WriteRune(p.next())
	}
	return nil
}

func (p *parser) parseFloat(text string) (Value, error) {
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, p.errorf("number %s out of range", text)
	}
	return f, nil
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isKeyChar(c rune) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || isDigit(c) || c == '_'
}

func isArrayType(c rune) bool {
	switch c {
	case 'B', 'S', 'I', 'L', 'F', 'D':
		return true
	}
	return false
}

func hexDigit(c rune) (rune, bool) {
	switch {
	case isDigit(c):
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
