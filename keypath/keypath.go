// Package keypath parses and formats key paths that address nested
// locations inside a document tree.
//
// A path is a sequence of segments separated by dots. A segment is either a
// bare word of letters, digits, and underscores, or a bracketed run of any
// characters other than ']', which allows keys that contain literal dots:
//
//	foo.bar[key.with.dots].fizz[buzz]
//
// parses into the five keys foo, bar, key.with.dots, fizz, buzz. A segment
// consisting entirely of digits doubles as a sequence index when the value
// it addresses is a sequence.
//
// The parser is a pure function with no shared state, so it is safe for
// concurrent use.
package keypath

import (
	"fmt"
	"strconv"
	"strings"
)

// Key is a single path segment. It addresses a record field by name, and
// when the segment is entirely digits it also addresses a sequence position.
type Key struct {
	name    string
	index   int
	indexed bool
}

// Field creates a key that addresses a record field by name.
func Field(name string) Key {
	if i, err := strconv.Atoi(name); err == nil && i >= 0 {
		return Key{name: name, index: i, indexed: true}
	}
	return Key{name: name}
}

// Index creates a key that addresses a sequence position. It also addresses
// the record field whose name is the decimal form of i.
func Index(i int) Key {
	return Key{name: strconv.Itoa(i), index: i, indexed: true}
}

// Name returns the key as a record field name.
func (k Key) Name() string {
	return k.name
}

// Index returns the key as a sequence position, and whether the key can
// address one.
func (k Key) Index() (int, bool) {
	return k.index, k.indexed
}

// String formats the key as a path segment, bracket-quoting it when it
// contains characters that would conflict with the path syntax.
func (k Key) String() string {
	if k.name == "" || !isWord(k.name) {
		return "[" + k.name + "]"
	}
	return k.name
}

// Parse tokenizes a path string into its keys. It returns an error for an
// empty path, an unterminated bracket, or any character outside a bracket
// that is not a word character or separator; a malformed path never silently
// selects the document root.
func Parse(path string) ([]Key, error) {
	if path == "" {
		return nil, fmt.Errorf("keypath: empty path")
	}

	s := &scanner{input: path}
	keys, err := s.scan()
	if err != nil {
		return nil, err
	}
	return keys, nil
}

// Join formats keys back into a path string. Join and Parse round-trip for
// any key list.
func Join(keys []Key) string {
	var b strings.Builder
	for i, k := range keys {
		seg := k.String()
		if i > 0 && !strings.HasPrefix(seg, "[") {
			b.WriteByte('.')
		}
		b.WriteString(seg)
	}
	return b.String()
}

// scanner is the internal path tokenizer.
type scanner struct {
	input string
	pos   int
}

func (s *scanner) scan() ([]Key, error) {
	var keys []Key

	// First segment: a word or a bracketed key, no leading separator.
	key, err := s.scanSegment()
	if err != nil {
		return nil, err
	}
	keys = append(keys, key)

	for s.pos < len(s.input) {
		switch s.peek() {
		case '.':
			s.advance()
			key, err := s.scanSegment()
			if err != nil {
				return nil, err
			}
			keys = append(keys, key)
		case '[':
			key, err := s.scanBracket()
			if err != nil {
				return nil, err
			}
			keys = append(keys, key)
		default:
			return nil, fmt.Errorf("keypath: unexpected character %q at position %d", s.peek(), s.pos)
		}
	}

	return keys, nil
}

// scanSegment scans a bare word, or a bracketed key when the next character
// opens a bracket.
func (s *scanner) scanSegment() (Key, error) {
	if s.pos >= len(s.input) {
		return Key{}, fmt.Errorf("keypath: unexpected end of path at position %d", s.pos)
	}
	if s.peek() == '[' {
		return s.scanBracket()
	}

	start := s.pos
	for s.pos < len(s.input) && isWordByte(s.input[s.pos]) {
		s.pos++
	}
	if s.pos == start {
		return Key{}, fmt.Errorf("keypath: expected key at position %d, found %q", s.pos, s.peek())
	}
	return Field(s.input[start:s.pos]), nil
}

// scanBracket scans a [...] segment; the run may contain any byte except ']'.
func (s *scanner) scanBracket() (Key, error) {
	s.advance() // consume '['
	start := s.pos
	for s.pos < len(s.input) && s.input[s.pos] != ']' {
		s.pos++
	}
	if s.pos >= len(s.input) {
		return Key{}, fmt.Errorf("keypath: unterminated bracket at position %d", start-1)
	}
	name := s.input[start:s.pos]
	s.advance() // consume ']'
	return Field(name), nil
}

func (s *scanner) peek() byte {
	if s.pos >= len(s.input) {
		return 0
	}
	return s.input[s.pos]
}

func (s *scanner) advance() {
	if s.pos < len(s.input) {
		s.pos++
	}
}

func isWordByte(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') ||
		(ch >= 'A' && ch <= 'Z') ||
		(ch >= '0' && ch <= '9') ||
		ch == '_'
}

func isWord(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isWordByte(s[i]) {
			return false
		}
	}
	return true
}
