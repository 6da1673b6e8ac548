package config

import (
	"bytes"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

var jsPrefixes = []string{"module.exports", "export default"}

// normalizeJS rewrites a JavaScript config module into a YAML flow mapping.
// Comments are dropped, strings are re-quoted with double quotes, trailing
// commas are removed and key separators get the space YAML requires.
// Newlines are preserved so decoder line numbers match the source.
func normalizeJS(src []byte) ([]byte, error) {
	src = bytes.TrimPrefix(src, []byte("\xef\xbb\xbf"))
	s := string(src)

	var out strings.Builder
	out.Grow(len(s) + len(s)/8)
	line := 1

	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case c == '/' && i+1 < len(s) && s[i+1] == '/':
			for i < len(s) && s[i] != '\n' {
				i++
			}
		case c == '/' && i+1 < len(s) && s[i+1] == '*':
			end := strings.Index(s[i+2:], "*/")
			if end < 0 {
				return nil, malformed("line %d: unterminated block comment", line)
			}
			body := s[i : i+2+end+2]
			n := strings.Count(body, "\n")
			out.WriteString(strings.Repeat("\n", n))
			line += n
			i += len(body)
		case c == '\'' || c == '"' || c == '`':
			str, next, err := readJSString(s, i, line)
			if err != nil {
				return nil, err
			}
			line += strings.Count(s[i:next], "\n")
			out.WriteString(strconv.Quote(str))
			i = next
		case c == '}' || c == ']':
			dropTrailingComma(&out)
			out.WriteByte(c)
			i++
		case c == ':':
			out.WriteString(": ")
			i++
		case c == '\t':
			out.WriteByte(' ')
			i++
		default:
			if c == '\n' {
				line++
			}
			out.WriteByte(c)
			i++
		}
	}

	body := strings.TrimSpace(out.String())
	for _, p := range jsPrefixes {
		if strings.HasPrefix(body, p) {
			body = strings.TrimSpace(strings.TrimPrefix(body, p))
			body = strings.TrimSpace(strings.TrimPrefix(body, "="))
			break
		}
	}
	body = strings.TrimSpace(strings.TrimSuffix(body, ";"))
	if !strings.HasPrefix(body, "{") || !strings.HasSuffix(body, "}") {
		return nil, malformed("expected an object literal")
	}
	return []byte(body), nil
}

// dropTrailingComma removes a comma left dangling before a closing bracket.
func dropTrailingComma(out *strings.Builder) {
	cur := out.String()
	trimmed := strings.TrimRight(cur, " \r\n")
	if !strings.HasSuffix(trimmed, ",") {
		return
	}
	rest := cur[len(trimmed):]
	out.Reset()
	out.WriteString(trimmed[:len(trimmed)-1])
	out.WriteString(rest)
}

// readJSString decodes the string literal starting at s[start] and returns
// its value and the index just past the closing quote.
func readJSString(s string, start, line int) (string, int, error) {
	quote := s[start]
	var b strings.Builder
	i := start + 1
	for i < len(s) {
		c := s[i]
		switch {
		case c == quote:
			return b.String(), i + 1, nil
		case c == '\n' && quote != '`':
			return "", 0, malformed("line %d: unterminated string", line)
		case c == '$' && quote == '`' && i+1 < len(s) && s[i+1] == '{':
			return "", 0, malformed("line %d: template literal interpolation is not supported", line)
		case c == '\\':
			if i+1 >= len(s) {
				return "", 0, malformed("line %d: unterminated string", line)
			}
			n, err := decodeEscape(s[i+1:], &b)
			if err != nil {
				return "", 0, malformed("line %d: %v", line, err)
			}
			i += 1 + n
		default:
			if c == '\n' {
				line++
			}
			b.WriteByte(c)
			i++
		}
	}
	return "", 0, malformed("line %d: unterminated string", line)
}

// decodeEscape writes the character for the escape sequence at the start of
// s (just after the backslash) and returns how many bytes it consumed.
func decodeEscape(s string, b *strings.Builder) (int, error) {
	switch s[0] {
	case 'n':
		b.WriteByte('\n')
	case 't':
		b.WriteByte('\t')
	case 'r':
		b.WriteByte('\r')
	case 'b':
		b.WriteByte('\b')
	case 'f':
		b.WriteByte('\f')
	case 'v':
		b.WriteByte('\v')
	case '0':
		b.WriteByte(0)
	case '\n':
		// line continuation
	case 'x':
		if len(s) < 3 {
			return 0, errBadEscape(s)
		}
		v, err := strconv.ParseUint(s[1:3], 16, 8)
		if err != nil {
			return 0, errBadEscape(s)
		}
		b.WriteRune(rune(v))
		return 3, nil
	case 'u':
		if strings.HasPrefix(s, "u{") {
			end := strings.IndexByte(s, '}')
			if end < 0 {
				return 0, errBadEscape(s)
			}
			v, err := strconv.ParseUint(s[2:end], 16, 32)
			if err != nil || !utf8.ValidRune(rune(v)) {
				return 0, errBadEscape(s)
			}
			b.WriteRune(rune(v))
			return end + 1, nil
		}
		r, ok := hex4(s)
		if !ok {
			return 0, errBadEscape(s)
		}
		if !utf16.IsSurrogate(r) {
			b.WriteRune(r)
			return 5, nil
		}
		// a high surrogate must be followed by an escaped low surrogate
		if r < 0xdc00 && len(s) >= 11 && s[5] == '\\' {
			if lo, ok := hex4(s[6:]); ok {
				if pair := utf16.DecodeRune(r, lo); pair != utf8.RuneError {
					b.WriteRune(pair)
					return 11, nil
				}
			}
		}
		return 0, &escapeError{seq: s[:5], msg: "unpaired surrogate"}
	default:
		_, size := utf8.DecodeRuneInString(s)
		b.WriteString(s[:size])
		return size, nil
	}
	return 1, nil
}

// hex4 parses the four hex digits following the 'u' of a \uXXXX escape.
func hex4(s string) (rune, bool) {
	if len(s) < 5 || s[0] != 'u' {
		return 0, false
	}
	v, err := strconv.ParseUint(s[1:5], 16, 16)
	if err != nil {
		return 0, false
	}
	return rune(v), true
}

func errBadEscape(s string) error {
	if len(s) > 6 {
		s = s[:6]
	}
	return &escapeError{seq: s}
}

type escapeError struct {
	seq string
	msg string
}

func (e *escapeError) Error() string {
	msg := e.msg
	if msg == "" {
		msg = "invalid escape sequence"
	}
	return msg + " \\" + e.seq
}

// decodeJS parses a normalized JS literal into raw. Repeated keys are
// allowed and the last one wins, as in a JS object literal.
func decodeJS(data []byte, raw *rawSource) error {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return malformed("%v", err)
	}
	if doc.Kind == 0 {
		return malformed("empty document")
	}
	lastKeyWins(&doc)
	if err := doc.Decode(raw); err != nil {
		return malformed("%v", err)
	}
	return nil
}

func lastKeyWins(n *yaml.Node) {
	for _, c := range n.Content {
		lastKeyWins(c)
	}
	if n.Kind != yaml.MappingNode {
		return
	}
	last := make(map[string]int, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		last[n.Content[i].Value] = i
	}
	if len(last) == len(n.Content)/2 {
		return
	}
	kept := make([]*yaml.Node, 0, 2*len(last))
	for i := 0; i+1 < len(n.Content); i += 2 {
		if last[n.Content[i].Value] == i {
			kept = append(kept, n.Content[i], n.Content[i+1])
		}
	}
	n.Content = kept
}
