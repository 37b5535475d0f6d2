package css

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// specialChars are characters which must be escaped in class selectors.
const specialChars = "!\"#$%&'()*+,./:;<=>?@[\\]^`{|}~"

// EscapeClass escapes class name so it could be used as selector fragment.
// Every special character gets backslash in front of it. Leading digit cannot
// start an identifier and is written as hex escape instead.
func EscapeClass(class string) string {
	var sb strings.Builder
	sb.Grow(len(class) + 8)
	for i, r := range class {
		switch {
		case i == 0 && r >= '0' && r <= '9':
			fmt.Fprintf(&sb, "\\%x ", r)
		case strings.ContainsRune(specialChars, r):
			sb.WriteByte('\\')
			sb.WriteRune(r)
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// UnescapeClass reverses CSS escaping in identifier.
func UnescapeClass(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var sb strings.Builder
	for i := 0; i < len(s); {
		if s[i] != '\\' || i+1 >= len(s) {
			sb.WriteByte(s[i])
			i++
			continue
		}
		i++
		j := i
		for j < len(s) && j-i < 6 && isHex(s[j]) {
			j++
		}
		if j == i {
			r, size := utf8.DecodeRuneInString(s[i:])
			sb.WriteRune(r)
			i += size
			continue
		}
		code, _ := strconv.ParseUint(s[i:j], 16, 32)
		sb.WriteRune(rune(code))
		i = j
		// single whitespace after hex escape belongs to the escape
		if i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n') {
			i++
		}
	}
	return sb.String()
}

func isHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
