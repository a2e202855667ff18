// Package signature renders compact D-Bus type signatures as human-readable
// type expressions.
package signature

import (
	"fmt"
	"strings"
)

// atomicNames maps single-letter type codes to their display names.
var atomicNames = map[byte]string{
	'y': "Byte",
	'b': "Boolean",
	'n': "Int16",
	'q': "UInt16",
	'i': "Int32",
	'u': "UInt32",
	'x': "Int64",
	't': "UInt64",
	'd': "Double",
	's': "String",
	'o': "ObjectPath",
	'g': "Signature",
	'v': "Variant",
	'h': "UnixFD",
}

// maxDepth matches the container nesting limit of the D-Bus specification.
const maxDepth = 64

// Format renders a type signature in human-readable notation. A signature
// holding several complete types (a call argument list) renders as a
// comma-separated list of its members. The empty signature renders as "".
func Format(sig string) (string, error) {
	return format(sig, 0)
}

// PPrint renders a signature followed by an argument name, when one is given.
func PPrint(sig, name string) (string, error) {
	s, err := Format(sig)
	if err != nil {
		return "", err
	}
	if name == "" {
		return s, nil
	}
	return s + " " + name, nil
}

// Split breaks a signature into its top-level single complete types.
func Split(sig string) ([]string, error) {
	var parts []string
	for s := sig; s != ""; {
		n, err := next(s, 0)
		if err != nil {
			return nil, err
		}
		parts = append(parts, s[:n])
		s = s[n:]
	}
	return parts, nil
}

func format(sig string, depth int) (string, error) {
	if sig == "" {
		return "", nil
	}
	if depth > maxDepth {
		return "", fmt.Errorf("signature %q: nesting too deep", sig)
	}
	parts, err := Split(sig)
	if err != nil {
		return "", err
	}
	if len(parts) == 1 {
		return formatSingle(parts[0], depth)
	}
	out := make([]string, len(parts))
	for i, part := range parts {
		if out[i], err = formatSingle(part, depth); err != nil {
			return "", err
		}
	}
	return strings.Join(out, ", "), nil
}

func formatSingle(sig string, depth int) (string, error) {
	switch sig[0] {
	case '(':
		inner, err := format(sig[1:len(sig)-1], depth+1)
		if err != nil {
			return "", err
		}
		return "Struct {" + inner + "}", nil
	case 'a':
		elem := sig[1:]
		if elem[0] == '{' {
			// The element is a dict-entry, so the array is a mapping.
			members, err := Split(elem[1 : len(elem)-1])
			if err != nil {
				return "", err
			}
			if len(members) != 2 {
				return "", fmt.Errorf("dict entry %q needs exactly a key and a value", elem)
			}
			inner, err := format(elem[1:len(elem)-1], depth+1)
			if err != nil {
				return "", err
			}
			return "Dictionary {" + inner + "}", nil
		}
		s, err := formatSingle(elem, depth+1)
		if err != nil {
			return "", err
		}
		return s + "[]", nil
	default:
		name, ok := atomicNames[sig[0]]
		if !ok {
			return "", fmt.Errorf("signature %q: unknown type code %q", sig, string(sig[0]))
		}
		return name, nil
	}
}

// next returns the byte length of the first single complete type in s.
func next(s string, depth int) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("truncated signature")
	}
	if depth > maxDepth {
		return 0, fmt.Errorf("signature nesting too deep")
	}
	switch c := s[0]; c {
	case 'a':
		n, err := next(s[1:], depth+1)
		if err != nil {
			return 0, err
		}
		return 1 + n, nil
	case '(', '{':
		closer := byte(')')
		if c == '{' {
			closer = '}'
		}
		i := 1
		for i < len(s) && s[i] != closer {
			n, err := next(s[i:], depth+1)
			if err != nil {
				return 0, err
			}
			i += n
		}
		if i >= len(s) {
			return 0, fmt.Errorf("signature %q: unterminated %q", s, string(c))
		}
		return i + 1, nil
	default:
		if _, ok := atomicNames[c]; !ok {
			return 0, fmt.Errorf("unknown type code %q in signature", string(c))
		}
		return 1, nil
	}
}
