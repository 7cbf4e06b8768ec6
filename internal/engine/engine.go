// Package engine provides stylecraft's default style engine: it turns a
// (property, value, context) tuple into a short utility-class token.
// The token combines a consonant-skeleton abbreviation of the property,
// a hashed encoding of the value, an abbreviation of the pseudo-group
// when present, and a module prefix derived from the file path when
// tokens are module scoped. It emits class-name tokens only; producing
// the CSS rules behind them is a concern of the build that consumes the
// tokens.
package engine

import "strings"

const (
	alpha           = "abcdefghijklmnopqrstuvwxyz"
	alphanumeric    = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	cipherSeed      = 5381
	valueHashWidth  = 4
	modulePrefixLen = 3
)

// Generator is the default Engine implementation. It is stateless and
// deterministic: the same inputs always produce the same token.
type Generator struct{}

// NewGenerator returns the default token generator.
func NewGenerator() *Generator { return &Generator{} }

// Transform generates the utility-class token for one declared style
// property. Unknown properties return an empty token, which leaves the
// declaration untouched.
func (g *Generator) Transform(property, value string, moduleScoped bool, filePath, pseudoGroup string) (string, error) {
	name, ok := ResolveProperty(property)
	if !ok {
		return "", nil
	}

	var b strings.Builder
	if moduleScoped && filePath != "" {
		b.WriteString(hashedName(contextName(filePath), true, modulePrefixLen))
		b.WriteByte('-')
	}
	if pseudoGroup != "" {
		b.WriteString(Abbreviate(pseudoGroup))
		b.WriteByte('.')
	}
	b.WriteString(Abbreviate(name))
	b.WriteByte('-')
	b.WriteString(hashedName(value, false, valueHashWidth))
	return b.String(), nil
}

// contextName reduces a file path to a stable module identifier: the
// slash-normalized path without its extension.
func contextName(filePath string) string {
	p := strings.ReplaceAll(filePath, "\\", "/")
	if dot := strings.LastIndexByte(p, '.'); dot > strings.LastIndexByte(p, '/') {
		p = p[:dot]
	}
	return p
}

// Abbreviate collapses a property or group name to its consonant
// skeleton: vowels drop out, and words longer than two characters keep
// their first, middle and last consonants.
func Abbreviate(input string) string {
	var kept strings.Builder
	for _, c := range input {
		if c == '-' || (isASCIIAlpha(c) && !isVowel(c)) {
			kept.WriteRune(c)
		}
	}

	words := strings.FieldsFunc(kept.String(), func(r rune) bool {
		return r == '-' || r == ' '
	})
	abbr := make([]string, 0, len(words))
	for _, w := range words {
		if len(w) > 2 {
			half := len(w) / 2
			abbr = append(abbr, string(w[0])+string(w[half])+string(w[len(w)-1]))
		} else {
			abbr = append(abbr, w)
		}
	}
	return strings.Join(abbr, "-")
}

func isASCIIAlpha(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isVowel(c rune) bool {
	switch c | 0x20 {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}

// cipher hashes a string with a djb2-style mix, walking the bytes from
// the end so short prefixes still spread.
func cipher(seed uint64, s string) uint64 {
	hash := seed
	for i := len(s) - 1; i >= 0; i-- {
		hash = hash*33 ^ uint64(s[i])
	}
	return (hash * 33) ^ uint64(len(s))
}

// hashedName encodes the cipher of input into the alphabet (alphabetic
// only when isAlpha, otherwise alphanumeric), keeping the last size
// characters.
func hashedName(input string, isAlpha bool, size int) string {
	base := uint64(len(alphanumeric))
	chars := alphanumeric
	if isAlpha {
		base = uint64(len(alpha))
		chars = alpha
	}

	name := ""
	x := cipher(cipherSeed, input)
	for x > base {
		name = string(chars[x%base]) + name
		x /= base
	}
	name = string(chars[x%base]) + name

	if len(name) > size {
		return name[len(name)-size:]
	}
	return name
}
