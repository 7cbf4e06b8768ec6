package stylecraft

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/cespare/xxhash/v2"

	"github.com/stylecraft/stylecraft/internal/ast"
)

// Fingerprint identifies a style callback body by a short, deterministic,
// non-cryptographic digest of its textual form with all whitespace
// removed. Two bodies that are byte-identical modulo whitespace hash
// identically. Equal digests imply equal transformation results for all
// practical inputs; xxhash collisions are possible in principle, in which
// case the colliding body would silently reuse the other body's tokens.
type Fingerprint uint64

// FingerprintOf digests a callback body node.
func FingerprintOf(body *ast.Node) Fingerprint {
	return Fingerprint(xxhash.Sum64String(stripWhitespace(body.String())))
}

// String renders the fingerprint as hex for diagnostics.
func (f Fingerprint) String() string {
	return strconv.FormatUint(uint64(f), 16)
}

func stripWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if !unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
