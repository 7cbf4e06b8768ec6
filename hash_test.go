package stylecraft

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stylecraft/stylecraft/internal/ast"
)

func TestFingerprintDeterministic(t *testing.T) {
	body := ast.NewObject(ast.NewProperty("color", ast.NewString("blue")))
	assert.Equal(t, FingerprintOf(body), FingerprintOf(body))
}

func TestFingerprintEqualForEquivalentBodies(t *testing.T) {
	a := ast.NewObject(
		ast.NewProperty("color", ast.NewString("blue")),
		ast.NewProperty("pdg", ast.NewString("4px")),
	)
	b := ast.NewObject(
		ast.NewProperty("color", ast.NewString("blue")),
		ast.NewProperty("pdg", ast.NewString("4px")),
	)
	assert.Equal(t, FingerprintOf(a), FingerprintOf(b))
}

func TestFingerprintIgnoresWhitespaceInSource(t *testing.T) {
	// Two parses of differently formatted but equivalent sources must
	// collide on purpose; formatting lives in RawForm, which String
	// reproduces, and stripWhitespace removes the rest.
	tests := []struct {
		name string
		a, b string
	}{
		{
			name: "spaces versus newlines",
			a:    "{ color: blue }",
			b:    "{\n\tcolor:\nblue }",
		},
		{
			name: "tabs and trailing space",
			a:    "x\t ",
			b:    " x",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t,
				FingerprintOf(ast.NewRaw(tt.a)),
				FingerprintOf(ast.NewRaw(tt.b)))
		})
	}
}

func TestFingerprintDistinguishesValues(t *testing.T) {
	a := ast.NewObject(ast.NewProperty("color", ast.NewString("blue")))
	b := ast.NewObject(ast.NewProperty("color", ast.NewString("red")))
	assert.NotEqual(t, FingerprintOf(a), FingerprintOf(b))
}

func TestFingerprintString(t *testing.T) {
	assert.Equal(t, "ff", Fingerprint(255).String())
}
