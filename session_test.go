package stylecraft

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTransformsTree(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	writeTree(t, src, map[string]string{
		"button.js": `const styles = craftingStyles(() => ({
  bgd: "red",
  Hover: { color: "blue" }
}));`,
		"plain.js": `const x = 1;`,
	})

	cfg := Config{SourceDir: src, OutputDir: out}
	result, err := Build(cfg, concatEngine())
	require.NoError(t, err)

	assert.Equal(t, 2, result.Stats.FilesScanned)
	assert.Equal(t, 1, result.FilesTransformed)
	assert.Equal(t, 1, result.CallSites)
	assert.Equal(t, 0, result.CacheHits)
	assert.Empty(t, result.Issues)
	assert.Empty(t, result.Warnings)

	transformed, err := os.ReadFile(filepath.Join(out, "button.js"))
	require.NoError(t, err)
	assert.Contains(t, string(transformed), `bgd: "bgd_\"red\""`)
	assert.Contains(t, string(transformed), `color: "color_\"blue\""`)

	// Unedited files are mirrored so the output tree stays complete.
	plain, err := os.ReadFile(filepath.Join(out, "plain.js"))
	require.NoError(t, err)
	assert.Equal(t, "const x = 1;", string(plain))
}

func TestBuildCacheSharedAcrossFiles(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	decl := `craftingStyles(() => ({ color: "blue" }));`
	writeTree(t, src, map[string]string{
		"a.js": decl,
		"b.js": decl,
		"c.js": decl,
	})

	result, err := Build(Config{SourceDir: src, OutputDir: out}, concatEngine())
	require.NoError(t, err)
	assert.Equal(t, 3, result.CallSites)
	assert.Equal(t, 2, result.CacheHits)
}

func TestBuildInPlaceOnlyWritesEditedFiles(t *testing.T) {
	src := t.TempDir()
	writeTree(t, src, map[string]string{
		"styled.js": `craftingStyles(() => ({ bgd: "red" }));`,
		"plain.js":  `const x = 1;`,
	})
	plainBefore, err := os.Stat(filepath.Join(src, "plain.js"))
	require.NoError(t, err)

	cfg := Config{SourceDir: src, WriteInPlace: true}
	result, err := Build(cfg, concatEngine())
	require.NoError(t, err)
	assert.Equal(t, 1, result.FilesTransformed)

	styled, err := os.ReadFile(filepath.Join(src, "styled.js"))
	require.NoError(t, err)
	assert.Contains(t, string(styled), `bgd_\"red\"`)

	plainAfter, err := os.Stat(filepath.Join(src, "plain.js"))
	require.NoError(t, err)
	assert.Equal(t, plainBefore.ModTime(), plainAfter.ModTime())
}

func TestBuildCustomTrigger(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	writeTree(t, src, map[string]string{
		"app.js": `makeStyles(() => ({ bgd: "red" })); craftingStyles(() => ({ pdg: "1px" }));`,
	})

	cfg := Config{SourceDir: src, OutputDir: out, Trigger: "makeStyles"}
	result, err := Build(cfg, concatEngine())
	require.NoError(t, err)
	require.Equal(t, 1, result.CallSites)

	transformed, err := os.ReadFile(filepath.Join(out, "app.js"))
	require.NoError(t, err)
	assert.Contains(t, string(transformed), `bgd_\"red\"`)
	assert.Contains(t, string(transformed), `pdg: "1px"`)
}

func TestBuildCollectsIssuesWithFilePositions(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	writeTree(t, src, map[string]string{
		"app.js": `craftingStyles(() => ({ bad: "x" }));`,
	})

	engine := EngineFunc(func(property, value string, _ bool, _, _ string) (string, error) {
		if property == "bad" {
			panic("unusable")
		}
		return property + "_" + value, nil
	})

	result, err := Build(Config{SourceDir: src, OutputDir: out}, engine)
	require.NoError(t, err)
	require.Len(t, result.Issues, 1)
	assert.Equal(t, "bad", result.Issues[0].Property)
	assert.Equal(t, "app.js", result.Issues[0].Pos.Filename)
	assert.Equal(t, SeverityWarning, result.Issues[0].Severity)
}

func TestSessionProcessFileSequentialCalls(t *testing.T) {
	// A watch session reuses one Session across saves; identical
	// declarations in later files are cache hits.
	src := t.TempDir()
	out := t.TempDir()
	writeTree(t, src, map[string]string{
		"a.js": `craftingStyles(() => ({ color: "blue" }));`,
		"b.js": `craftingStyles(() => ({ color: "blue" }));`,
	})

	s := NewSession(Config{SourceDir: src, OutputDir: out}, concatEngine())

	result := &BuildResult{}
	require.NoError(t, s.ProcessFile(filepath.Join(src, "a.js"), result))
	assert.Equal(t, 0, result.CacheHits)
	require.NoError(t, s.ProcessFile(filepath.Join(src, "b.js"), result))
	assert.Equal(t, 1, result.CacheHits)
	assert.Equal(t, 1, s.Cache().Len())
}

func TestConfigWithDefaults(t *testing.T) {
	c := Config{}.withDefaults()
	assert.Equal(t, DefaultTrigger, c.Trigger)
	assert.Equal(t, DefaultIncludes, c.Includes)
	assert.Equal(t, DefaultExtensions, c.Extensions)
	assert.Equal(t, "dist", c.OutputDir)

	inPlace := Config{WriteInPlace: true}.withDefaults()
	assert.Empty(t, inPlace.OutputDir)
}
