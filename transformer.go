package stylecraft

import (
	"sort"
	"strconv"
	"strings"

	"github.com/stylecraft/stylecraft/internal/ast"
)

// DefaultTrigger is the style-authoring function the locator tracks when
// the configuration names none.
const DefaultTrigger = "craftingStyles"

// Transformer rewrites style declarations at tracked call sites. It
// holds the process-wide pieces: the style engine, the transform cache,
// the tracked function name and the module-scoping flag. Per-file state
// lives in the Pass a Transformer hands out.
type Transformer struct {
	engine       Engine
	cache        *TransformCache
	trigger      string
	moduleScoped bool
}

// NewTransformer wires a transformer to its engine and cache. An empty
// trigger falls back to DefaultTrigger.
func NewTransformer(engine Engine, cache *TransformCache, trigger string, moduleScoped bool) *Transformer {
	if trigger == "" {
		trigger = DefaultTrigger
	}
	return &Transformer{
		engine:       engine,
		cache:        cache,
		trigger:      trigger,
		moduleScoped: moduleScoped,
	}
}

// Pass returns the per-file visitor pass for filePath. A host pipeline
// drives it by calling Visit for every node of its own traversal; the
// built-in Walk is one such host (see Run).
func (t *Transformer) Pass(filePath string) *Pass {
	return &Pass{t: t, path: filePath}
}

// edit is one recorded source rewrite, resolved against the original
// file bytes when the pass is applied.
type edit struct {
	start, end int
	text       string
}

// Pass transforms the call sites of a single file. It records source
// edits for every rewritten literal so the original file bytes can be
// spliced without reformatting untouched code.
type Pass struct {
	t         *Transformer
	path      string
	edits     []edit
	issues    []TransformIssue
	callSites int
	cacheHits int
}

// Run walks a whole tree, visiting every node.
func (p *Pass) Run(root *ast.Node) {
	Walk(root, p.Visit)
}

// Visit is the declaration locator. A node qualifies only when it is a
// call whose callee identifier matches the tracked authoring function
// and whose first argument is an inline function; every other shape is
// silently skipped. On a match the callback body runs through the
// fingerprint/cache pipeline.
func (p *Pass) Visit(n *ast.Node) {
	if !n.IsCall() || !n.Callee.IsIdent() || n.Callee.Text != p.t.trigger {
		return
	}
	if len(n.Args) == 0 {
		return
	}
	fn := n.Args[0]
	if !fn.IsFunction() || fn.Body == nil {
		return
	}

	p.callSites++
	body := fn.Body
	fp := FingerprintOf(body)
	cached, hit := p.t.cache.Memoize(fp, func() *ast.Node {
		p.transformObject(body, "")
		return body
	})
	if hit {
		// Tokens for this fingerprint were pinned by its first
		// occurrence, file path and pseudo-group included. The freshly
		// parsed body is discarded and a private copy of the cached
		// result spliced in; the engine is not consulted again.
		p.cacheHits++
		fn.Body = cached
		p.record(body.Loc, cached.String())
	}
}

// transformObject rewrites every property of a style object literal,
// delegating each declared value to the style engine. group names the
// pseudo-group the properties belong to; empty at top level.
func (p *Pass) transformObject(obj *ast.Node, group string) {
	if !obj.IsObject() {
		return
	}
	for _, prop := range obj.Props {
		if prop.Kind != ast.Property || !prop.Key.IsIdent() || prop.Val == nil {
			continue
		}
		name := prop.Key.Text
		switch val := prop.Val; {
		case val.IsStringLit():
			p.transformLiteral(name, val, group)
		case val.IsObject():
			// The key of a nested object names a pseudo-group bucket
			// such as Hover. One level is the common case; deeper
			// nesting recurses the same way.
			p.transformObject(val, name)
		case val.IsTemplate():
			p.transformTemplate(name, val, group)
		}
	}
}

// transformLiteral rewrites one string literal value. An engine failure
// leaves the literal unmodified and is recorded; an empty token means
// the engine declined the property, which is not an error.
func (p *Pass) transformLiteral(property string, lit *ast.Node, group string) {
	token, err := callEngine(p.t.engine, property, quoteValue(lit.Value), p.t.moduleScoped, p.path, group)
	if err != nil {
		p.issue(property, lit.Loc, err.Error())
		return
	}
	if token == "" {
		return
	}
	lit.SetString(token)
	p.record(lit.Loc, strconv.Quote(token))
}

// transformTemplate rewrites a conditional template. With a ternary, the
// consequent and alternate transform independently and the condition is
// never modified; without one, the single static segment transforms
// directly.
func (p *Pass) transformTemplate(property string, tpl *ast.Node, group string) {
	if tpl.HasTernary() {
		p.transformLiteral(property, tpl.Cons, group)
		p.transformLiteral(property, tpl.Alt, group)
		return
	}
	token, err := callEngine(p.t.engine, property, quoteValue(tpl.Value), p.t.moduleScoped, p.path, group)
	if err != nil {
		p.issue(property, tpl.Loc, err.Error())
		return
	}
	if token == "" {
		return
	}
	tpl.Value = token
	p.record(tpl.Loc, "`"+token+"`")
}

// quoteValue renders a declared value the way the engine expects it:
// quoted, with interior double quotes converted to single quotes first.
func quoteValue(v string) string {
	return strconv.Quote(strings.ReplaceAll(v, `"`, `'`))
}

func (p *Pass) issue(property string, loc ast.Loc, text string) {
	p.issues = append(p.issues, TransformIssue{
		Property: property,
		Text:     text,
		Severity: SeverityWarning,
		Pos:      IssuePos{Filename: p.path, Line: loc.Line, Column: loc.Col},
	})
}

// record remembers a source rewrite. Nodes built without source spans
// (host-provided trees) record nothing; their mutation lives in the
// tree alone.
func (p *Pass) record(loc ast.Loc, text string) {
	if loc.End <= loc.Offset {
		return
	}
	p.edits = append(p.edits, edit{start: loc.Offset, end: loc.End, text: text})
}

// Edited reports whether the pass rewrote any source span.
func (p *Pass) Edited() bool { return len(p.edits) > 0 }

// Issues returns the property-level failures collected by the pass.
func (p *Pass) Issues() []TransformIssue { return p.issues }

// CallSites returns how many tracked call sites the pass located.
func (p *Pass) CallSites() int { return p.callSites }

// CacheHits returns how many call sites reused a cached transform.
func (p *Pass) CacheHits() int { return p.cacheHits }

// Apply splices the recorded rewrites into the original source bytes.
// Edits never overlap: a cache-hit splice covers a whole callback body,
// and per-literal edits only occur on the miss that produced the body.
func (p *Pass) Apply(src []byte) []byte {
	if len(p.edits) == 0 {
		return src
	}
	edits := make([]edit, len(p.edits))
	copy(edits, p.edits)
	sort.Slice(edits, func(i, j int) bool { return edits[i].start > edits[j].start })

	out := make([]byte, len(src))
	copy(out, src)
	for _, e := range edits {
		if e.start < 0 || e.end > len(out) {
			continue
		}
		rest := append([]byte(e.text), out[e.end:]...)
		out = append(out[:e.start], rest...)
	}
	return out
}
