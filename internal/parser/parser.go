// Package parser reads JavaScript-family source text into ast trees.
//
// The parser interprets only the shapes the style transformer acts on:
// call expressions, inline ordinary/arrow functions whose result is an
// object literal, identifier-keyed object properties, string literals,
// and template literals carrying at most one ternary. Everything else
// is preserved as verbatim Raw fragments with exact source spans, so a
// transformation pass can splice rewrites into the original bytes
// without reformatting untouched code.
package parser

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/js"

	"github.com/stylecraft/stylecraft/internal/ast"
)

// token is one lexed token with its source position.
type token struct {
	tt   js.TokenType
	text string
	off  int
	line int
	col  int
}

func (t token) end() int { return t.off + len(t.text) }

// Parse reads src into a Fragment tree rooted at the file level.
func Parse(src string) (*ast.Node, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks, src: src}
	return p.parseFragment(0, len(toks)), nil
}

// lex materializes the whole token stream with source positions.
func lex(src string) ([]token, error) {
	lexer := js.NewLexer(parse.NewInputString(src))
	var toks []token
	off, line, col := 0, 1, 1
	for {
		tt, text := lexer.Next()
		if tt == js.ErrorToken {
			if lexer.Err() == io.EOF {
				return toks, nil
			}
			return nil, fmt.Errorf("lex at offset %d: %w", off, lexer.Err())
		}
		s := string(text)
		toks = append(toks, token{tt: tt, text: s, off: off, line: line, col: col})
		off += len(s)
		for _, r := range s {
			if r == '\n' {
				line++
				col = 1
			} else {
				col++
			}
		}
	}
}

type parser struct {
	toks []token
	src  string
}

func isTrivia(tt js.TokenType) bool {
	switch tt {
	case js.WhitespaceToken, js.LineTerminatorToken, js.CommentToken, js.CommentLineTerminatorToken:
		return true
	}
	return false
}

func (p *parser) skipTrivia(i, end int) int {
	for i < end && isTrivia(p.toks[i].tt) {
		i++
	}
	return i
}

func (p *parser) span(start, end int) ast.Loc {
	first := p.toks[start]
	return ast.Loc{
		Offset: first.off,
		End:    p.toks[end-1].end(),
		Line:   first.line,
		Col:    first.col,
	}
}

func (p *parser) rawNode(start, end int) *ast.Node {
	n := ast.NewRaw(p.src[p.toks[start].off:p.toks[end-1].end()])
	n.Loc = p.span(start, end)
	return n
}

func (p *parser) stringNode(i int) *ast.Node {
	tok := p.toks[i]
	n := &ast.Node{Kind: ast.String, Value: unquote(tok.text), RawForm: tok.text}
	n.Loc = p.span(i, i+1)
	return n
}

// parseFragment scans the token range for call expressions and keeps
// everything between them as verbatim Raw runs. Ranges the parser could
// not interpret elsewhere are rescanned here, so call sites nested in
// uninterpreted arguments are still located.
func (p *parser) parseFragment(start, end int) *ast.Node {
	frag := &ast.Node{Kind: ast.Fragment}
	if start < end {
		frag.Loc = p.span(start, end)
	}
	runStart := start
	i := start
	for i < end {
		if p.toks[i].tt == js.IdentifierToken && !p.precededByDot(i) {
			if call, next, ok := p.parseCall(i, end); ok {
				p.flushRaw(frag, runStart, i)
				frag.Nodes = append(frag.Nodes, call)
				i = next
				runStart = next
				continue
			}
		}
		i++
	}
	p.flushRaw(frag, runStart, end)
	return frag
}

// precededByDot reports whether the identifier is a member access; a
// tracked callee must be a plain identifier.
func (p *parser) precededByDot(i int) bool {
	for j := i - 1; j >= 0; j-- {
		if isTrivia(p.toks[j].tt) {
			continue
		}
		return p.toks[j].tt == js.DotToken
	}
	return false
}

func (p *parser) flushRaw(frag *ast.Node, from, to int) {
	if from >= to {
		return
	}
	frag.Nodes = append(frag.Nodes, p.rawNode(from, to))
}

// parseCall interprets "ident(arg, ...)" starting at the callee token.
func (p *parser) parseCall(i, end int) (*ast.Node, int, bool) {
	callee := p.toks[i]
	j := p.skipTrivia(i+1, end)
	if j >= end || p.toks[j].tt != js.OpenParenToken {
		return nil, 0, false
	}
	args, next, ok := p.parseArgs(j+1, end)
	if !ok {
		return nil, 0, false
	}
	calleeNode := ast.NewIdent(callee.text)
	calleeNode.Loc = p.span(i, i+1)
	node := &ast.Node{Kind: ast.Call, Callee: calleeNode, Args: args}
	node.Loc = ast.Loc{Offset: callee.off, End: p.toks[next-1].end(), Line: callee.line, Col: callee.col}
	return node, next, true
}

// parseArgs consumes arguments up to and including the closing paren.
func (p *parser) parseArgs(i, end int) ([]*ast.Node, int, bool) {
	var args []*ast.Node
	i = p.skipTrivia(i, end)
	if i < end && p.toks[i].tt == js.CloseParenToken {
		return args, i + 1, true
	}
	for i < end {
		arg, next, ok := p.parseArg(i, end)
		if !ok {
			return nil, 0, false
		}
		args = append(args, arg)
		i = p.skipTrivia(next, end)
		if i >= end {
			break
		}
		switch p.toks[i].tt {
		case js.CommaToken:
			i = p.skipTrivia(i+1, end)
			if i < end && p.toks[i].tt == js.CloseParenToken {
				return args, i + 1, true
			}
		case js.CloseParenToken:
			return args, i + 1, true
		default:
			return nil, 0, false
		}
	}
	return nil, 0, false
}

// parseArg interprets one argument, falling back to an uninterpreted
// run up to the argument delimiter.
func (p *parser) parseArg(i, end int) (*ast.Node, int, bool) {
	i = p.skipTrivia(i, end)
	if n, next, ok := p.parseValue(i, end); ok {
		j := p.skipTrivia(next, end)
		if j < end && (p.toks[j].tt == js.CommaToken || p.toks[j].tt == js.CloseParenToken) {
			return n, next, true
		}
	}
	stop, ok := p.findArgEnd(i, end)
	if !ok || stop == i {
		return nil, 0, false
	}
	return p.parseFragment(i, stop), stop, true
}

// findArgEnd locates the comma or closing paren delimiting an argument,
// honoring bracket nesting.
func (p *parser) findArgEnd(i, end int) (int, bool) {
	depth := 0
	for j := i; j < end; j++ {
		switch p.toks[j].tt {
		case js.OpenParenToken, js.OpenBraceToken, js.OpenBracketToken:
			depth++
		case js.CloseBraceToken, js.CloseBracketToken:
			depth--
			if depth < 0 {
				return 0, false
			}
		case js.CloseParenToken:
			if depth == 0 {
				return j, true
			}
			depth--
		case js.CommaToken:
			if depth == 0 {
				return j, true
			}
		}
	}
	return 0, false
}

// parseValue interprets a single value of one of the shapes the
// transformer understands.
func (p *parser) parseValue(i, end int) (*ast.Node, int, bool) {
	if i >= end {
		return nil, 0, false
	}
	switch tt := p.toks[i].tt; tt {
	case js.FunctionToken:
		return p.parseOrdinaryFunction(i, end)
	case js.StringToken:
		return p.stringNode(i), i + 1, true
	case js.TemplateToken, js.TemplateStartToken:
		return p.parseTemplate(i, end)
	case js.OpenBraceToken:
		return p.parseObject(i, end)
	case js.OpenParenToken:
		return p.parseArrowFunction(i, end)
	case js.IdentifierToken:
		if fn, next, ok := p.parseArrowFunction(i, end); ok {
			return fn, next, true
		}
		return p.parseCall(i, end)
	}
	return nil, 0, false
}

// parseArrowFunction interprets "(params) => body" or "param => body"
// where body is a parenthesized object literal or a block consisting of
// a single return of an object literal.
func (p *parser) parseArrowFunction(i, end int) (*ast.Node, int, bool) {
	start := i
	var params string
	var j int
	switch p.toks[i].tt {
	case js.OpenParenToken:
		closing, ok := p.matchParen(i, end)
		if !ok {
			return nil, 0, false
		}
		params = p.src[p.toks[i].off:p.toks[closing].end()]
		j = closing + 1
	case js.IdentifierToken:
		params = p.toks[i].text
		j = i + 1
	default:
		return nil, 0, false
	}
	j = p.skipTrivia(j, end)
	if j >= end || p.toks[j].tt != js.ArrowToken {
		return nil, 0, false
	}
	j = p.skipTrivia(j+1, end)
	body, next, ok := p.parseFunctionBody(j, end)
	if !ok {
		return nil, 0, false
	}
	fn := &ast.Node{Kind: ast.Function, Arrow: true, Params: params, Body: body}
	fn.Loc = ast.Loc{Offset: p.toks[start].off, End: p.toks[next-1].end(), Line: p.toks[start].line, Col: p.toks[start].col}
	return fn, next, true
}

// parseOrdinaryFunction interprets an inline "function [name](params)
// { return {...}; }" expression.
func (p *parser) parseOrdinaryFunction(i, end int) (*ast.Node, int, bool) {
	start := i
	j := p.skipTrivia(i+1, end)
	if j < end && p.toks[j].tt == js.IdentifierToken {
		j = p.skipTrivia(j+1, end)
	}
	if j >= end || p.toks[j].tt != js.OpenParenToken {
		return nil, 0, false
	}
	closing, ok := p.matchParen(j, end)
	if !ok {
		return nil, 0, false
	}
	params := p.src[p.toks[j].off:p.toks[closing].end()]
	j = p.skipTrivia(closing+1, end)
	if j >= end || p.toks[j].tt != js.OpenBraceToken {
		return nil, 0, false
	}
	body, next, ok := p.parseReturnBlock(j, end)
	if !ok {
		return nil, 0, false
	}
	fn := &ast.Node{Kind: ast.Function, Params: params, Body: body}
	fn.Loc = ast.Loc{Offset: p.toks[start].off, End: p.toks[next-1].end(), Line: p.toks[start].line, Col: p.toks[start].col}
	return fn, next, true
}

// parseFunctionBody interprets an arrow body: "({...})" or a return
// block.
func (p *parser) parseFunctionBody(i, end int) (*ast.Node, int, bool) {
	if i >= end {
		return nil, 0, false
	}
	if p.toks[i].tt == js.OpenParenToken {
		j := p.skipTrivia(i+1, end)
		obj, next, ok := p.parseObject(j, end)
		if !ok {
			return nil, 0, false
		}
		next = p.skipTrivia(next, end)
		if next >= end || p.toks[next].tt != js.CloseParenToken {
			return nil, 0, false
		}
		return obj, next + 1, true
	}
	if p.toks[i].tt == js.OpenBraceToken {
		return p.parseReturnBlock(i, end)
	}
	return nil, 0, false
}

// parseReturnBlock interprets "{ return {...}; }".
func (p *parser) parseReturnBlock(i, end int) (*ast.Node, int, bool) {
	j := p.skipTrivia(i+1, end)
	if j >= end || p.toks[j].tt != js.ReturnToken {
		return nil, 0, false
	}
	j = p.skipTrivia(j+1, end)
	obj, next, ok := p.parseObject(j, end)
	if !ok {
		return nil, 0, false
	}
	next = p.skipTrivia(next, end)
	if next < end && p.toks[next].tt == js.SemicolonToken {
		next = p.skipTrivia(next+1, end)
	}
	if next >= end || p.toks[next].tt != js.CloseBraceToken {
		return nil, 0, false
	}
	return obj, next + 1, true
}

// matchParen returns the index of the paren closing the one at i.
func (p *parser) matchParen(i, end int) (int, bool) {
	depth := 0
	for j := i; j < end; j++ {
		switch p.toks[j].tt {
		case js.OpenParenToken:
			depth++
		case js.CloseParenToken:
			depth--
			if depth == 0 {
				return j, true
			}
		}
	}
	return 0, false
}

// parseObject interprets an identifier-keyed object literal. Property
// values outside the transformer's shapes stay verbatim Raw nodes.
func (p *parser) parseObject(i, end int) (*ast.Node, int, bool) {
	if i >= end || p.toks[i].tt != js.OpenBraceToken {
		return nil, 0, false
	}
	obj := &ast.Node{Kind: ast.Object}
	start := i
	j := p.skipTrivia(i+1, end)
	for j < end {
		if p.toks[j].tt == js.CloseBraceToken {
			obj.Loc = p.span(start, j+1)
			return obj, j + 1, true
		}
		if p.toks[j].tt != js.IdentifierToken {
			return nil, 0, false
		}
		keyTok := p.toks[j]
		keyIdx := j
		k := p.skipTrivia(j+1, end)
		if k >= end || p.toks[k].tt != js.ColonToken {
			return nil, 0, false
		}
		k = p.skipTrivia(k+1, end)
		val, next, ok := p.parsePropertyValue(k, end)
		if !ok {
			return nil, 0, false
		}
		key := ast.NewIdent(keyTok.text)
		key.Loc = p.span(keyIdx, keyIdx+1)
		prop := &ast.Node{Kind: ast.Property, Key: key, Val: val}
		prop.Loc = ast.Loc{Offset: keyTok.off, End: p.toks[next-1].end(), Line: keyTok.line, Col: keyTok.col}
		obj.Props = append(obj.Props, prop)

		j = p.skipTrivia(next, end)
		if j < end && p.toks[j].tt == js.CommaToken {
			j = p.skipTrivia(j+1, end)
		}
	}
	return nil, 0, false
}

// parsePropertyValue interprets a property value, falling back to a
// verbatim run up to the property delimiter.
func (p *parser) parsePropertyValue(i, end int) (*ast.Node, int, bool) {
	if n, next, ok := p.parseValue(i, end); ok {
		j := p.skipTrivia(next, end)
		if j < end && (p.toks[j].tt == js.CommaToken || p.toks[j].tt == js.CloseBraceToken) {
			return n, next, true
		}
	}
	stop, ok := p.findPropertyEnd(i, end)
	if !ok || stop == i {
		return nil, 0, false
	}
	return p.rawNode(i, stop), stop, true
}

// findPropertyEnd locates the comma or closing brace delimiting a
// property value, honoring bracket nesting.
func (p *parser) findPropertyEnd(i, end int) (int, bool) {
	depth := 0
	for j := i; j < end; j++ {
		switch p.toks[j].tt {
		case js.OpenParenToken, js.OpenBraceToken, js.OpenBracketToken:
			depth++
		case js.CloseParenToken, js.CloseBracketToken:
			depth--
			if depth < 0 {
				return 0, false
			}
		case js.CloseBraceToken:
			if depth == 0 {
				return j, true
			}
			depth--
		case js.CommaToken:
			if depth == 0 {
				return j, true
			}
		}
	}
	return 0, false
}

// parseTemplate interprets a template literal: a single static segment,
// or exactly one substitution holding a ternary whose consequent and
// alternate are string literals. Any other template shape stays
// uninterpreted.
func (p *parser) parseTemplate(i, end int) (*ast.Node, int, bool) {
	tok := p.toks[i]
	if tok.tt == js.TemplateToken {
		inner := strings.TrimSuffix(strings.TrimPrefix(tok.text, "`"), "`")
		n := &ast.Node{Kind: ast.Template, Value: inner}
		n.Loc = p.span(i, i+1)
		return n, i + 1, true
	}
	if tok.tt != js.TemplateStartToken {
		return nil, 0, false
	}
	// No static text may precede the substitution.
	if strings.TrimSuffix(strings.TrimPrefix(tok.text, "`"), "${") != "" {
		return nil, 0, false
	}

	depth := 0
	qIdx, endIdx := -1, -1
	for j := i + 1; j < end; j++ {
		tt := p.toks[j].tt
		if tt == js.TemplateToken || tt == js.TemplateStartToken || tt == js.TemplateMiddleToken {
			return nil, 0, false
		}
		if tt == js.TemplateEndToken {
			endIdx = j
			break
		}
		switch tt {
		case js.OpenParenToken, js.OpenBraceToken, js.OpenBracketToken:
			depth++
		case js.CloseParenToken, js.CloseBraceToken, js.CloseBracketToken:
			depth--
			if depth < 0 {
				return nil, 0, false
			}
		case js.QuestionToken:
			if depth == 0 {
				if qIdx >= 0 {
					return nil, 0, false
				}
				qIdx = j
			}
		}
	}
	if endIdx < 0 || qIdx < 0 {
		return nil, 0, false
	}
	// No static text may follow the substitution either.
	if strings.TrimSuffix(strings.TrimPrefix(p.toks[endIdx].text, "}"), "`") != "" {
		return nil, 0, false
	}

	condFirst := p.skipTrivia(i+1, qIdx)
	condLast := qIdx - 1
	for condLast > condFirst && isTrivia(p.toks[condLast].tt) {
		condLast--
	}
	if condFirst > condLast {
		return nil, 0, false
	}

	consIdx := p.skipTrivia(qIdx+1, endIdx)
	if consIdx >= endIdx || p.toks[consIdx].tt != js.StringToken {
		return nil, 0, false
	}
	colonIdx := p.skipTrivia(consIdx+1, endIdx)
	if colonIdx >= endIdx || p.toks[colonIdx].tt != js.ColonToken {
		return nil, 0, false
	}
	altIdx := p.skipTrivia(colonIdx+1, endIdx)
	if altIdx >= endIdx || p.toks[altIdx].tt != js.StringToken {
		return nil, 0, false
	}
	if p.skipTrivia(altIdx+1, endIdx) != endIdx {
		return nil, 0, false
	}

	n := &ast.Node{
		Kind: ast.Template,
		Cond: p.rawNode(condFirst, condLast+1),
		Cons: p.stringNode(consIdx),
		Alt:  p.stringNode(altIdx),
	}
	n.Loc = ast.Loc{Offset: tok.off, End: p.toks[endIdx].end(), Line: tok.line, Col: tok.col}
	return n, endIdx + 1, true
}

// unquote cooks a quoted JS string literal.
func unquote(raw string) string {
	if len(raw) < 2 {
		return raw
	}
	inner := raw[1 : len(raw)-1]
	if !strings.ContainsRune(inner, '\\') {
		return inner
	}
	var b strings.Builder
	b.Grow(len(inner))
	for i := 0; i < len(inner); i++ {
		c := inner[i]
		if c != '\\' || i+1 >= len(inner) {
			b.WriteByte(c)
			continue
		}
		i++
		switch inner[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'x':
			if r, ok := hexRune(inner, i+1, 2); ok {
				b.WriteRune(r)
				i += 2
				continue
			}
			b.WriteByte('x')
		case 'u':
			if r, width, ok := unicodeEscape(inner, i); ok {
				b.WriteRune(r)
				i += width
				continue
			}
			b.WriteByte('u')
		default:
			b.WriteByte(inner[i])
		}
	}
	return b.String()
}

// unicodeEscape decodes the escape following the 'u' at inner[i]:
// "\uXXXX", "\u{X...}", or a surrogate pair written as two "\uXXXX"
// escapes. width is the number of bytes consumed past the 'u'.
func unicodeEscape(inner string, i int) (r rune, width int, ok bool) {
	if i+1 < len(inner) && inner[i+1] == '{' {
		closing := strings.IndexByte(inner[i+2:], '}')
		if closing < 0 {
			return 0, 0, false
		}
		v, err := strconv.ParseUint(inner[i+2:i+2+closing], 16, 32)
		if err != nil || v > uint64(unicode.MaxRune) {
			return 0, 0, false
		}
		return rune(v), closing + 2, true
	}
	hi, ok := hexRune(inner, i+1, 4)
	if !ok {
		return 0, 0, false
	}
	if !utf16.IsSurrogate(hi) {
		return hi, 4, true
	}
	if i+6 < len(inner) && inner[i+5] == '\\' && inner[i+6] == 'u' {
		if lo, ok := hexRune(inner, i+7, 4); ok {
			if paired := utf16.DecodeRune(hi, lo); paired != unicode.ReplacementChar {
				return paired, 10, true
			}
		}
	}
	return 0, 0, false
}

func hexRune(s string, i, n int) (rune, bool) {
	if i+n > len(s) {
		return 0, false
	}
	v, err := strconv.ParseUint(s[i:i+n], 16, 32)
	if err != nil {
		return 0, false
	}
	return rune(v), true
}
