// Package stylecraft rewrites inline style declarations into generated
// utility-class tokens.
//
// stylecraft locates calls to a style-authoring function (by default
// craftingStyles) in JavaScript-family sources, extracts the inline
// style object passed to its callback, asks a style engine for a
// utility-class token per declared property, and splices the tokens
// back into the source. Syntactically identical declarations anywhere in
// a codebase are transformed exactly once per process: a content hash of
// the callback body keys a transform cache, and later occurrences reuse
// a deep copy of the first result.
//
// # One-shot build
//
//	config := stylecraft.Config{
//		SourceDir: "src",
//		OutputDir: "dist",
//		Exclude:   []string{"tests", "node_modules"},
//	}
//	result, err := stylecraft.Build(config, engine.NewGenerator())
//
// # Watch session
//
//	session := stylecraft.NewSession(config, engine.NewGenerator())
//	err := session.Watch(ctx)
//
// # Embedding in a host pipeline
//
// The transformer also works as a visitor registered into an external
// AST pipeline: obtain a per-file pass with Transformer.Pass and invoke
// its Visit method for each node of the host's own traversal.
//
// # CLI Tool
//
// stylecraft also provides a CLI tool. Install with:
//
//	go install github.com/stylecraft/stylecraft/cmd/stylecraft@latest
package stylecraft
