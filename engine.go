package stylecraft

import "fmt"

// Engine is the style engine the transformer delegates to: it converts
// one declared style property into a generated utility-class token. The
// value arrives quoted (see quoteValue). An empty token with a nil error
// means the engine declined to recognize the property, which leaves the
// declaration untouched and is not an error.
//
// The engine behind this interface is opaque: it may cache, emit CSS
// rules, or do nothing at all. stylecraft ships a default implementation
// in internal/engine; tests substitute doubles.
type Engine interface {
	Transform(property, value string, moduleScoped bool, filePath, pseudoGroup string) (string, error)
}

// EngineFunc adapts a plain function to the Engine interface.
type EngineFunc func(property, value string, moduleScoped bool, filePath, pseudoGroup string) (string, error)

// Transform calls f.
func (f EngineFunc) Transform(property, value string, moduleScoped bool, filePath, pseudoGroup string) (string, error) {
	return f(property, value, moduleScoped, filePath, pseudoGroup)
}

// callEngine invokes the engine for one property, converting a panic
// into an error so a misbehaving engine cannot take sibling properties
// or other call sites down with it.
func callEngine(e Engine, property, value string, moduleScoped bool, filePath, pseudoGroup string) (token string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("style engine panicked on property %q: %v", property, r)
		}
	}()
	return e.Transform(property, value, moduleScoped, filePath, pseudoGroup)
}
