package engine

import "strings"

// aliases maps authoring shorthands to the CSS property they declare.
var aliases = map[string]string{
	"bgd":         "background",
	"bgdColor":    "background-color",
	"bgdImage":    "background-image",
	"bgdSize":     "background-size",
	"pdg":         "padding",
	"pdgTop":      "padding-top",
	"pdgRight":    "padding-right",
	"pdgBottom":   "padding-bottom",
	"pdgLeft":     "padding-left",
	"mgn":         "margin",
	"mgnTop":      "margin-top",
	"mgnRight":    "margin-right",
	"mgnBottom":   "margin-bottom",
	"mgnLeft":     "margin-left",
	"br":          "border-radius",
	"wd":          "width",
	"hgt":         "height",
	"dp":          "display",
	"pos":         "position",
	"txtAlign":    "text-align",
	"txtDecor":    "text-decoration",
	"fntSize":     "font-size",
	"fntWeight":   "font-weight",
	"fntFamily":   "font-family",
	"ltrSpacing":  "letter-spacing",
	"lnHeight":    "line-height",
	"flexDir":     "flex-direction",
	"justifyItms": "justify-items",
	"alignItms":   "align-items",
}

// known is the set of CSS properties the default engine recognizes in
// kebab form.
var known = map[string]bool{
	"align-content":    true,
	"align-items":      true,
	"align-self":       true,
	"animation":        true,
	"background":       true,
	"background-color": true,
	"background-image": true,
	"background-size":  true,
	"border":           true,
	"border-bottom":    true,
	"border-color":     true,
	"border-left":      true,
	"border-radius":    true,
	"border-right":     true,
	"border-top":       true,
	"bottom":           true,
	"box-shadow":       true,
	"box-sizing":       true,
	"color":            true,
	"cursor":           true,
	"display":          true,
	"flex":             true,
	"flex-direction":   true,
	"flex-grow":        true,
	"flex-shrink":      true,
	"flex-wrap":        true,
	"float":            true,
	"font-family":      true,
	"font-size":        true,
	"font-style":       true,
	"font-weight":      true,
	"gap":              true,
	"grid-area":        true,
	"grid-column":      true,
	"grid-row":         true,
	"height":           true,
	"justify-content":  true,
	"justify-items":    true,
	"justify-self":     true,
	"left":             true,
	"letter-spacing":   true,
	"line-height":      true,
	"margin":           true,
	"margin-bottom":    true,
	"margin-left":      true,
	"margin-right":     true,
	"margin-top":       true,
	"max-height":       true,
	"max-width":        true,
	"min-height":       true,
	"min-width":        true,
	"object-fit":       true,
	"opacity":          true,
	"outline":          true,
	"overflow":         true,
	"overflow-x":       true,
	"overflow-y":       true,
	"padding":          true,
	"padding-bottom":   true,
	"padding-left":     true,
	"padding-right":    true,
	"padding-top":      true,
	"position":         true,
	"right":            true,
	"text-align":       true,
	"text-decoration":  true,
	"text-overflow":    true,
	"text-transform":   true,
	"top":              true,
	"transform":        true,
	"transition":       true,
	"vertical-align":   true,
	"visibility":       true,
	"white-space":      true,
	"width":            true,
	"word-break":       true,
	"z-index":          true,
}

// ResolveProperty maps an authored property name (alias, camelCase or
// kebab) to the CSS property it declares. The second return is false
// for properties the engine does not recognize.
func ResolveProperty(property string) (string, bool) {
	if css, ok := aliases[property]; ok {
		return css, true
	}
	css := kebab(property)
	if known[css] {
		return css, true
	}
	return "", false
}

// kebab converts camelCase to kebab-case; kebab input passes through.
func kebab(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	for _, r := range s {
		if r >= 'A' && r <= 'Z' {
			b.WriteByte('-')
			b.WriteRune(r | 0x20)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
