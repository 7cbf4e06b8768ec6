package stylecraft

// Config controls a stylecraft run.
type Config struct {
	SourceDir    string   // root the include patterns are resolved under
	OutputDir    string   // where transformed sources are written; mirrors SourceDir
	Includes     []string // glob patterns selecting candidate files
	Exclude      []string // exclusion entries, see ExclusionFilter
	Trigger      string   // tracked authoring function, default "craftingStyles"
	ModuleScoped bool     // scope generated tokens to their module
	Extensions   []string // file extensions the watch session reacts to
	WriteInPlace bool     // rewrite sources in place instead of OutputDir
	Verbose      bool
}

// Default include patterns and watched extensions for JavaScript-family
// sources.
var (
	DefaultIncludes   = []string{"**/*.js", "**/*.jsx", "**/*.ts", "**/*.tsx"}
	DefaultExtensions = []string{".js", ".jsx", ".ts", ".tsx"}
)

// withDefaults fills the zero-value slots callers left open.
func (c Config) withDefaults() Config {
	if c.Trigger == "" {
		c.Trigger = DefaultTrigger
	}
	if len(c.Includes) == 0 {
		c.Includes = DefaultIncludes
	}
	if len(c.Extensions) == 0 {
		c.Extensions = DefaultExtensions
	}
	if c.OutputDir == "" && !c.WriteInPlace {
		c.OutputDir = "dist"
	}
	return c
}
