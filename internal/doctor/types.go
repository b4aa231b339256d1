package doctor

// Category groups checks in the report.
type Category string

const (
	CategoryToolchain Category = "toolchain"
	CategoryConfig    Category = "config"
	CategoryWorkspace Category = "workspace"
	CategoryCache     Category = "cache"
)

// categories lists categories in report order with their headings.
var categories = []struct {
	category Category
	title    string
}{
	{CategoryToolchain, "Toolchain"},
	{CategoryConfig, "Configuration"},
	{CategoryWorkspace, "Workspace"},
	{CategoryCache, "Cache"},
}

// Status is the outcome of a check.
type Status int

const (
	StatusOK Status = iota
	StatusWarn
	StatusFail
)

// Symbol returns the marker printed in front of a check.
func (s Status) Symbol() string {
	switch s {
	case StatusOK:
		return "✓"
	case StatusWarn:
		return "⚠"
	default:
		return "✗"
	}
}

// Check is the result of one diagnostic.
type Check struct {
	Category Category
	Name     string
	Status   Status
	Detail   string // human-readable result
	Fixable  bool   // --fix can repair it
}
