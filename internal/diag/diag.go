package diag

import (
	"fmt"
	"go/token"
	"sync"
)

// Severity ranks a diagnostic.
type Severity uint8

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "info"
	}
}

// Descriptor identifies a kind of diagnostic. Message is a fmt format.
type Descriptor struct {
	ID       string
	Title    string
	Message  string
	Severity Severity
}

var (
	BuildMethodOverridden = Descriptor{
		ID:       "BGN001",
		Title:    "Build method overridden",
		Message:  "builder %s declares its own Build method; the generated Build is omitted",
		Severity: SeverityInfo,
	}
	DefaultConstructorOverridden = Descriptor{
		ID:       "BGN002",
		Title:    "Default constructor overridden",
		Message:  "builder %s declares its own %s function; the generated constructor is omitted",
		Severity: SeverityInfo,
	}
	BuildingMethodConflict = Descriptor{
		ID:       "BGN003",
		Title:    "Building method signature differs",
		Message:  "builder %s declares %s with a signature other than (%s); the generated setter is omitted",
		Severity: SeverityWarning,
	}
	StateNotEmbedded = Descriptor{
		ID:       "BGN004",
		Title:    "Generated state not embedded",
		Message:  "builder %s does not embed %s; generated methods will not compile",
		Severity: SeverityWarning,
	}
	ConstructorTakesParameters = Descriptor{
		ID:       "BGN006",
		Title:    "Builder constructor takes parameters",
		Message:  "builder %s declares %s with %d parameter(s); the generated constructor is omitted and default mocks are installed inline",
		Severity: SeverityWarning,
	}
	InvalidConfiguration = Descriptor{
		ID:       "BGN005",
		Title:    "Invalid builder configuration",
		Message:  "builder %s was not generated: %v",
		Severity: SeverityError,
	}
)

// Diagnostic is one reported occurrence of a Descriptor.
type Diagnostic struct {
	Descriptor
	Pos  token.Position
	Args []any
}

func New(d Descriptor, pos token.Position, args ...any) Diagnostic {
	return Diagnostic{Descriptor: d, Pos: pos, Args: args}
}

// Text is the formatted message without location.
func (d Diagnostic) Text() string {
	return fmt.Sprintf(d.Message, d.Args...)
}

func (d Diagnostic) String() string {
	if d.Pos.IsValid() {
		return fmt.Sprintf("%s: %s %s: %s", d.Pos, d.ID, d.Severity, d.Text())
	}
	return fmt.Sprintf("%s %s: %s", d.ID, d.Severity, d.Text())
}

// Reporter receives diagnostics. Implementations must not fail.
type Reporter interface {
	Report(d Diagnostic)
}

// Collector is a Reporter that keeps everything it is given.
type Collector struct {
	mu    sync.Mutex
	diags []Diagnostic
}

func (c *Collector) Report(d Diagnostic) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.diags = append(c.diags, d)
}

// Diagnostics returns a copy of everything reported so far.
func (c *Collector) Diagnostics() []Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Diagnostic(nil), c.diags...)
}

// Has reports whether a diagnostic with the given ID was collected.
func (c *Collector) Has(id string) bool {
	for _, d := range c.Diagnostics() {
		if d.ID == id {
			return true
		}
	}
	return false
}
