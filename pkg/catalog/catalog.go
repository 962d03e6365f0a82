package catalog

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"
)

// Handler executes a tool call with the decoded arguments and returns the
// textual result. JSON numbers arrive as float64.
type Handler func(ctx context.Context, args map[string]any) (string, error)

/*
Entry pairs a tool definition with its implementation. The mcp.Tool carries
the declared parameter schema, which is what agent cards project into
skill parameters.
*/
type Entry struct {
	Tool    mcp.Tool
	Handler Handler
}

/*
Catalog is the static registry of callable tools. Agent definitions
reference tools by name only; resolution happens here at deployment time.
Safe for concurrent use.
*/
type Catalog struct {
	tools *sync.Map
}

func NewCatalog() *Catalog {
	return &Catalog{
		tools: new(sync.Map),
	}
}

// Register adds a tool under its declared name, replacing any previous
// registration.
func (catalog *Catalog) Register(tool mcp.Tool, handler Handler) {
	log.Debug("registering tool", "name", tool.Name)
	catalog.tools.Store(tool.Name, Entry{Tool: tool, Handler: handler})
}

// Resolve looks up a tool by name.
func (catalog *Catalog) Resolve(name string) (Entry, bool) {
	entry, ok := catalog.tools.Load(name)

	if !ok {
		return Entry{}, false
	}

	return entry.(Entry), true
}

// Names returns the names of every registered tool.
func (catalog *Catalog) Names() []string {
	names := make([]string, 0)

	catalog.tools.Range(func(key, value any) bool {
		names = append(names, key.(string))
		return true
	})

	return names
}
