package registry

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/GeoPark-hackers/a2a-agent-selfservice/pkg/catalog"
	"github.com/GeoPark-hackers/a2a-agent-selfservice/pkg/runtime"
)

/*
AgentInstance is the materialized, runnable form of an agent: the
definition with its tool names resolved to catalog entries and its
sub-agents wired by reference. Instances are cached by the registry and
rebuilt from the definition on demand; they are never persisted.
*/
type AgentInstance struct {
	Definition AgentDefinition
	Tools      []catalog.Entry
	SubAgents  []*AgentInstance

	engine runtime.Engine
}

// Spec projects the instance into what the engine needs for a turn.
func (inst *AgentInstance) Spec() runtime.AgentSpec {
	return runtime.AgentSpec{
		Name:         inst.Definition.Name,
		Model:        inst.Definition.ModelOrDefault(),
		SystemPrompt: inst.Definition.SystemPrompt,
		Tools:        inst.Tools,
	}
}

// Run drives one conversation turn against the engine.
func (inst *AgentInstance) Run(
	ctx context.Context, session *runtime.Session, text string,
) ([]runtime.Event, error) {
	return inst.engine.Run(ctx, inst.Spec(), session, text)
}

/*
Factory turns agent definitions into runnable instances. The engine
binding is selected once at factory construction from the configured
provider, never per agent.
*/
type Factory struct {
	catalog *catalog.Catalog
	engine  runtime.Engine
}

// NewFactory constructs a factory around an already-built engine.
func NewFactory(cat *catalog.Catalog, engine runtime.Engine) *Factory {
	return &Factory{catalog: cat, engine: engine}
}

/*
CreateInstance builds a runnable instance from a definition and the
already-resolved sub-agent instances. Tool names with no catalog
registration are dropped with a warning; a partial tool set is acceptable.
*/
func (factory *Factory) CreateInstance(
	def AgentDefinition, subAgents []*AgentInstance,
) (*AgentInstance, error) {
	tools := make([]catalog.Entry, 0, len(def.Tools))

	for _, toolDef := range def.Tools {
		entry, ok := factory.catalog.Resolve(toolDef.Name)

		if !ok {
			log.Warn("tool not in catalog, skipping", "agent", def.Name, "tool", toolDef.Name)
			continue
		}

		tools = append(tools, entry)
	}

	return &AgentInstance{
		Definition: def,
		Tools:      tools,
		SubAgents:  subAgents,
		engine:     factory.engine,
	}, nil
}
