package catalog

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_RegisterAndResolve(t *testing.T) {
	cat := NewCatalog()

	cat.Register(mcp.NewTool(
		"greet",
		mcp.WithDescription("Say hello"),
		mcp.WithString("name", mcp.Required()),
	), func(ctx context.Context, args map[string]any) (string, error) {
		name, _ := args["name"].(string)
		return "hello " + name, nil
	})

	entry, ok := cat.Resolve("greet")
	require.True(t, ok)
	assert.Equal(t, "greet", entry.Tool.Name)

	result, err := entry.Handler(context.Background(), map[string]any{"name": "world"})
	require.NoError(t, err)
	assert.Equal(t, "hello world", result)
}

func TestCatalog_ResolveUnknown(t *testing.T) {
	cat := NewCatalog()

	_, ok := cat.Resolve("nonexistent")
	assert.False(t, ok)
}

func TestCatalog_RegisterReplaces(t *testing.T) {
	cat := NewCatalog()

	handler := func(result string) Handler {
		return func(ctx context.Context, args map[string]any) (string, error) {
			return result, nil
		}
	}

	cat.Register(mcp.NewTool("t"), handler("first"))
	cat.Register(mcp.NewTool("t"), handler("second"))

	entry, ok := cat.Resolve("t")
	require.True(t, ok)

	result, err := entry.Handler(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "second", result)
}

func TestCatalog_Names(t *testing.T) {
	cat := NewCatalog()
	RegisterBuiltinTools(cat)

	names := cat.Names()
	assert.Contains(t, names, "add")
	assert.Contains(t, names, "get_weather")
	assert.Contains(t, names, "echo")
	assert.Contains(t, names, "convert_units")
	assert.Contains(t, names, "word_count")
}
