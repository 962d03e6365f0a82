package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
)

// RegisterUtilityTools installs the general-purpose utility tools onto the
// catalog.
func RegisterUtilityTools(catalog *Catalog) {
	catalog.Register(mcp.NewTool(
		"get_current_time",
		mcp.WithDescription("Get the current UTC date and time"),
	), func(ctx context.Context, args map[string]any) (string, error) {
		return time.Now().UTC().Format(time.RFC3339), nil
	})

	catalog.Register(mcp.NewTool(
		"echo",
		mcp.WithDescription("Echo back the provided text"),
		mcp.WithString("text", mcp.Description("Text to echo"), mcp.Required()),
	), func(ctx context.Context, args map[string]any) (string, error) {
		text, _ := args["text"].(string)
		return text, nil
	})

	catalog.Register(mcp.NewTool(
		"word_count",
		mcp.WithDescription("Count the words in a piece of text"),
		mcp.WithString("text", mcp.Description("Text to analyze"), mcp.Required()),
	), func(ctx context.Context, args map[string]any) (string, error) {
		text, _ := args["text"].(string)
		return fmt.Sprintf("%d words", len(strings.Fields(text))), nil
	})
}

// RegisterBuiltinTools installs every tool that ships with the platform.
func RegisterBuiltinTools(catalog *Catalog) {
	RegisterCalculatorTools(catalog)
	RegisterWeatherTools(catalog)
	RegisterUtilityTools(catalog)
}
