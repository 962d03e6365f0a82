package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// RegisterCalculatorTools installs the arithmetic tools onto the catalog.
func RegisterCalculatorTools(catalog *Catalog) {
	catalog.Register(mcp.NewTool(
		"add",
		mcp.WithDescription("Add two numbers"),
		mcp.WithNumber("a", mcp.Description("First number"), mcp.Required()),
		mcp.WithNumber("b", mcp.Description("Second number"), mcp.Required()),
	), func(ctx context.Context, args map[string]any) (string, error) {
		a, b, err := twoNumbers(args)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%v + %v = %v", a, b, a+b), nil
	})

	catalog.Register(mcp.NewTool(
		"subtract",
		mcp.WithDescription("Subtract two numbers"),
		mcp.WithNumber("a", mcp.Description("First number"), mcp.Required()),
		mcp.WithNumber("b", mcp.Description("Second number"), mcp.Required()),
	), func(ctx context.Context, args map[string]any) (string, error) {
		a, b, err := twoNumbers(args)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%v - %v = %v", a, b, a-b), nil
	})

	catalog.Register(mcp.NewTool(
		"multiply",
		mcp.WithDescription("Multiply two numbers"),
		mcp.WithNumber("a", mcp.Description("First number"), mcp.Required()),
		mcp.WithNumber("b", mcp.Description("Second number"), mcp.Required()),
	), func(ctx context.Context, args map[string]any) (string, error) {
		a, b, err := twoNumbers(args)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%v × %v = %v", a, b, a*b), nil
	})

	catalog.Register(mcp.NewTool(
		"divide",
		mcp.WithDescription("Divide two numbers"),
		mcp.WithNumber("a", mcp.Description("Dividend"), mcp.Required()),
		mcp.WithNumber("b", mcp.Description("Divisor"), mcp.Required()),
	), func(ctx context.Context, args map[string]any) (string, error) {
		a, b, err := twoNumbers(args)
		if err != nil {
			return "", err
		}
		if b == 0 {
			return "Error: Cannot divide by zero", nil
		}
		return fmt.Sprintf("%v ÷ %v = %v", a, b, a/b), nil
	})

	catalog.Register(mcp.NewTool(
		"convert_units",
		mcp.WithDescription("Convert between common units"),
		mcp.WithNumber("value", mcp.Description("The value to convert"), mcp.Required()),
		mcp.WithString("from_unit", mcp.Description("Source unit (km, miles, celsius, fahrenheit, kg, lbs, meters, feet)"), mcp.Required()),
		mcp.WithString("to_unit", mcp.Description("Target unit"), mcp.Required()),
	), handleConvertUnits)
}

// unitConversions maps (from, to) pairs to their conversion functions.
var unitConversions = map[[2]string]func(float64) float64{
	{"km", "miles"}:             func(x float64) float64 { return x * 0.621371 },
	{"miles", "km"}:             func(x float64) float64 { return x * 1.60934 },
	{"celsius", "fahrenheit"}:   func(x float64) float64 { return x*9/5 + 32 },
	{"fahrenheit", "celsius"}:   func(x float64) float64 { return (x - 32) * 5 / 9 },
	{"kg", "lbs"}:               func(x float64) float64 { return x * 2.20462 },
	{"lbs", "kg"}:               func(x float64) float64 { return x / 2.20462 },
	{"meters", "feet"}:          func(x float64) float64 { return x * 3.28084 },
	{"feet", "meters"}:          func(x float64) float64 { return x / 3.28084 },
}

func handleConvertUnits(ctx context.Context, args map[string]any) (string, error) {
	value, ok := args["value"].(float64)
	if !ok {
		return "", fmt.Errorf("missing value parameter")
	}
	fromUnit, _ := args["from_unit"].(string)
	toUnit, _ := args["to_unit"].(string)

	key := [2]string{strings.ToLower(fromUnit), strings.ToLower(toUnit)}
	convert, ok := unitConversions[key]

	if !ok {
		return fmt.Sprintf("Conversion from %s to %s is not supported", fromUnit, toUnit), nil
	}

	return fmt.Sprintf("%v %s = %.4f %s", value, fromUnit, convert(value), toUnit), nil
}

func twoNumbers(args map[string]any) (float64, float64, error) {
	a, ok := args["a"].(float64)
	if !ok {
		return 0, 0, fmt.Errorf("missing a parameter")
	}
	b, ok := args["b"].(float64)
	if !ok {
		return 0, 0, fmt.Errorf("missing b parameter")
	}
	return a, b, nil
}
