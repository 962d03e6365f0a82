package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func callTool(t *testing.T, cat *Catalog, name string, args map[string]any) string {
	t.Helper()

	entry, ok := cat.Resolve(name)
	require.True(t, ok, "tool %s not registered", name)

	result, err := entry.Handler(context.Background(), args)
	require.NoError(t, err)

	return result
}

func TestCalculator_Add(t *testing.T) {
	cat := NewCatalog()
	RegisterCalculatorTools(cat)

	result := callTool(t, cat, "add", map[string]any{"a": 2.0, "b": 3.0})
	assert.Equal(t, "2 + 3 = 5", result)
}

func TestCalculator_DivideByZero(t *testing.T) {
	cat := NewCatalog()
	RegisterCalculatorTools(cat)

	// Division by zero is a tool result, not a transport error.
	result := callTool(t, cat, "divide", map[string]any{"a": 1.0, "b": 0.0})
	assert.Equal(t, "Error: Cannot divide by zero", result)
}

func TestCalculator_MissingArgument(t *testing.T) {
	cat := NewCatalog()
	RegisterCalculatorTools(cat)

	entry, ok := cat.Resolve("subtract")
	require.True(t, ok)

	_, err := entry.Handler(context.Background(), map[string]any{"a": 1.0})
	assert.Error(t, err)
}

func TestConvertUnits(t *testing.T) {
	cat := NewCatalog()
	RegisterCalculatorTools(cat)

	result := callTool(t, cat, "convert_units", map[string]any{
		"value":     100.0,
		"from_unit": "km",
		"to_unit":   "miles",
	})
	assert.Equal(t, "100 km = 62.1371 miles", result)

	result = callTool(t, cat, "convert_units", map[string]any{
		"value":     1.0,
		"from_unit": "km",
		"to_unit":   "lbs",
	})
	assert.Equal(t, "Conversion from km to lbs is not supported", result)
}

func TestGetWeather(t *testing.T) {
	cat := NewCatalog()
	RegisterWeatherTools(cat)

	result := callTool(t, cat, "get_weather", map[string]any{"city": "London"})
	assert.Contains(t, result, "Weather in London")
	assert.Contains(t, result, "55°F")
	assert.Contains(t, result, "Cloudy")

	result = callTool(t, cat, "get_weather", map[string]any{"city": "Atlantis"})
	assert.Contains(t, result, "not available for Atlantis")
}

func TestGetForecast(t *testing.T) {
	cat := NewCatalog()
	RegisterWeatherTools(cat)

	result := callTool(t, cat, "get_forecast", map[string]any{"city": "Tokyo", "days": 2.0})
	assert.Contains(t, result, "2-day forecast for Tokyo")
	assert.Contains(t, result, "Day 1")
	assert.Contains(t, result, "Day 2")
	assert.NotContains(t, result, "Day 3")

	// Days clamp to the 1-7 range.
	result = callTool(t, cat, "get_forecast", map[string]any{"city": "Tokyo", "days": 99.0})
	assert.Contains(t, result, "7-day forecast")
}

func TestEcho(t *testing.T) {
	cat := NewCatalog()
	RegisterUtilityTools(cat)

	result := callTool(t, cat, "echo", map[string]any{"text": "ping"})
	assert.Equal(t, "ping", result)
}

func TestWordCount(t *testing.T) {
	cat := NewCatalog()
	RegisterUtilityTools(cat)

	result := callTool(t, cat, "word_count", map[string]any{"text": "one two  three"})
	assert.Equal(t, "3 words", result)
}
